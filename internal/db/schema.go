package db

// SchemaSQL is the complete modern schema for fresh brewtrack installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests open
// an in-memory database and apply it via GetSchemaSQL() instead of
// hardcoding their own CREATE TABLE statements, so a repository referencing
// a column that does not exist here fails immediately with "no such column".
//
// IMPORTANT: keep this in sync with migrations. When adding new columns or
// tables, add a migration in migrations.go and update SchemaSQL here.
const SchemaSQL = `
-- Batches (one brew run moving through the phase pipeline)
CREATE TABLE IF NOT EXISTS batches (
	id TEXT PRIMARY KEY,
	beer_type TEXT NOT NULL CHECK(beer_type IN ('dunkel', 'pilsner', 'red_helles')),
	volume INTEGER NOT NULL CHECK(volume > 0),
	phase TEXT NOT NULL CHECK(phase IN ('unset', 'hot_brewing', 'fermenting', 'conditioning', 'bottling', 'finished')) DEFAULT 'unset',
	tank TEXT,
	last_completed TEXT NOT NULL DEFAULT 'unset',
	credited INTEGER NOT NULL DEFAULT 0,
	hot_brewing_start DATETIME,
	hot_brewing_end DATETIME,
	fermenting_start DATETIME,
	fermenting_end DATETIME,
	conditioning_start DATETIME,
	conditioning_end DATETIME,
	bottling_start DATETIME,
	bottling_end DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Orders (customer demand against the bottle ledger)
CREATE TABLE IF NOT EXISTS orders (
	invoice TEXT PRIMARY KEY,
	customer TEXT NOT NULL,
	date_required DATETIME NOT NULL,
	beer_type TEXT NOT NULL CHECK(beer_type IN ('dunkel', 'pilsner', 'red_helles')),
	quantity INTEGER NOT NULL CHECK(quantity > 0),
	dispatched INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Inventory (bottle counts per beer type, never negative)
CREATE TABLE IF NOT EXISTS inventory (
	beer_type TEXT PRIMARY KEY CHECK(beer_type IN ('dunkel', 'pilsner', 'red_helles')),
	quantity INTEGER NOT NULL CHECK(quantity >= 0) DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Forecasts (fitted monthly demand, replaced wholesale per fit run)
CREATE TABLE IF NOT EXISTS forecasts (
	beer_type TEXT NOT NULL CHECK(beer_type IN ('dunkel', 'pilsner', 'red_helles')),
	month_start DATETIME NOT NULL,
	predicted INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (beer_type, month_start)
);

-- Audit log (one row per recorded mutation)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Create indexes for common queries
CREATE INDEX IF NOT EXISTS idx_batches_phase ON batches(phase);
CREATE INDEX IF NOT EXISTS idx_batches_beer_type ON batches(beer_type);
CREATE INDEX IF NOT EXISTS idx_orders_dispatched ON orders(dispatched);
CREATE INDEX IF NOT EXISTS idx_orders_date_required ON orders(date_required);
CREATE INDEX IF NOT EXISTS idx_forecasts_month ON forecasts(month_start);
CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at DESC);

-- The ledger always carries one row per beer type
INSERT OR IGNORE INTO inventory (beer_type, quantity) VALUES
	('dunkel', 0),
	('pilsner', 0),
	('red_helles', 0);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create modern schema directly and mark all
		// migrations as applied so they never run against it
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
