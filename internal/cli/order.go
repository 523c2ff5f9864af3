package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/wire"
)

// dateRequiredLayout matches the sales export's date style.
const dateRequiredLayout = "02-Jan-06"

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage customer orders",
	Long:  "Register, dispatch, inspect, and delete customer orders against the bottle inventory",
}

var orderAddCmd = &cobra.Command{
	Use:   "add [invoice] [customer] [beer-type] [quantity]",
	Short: "Register a new order",
	Long:  "Register a pending customer order. Quantity is in bottles; --required sets the delivery date (e.g. 14-Sep-26).",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		quantity, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: must be a whole number of bottles", args[3])
		}

		required := time.Now().AddDate(0, 0, 14)
		if raw, _ := cmd.Flags().GetString("required"); raw != "" {
			required, err = time.Parse(dateRequiredLayout, raw)
			if err != nil {
				return fmt.Errorf("invalid --required date %q (expected e.g. 14-Sep-26)", raw)
			}
		}

		resp, err := wire.OrderService().RegisterOrder(ctx, primary.RegisterOrderRequest{
			Invoice:      args[0],
			Customer:     args[1],
			BeerType:     args[2],
			Quantity:     quantity,
			DateRequired: required,
		})
		if err != nil {
			return fmt.Errorf("failed to register order: %w", err)
		}

		o := resp.Order
		fmt.Printf("✓ Registered order %s for %s: %d bottles of %s\n", o.Invoice, o.Customer, o.Quantity, o.BeerType)
		fmt.Printf("  Required by: %s\n", o.DateRequired.Format(dateRequiredLayout))
		return nil
	},
}

var orderDispatchCmd = &cobra.Command{
	Use:   "dispatch [invoice]",
	Short: "Dispatch an order",
	Long:  "Mark an order dispatched and debit its bottles from inventory. Fails without side effects when stock is short.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := wire.OrderService().DispatchOrder(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to dispatch order: %w", err)
		}

		o := resp.Order
		fmt.Printf("✓ Dispatched order %s: %d bottles of %s\n", o.Invoice, o.Quantity, o.BeerType)
		fmt.Printf("  Remaining stock: %d bottles\n", resp.RemainingStock)
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show [invoice]",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := wire.OrderService().GetOrder(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}

		fmt.Printf("\nOrder:    %s\n", o.Invoice)
		fmt.Printf("Customer: %s\n", o.Customer)
		fmt.Printf("Beer:     %s\n", o.BeerType)
		fmt.Printf("Quantity: %d bottles\n", o.Quantity)
		fmt.Printf("Required: %s\n", o.DateRequired.Format(dateRequiredLayout))
		fmt.Printf("Status:   %s\n", orderStatus(o))
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := wire.OrderService().ListOrders(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}

		if len(orders) == 0 {
			fmt.Println("No orders found")
			return nil
		}

		fmt.Printf("\n%-10s %-24s %-12s %8s  %-11s %-10s\n", "INVOICE", "CUSTOMER", "BEER", "BOTTLES", "REQUIRED", "STATUS")
		fmt.Println("────────────────────────────────────────────────────────────────────────────")
		for _, o := range orders {
			fmt.Printf("%-10s %-24s %-12s %8d  %-11s %-10s\n",
				o.Invoice, o.Customer, o.BeerType, o.Quantity,
				o.DateRequired.Format(dateRequiredLayout), orderStatus(o))
		}
		fmt.Println()
		return nil
	},
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete [invoice]",
	Short: "Delete an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := wire.OrderService().DeleteOrder(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		if !resp.Found {
			fmt.Printf("No order with invoice %s; nothing deleted\n", args[0])
			return nil
		}
		fmt.Printf("✓ Deleted order %s\n", args[0])
		return nil
	},
}

func orderStatus(o *primary.Order) string {
	if o.Dispatched {
		return "dispatched"
	}
	return "pending"
}

func init() {
	orderAddCmd.Flags().StringP("required", "r", "", "Date the order is required by (e.g. 14-Sep-26)")

	orderCmd.AddCommand(orderAddCmd)
	orderCmd.AddCommand(orderDispatchCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderDeleteCmd)
}

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	return orderCmd
}
