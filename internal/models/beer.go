// Package models contains domain types shared across brewtrack layers.
package models

import "fmt"

// BeerType identifies one of the brewery's three recipes.
type BeerType string

const (
	BeerDunkel    BeerType = "dunkel"
	BeerPilsner   BeerType = "pilsner"
	BeerRedHelles BeerType = "red_helles"
)

// BeerTypes lists all recipes in their fixed canonical order.
// This order is also the deterministic tie-break for planning.
var BeerTypes = []BeerType{BeerDunkel, BeerPilsner, BeerRedHelles}

// ParseBeerType validates a user-supplied beer type string.
func ParseBeerType(s string) (BeerType, error) {
	for _, b := range BeerTypes {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown beer type %q (expected dunkel, pilsner or red_helles)", s)
}

// BottlesPerLitre is the bottling yield: each litre fills two 0.5 L bottles.
const BottlesPerLitre = 2

// BottleCount returns the number of bottles a batch volume yields.
func BottleCount(volumeLitres int) int {
	return volumeLitres * BottlesPerLitre
}
