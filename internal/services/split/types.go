package split

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultRestaurant names a bill whose restaurant is unknown.
const DefaultRestaurant = "Restaurant"

// Item is one priced line on a bill, before tax and service.
type Item struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Bill is an itemised restaurant bill. Tax and ServiceCharge are bill-level
// amounts distributed over the items pro rata.
type Bill struct {
	Restaurant    string          `json:"restaurant,omitempty"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Total         decimal.Decimal `json:"total"`
}

// ItemCharge is an item with its share of tax and service charge.
type ItemCharge struct {
	// Index is 1-based, matching Assignment.Items.
	Index         int             `json:"index"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Tax           decimal.Decimal `json:"tax"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Total         decimal.Decimal `json:"total_price"`
}

// Assignment says which items a diner had. ShareRatio and SharedWith are
// keyed by the item index as a string. SharedWith splits an item evenly
// between that many diners; an explicit ShareRatio wins over it, and an item
// in neither map is the diner's alone.
type Assignment struct {
	PersonID   int                        `json:"person_id"`
	Position   string                     `json:"position,omitempty"`
	Items      []int                      `json:"items"`
	ShareRatio map[string]decimal.Decimal `json:"share_ratio,omitempty"`
	SharedWith map[string]int             `json:"shared_with,omitempty"`
}

// Ratio returns the share of item index taken by this diner.
func (a Assignment) Ratio(index int) decimal.Decimal {
	key := strconv.Itoa(index)
	if r, ok := a.ShareRatio[key]; ok {
		return r
	}
	if n, ok := a.SharedWith[key]; ok {
		return EvenShare(n)
	}
	return decimal.NewFromInt(1)
}

// Line is one item on a diner's share.
type Line struct {
	Name   string          `json:"name"`
	Ratio  decimal.Decimal `json:"ratio"`
	Amount decimal.Decimal `json:"amount"`
}

// Share is what one diner owes.
type Share struct {
	PersonID  int             `json:"person_id"`
	Position  string          `json:"position,omitempty"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Reference string          `json:"reference"`
}

// Result is a completed split.
type Result struct {
	ID         string       `json:"id"`
	Restaurant string       `json:"restaurant"`
	Charges    []ItemCharge `json:"charges"`
	Shares     []Share      `json:"shares"`
}
