package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MinNameLength        = 2
	MaxDescriptionLength = 500
)

// ItemInput carries the client-editable fields of an Item for add and update.
type ItemInput struct {
	Name        string
	Quantity    int64
	Price       decimal.Decimal
	Category    Category
	Description string
}

// Normalize trims surrounding whitespace from the name.
// The description is free text and is stored exactly as sent.
func (in ItemInput) Normalize() ItemInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Validate returns a message for every field that breaks a rule, keyed by the JSON field name.
// An empty map means the input is valid.
func (in ItemInput) Validate() map[string]string {
	fields := map[string]string{}
	if utf8.RuneCountInString(in.Name) < MinNameLength {
		fields["itemName"] = fmt.Sprintf("must be at least %d characters", MinNameLength)
	}
	switch {
	case in.Quantity < 0:
		fields["quantity"] = "must be greater than or equal to 0"
	case in.Quantity > MaxQuantity:
		fields["quantity"] = fmt.Sprintf("must be less than or equal to %d", MaxQuantity)
	}
	if in.Price.IsNegative() {
		fields["price"] = "must be greater than or equal to 0"
	}
	if !in.Category.Valid() {
		fields["category"] = "must be one of: Electronics, Clothing, Food, Furniture, Tools, Other"
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		fields["description"] = fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)
	}
	return fields
}

// ValidateDelta checks a quantity adjustment; an empty map means it is acceptable.
func ValidateDelta(delta int64) map[string]string {
	if delta < -MaxQuantity || delta > MaxQuantity {
		return map[string]string{"delta": fmt.Sprintf("must be between %d and %d", -MaxQuantity, MaxQuantity)}
	}
	return nil
}
