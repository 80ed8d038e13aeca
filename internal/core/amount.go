// Package core provides amount parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings.
// Amounts are decimal values so that summation never accumulates binary
// floating-point drift.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to an amount. It accepts both dot
// (12.34) and comma (12,34) decimal separators. The result must be a
// strictly positive finite decimal; anything else is a ValidationError on
// the amount field.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0")     -> ValidationError{amount}
//	ParseAmount("-5")    -> ValidationError{amount}
//	ParseAmount("abc")   -> ValidationError{amount}
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ValidationError{Field: "amount"}
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ValidationError{Field: "amount"}
	}
	if !d.IsPositive() {
		return decimal.Zero, ValidationError{Field: "amount"}
	}
	return d, nil
}
