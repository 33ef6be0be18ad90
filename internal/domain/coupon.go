package domain

import (
	"fmt"
	"math"
	"strings"
)

// Coupon maps a static code to a percentage discount on the subtotal.
type Coupon struct {
	Code            string
	DiscountPercent int
	Description     string
}

var coupons = map[string]Coupon{
	"HEALTHY10": {Code: "HEALTHY10", DiscountPercent: 10, Description: "10% off on all orders"},
	"FIRST20":   {Code: "FIRST20", DiscountPercent: 20, Description: "20% off for first-time users"},
	"KETO15":    {Code: "KETO15", DiscountPercent: 15, Description: "15% off on keto meals"},
	"PROTEIN25": {Code: "PROTEIN25", DiscountPercent: 25, Description: "25% off on protein bowls"},
}

// LookupCoupon resolves a code case-insensitively.
func LookupCoupon(code string) (Coupon, error) {
	c, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Coupon{}, fmt.Errorf("%w: %q", ErrInvalidCoupon, code)
	}
	return c, nil
}

// DiscountFor returns the discount amount for a subtotal, rounded to cents.
func (c Coupon) DiscountFor(subtotal float64) float64 {
	return math.Round(subtotal*float64(c.DiscountPercent)) / 100
}
