package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	gorm.Model
	Code          string       `json:"code" gorm:"uniqueIndex"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	ExpiryDate    time.Time    `json:"expiry_date"`
	UsageLimit    *int         `json:"usage_limit"`
	UsedCount     int          `json:"used_count" gorm:"default:0"`
	IsActive      bool         `json:"is_active" gorm:"default:true"`
	Description   string       `json:"description"`
}

func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiryDate.Before(now)
}

func (c *Coupon) LimitReached() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// Discount computes the amount taken off the total. The result never
// exceeds the total, so the final amount cannot go negative.
func (c *Coupon) Discount(total float64) float64 {
	if c.DiscountType == DiscountPercentage {
		return math.Min(math.Round(total*c.DiscountValue/100), total)
	}
	return math.Min(c.DiscountValue, total)
}
