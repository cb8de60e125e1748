package pricing

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/resort-booking-backend/internal/accommodation"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidAccommodation = apperror.New(http.StatusBadRequest, "unknown accommodation")
	ErrInvalidQuantity      = apperror.New(http.StatusBadRequest, "excess guest count must be between 0 and 1000")
)

const (
	// ExcessGuestFee is charged per guest above the unit's base occupancy.
	ExcessGuestFee int64 = 100
	// WeekdayDiscountPercent is taken off the base price Monday to Friday.
	WeekdayDiscountPercent int64 = 15
	// MaxExcessGuests caps the excess guest count of a single booking.
	MaxExcessGuests = 1000
)

// Policy selects the optional pricing rules.
type Policy struct {
	WeekdayDiscount bool
}

// DefaultPolicy applies the weekday discount.
func DefaultPolicy() Policy {
	return Policy{WeekdayDiscount: true}
}

// Quote is the cost breakdown of one booking, in whole pesos.
type Quote struct {
	AccommodationID   string
	AccommodationName string
	Base              int64
	ExcessFee         int64
	Discount          int64
	Total             int64
}

// Calculator prices bookings against a catalog. It has no state besides
// its configuration and is safe for concurrent use.
type Calculator struct {
	catalog  accommodation.Catalog
	policy   Policy
	location *time.Location
}

// NewCalculator creates a Calculator. loc decides which calendar day `now`
// falls on; nil means UTC.
func NewCalculator(catalog accommodation.Catalog, policy Policy, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{
		catalog:  catalog,
		policy:   policy,
		location: loc,
	}
}

// Price computes the quote for a unit, an excess guest count and the moment of pricing.
func (c *Calculator) Price(accommodationID string, excessGuestCount int, now time.Time) (Quote, error) {
	if excessGuestCount < 0 || excessGuestCount > MaxExcessGuests {
		return Quote{}, ErrInvalidQuantity
	}

	opt, ok := c.catalog.Lookup(accommodationID)
	if !ok {
		return Quote{}, ErrInvalidAccommodation
	}

	q := Quote{
		AccommodationID:   opt.ID,
		AccommodationName: opt.Name,
		Base:              opt.Price,
		ExcessFee:         int64(excessGuestCount) * ExcessGuestFee,
	}

	if c.policy.WeekdayDiscount && q.Base > 0 && !IsWeekend(now.In(c.location)) {
		q.Discount = percentOf(q.Base, WeekdayDiscountPercent)
	}

	q.Total = q.Base + q.ExcessFee - q.Discount
	return q, nil
}

// Policy returns the rules the calculator was built with.
func (c *Calculator) Policy() Policy {
	return c.policy
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	d := t.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// percentOf returns pct% of amount rounded half-up to a whole unit.
// amount is never negative here.
func percentOf(amount, pct int64) int64 {
	return (amount*pct + 50) / 100
}
