package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/resort-booking-backend/internal/accommodation"
)

var (
	tuesday  = time.Date(2026, time.October, 13, 10, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
)

func newCalculator(t *testing.T, policy Policy, options ...accommodation.Option) *Calculator {
	if len(options) == 0 {
		options = accommodation.DefaultOptions()
	}
	catalog, err := accommodation.NewCatalog(options)
	require.NoError(t, err)
	return NewCalculator(catalog, policy, time.UTC)
}

func TestPriceWeekdayAndWeekend(t *testing.T) {
	calc := newCalculator(t, DefaultPolicy())

	t.Run("Tuesday applies the discount", func(t *testing.T) {
		q, err := calc.Price("cottage", 2, tuesday)
		require.NoError(t, err)

		assert.Equal(t, int64(1000), q.Base)
		assert.Equal(t, int64(200), q.ExcessFee)
		assert.Equal(t, int64(150), q.Discount)
		assert.Equal(t, int64(1050), q.Total)
		assert.Equal(t, "Open Cottage", q.AccommodationName)
	})

	t.Run("Saturday has no discount", func(t *testing.T) {
		q, err := calc.Price("cottage", 2, saturday)
		require.NoError(t, err)

		assert.Equal(t, int64(0), q.Discount)
		assert.Equal(t, int64(1200), q.Total)
	})

	t.Run("Sunday has no discount", func(t *testing.T) {
		q, err := calc.Price("cottage", 0, sunday)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), q.Total)
	})
}

func TestPriceUsesConfiguredTimeZone(t *testing.T) {
	catalog, err := accommodation.NewCatalog(accommodation.DefaultOptions())
	require.NoError(t, err)

	manila := time.FixedZone("PHT", 8*60*60)
	calc := NewCalculator(catalog, DefaultPolicy(), manila)

	// Friday 20:00 UTC is already Saturday morning in Manila.
	fridayEveningUTC := time.Date(2026, time.October, 16, 20, 0, 0, 0, time.UTC)
	q, err := calc.Price("cottage", 0, fridayEveningUTC)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q.Discount)
}

func TestPriceDiscountDisabled(t *testing.T) {
	calc := newCalculator(t, Policy{WeekdayDiscount: false})

	q, err := calc.Price("cottage", 2, tuesday)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q.Discount)
	assert.Equal(t, int64(1200), q.Total)
	assert.False(t, calc.Policy().WeekdayDiscount)
}

func TestPriceErrors(t *testing.T) {
	calc := newCalculator(t, DefaultPolicy())

	_, err := calc.Price("villa", 0, tuesday)
	assert.ErrorIs(t, err, ErrInvalidAccommodation)

	_, err = calc.Price("cottage", -1, tuesday)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestPriceExcessGuestBound(t *testing.T) {
	calc := newCalculator(t, DefaultPolicy())

	q, err := calc.Price("cottage", MaxExcessGuests, saturday)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxExcessGuests)*ExcessGuestFee, q.ExcessFee)
	assert.Equal(t, q.Base+q.ExcessFee, q.Total)

	for _, n := range []int{MaxExcessGuests + 1, math.MaxInt64/100 + 1, math.MaxInt64 / 50, math.MaxInt} {
		_, err := calc.Price("cottage", n, saturday)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "excess=%d", n)
	}
}

func TestPriceRoundsDiscountHalfUp(t *testing.T) {
	calc := newCalculator(t, DefaultPolicy(),
		accommodation.Option{ID: "odd", Name: "Odd", Price: 999},
		accommodation.Option{ID: "low", Name: "Low", Price: 3},
		accommodation.Option{ID: "free", Name: "Free", Price: 0},
	)

	tests := []struct {
		id       string
		discount int64
	}{
		{"odd", 150}, // 149.85
		{"low", 0},   // 0.45
		{"free", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			q, err := calc.Price(tt.id, 0, tuesday)
			require.NoError(t, err)
			assert.Equal(t, tt.discount, q.Discount)
			assert.Equal(t, q.Base-tt.discount, q.Total)
		})
	}
}

func TestPriceProperties(t *testing.T) {
	calc := newCalculator(t, DefaultPolicy())
	days := []time.Time{tuesday, saturday, sunday, tuesday.AddDate(0, 0, 2)}

	for _, opt := range accommodation.DefaultOptions() {
		for excess := 0; excess <= 10; excess++ {
			for _, day := range days {
				q, err := calc.Price(opt.ID, excess, day)
				require.NoError(t, err)

				assert.Equal(t, q.Base+ExcessGuestFee*int64(excess)-q.Discount, q.Total)
				assert.LessOrEqual(t, q.Discount*100, q.Base*WeekdayDiscountPercent+50)
				assert.GreaterOrEqual(t, q.Total, int64(0))
			}
		}
	}
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(tuesday))
	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(sunday))
}
