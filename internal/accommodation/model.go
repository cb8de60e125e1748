package accommodation

import (
	"net/http"

	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "accommodation not found")
	ErrImageNotFound = apperror.New(http.StatusNotFound, "accommodation image not found")
	ErrInvalidOption = apperror.New(http.StatusBadRequest, "invalid accommodation option")
)

// Option is one bookable unit type offered by the resort.
// Prices are whole pesos.
type Option struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Price       int64  `yaml:"price"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// DefaultOptions is the catalog used when no catalog file is configured.
func DefaultOptions() []Option {
	return []Option{
		{ID: "cottage", Name: "Open Cottage", Price: 1000, Description: "Free entrance for 6 pax.", Image: "open-cottage.jpg"},
		{ID: "ahouse_fan", Name: "A-House (Fan)", Price: 1500, Description: "Good for 4-6 pax.", Image: "a-house.jpg"},
		{ID: "ahouse_ac", Name: "A-House (AC)", Price: 2000, Description: "Good for 4-6 pax.", Image: "a-house.jpg"},
		{ID: "barkada_at", Name: "Barkada (At-atoan)", Price: 5000, Description: "Large group package.", Image: "barkada.jpg"},
		{ID: "barkada_dap", Name: "Barkada (Dap-ayan)", Price: 10000, Description: "Premium group package.", Image: "barkada.jpg"},
	}
}
