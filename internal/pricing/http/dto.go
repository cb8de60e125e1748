package http

import "github.com/nekogravitycat/resort-booking-backend/internal/pricing"

// QuoteRequest defines query parameters for pricing a prospective booking.
type QuoteRequest struct {
	AccommodationID string `form:"accommodation_id" binding:"required"`
	ExcessGuests    int    `form:"excess_guests" binding:"omitempty,min=0,max=1000"`
}

type QuoteResponse struct {
	AccommodationID   string `json:"accommodation_id"`
	AccommodationName string `json:"accommodation_name"`
	Base              int64  `json:"base"`
	ExcessFee         int64  `json:"excess_fee"`
	Discount          int64  `json:"discount"`
	Total             int64  `json:"total"`
}

func NewQuoteResponse(q pricing.Quote) QuoteResponse {
	return QuoteResponse{
		AccommodationID:   q.AccommodationID,
		AccommodationName: q.AccommodationName,
		Base:              q.Base,
		ExcessFee:         q.ExcessFee,
		Discount:          q.Discount,
		Total:             q.Total,
	}
}
