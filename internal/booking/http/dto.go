package http

import (
	"strings"
	"time"

	accHttp "github.com/nekogravitycat/resort-booking-backend/internal/accommodation/http"
	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	GuestName       string `form:"guest_name"`
	AccommodationID string `form:"accommodation_id"`
	Status          string `form:"status" binding:"omitempty,oneof=pending paid cancelled refund_pending refunded"`
	PaymentMethod   string `form:"payment_method" binding:"omitempty,oneof=cash mobile_transfer"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=created_at total status"`
}

func (r *ListBookingsRequest) Filter() booking.Filter {
	r.Normalize()
	return booking.Filter{
		GuestName:       r.GuestName,
		AccommodationID: r.AccommodationID,
		Status:          booking.Status(r.Status),
		PaymentMethod:   booking.PaymentMethod(r.PaymentMethod),
		Page:            r.Page,
		PageSize:        r.PageSize,
		SortBy:          r.SortBy,
		SortOrder:       strings.ToUpper(r.SortOrder),
	}
}

// CreateBookingRequest is the payload for POST /v1/bookings.
// GuestName is only honoured for staff taking walk-in bookings; guests
// always book under their own account.
type CreateBookingRequest struct {
	AccommodationID  string `json:"accommodation_id" binding:"required"`
	ExcessGuests     int    `json:"excess_guests" binding:"min=0,max=1000"`
	PaymentMethod    string `json:"payment_method" binding:"required"`
	PaymentReference string `json:"payment_reference"`
	GuestName        string `json:"guest_name"`
}

// SetStatusRequest is the payload for PATCH /v1/bookings/:id/status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID               string                   `json:"id"`
	GuestName        string                   `json:"guest_name"`
	Accommodation    accHttp.AccommodationTag `json:"accommodation"`
	ExcessGuests     int                      `json:"excess_guests"`
	PaymentMethod    string                   `json:"payment_method"`
	PaymentReference string                   `json:"payment_reference,omitempty"`
	BasePrice        int64                    `json:"base_price"`
	ExcessFee        int64                    `json:"excess_fee"`
	Discount         int64                    `json:"discount"`
	Total            int64                    `json:"total"`
	Status           string                   `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		GuestName:        b.GuestName,
		Accommodation:    accHttp.AccommodationTag{ID: b.AccommodationID, Name: b.AccommodationName},
		ExcessGuests:     b.ExcessGuestCount,
		PaymentMethod:    string(b.PaymentMethod),
		PaymentReference: b.PaymentReference,
		BasePrice:        b.BasePrice,
		ExcessFee:        b.ExcessFee,
		Discount:         b.Discount,
		Total:            b.Total,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
