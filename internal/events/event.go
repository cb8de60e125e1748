package events

import (
	"context"
	"time"

	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
)

type Type string

const (
	TypeBookingCreated          Type = "booking_created"
	TypeBookingCancelled        Type = "booking_cancelled"
	TypeBookingPaymentConfirmed Type = "booking_payment_confirmed"
	TypeBookingRefundConfirmed  Type = "booking_refund_confirmed"
	TypeBookingStatusChanged    Type = "booking_status_changed"
)

// BookingEvent is the message published after a booking is created or
// changes status.
type BookingEvent struct {
	Type            Type      `json:"type"`
	BookingID       string    `json:"booking_id"`
	GuestName       string    `json:"guest_name"`
	AccommodationID string    `json:"accommodation_id"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	Total           int64     `json:"total"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewBookingEvent(t Type, b *booking.Booking) BookingEvent {
	return BookingEvent{
		Type:            t,
		BookingID:       b.ID,
		GuestName:       b.GuestName,
		AccommodationID: b.AccommodationID,
		PaymentMethod:   string(b.PaymentMethod),
		Status:          string(b.Status),
		Total:           b.Total,
		OccurredAt:      b.UpdatedAt,
	}
}

// Publisher delivers booking events somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
