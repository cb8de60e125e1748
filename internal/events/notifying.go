package events

import (
	"context"
	"log"
	"time"

	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
)

const publishTimeout = 5 * time.Second

type notifyingService struct {
	booking.Service
	publisher Publisher
}

// NewNotifyingService wraps a booking.Service so that every successful
// creation and status change is published. A publish failure is logged and
// never reported to the caller: the booking change is already committed.
func NewNotifyingService(inner booking.Service, publisher Publisher) booking.Service {
	return &notifyingService{Service: inner, publisher: publisher}
}

func (s *notifyingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	b, err := s.Service.Create(ctx, req)
	if err == nil {
		s.publish(ctx, TypeBookingCreated, b)
	}
	return b, err
}

func (s *notifyingService) Cancel(ctx context.Context, id string, by booking.Requester) (*booking.Booking, error) {
	b, err := s.Service.Cancel(ctx, id, by)
	if err == nil {
		s.publish(ctx, TypeBookingCancelled, b)
	}
	return b, err
}

func (s *notifyingService) SetStatus(ctx context.Context, id string, status booking.Status, by booking.Requester) (*booking.Booking, error) {
	b, err := s.Service.SetStatus(ctx, id, status, by)
	if err == nil {
		s.publish(ctx, TypeBookingStatusChanged, b)
	}
	return b, err
}

func (s *notifyingService) ConfirmPayment(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := s.Service.ConfirmPayment(ctx, id)
	if err == nil {
		s.publish(ctx, TypeBookingPaymentConfirmed, b)
	}
	return b, err
}

func (s *notifyingService) ConfirmRefund(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := s.Service.ConfirmRefund(ctx, id)
	if err == nil {
		s.publish(ctx, TypeBookingRefundConfirmed, b)
	}
	return b, err
}

func (s *notifyingService) publish(ctx context.Context, t Type, b *booking.Booking) {
	// Detached from the request so a client hanging up does not drop the event.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, NewBookingEvent(t, b)); err != nil {
		log.Printf("warning: failed to publish %s for booking %s: %v", t, b.ID, err)
	}
}
