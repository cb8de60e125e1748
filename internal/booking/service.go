package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/resort-booking-backend/internal/pricing"
)

// Pricer computes the cost of a booking at a given moment.
type Pricer interface {
	Price(accommodationID string, excessGuestCount int, now time.Time) (pricing.Quote, error)
}

// Policy holds the configurable lifecycle rules.
type Policy struct {
	// TrustMobilePaymentOnSubmit marks mobile-transfer bookings Paid as soon
	// as they are submitted. When false they wait for staff confirmation like cash.
	TrustMobilePaymentOnSubmit bool
}

// DefaultPolicy trusts mobile payments on submission.
func DefaultPolicy() Policy {
	return Policy{TrustMobilePaymentOnSubmit: true}
}

type CreateRequest struct {
	GuestName        string
	AccommodationID  string
	ExcessGuestCount int
	PaymentMethod    PaymentMethod
	PaymentReference string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel moves Pending to Cancelled and Paid to RefundPending.
	// Guests may only cancel their own bookings.
	Cancel(ctx context.Context, id string, by Requester) (*Booking, error)
	// SetStatus applies a staff confirmation: Pending to Paid or RefundPending to Refunded.
	SetStatus(ctx context.Context, id string, status Status, by Requester) (*Booking, error)
	ConfirmPayment(ctx context.Context, id string) (*Booking, error)
	ConfirmRefund(ctx context.Context, id string) (*Booking, error)
}

type ServiceOption func(*service)

// WithClock overrides the time source used for pricing and timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = now
	}
}

// WithIDGenerator overrides how booking ids are assigned.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *service) {
		s.newID = newID
	}
}

type service struct {
	repo   Repository
	pricer Pricer
	policy Policy
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, pricer Pricer, policy Policy, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		pricer: pricer,
		policy: policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" {
		return nil, ErrInvalidGuestName
	}
	if req.PaymentMethod != PaymentCash && req.PaymentMethod != PaymentMobileTransfer {
		return nil, ErrInvalidPaymentMethod
	}

	now := s.now().UTC()

	quote, err := s.pricer.Price(req.AccommodationID, req.ExcessGuestCount, now)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:                s.newID(),
		GuestName:         guestName,
		AccommodationID:   quote.AccommodationID,
		AccommodationName: quote.AccommodationName,
		ExcessGuestCount:  req.ExcessGuestCount,
		PaymentMethod:     req.PaymentMethod,
		PaymentReference:  strings.TrimSpace(req.PaymentReference),
		BasePrice:         quote.Base,
		ExcessFee:         quote.ExcessFee,
		Discount:          quote.Discount,
		Total:             quote.Total,
		Status:            InitialStatus(req.PaymentMethod, s.policy.TrustMobilePaymentOnSubmit),
		CreatedAt:         now,
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string, by Requester) (*Booking, error) {
	return s.transition(ctx, id, func(b *Booking) (Status, error) {
		if !by.IsStaff && !by.owns(b) {
			return "", ErrUnauthorized
		}
		to, ok := CancelTarget(b.Status)
		if !ok {
			return "", ErrIllegalTransition
		}
		return to, nil
	})
}

func (s *service) SetStatus(ctx context.Context, id string, status Status, by Requester) (*Booking, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	if !by.IsStaff {
		return nil, ErrUnauthorized
	}

	return s.transition(ctx, id, func(b *Booking) (Status, error) {
		if !CanTransition(b.Status, status, CommandConfirm) {
			return "", ErrIllegalTransition
		}
		return status, nil
	})
}

func (s *service) ConfirmPayment(ctx context.Context, id string) (*Booking, error) {
	return s.SetStatus(ctx, id, StatusPaid, StaffRequester)
}

func (s *service) ConfirmRefund(ctx context.Context, id string) (*Booking, error) {
	return s.SetStatus(ctx, id, StatusRefunded, StaffRequester)
}

// transition is the only place a booking's status changes. It reads the
// booking, lets decide pick the target status, and writes it back only if
// nobody changed the status in between. Losing that race is reported as an
// illegal transition, the same as if the request had arrived second.
func (s *service) transition(ctx context.Context, id string, decide func(b *Booking) (Status, error)) (*Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	to, err := decide(b)
	if err != nil {
		return nil, err
	}

	from := b.Status
	b.Status = to
	if err := s.repo.Update(ctx, b, from); err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return nil, apperror.Wrap(ErrIllegalTransition, err)
		}
		return nil, err
	}
	return b, nil
}
