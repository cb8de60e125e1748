package booking

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidGuestName     = apperror.New(http.StatusBadRequest, "guest name is required")
	ErrInvalidPaymentMethod = apperror.New(http.StatusBadRequest, "invalid payment method")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrIllegalTransition    = apperror.New(http.StatusConflict, "booking status change not allowed")
	ErrUnauthorized         = apperror.New(http.StatusForbidden, "not allowed to act on this booking")
)

// Storage-level errors. The service translates them before they reach callers.
var (
	ErrStaleStatus = errors.New("booking status changed concurrently")
	ErrDuplicateID = errors.New("booking id already exists")
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusPaid          Status = "paid"
	StatusCancelled     Status = "cancelled"
	StatusRefundPending Status = "refund_pending"
	StatusRefunded      Status = "refunded"
)

// ParseStatus accepts the canonical status names only.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefundPending, StatusRefunded:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentMobileTransfer PaymentMethod = "mobile_transfer"
)

// ParsePaymentMethod is case-insensitive and also accepts "gcash",
// the mobile-money provider the resort uses, as a mobile transfer.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PaymentCash):
		return PaymentCash, nil
	case string(PaymentMobileTransfer), "gcash":
		return PaymentMobileTransfer, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Booking is a guest's reservation of one accommodation option.
// Everything except Status and UpdatedAt is fixed at creation.
type Booking struct {
	ID                string
	GuestName         string
	AccommodationID   string
	AccommodationName string
	ExcessGuestCount  int
	PaymentMethod     PaymentMethod
	PaymentReference  string // transfer reference, kept for staff audit only
	BasePrice         int64
	ExcessFee         int64
	Discount          int64
	Total             int64
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Filter struct {
	GuestName       string
	AccommodationID string
	Status          Status
	PaymentMethod   PaymentMethod
	Page            int
	PageSize        int
	SortBy          string // created_at, total or status
	SortOrder       string // ASC or DESC
}

// Requester identifies who asks for a status change.
type Requester struct {
	Name    string
	IsStaff bool
}

// StaffRequester is used for staff-initiated operations that carry no guest identity.
var StaffRequester = Requester{Name: "staff", IsStaff: true}

func (r Requester) owns(b *Booking) bool {
	return r.Name != "" && r.Name == b.GuestName
}
