package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/resort-booking-backend/internal/auth"
	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func requester(c *gin.Context) booking.Requester {
	return booking.Requester{
		Name:    auth.GetUsername(c),
		IsStaff: auth.IsStaff(c),
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := req.Filter()
	// Guests only ever see their own bookings.
	if by := requester(c); !by.IsStaff {
		filter.GuestName = by.Name
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Someone else's booking is reported as missing rather than forbidden.
	if by := requester(c); !by.IsStaff && by.Name != b.GuestName {
		response.Error(c, booking.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	method, err := booking.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	by := requester(c)
	guestName := by.Name
	if by.IsStaff && body.GuestName != "" {
		guestName = body.GuestName
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		GuestName:        guestName,
		AccommodationID:  body.AccommodationID,
		ExcessGuestCount: body.ExcessGuests,
		PaymentMethod:    method,
		PaymentReference: body.PaymentReference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID, requester(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	h.confirm(c, h.service.ConfirmPayment)
}

func (h *Handler) ConfirmRefund(c *gin.Context) {
	h.confirm(c, h.service.ConfirmRefund)
}

func (h *Handler) confirm(c *gin.Context, apply func(ctx context.Context, id string) (*booking.Booking, error)) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := apply(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) SetStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	var body SetStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), uri.ID, booking.Status(body.Status), requester(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
