package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/resort-booking-backend/internal/pricing"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/response"
)

type Handler struct {
	calculator *pricing.Calculator
	now        func() time.Time
}

func NewHandler(calculator *pricing.Calculator, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{calculator: calculator, now: now}
}

// Quote prices a prospective booking as of the current time.
// The figure is informative; the booking total is computed again on creation.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	q, err := h.calculator.Price(req.AccommodationID, req.ExcessGuests, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
