package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. accountMiddleware runs after
// authMiddleware and settles whether the caller is staff.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, accountMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware, accountMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Staff Routes ===
	staff := group.Group("", staffMiddleware)
	{
		staff.POST("/:id/confirm-payment", h.ConfirmPayment)
		staff.POST("/:id/confirm-refund", h.ConfirmRefund)
		staff.PATCH("/:id/status", h.SetStatus)
	}
}
