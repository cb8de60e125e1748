package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/resort-booking-backend/internal/auth"
	"github.com/nekogravitycat/resort-booking-backend/internal/user"
)

// ResolveAccount replaces the token's staff claim with the account's current
// staff flag, so a demoted account loses staff powers before its token expires.
// It MUST be used after auth.AuthRequired middleware.
func ResolveAccount(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := auth.GetUsername(c)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByUsername(c.Request.Context(), username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		auth.SetStaff(c, u.IsStaff)
		c.Next()
	}
}

// RequireStaff ensures the authenticated account is still a staff account.
// The token's staff claim alone is not enough: a demoted account keeps its
// token until it expires.
// It MUST be used after auth.AuthRequired middleware.
func RequireStaff(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := auth.GetUsername(c)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByUsername(c.Request.Context(), username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: staff access required"})
			return
		}

		c.Next()
	}
}
