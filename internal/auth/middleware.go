package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/response"
)

var (
	ErrMissingToken   = apperror.New(http.StatusUnauthorized, "missing bearer token")
	ErrMalformedToken = apperror.New(http.StatusUnauthorized, "authorization header must be: Bearer <token>")
	ErrInvalidToken   = apperror.New(http.StatusUnauthorized, "invalid or expired token")
)

// AuthRequired rejects requests without a valid access token and stores the
// caller's username and staff claim on the context.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		claims, err := jwtManager.ParseAndValidate(token)
		if err != nil {
			response.Error(c, apperror.Wrap(ErrInvalidToken, err))
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", ErrMalformedToken
	}
	return token, nil
}
