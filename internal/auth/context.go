package auth

import "github.com/gin-gonic/gin"

const (
	usernameKey = "username"
	staffKey    = "isStaff"
)

// GetUsername returns the authenticated account's username or empty string.
func GetUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}

// IsStaff reports whether the authenticated account is a staff account.
func IsStaff(c *gin.Context) bool {
	return c.GetBool(staffKey)
}

// SetStaff overrides the staff flag taken from the token.
func SetStaff(c *gin.Context, staff bool) {
	c.Set(staffKey, staff)
}

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set(usernameKey, claims.Subject)
	c.Set(staffKey, claims.Staff)
}
