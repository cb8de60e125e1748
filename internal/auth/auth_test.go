package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("juan", true)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "juan", claims.Subject)
	assert.True(t, claims.Staff)
}

func TestJWTRejectsBadTokens(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("other-secret", time.Hour).GenerateAccessToken("juan", false)
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", time.Minute)
		expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := expired.GenerateAccessToken("juan", false)
		require.NoError(t, err)

		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseAndValidate("not-a-token")
		assert.Error(t, err)
	})
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(1) // clamped to bcrypt.MinCost

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "s3cret-pass"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	r.GET("/me", AuthRequired(m), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetUsername(c), "staff": IsStaff(c)})
	})

	guestToken, err := m.GenerateAccessToken("juan", false)
	require.NoError(t, err)

	do := func(path, header string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/me", "Token abc").Code)
	w := do("/me", "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")

	w = do("/me", "Bearer "+guestToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"juan","staff":false}`, w.Body.String())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		err    error
	}{
		{"", "", ErrMissingToken},
		{"   ", "", ErrMissingToken},
		{"Bearer abc.def", "abc.def", nil},
		{"bearer   abc.def ", "abc.def", nil},
		{"Token abc.def", "", ErrMalformedToken},
		{"Bearer", "", ErrMalformedToken},
		{"Bearer   ", "", ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := bearerToken(tt.header)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}
