package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/resort-booking-backend/internal/accommodation"
	"github.com/nekogravitycat/resort-booking-backend/internal/auth"
	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/resort-booking-backend/internal/pricing"
)

type testEnv struct {
	router *gin.Engine
	jwt    *auth.JWTManager
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := accommodation.NewCatalog(accommodation.DefaultOptions())
	require.NoError(t, err)

	tuesday := time.Date(2026, time.October, 13, 10, 0, 0, 0, time.UTC)
	calc := pricing.NewCalculator(catalog, pricing.DefaultPolicy(), time.UTC)
	svc := booking.NewService(booking.NewMemoryRepository(), calc, booking.DefaultPolicy(),
		booking.WithClock(func() time.Time { return tuesday }))

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	staffOnly := func(c *gin.Context) {
		if !auth.IsStaff(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}

	trustToken := func(c *gin.Context) { c.Next() }

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(jwtManager), trustToken, staffOnly)
	return &testEnv{router: r, jwt: jwtManager}
}

func (e *testEnv) token(t *testing.T, username string, staff bool) string {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(username, staff)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) create(t *testing.T, token string, body CreateBookingRequest) BookingResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/v1/bookings", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeBooking(t *testing.T, w *httptest.ResponseRecorder) BookingResponse {
	t.Helper()
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateBooking(t *testing.T) {
	env := setupRouter(t)
	juan := env.token(t, "juan", false)
	staff := env.token(t, "frontdesk", true)

	t.Run("Cash Booking Is Pending", func(t *testing.T) {
		b := env.create(t, juan, CreateBookingRequest{
			AccommodationID: "cottage",
			ExcessGuests:    2,
			PaymentMethod:   "cash",
		})
		assert.Equal(t, "juan", b.GuestName)
		assert.Equal(t, "pending", b.Status)
		assert.Equal(t, "Open Cottage", b.Accommodation.Name)
		assert.Equal(t, int64(1050), b.Total)
	})

	t.Run("GCash Booking Is Paid", func(t *testing.T) {
		b := env.create(t, juan, CreateBookingRequest{
			AccommodationID:  "ahouse_ac",
			PaymentMethod:    "GCash",
			PaymentReference: "0917-555",
		})
		assert.Equal(t, "mobile_transfer", b.PaymentMethod)
		assert.Equal(t, "paid", b.Status)
		assert.Equal(t, int64(1700), b.Total)
	})

	t.Run("Guest Cannot Book For Someone Else", func(t *testing.T) {
		b := env.create(t, juan, CreateBookingRequest{
			AccommodationID: "cottage",
			PaymentMethod:   "cash",
			GuestName:       "pedro",
		})
		assert.Equal(t, "juan", b.GuestName)
	})

	t.Run("Staff Walk-in", func(t *testing.T) {
		b := env.create(t, staff, CreateBookingRequest{
			AccommodationID: "barkada_at",
			PaymentMethod:   "cash",
			GuestName:       "Walk-in Family",
		})
		assert.Equal(t, "Walk-in Family", b.GuestName)
	})

	t.Run("Validation", func(t *testing.T) {
		cases := []struct {
			name string
			body CreateBookingRequest
			code int
		}{
			{"unknown accommodation", CreateBookingRequest{AccommodationID: "villa", PaymentMethod: "cash"}, http.StatusBadRequest},
			{"negative excess", CreateBookingRequest{AccommodationID: "cottage", ExcessGuests: -1, PaymentMethod: "cash"}, http.StatusBadRequest},
			{"excess above limit", CreateBookingRequest{AccommodationID: "cottage", ExcessGuests: 92233720368547759, PaymentMethod: "cash"}, http.StatusBadRequest},
			{"bad payment method", CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "card"}, http.StatusBadRequest},
			{"missing accommodation", CreateBookingRequest{PaymentMethod: "cash"}, http.StatusBadRequest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := env.do(http.MethodPost, "/v1/bookings", tc.body, juan)
				assert.Equal(t, tc.code, w.Code)
			})
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		w := env.do(http.MethodPost, "/v1/bookings", CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "cash"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBookingVisibility(t *testing.T) {
	env := setupRouter(t)
	juan := env.token(t, "juan", false)
	maria := env.token(t, "maria", false)
	staff := env.token(t, "frontdesk", true)

	juans := env.create(t, juan, CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "cash"})
	env.create(t, maria, CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "cash"})

	t.Run("Guest Lists Own Only", func(t *testing.T) {
		w := env.do(http.MethodGet, "/v1/bookings?guest_name=maria", nil, juan)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "juan", page.Items[0].GuestName)
	})

	t.Run("Staff Lists All", func(t *testing.T) {
		w := env.do(http.MethodGet, "/v1/bookings?sort_order=asc", nil, staff)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 2, page.Total)
	})

	t.Run("Invalid Status Filter", func(t *testing.T) {
		w := env.do(http.MethodGet, "/v1/bookings?status=archived", nil, staff)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Page Out Of Range", func(t *testing.T) {
		w := env.do(http.MethodGet, "/v1/bookings?page=92233720368547760", nil, staff)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Get", func(t *testing.T) {
		path := "/v1/bookings/" + juans.ID
		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, path, nil, juan).Code)
		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, path, nil, staff).Code)
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path, nil, maria).Code)
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/v1/bookings/not-a-uuid", nil, juan).Code)
	})
}

func TestBookingLifecycle(t *testing.T) {
	env := setupRouter(t)
	juan := env.token(t, "juan", false)
	maria := env.token(t, "maria", false)
	staff := env.token(t, "frontdesk", true)

	t.Run("Pay Then Refund", func(t *testing.T) {
		b := env.create(t, juan, CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "cash"})
		base := "/v1/bookings/" + b.ID

		w := env.do(http.MethodPost, base+"/confirm-payment", nil, juan)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(http.MethodPost, base+"/confirm-payment", nil, staff)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "paid", decodeBooking(t, w).Status)

		w = env.do(http.MethodPost, base+"/confirm-payment", nil, staff)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = env.do(http.MethodPost, base+"/cancel", nil, maria)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(http.MethodPost, base+"/cancel", nil, juan)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "refund_pending", decodeBooking(t, w).Status)

		w = env.do(http.MethodPost, base+"/confirm-refund", nil, staff)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "refunded", decodeBooking(t, w).Status)

		w = env.do(http.MethodPost, base+"/cancel", nil, juan)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Cancel Pending", func(t *testing.T) {
		b := env.create(t, juan, CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "cash"})

		w := env.do(http.MethodPost, "/v1/bookings/"+b.ID+"/cancel", nil, juan)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cancelled", decodeBooking(t, w).Status)
	})

	t.Run("Set Status", func(t *testing.T) {
		b := env.create(t, juan, CreateBookingRequest{AccommodationID: "cottage", PaymentMethod: "cash"})
		path := "/v1/bookings/" + b.ID + "/status"

		w := env.do(http.MethodPatch, path, SetStatusRequest{Status: "refunded"}, staff)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = env.do(http.MethodPatch, path, SetStatusRequest{Status: "archived"}, staff)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(http.MethodPatch, path, SetStatusRequest{Status: "paid"}, staff)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "paid", decodeBooking(t, w).Status)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		w := env.do(http.MethodPost, "/v1/bookings/7c9e6679-7425-40de-944b-e07fc1f90ae7/cancel", nil, juan)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
