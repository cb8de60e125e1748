package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/resort-booking-backend/internal/accommodation"
	accHttp "github.com/nekogravitycat/resort-booking-backend/internal/accommodation/http"
	"github.com/nekogravitycat/resort-booking-backend/internal/auth"
	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/resort-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/resort-booking-backend/internal/pricing"
	pricingHttp "github.com/nekogravitycat/resort-booking-backend/internal/pricing/http"
	"github.com/nekogravitycat/resort-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/resort-booking-backend/internal/user/http"
)

// Config holds everything the router needs to build its handlers.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	BookingService booking.Service
	Catalog        accommodation.Catalog
	Calculator     *pricing.Calculator
	Media          storage.Storage
	ImageProcessor *storage.ImageProcessor
	JWTManager     *auth.JWTManager

	// Now is the clock quotes are priced against. Defaults to time.Now.
	Now func() time.Time
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(cfg)
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// accountMiddleware: Takes the staff flag from the account rather than the token.
	accountMiddleware := ResolveAccount(cfg.UserService)
	// staffMiddleware: Further checks that the authenticated account is staff.
	staffMiddleware := RequireStaff(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	accHandler := accHttp.NewHandler(cfg.Catalog, cfg.Media, cfg.ImageProcessor)
	pricingHandler := pricingHttp.NewHandler(cfg.Calculator, now)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		accHttp.RegisterRoutes(v1, accHandler)
		pricingHttp.RegisterRoutes(v1, pricingHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, accountMiddleware, staffMiddleware)
	}

	return r
}

func allowedOrigins(cfg Config) []string {
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		var origins []string
		for _, o := range strings.Split(cfg.ProdOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins
	}
	return []string{
		"http://localhost:3000", // Frontend dev server
		"http://localhost:8081", // Swagger
	}
}
