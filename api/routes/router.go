// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventhub/internal/analytics"
	"eventhub/internal/auth"
	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/metrics"
	"eventhub/internal/payments"
	"eventhub/internal/shared/config"
	"eventhub/internal/shared/database"
	"eventhub/internal/shared/middleware"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
	"eventhub/pkg/ratelimit"
)

const serviceName = "eventhub-backend"

// Dependencies are the shared components every route group is built from.
type Dependencies struct {
	Store       storage.Store
	DB          *database.DB
	Publisher   bookings.EventPublisher
	Metrics     *metrics.Metrics
	RateLimiter *ratelimit.RateLimiter
	Logger      *logger.Logger
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	deps   Dependencies
	auth   gin.HandlerFunc

	eventRepo   events.Repository
	bookingRepo bookings.Repository
	userRepo    users.Repository

	bookingService bookings.Service
	userService    users.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	if deps.DB == nil {
		deps.DB = &database.DB{}
	}
	r := &Router{
		config: cfg,
		deps:   deps,
		auth:   middleware.JWTAuthWithConfig(cfg),
	}

	r.eventRepo = events.NewRepository(deps.Store, deps.Logger)
	r.bookingRepo = bookings.NewRepository(deps.Store, deps.Logger)
	r.userRepo = users.NewRepository(deps.Store, deps.Logger)

	opts := []bookings.Option{
		bookings.WithLogger(deps.Logger),
		bookings.WithMetrics(deps.Metrics),
		bookings.WithReleaseOnCancel(cfg.Booking.ReleaseSeatsOnCancel),
	}
	if deps.Publisher != nil {
		opts = append(opts, bookings.WithPublisher(deps.Publisher))
	}
	r.bookingService = bookings.NewService(r.bookingRepo, opts...)
	r.userService = users.NewService(r.userRepo, r.bookingService, deps.Logger)
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(middleware.RequestID(), middleware.RequestLogger(r.deps.Logger), middleware.Metrics(r.deps.Metrics))

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)
		r.setupUserRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// limit returns the rate limit middleware for a class, or nothing when disabled.
func (r *Router) limit(limitType ratelimit.RateLimitType) []gin.HandlerFunc {
	if r.deps.RateLimiter == nil {
		return nil
	}
	return []gin.HandlerFunc{ratelimit.MiddlewareFor(r.deps.RateLimiter, r.deps.Logger, limitType)}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := r.deps.Store.Ping(ctx)
		if err == nil {
			err = r.deps.DB.HealthCheck(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"store":     r.config.Store.Driver,
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/metrics", gin.WrapH(r.deps.Metrics.Handler()))
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.userRepo, r.config.JWT, r.deps.Logger)
	authController := auth.NewController(authService, r.deps.Logger)
	auth.NewRouter(authController, r.auth, r.limit(ratelimit.RateLimitTypeAuth)...).SetupRoutes(rg)
}

// setupEventRoutes configures event catalogue routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventService := events.NewService(r.eventRepo, r.deps.Logger)
	events.SetupEventRoutes(rg, events.NewController(eventService, r.deps.Logger), r.auth)
}

// setupBookingRoutes configures checkout, quotes and booking management
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	processor := payments.NewProcessor(r.config.Booking.PaymentDelay)
	controller := bookings.NewController(r.bookingService, processor, r.userService, r.deps.Logger)
	bookings.SetupBookingRoutes(rg, controller, r.auth, r.limit(ratelimit.RateLimitTypeBooking)...)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	users.SetupUserRoutes(rg, users.NewController(r.userService), r.auth)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsService := analytics.NewService(analytics.NewRepository(r.deps.Store, r.deps.Logger))
	analytics.SetupAnalyticsRoutes(rg, analytics.NewController(analyticsService), r.auth)
}
