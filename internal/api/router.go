package api

import (
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sirpyerre/storefront-api/docs"
	"github.com/sirpyerre/storefront-api/internal/api/handler"
	"github.com/sirpyerre/storefront-api/internal/api/middleware"
	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
	"github.com/sirpyerre/storefront-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Services are required; the rest
// is optional.
type Deps struct {
	Log zerolog.Logger

	Auth     ports.AuthService
	Products ports.ProductService
	Orders   ports.OrderService

	// HealthChecks are reported by /health/ready, keyed by dependency name.
	HealthChecks map[string]handlers.Check

	// LoginLimiter throttles POST /api/users/login per client IP. Nil disables it.
	LoginLimiter middleware.Limiter
	LoginLimit   int
	LoginWindow  time.Duration

	// TrustedProxies are the peers whose X-Forwarded-For header names the
	// client. Empty means the TCP peer address is the client IP.
	TrustedProxies []*net.IPNet

	// EnforceOrderOwnership restricts GET /api/orders/user/:userId to the
	// owner or an admin.
	EnforceOrderOwnership bool

	// Registerer and Gatherer back the HTTP metrics and /metrics.
	// Nil selects the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.JSONSerializer = handler.StrictJSONSerializer{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	productHandler := handler.NewProductHandler(d.Products)
	orderHandler := handler.NewOrderHandler(d.Orders)
	requireAuth := middleware.Auth(d.Auth, d.Log.With().Str("component", "auth").Logger())

	api := e.Group("/api")

	// --- Product routes (listing is public) ---
	api.GET("/products", productHandler.List)
	api.POST("/products", productHandler.Create, requireAuth)
	api.PUT("/products/:id", productHandler.Update, requireAuth)
	api.DELETE("/products/:id", productHandler.Delete, requireAuth)

	// --- User routes ---
	var loginMW []echo.MiddlewareFunc
	if d.LoginLimiter != nil {
		loginMW = append(loginMW, middleware.RateLimit(d.LoginLimiter, "login", d.LoginLimit, d.LoginWindow, d.Log))
	}
	api.POST("/users/register", authHandler.Register)
	api.POST("/users/login", authHandler.Login, loginMW...)

	// --- Order routes ---
	listOrdersMW := []echo.MiddlewareFunc{requireAuth}
	if d.EnforceOrderOwnership {
		listOrdersMW = append(listOrdersMW, middleware.OwnerOrRole("userId", domain.RoleAdmin))
	}
	api.POST("/orders", orderHandler.Create, requireAuth)
	api.GET("/orders/user/:userId", orderHandler.ListByUser, listOrdersMW...)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor resolves the client IP used by rate limiting and request logs.
// Forwarding headers are ignored unless the peer is a configured proxy.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
