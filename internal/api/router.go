package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/activity-platform/moderation-api/docs"
	"github.com/activity-platform/moderation-api/internal/api/handler"
	"github.com/activity-platform/moderation-api/internal/api/middleware"
	"github.com/activity-platform/moderation-api/internal/core/ports"
)

const apiPrefix = "/moderation"

// Per-route admission ceilings. The numbers are deployment policy; the
// limiter itself doesn't care.
var (
	limitCreateReport = middleware.PerMinute("create_report", 10)
	limitBanActions   = middleware.PerMinute("ban_actions", 50)
	limitAdminRead    = middleware.PerMinute("admin", 100)
)

// Deps carries every externally-owned handle the router wires together.
// Resolver may be nil (claims-only authentication); DB and Redis may be nil
// when the dependency was unreachable at startup, degrading health only.
type Deps struct {
	Service     ports.ModerationService
	Resolver    ports.IdentityResolver
	RateCounter ports.RateCounter
	DB          *mongo.Database
	Redis       *redis.Client

	ServiceName      string
	JWTSecret        string
	RateLimitEnabled bool
	EnableDocs       bool
	Log              zerolog.Logger

	// Registerer overrides the Prometheus registry for HTTP metrics.
	// Defaults to the process-wide registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Every protected route runs the same pipeline: correlation → authentication
// → (elevated check) → admission limit → handler. Stage failures terminate
// locally; the command executor is never reached by a request that failed an
// earlier stage.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Correlation(deps.Log))
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "moderation",
		Registerer: registerer,
	}))

	auth := middleware.Auth(deps.JWTSecret, deps.Resolver)
	elevated := middleware.RequireElevated()
	limit := func(spec middleware.LimitSpec) echo.MiddlewareFunc {
		return middleware.RateLimit(deps.RateCounter, spec, deps.RateLimitEnabled)
	}

	// --- Handlers ---
	reports := handler.NewReportHandler(deps.Service)
	photos := handler.NewPhotoHandler(deps.Service)
	users := handler.NewUserHandler(deps.Service)
	content := handler.NewContentHandler(deps.Service)
	statistics := handler.NewStatisticsHandler(deps.Service)
	health := handler.NewHealthHandler(deps.ServiceName, deps.DB, deps.Redis)

	// --- Unauthenticated surface ---
	e.GET("/health", health.Check)
	e.GET("/metrics", echoprometheus.NewHandler())
	if deps.EnableDocs {
		e.GET("/docs/*", echoswagger.WrapHandler)
	}

	// --- Moderation routes ---
	g := e.Group(apiPrefix, auth)

	// Report creation is open to any verified actor; everything else needs
	// the elevated capability.
	g.POST("/reports", reports.Create, limit(limitCreateReport))
	g.GET("/reports", reports.List, elevated, limit(limitAdminRead))
	g.GET("/reports/:report_id", reports.Get, elevated, limit(limitAdminRead))
	g.PATCH("/reports/:report_id/status", reports.UpdateStatus, elevated, limit(limitAdminRead))

	g.GET("/photos/pending", photos.ListPending, elevated, limit(limitAdminRead))
	g.POST("/photos/moderate", photos.Moderate, elevated, limit(limitAdminRead))

	g.POST("/users/:user_id/ban", users.Ban, elevated, limit(limitBanActions))
	g.POST("/users/:user_id/unban", users.Unban, elevated, limit(limitBanActions))
	g.GET("/users/:user_id/history", users.History, elevated, limit(limitAdminRead))

	g.POST("/content/remove", content.Remove, elevated, limit(limitAdminRead))
	g.GET("/statistics", statistics.Get, elevated, limit(limitAdminRead))

	return e
}
