package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ArnavTheExploit/EventSphere/internal/api/handler"
	"github.com/ArnavTheExploit/EventSphere/internal/api/middleware"
	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// Deps carries everything the router wires into handlers. Constructed once
// in main and passed down; no package-level state.
type Deps struct {
	Sessions   ports.SessionService
	Catalog    ports.Catalog
	Feed       ports.RegistrationFeed
	Dispatcher handler.RegistrationDispatcher
	Blobs      ports.BlobStore
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eventsphere"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	eventHandler := handler.NewEventHandler(deps.Catalog, deps.Blobs)
	regHandler := handler.NewRegistrationHandler(deps.Dispatcher, deps.Feed)
	mediaHandler := handler.NewMediaHandler(deps.Blobs)

	identify := middleware.Identify(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.GET("/auth/federated", authHandler.FederatedStart)
	e.GET("/auth/federated/callback", authHandler.FederatedCallback)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/signout", authHandler.SignOut)
	e.POST("/auth/role", authHandler.AssignRole, identify, middleware.Gate(""))

	// --- Public catalog ---
	e.GET("/v1/events", eventHandler.List)
	e.GET("/v1/events/:id", eventHandler.Get)
	e.GET("/v1/categories", eventHandler.Categories)
	e.GET("/media/*", mediaHandler.Serve)

	// --- Participant routes ---
	participant := e.Group("/v1", identify, middleware.Gate(domain.RoleParticipant))
	participant.POST("/registrations", regHandler.Submit)

	// --- Organizer routes ---
	organizer := e.Group("/v1/organizer", identify, middleware.Gate(domain.RoleOrganizer))
	organizer.GET("/events", eventHandler.Mine)
	organizer.GET("/events/others", eventHandler.Others)
	organizer.POST("/events", eventHandler.Create)
	organizer.PUT("/events/:id", eventHandler.Update)
	organizer.DELETE("/events/:id", eventHandler.Delete)
	organizer.POST("/events/sync", eventHandler.Sync)
	organizer.POST("/events/:id/poster", eventHandler.UploadPoster)
	organizer.GET("/registrations", regHandler.List)
	organizer.GET("/registrations/export", regHandler.Export)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
