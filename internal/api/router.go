package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/unrolled/secure"

	_ "github.com/jobportal/jobboard-api/docs"
	"github.com/jobportal/jobboard-api/internal/api/handler"
	"github.com/jobportal/jobboard-api/internal/api/middleware"
	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the HTTP layer needs. Registerer and Gatherer
// default to the global Prometheus registry when nil.
type Deps struct {
	AuthService ports.AuthService
	JobService  ports.JobService
	Tokens      ports.TokenVerifier
	Checks      map[string]handlers.Pinger
	Logger      zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	AllowedOrigins []string
	Production     bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echo.WrapMiddleware(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !d.Production,
	}).Handler))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "jobboard",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/", banner("Job Portal Backend Running"))
	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	jobHandler := handler.NewJobHandler(d.JobService)
	auth := middleware.Auth(d.Tokens)

	api := e.Group("/api")
	api.GET("/test", banner("Hello from Job Portal API"))
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)

	api.POST("/jobs", jobHandler.CreateJob, auth, middleware.RBAC(domain.OpCreateJob))
	api.GET("/jobs", jobHandler.ListJobs, auth, middleware.RBAC(domain.OpListJobs))
	api.POST("/jobs/:id/apply", jobHandler.Apply, auth, middleware.RBAC(domain.OpApply))
	// Existence is checked before ownership, so a missing job is 404 for everyone.
	api.GET("/jobs/:id/applicants", jobHandler.ListApplicants, auth)
	api.GET("/my-applications", jobHandler.ListOwnApplications, auth, middleware.RBAC(domain.OpListOwnApplications))
	api.GET("/my-jobs", jobHandler.ListOwnJobs, auth, middleware.RBAC(domain.OpListOwnJobs))
	api.DELETE("/jobs/:id", jobHandler.DeleteJob, auth, middleware.RBAC(domain.OpDeleteJob))

	return e
}

func banner(msg string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": msg})
	}
}

// requestLogger emits one zerolog line per request.
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
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
