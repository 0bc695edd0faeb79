package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-grid-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	// Logger receives the access log. Nil disables request logging.
	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig, gridHandler AttendanceGridHandler, appMetrics *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}
	r.Use(appMetrics.Middleware)

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	r.Handle("/metrics", appMetrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/companies/{companyID}/attendance-grid", gridHandler.GetGrid)

		r.Route("/attendance-grid", func(r chi.Router) {
			r.With(chiMiddleware.AllowContentType("application/json")).Post("/compute", gridHandler.Compute)
			r.Get("/legend", gridHandler.Legend)
		})
	})
	return r
}

// NewAccessLogger builds the ECS-formatted JSON logger used for request logs.
func NewAccessLogger(handlerOpts *slog.HandlerOptions, w io.Writer, app, version, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	opts := slog.HandlerOptions{ReplaceAttr: logFormat.ReplaceAttr}
	if handlerOpts != nil {
		opts.Level = handlerOpts.Level
	}
	return slog.New(slog.NewJSONHandler(w, &opts)).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
