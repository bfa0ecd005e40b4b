package rest

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterConfig collects what the HTTP surface serves.
type RouterConfig struct {
	Assessments    *AssessmentHandler
	Health         *HealthHandler
	Metrics        http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter assembles the HTTP routes behind the shared middleware. Every
// request gets a server span; /metrics and the probes are not traced.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	cfg.Assessments.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := Chain(mux,
		RecoverMiddleware(cfg.Logger),
		LoggingMiddleware(cfg.Logger),
		CORSMiddleware(origins),
		BodyLimitMiddleware,
	)
	return otelhttp.NewHandler(h, ServiceName+".http",
		otelhttp.WithFilter(func(r *http.Request) bool {
			switch r.URL.Path {
			case "/metrics", "/healthz", "/readyz":
				return false
			}
			return true
		}),
	)
}
