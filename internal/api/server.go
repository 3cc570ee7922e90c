package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/siderealworks/astrocarto/internal/logging"
	"github.com/siderealworks/astrocarto/internal/observability"
)

// Server wraps the HTTP server and its router.
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer builds the router with middleware and routes and returns a
// server listening on addr.
func NewServer(addr string, h *Handler, log logging.Logger, collector *observability.APICollector) *Server {
	router := NewRouter(h, log, collector)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// NewRouter assembles the chi router. Split out so tests can exercise the
// full middleware stack without binding a socket.
func NewRouter(h *Handler, log logging.Logger, collector *observability.APICollector) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(requestLogging(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	if collector != nil {
		router.Use(collector.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	if collector != nil {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/positions", h.positions)
		r.Get("/lines", h.lines)
		r.Get("/locations", h.listLocations)

		r.Route("/charts", func(r chi.Router) {
			r.Post("/", h.createChart)
			r.Get("/", h.listCharts)

			r.Route("/{chartID}", func(r chi.Router) {
				r.Get("/", h.getChart)
				r.Get("/lines", h.chartLines)
				r.Get("/activations", h.chartActivations)
				r.Get("/windows", h.chartWindows)
				r.Get("/cities/{name}", h.cityActivation)
				r.Get("/synthesis", h.synthesis)
			})
		})
	})

	return router
}

// requestLogging attaches a request-scoped logger with a request_id and
// logs one line per request.
func requestLogging(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, reqLog := logging.WithRequestLogger(r.Context(), log)
			ctx = logging.ContextWithLogger(ctx, reqLog)

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.Info(ctx, "request handled",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.Status()),
				logging.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
