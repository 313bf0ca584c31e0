package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"cryptocall/internal/catalog"
	"cryptocall/internal/config"
	"cryptocall/internal/hmacauth"
	"cryptocall/internal/shell"
	"cryptocall/internal/wallet"
)

// Server exposes the call widget's view state and actions as a JSON API.
type Server struct {
	cfg        *config.AppConfig
	state      *shell.State
	topics     catalog.Source
	hmac       *hmacauth.Verifier
	httpServer *http.Server
	metrics    *metricsRegistry
	logger     *zap.SugaredLogger

	rpcHealthFn     func(context.Context) error
	catalogHealthFn func(context.Context) error
}

// NewServer wires routes. rpc may be nil when no chain node is configured.
func NewServer(cfg *config.AppConfig, state *shell.State, topics catalog.Source, rpc wallet.HealthChecker, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Server{
		cfg:    cfg,
		state:  state,
		topics: topics,
		hmac: &hmacauth.Verifier{
			Secret:  cfg.Service.APISecret,
			MaxSkew: cfg.Service.HMACClockSkew,
			Logger:  logger,
		},
		metrics: newMetricsRegistry(),
		logger:  logger,
	}

	if rpc != nil {
		s.rpcHealthFn = rpc.Ping
	}
	if checker, ok := topics.(interface{ Ping(context.Context) error }); ok {
		s.catalogHealthFn = checker.Ping
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Service.HTTPAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Service.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", hmacauth.HeaderSignature, hmacauth.HeaderTimestamp},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Handle("/metrics", s.metrics.handler())

		r.Group(func(r chi.Router) {
			r.Use(s.hmac.Middleware)

			r.Get("/topics", s.handleTopics)

			r.Get("/state", s.handleState)
			r.Put("/state/tab", s.handleSetTab)
			r.Put("/state/phone", s.handleSetPhone)

			r.Get("/connectors", s.handleConnectors)
			r.Post("/wallet/connect", s.handleConnect)
			r.Post("/wallet/disconnect", s.handleDisconnect)
			r.Post("/wallet/balance", s.handleBalance)

			r.Post("/calls/learn/{index}", s.handleLearnCall)
			r.Post("/calls/trade", s.handleTradeCall)
		})
	})
	return r
}

// Handler returns the root handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Infow("API listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			s.logger.Debugw("HTTP request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
