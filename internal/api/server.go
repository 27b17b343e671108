// Package api serves the engine and its stored results over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/logger"
	"github.com/WarenOdhiambo1/lead-magnet/internal/metrics"
	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
	"github.com/WarenOdhiambo1/lead-magnet/internal/repository"
	"github.com/WarenOdhiambo1/lead-magnet/internal/service"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// FixturePredictor prices fixtures and raw rate pairs.
type FixturePredictor interface {
	PredictFixture(ctx context.Context, matchID int64) (*service.FixturePrediction, error)
	PredictRates(lambdaHome, lambdaAway float64) (quant.MatchPrediction, bool, error)
}

// Config holds the dependencies of the API server.
type Config struct {
	ServiceName   string
	Version       string
	Commit        string
	Port          int
	MetricsPath   string
	NoMetrics     bool
	RateLimit     float64
	Burst         int
	Engine        config.EngineConfig
	Logger        *logrus.Logger
	DB            DatabasePinger
	Predictor     FixturePredictor
	Teams         repository.TeamRepository
	Matches       repository.MatchRepository
	Predictions   repository.PredictionRepository
	Opportunities repository.OpportunityRepository
	Stats         repository.StatsRepository
}

// Server is the HTTP API server.
type Server struct {
	cfg      Config
	router   *mux.Router
	server   *http.Server
	logger   *logrus.Logger
	audit    *logger.AuditLogger
	limiter  *rate.Limiter
	validate *validator.Validate
	mu       sync.RWMutex
	ready    bool
}

// NewServer creates a new API server with all routes registered.
func NewServer(cfg Config) *Server {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "quant-api"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		audit:    logger.NewAuditLogger(cfg.Logger),
		validate: newValidator(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.observe)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/live", s.handleLive).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	if !s.cfg.NoMetrics {
		r.Handle(s.cfg.MetricsPath, metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimit)
	api.HandleFunc("/predict", s.handlePredict).Methods(http.MethodGet)
	api.HandleFunc("/expected-goals", s.handleExpectedGoals).Methods(http.MethodGet)
	api.HandleFunc("/value-bet", s.handleValueBet).Methods(http.MethodPost)
	api.HandleFunc("/arbitrage", s.handleArbitrage).Methods(http.MethodPost)
	api.HandleFunc("/teams", s.handleTeamByName).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}", s.handleTeam).Methods(http.MethodGet)
	api.HandleFunc("/matches", s.handleMatches).Methods(http.MethodGet)
	api.HandleFunc("/matches/upcoming", s.handleUpcoming).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id:[0-9]+}/prediction", s.handleMatchPrediction).Methods(http.MethodGet)
	api.HandleFunc("/opportunities", s.handleOpportunities).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})
	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start binds the listening port and serves in the background until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"port":    s.cfg.Port,
		"service": s.cfg.ServiceName,
	}).Info("API server starting")

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("API server error")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the server. Calls after the first are no-ops.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.logger.Info("API server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
