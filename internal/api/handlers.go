package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// PredictResponse is returned by GET /api/predict
type PredictResponse struct {
	quant.MatchPrediction
	MaxGoals int     `json:"max_goals"`
	Rho      float64 `json:"rho"`
	Cached   bool    `json:"cached"`
}

// ExpectedGoalsResponse is returned by GET /api/expected-goals
type ExpectedGoalsResponse struct {
	ExpectedGoalsQuery
	ExpectedGoals float64 `json:"expected_goals"`
}

// ArbitrageResponse is returned by POST /api/arbitrage
type ArbitrageResponse struct {
	quant.ArbitrageAssessment
	Overround         float64   `json:"overround"`
	FairProbabilities []float64 `json:"fair_probabilities"`
}

// MatchPredictionResponse is returned by GET /api/matches/{id}/prediction.
// Source is "stored" for a persisted prediction and "model" when computed on demand.
type MatchPredictionResponse struct {
	MatchID      int64                 `json:"match_id"`
	HomeTeam     string                `json:"home_team,omitempty"`
	AwayTeam     string                `json:"away_team,omitempty"`
	Source       string                `json:"source"`
	ModelVersion string                `json:"model_version"`
	Prediction   quant.MatchPrediction `json:"prediction"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.cfg.ServiceName})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if s.cfg.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.cfg.DB.Ping(ctx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := ReadyResponse{
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	if allHealthy {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var q PredictQuery
	var err error
	if q.HomeXG, err = queryFloat(r, "home_xg", nil); err != nil {
		s.writeError(w, err)
		return
	}
	if q.AwayXG, err = queryFloat(r, "away_xg", nil); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validate.Struct(q); err != nil {
		s.writeError(w, err)
		return
	}

	pred, cached, err := s.cfg.Predictor.PredictRates(q.HomeXG, q.AwayXG)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PredictResponse{
		MatchPrediction: pred,
		MaxGoals:        s.cfg.Engine.MaxGoals,
		Rho:             s.cfg.Engine.Rho,
		Cached:          cached,
	})
}

func (s *Server) handleExpectedGoals(w http.ResponseWriter, r *http.Request) {
	var q ExpectedGoalsQuery
	var err error
	if q.Attack, err = queryFloat(r, "attack", nil); err != nil {
		s.writeError(w, err)
		return
	}
	if q.Defense, err = queryFloat(r, "defense", nil); err != nil {
		s.writeError(w, err)
		return
	}
	if q.LeagueAverage, err = queryFloat(r, "league_average", ptrTo(s.cfg.Engine.LeagueAverage)); err != nil {
		s.writeError(w, err)
		return
	}
	if q.VenueAdvantage, err = queryFloat(r, "venue_advantage", ptrTo(quant.DefaultVenueAdvantage)); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validate.Struct(q); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ExpectedGoalsResponse{
		ExpectedGoalsQuery: q,
		ExpectedGoals:      quant.ExpectedGoals(q.Attack, q.Defense, q.LeagueAverage, q.VenueAdvantage),
	})
}

func (s *Server) handleValueBet(w http.ResponseWriter, r *http.Request) {
	var req ValueBetRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	margin := s.cfg.Engine.MinValueMargin
	if req.MinMargin != nil {
		margin = *req.MinMargin
	}

	result, err := quant.ValueBet(*req.TrueProbability, req.Odds, margin)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleArbitrage(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	arb, err := quant.Arbitrage(req.Odds...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	overround, err := quant.Overround(req.Odds...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fair, err := quant.RemoveMargin(req.Odds...)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ArbitrageResponse{ArbitrageAssessment: arb, Overround: overround, FairProbabilities: fair})
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	team, err := s.cfg.Teams.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleTeamByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.writeError(w, badRequestf("name is required"))
		return
	}
	team, err := s.cfg.Teams.GetByName(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fixtures, err := s.cfg.Matches.GetRecent(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(fixtures))
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fixtures, err := s.cfg.Matches.GetUpcoming(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(fixtures))
}

func (s *Server) handleMatchPrediction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	stored, err := s.cfg.Predictions.GetByMatchID(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, MatchPredictionResponse{
			MatchID:      id,
			Source:       "stored",
			ModelVersion: stored.ModelVersion,
			Prediction:   stored.Outcome(),
		})
		return
	case !errors.Is(err, models.ErrNotFound):
		s.writeError(w, err)
		return
	}

	fp, err := s.cfg.Predictor.PredictFixture(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchPredictionResponse{
		MatchID:      id,
		HomeTeam:     fp.Fixture.Home.Name,
		AwayTeam:     fp.Fixture.Away.Name,
		Source:       "model",
		ModelVersion: s.cfg.Engine.ModelVersion,
		Prediction:   fp.Prediction,
	})
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opps, err := s.cfg.Opportunities.ListOpen(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(opps))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.cfg.Stats.GetStats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
