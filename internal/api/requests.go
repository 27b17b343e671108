package api

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
	maxBodyBytes     = 1 << 16
)

// PredictQuery are the parameters of GET /api/predict
type PredictQuery struct {
	HomeXG float64 `json:"home_xg" validate:"gte=0"`
	AwayXG float64 `json:"away_xg" validate:"gte=0"`
}

// ExpectedGoalsQuery are the parameters of GET /api/expected-goals
type ExpectedGoalsQuery struct {
	Attack         float64 `json:"attack" validate:"gt=0"`
	Defense        float64 `json:"defense" validate:"gt=0"`
	LeagueAverage  float64 `json:"league_average" validate:"gt=0"`
	VenueAdvantage float64 `json:"venue_advantage" validate:"gt=0"`
}

// ValueBetRequest is the body of POST /api/value-bet
type ValueBetRequest struct {
	TrueProbability *float64 `json:"true_probability" validate:"required,gte=0,lte=1"`
	Odds            float64  `json:"odds" validate:"required,gt=1"`
	MinMargin       *float64 `json:"min_margin,omitempty" validate:"omitempty,gte=0"`
}

// ArbitrageRequest is the body of POST /api/arbitrage
type ArbitrageRequest struct {
	Odds []float64 `json:"odds" validate:"required,min=2,max=3,dive,gt=1"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON decodes a bounded JSON body and validates it
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequestf("malformed JSON body: %v", err)
	}
	return s.validate.Struct(dst)
}

// queryFloat parses a float query parameter; def is used when it is absent
func queryFloat(r *http.Request, name string, def *float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if def == nil {
			return 0, badRequestf("missing query parameter %s", name)
		}
		return *def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequestf("query parameter %s must be a number", name)
	}
	return v, nil
}

// queryLimit parses the optional limit parameter
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxListLimit {
		return 0, badRequestf("limit must be an integer between 1 and %d", maxListLimit)
	}
	return n, nil
}

func pathID(vars map[string]string) (int64, error) {
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequestf("invalid id %q", vars["id"])
	}
	return id, nil
}

func ptrTo(v float64) *float64 { return &v }
