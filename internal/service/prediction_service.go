package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/WarenOdhiambo1/lead-magnet/internal/cache"
	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/logger"
	"github.com/WarenOdhiambo1/lead-magnet/internal/metrics"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
	"github.com/WarenOdhiambo1/lead-magnet/internal/repository"
)

// PredictionService prices fixtures and stores the results
type PredictionService struct {
	matchRepo      repository.MatchRepository
	predictionRepo repository.PredictionRepository
	cache          *cache.PredictionCache
	engine         config.EngineConfig
	logger         *logrus.Logger
	engineLog      *logger.EngineLogger
}

// NewPredictionService creates a new prediction service. predCache may be nil.
func NewPredictionService(
	matchRepo repository.MatchRepository,
	predictionRepo repository.PredictionRepository,
	predCache *cache.PredictionCache,
	engine config.EngineConfig,
	log *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		cache:          predCache,
		engine:         engine,
		logger:         log,
		engineLog:      logger.NewEngineLogger(log),
	}
}

// GenerationReport summarises one prediction run
type GenerationReport struct {
	RunID     uuid.UUID     `json:"run_id"`
	Processed int           `json:"processed"`
	Generated int           `json:"generated"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// FixturePrediction is an on-demand prediction for a stored fixture
type FixturePrediction struct {
	Fixture    *models.Fixture       `json:"fixture"`
	LambdaHome float64               `json:"lambda_home"`
	LambdaAway float64               `json:"lambda_away"`
	Prediction quant.MatchPrediction `json:"prediction"`
	Cached     bool                  `json:"cached"`
}

// GenerateUpcoming predicts every fixture in the configured status that has
// no stored prediction yet. A fixture that fails is logged and counted; the
// run carries on with the next one.
func (s *PredictionService) GenerateUpcoming(ctx context.Context) (*GenerationReport, error) {
	report := &GenerationReport{RunID: uuid.New(), StartedAt: time.Now().UTC()}
	log := s.logger.WithFields(logrus.Fields{"job": JobGeneratePredictions, "run_id": report.RunID})

	fixtures, err := s.matchRepo.GetFixturesWithoutPrediction(ctx, s.engine.MatchStatus, s.engine.BatchSize)
	if err != nil {
		metrics.RecordRun(JobGeneratePredictions, false, time.Since(report.StartedAt).Seconds())
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}
	log.WithField("fixtures", len(fixtures)).Info("Generating predictions")

	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}

		report.Processed++
		if err := s.generate(ctx, f); err != nil {
			report.Failed++
			metrics.RecordPredictionError()
			s.engineLog.LogPredictionError(f.ID, f.Label(), err)
			continue
		}
		report.Generated++
	}

	report.Duration = time.Since(report.StartedAt)
	metrics.RecordRun(JobGeneratePredictions, true, report.Duration.Seconds())
	s.engineLog.LogRunSummary(JobGeneratePredictions, report.RunID.String(),
		report.Processed, report.Generated, report.Failed, float64(report.Duration.Microseconds())/1000)

	return report, nil
}

func (s *PredictionService) generate(ctx context.Context, f *models.Fixture) error {
	start := time.Now()
	lambdaHome, lambdaAway, err := s.Rates(ctx, f)
	if err != nil {
		return err
	}

	pred, _, err := s.PredictRates(lambdaHome, lambdaAway)
	if err != nil {
		return err
	}

	row := models.NewPrediction(f.ID, pred, s.engine.ModelVersion)
	if err := validate.Struct(row); err != nil {
		return fmt.Errorf("invalid prediction: %w", err)
	}
	if err := s.predictionRepo.Upsert(ctx, row); err != nil {
		return err
	}

	metrics.RecordPrediction(time.Since(start).Seconds())
	s.engineLog.LogPrediction(f.ID, f.Label(), lambdaHome, lambdaAway, pred.ProbHome, pred.ProbDraw, pred.ProbAway)
	return nil
}

// PredictFixture prices a stored fixture without persisting the result
func (s *PredictionService) PredictFixture(ctx context.Context, matchID int64) (*FixturePrediction, error) {
	f, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	lambdaHome, lambdaAway, err := s.Rates(ctx, f)
	if err != nil {
		return nil, err
	}
	pred, cached, err := s.PredictRates(lambdaHome, lambdaAway)
	if err != nil {
		return nil, err
	}

	return &FixturePrediction{
		Fixture:    f,
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
		Prediction: pred,
		Cached:     cached,
	}, nil
}

// Rates returns the expected goals of a fixture from its team ratings. With
// adjustments enabled the ratings are scaled by form, home record, head to
// head and injuries read from the match history.
func (s *PredictionService) Rates(ctx context.Context, f *models.Fixture) (lambdaHome, lambdaAway float64, err error) {
	params := s.engine.RateParams()
	if !s.engine.Adjustments {
		lambdaHome, lambdaAway = quant.FixtureRates(f.Home.Strength(), f.Away.Strength(), params)
		return lambdaHome, lambdaAway, nil
	}

	fc, err := s.matchRepo.GetFixtureContext(ctx, f, s.engine.FormWindow)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load fixture context: %w", err)
	}
	factors := fc.Factors(params.HomeAdvantage)
	s.logger.WithFields(logrus.Fields{
		"match_id":  f.ID,
		"home_form": factors.HomeForm,
		"away_form": factors.AwayForm,
		"venue":     factors.Venue,
		"h2h_home":  factors.H2HHome,
		"h2h_away":  factors.H2HAway,
	}).Debug("Applying fixture adjustments")

	lambdaHome, lambdaAway = quant.AdjustedFixtureRates(f.Home.Strength(), f.Away.Strength(), factors, params)
	return lambdaHome, lambdaAway, nil
}

// PredictRates predicts a pair of rates with the configured matrix parameters,
// consulting the cache when one is configured
func (s *PredictionService) PredictRates(lambdaHome, lambdaAway float64) (quant.MatchPrediction, bool, error) {
	predictor := s.engine.Predictor()
	compute := func() (quant.MatchPrediction, error) {
		return predictor.Predict(lambdaHome, lambdaAway)
	}

	if s.cache == nil {
		pred, err := compute()
		return pred, false, err
	}

	key := cache.Key{LambdaHome: lambdaHome, LambdaAway: lambdaAway, MaxGoals: predictor.MaxGoals, Rho: predictor.Rho}
	return s.cache.GetOrCompute(key, compute)
}
