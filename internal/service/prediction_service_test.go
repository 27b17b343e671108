package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/WarenOdhiambo1/lead-magnet/internal/cache"
	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testEngineConfig() config.EngineConfig {
	rp := quant.DefaultRateParams()
	return config.EngineConfig{
		MaxGoals:       quant.DefaultMaxGoals,
		Rho:            quant.DefaultRho,
		LeagueAverage:  rp.LeagueAverage,
		HomeAdvantage:  rp.HomeAdvantage,
		MinStrength:    rp.MinStrength,
		MaxStrength:    rp.MaxStrength,
		MinRate:        rp.MinRate,
		MinValueMargin: quant.DefaultMinMargin,
		ModelVersion:   "dixon_coles_v1",
		MatchStatus:    models.MatchStatusNotStarted,
		BatchSize:      50,
	}
}

func ptr(v float64) *float64 { return &v }

func testFixture(id int64) *models.Fixture {
	return &models.Fixture{
		Match: models.Match{
			ID: id, HomeTeamID: 1, AwayTeamID: 2,
			KickoffTime: time.Now().Add(48 * time.Hour), Status: models.MatchStatusNotStarted,
		},
		Home: models.Team{ID: 1, Name: "Arsenal", AttackStrength: ptr(1.4), DefenseStrength: ptr(0.8)},
		Away: models.Team{ID: 2, Name: "Chelsea", AttackStrength: ptr(1.1), DefenseStrength: ptr(1.2)},
	}
}

func TestGenerateUpcoming(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	predRepo := new(MockPredictionRepository)
	ctx := context.Background()

	unrated := testFixture(11)
	unrated.Home.AttackStrength = nil
	unrated.Home.DefenseStrength = nil

	matchRepo.On("GetFixturesWithoutPrediction", ctx, models.MatchStatusNotStarted, 50).
		Return([]*models.Fixture{testFixture(10), unrated}, nil)

	var stored []*models.Prediction
	predRepo.On("Upsert", ctx, mock.AnythingOfType("*models.Prediction")).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(*models.Prediction)) }).
		Return(nil)

	svc := NewPredictionService(matchRepo, predRepo, nil, testEngineConfig(), testLogger())
	report, err := svc.GenerateUpcoming(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Generated)
	assert.Zero(t, report.Failed)
	assert.NotEqual(t, uuid.Nil, report.RunID)

	require.Len(t, stored, 2)
	assert.Equal(t, int64(10), stored[0].MatchID)
	assert.InDelta(t, 1.4*1.2*1.5*1.15, stored[0].XGHome, 1e-12)
	assert.InDelta(t, 1.1*0.8*1.5, stored[0].XGAway, 1e-12)
	assert.InDelta(t, 1.0, stored[0].ProbHome+stored[0].ProbDraw+stored[0].ProbAway, 1e-9)
	assert.Equal(t, "dixon_coles_v1", stored[0].ModelVersion)

	// missing ratings read as league average
	assert.InDelta(t, 1.2*1.5*1.15, stored[1].XGHome, 1e-12)
	assert.InDelta(t, 1.1*1.5, stored[1].XGAway, 1e-12)

	matchRepo.AssertExpectations(t)
	predRepo.AssertExpectations(t)
}

func TestGenerateUpcomingCountsFailures(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	predRepo := new(MockPredictionRepository)
	ctx := context.Background()

	matchRepo.On("GetFixturesWithoutPrediction", ctx, models.MatchStatusNotStarted, 50).
		Return([]*models.Fixture{testFixture(1), testFixture(2), testFixture(3)}, nil)
	predRepo.On("Upsert", ctx, mock.MatchedBy(func(p *models.Prediction) bool { return p.MatchID == 2 })).
		Return(errors.New("connection reset"))
	predRepo.On("Upsert", ctx, mock.AnythingOfType("*models.Prediction")).Return(nil)

	svc := NewPredictionService(matchRepo, predRepo, nil, testEngineConfig(), testLogger())
	report, err := svc.GenerateUpcoming(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Generated)
	assert.Equal(t, 1, report.Failed)
}

func TestGenerateUpcomingLoadError(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	ctx := context.Background()
	matchRepo.On("GetFixturesWithoutPrediction", ctx, models.MatchStatusNotStarted, 50).
		Return(nil, errors.New("db down"))

	svc := NewPredictionService(matchRepo, new(MockPredictionRepository), nil, testEngineConfig(), testLogger())
	_, err := svc.GenerateUpcoming(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load fixtures")
}

func TestGenerateUpcomingStopsOnCancel(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	matchRepo.On("GetFixturesWithoutPrediction", ctx, models.MatchStatusNotStarted, 50).
		Return([]*models.Fixture{testFixture(1)}, nil)

	predRepo := new(MockPredictionRepository)
	svc := NewPredictionService(matchRepo, predRepo, nil, testEngineConfig(), testLogger())
	report, err := svc.GenerateUpcoming(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Zero(t, report.Processed)
	predRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPredictFixtureUsesCache(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	ctx := context.Background()
	matchRepo.On("GetByID", ctx, int64(10)).Return(testFixture(10), nil)

	pc := cache.NewPredictionCache(time.Hour, 10)
	svc := NewPredictionService(matchRepo, new(MockPredictionRepository), pc, testEngineConfig(), testLogger())

	first, err := svc.PredictFixture(ctx, 10)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "Arsenal vs Chelsea", first.Fixture.Label())

	second, err := svc.PredictFixture(ctx, 10)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Prediction, second.Prediction)

	want, err := quant.PredictMatch(first.LambdaHome, first.LambdaAway)
	require.NoError(t, err)
	assert.Equal(t, want, first.Prediction)
}

func TestPredictFixtureNotFound(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	ctx := context.Background()
	matchRepo.On("GetByID", ctx, int64(99)).Return(nil, models.ErrNotFound)

	svc := NewPredictionService(matchRepo, new(MockPredictionRepository), nil, testEngineConfig(), testLogger())
	_, err := svc.PredictFixture(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPredictRatesRejectsInvalidRate(t *testing.T) {
	svc := NewPredictionService(new(MockMatchRepository), new(MockPredictionRepository), nil, testEngineConfig(), testLogger())

	_, _, err := svc.PredictRates(-1, 1.2)
	assert.ErrorIs(t, err, quant.ErrInvalidInput)
}

func TestGenerateUpcomingWithAdjustments(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	predRepo := new(MockPredictionRepository)
	ctx := context.Background()

	f := testFixture(10)
	fc := &models.FixtureContext{
		FormWindow:  5,
		HomeForm:    models.TeamForm{Points: 10, Played: 5},
		AwayForm:    models.TeamForm{Points: 5, Played: 5},
		HomePlayed:  10,
		HomeWon:     6,
		Meetings:    4,
		HomeWins:    3,
		AwayInjured: 3,
	}
	matchRepo.On("GetFixturesWithoutPrediction", ctx, models.MatchStatusNotStarted, 50).
		Return([]*models.Fixture{f}, nil)
	matchRepo.On("GetFixtureContext", ctx, f, 5).Return(fc, nil)

	var stored *models.Prediction
	predRepo.On("Upsert", ctx, mock.AnythingOfType("*models.Prediction")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Prediction) }).
		Return(nil)

	engine := testEngineConfig()
	engine.Adjustments = true
	engine.FormWindow = 5
	svc := NewPredictionService(matchRepo, predRepo, nil, engine, testLogger())

	report, err := svc.GenerateUpcoming(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Generated)

	// form 1.1 / 0.9, venue 1.18, head to head 1.05 / 0.95, away injuries 0.90
	require.NotNil(t, stored)
	assert.InDelta(t, 1.4*1.1*1.18*1.05*(1.2/0.9)*1.5, stored.XGHome, 1e-9)
	assert.InDelta(t, 1.1*0.9*0.95*0.90*(0.8/(1.1*1.18))*1.5, stored.XGAway, 1e-9)

	matchRepo.AssertExpectations(t)
}

func TestGenerateUpcomingCountsContextFailure(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	predRepo := new(MockPredictionRepository)
	ctx := context.Background()

	f := testFixture(10)
	matchRepo.On("GetFixturesWithoutPrediction", ctx, models.MatchStatusNotStarted, 50).
		Return([]*models.Fixture{f}, nil)
	matchRepo.On("GetFixtureContext", ctx, f, quant.FormWindow).Return(nil, errors.New("connection reset"))

	engine := testEngineConfig()
	engine.Adjustments = true
	engine.FormWindow = quant.FormWindow
	svc := NewPredictionService(matchRepo, predRepo, nil, engine, testLogger())

	report, err := svc.GenerateUpcoming(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Generated)
	predRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRatesWithoutAdjustmentsSkipsHistory(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	svc := NewPredictionService(matchRepo, new(MockPredictionRepository), nil, testEngineConfig(), testLogger())

	lh, la, err := svc.Rates(context.Background(), testFixture(10))
	require.NoError(t, err)
	assert.InDelta(t, 1.4*1.2*1.5*1.15, lh, 1e-12)
	assert.InDelta(t, 1.1*0.8*1.5, la, 1e-12)
	matchRepo.AssertNotCalled(t, "GetFixtureContext", mock.Anything, mock.Anything, mock.Anything)
}
