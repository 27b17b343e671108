package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

var scanTime = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func newTestScanner(predRepo *MockPredictionRepository, oddsRepo *MockOddsRepository, oppRepo *MockOpportunityRepository) *OpportunityScanner {
	s := NewOpportunityScanner(nil, predRepo, oddsRepo, oppRepo, testEngineConfig(), testLogger())
	s.now = func() time.Time { return scanTime }
	return s
}

func testPrediction(matchID int64) *models.PredictionWithFixture {
	return &models.PredictionWithFixture{
		Prediction: models.Prediction{
			MatchID: matchID, ProbHome: 0.5, ProbDraw: 0.25, ProbAway: 0.25,
			ModelVersion: "dixon_coles_v1",
		},
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
	}
}

func arbitragePrices() []*models.BestPrice {
	return []*models.BestPrice{
		{Selection: "Arsenal", Odds: 2.3, Bookmaker: "Bet365", NumBookmakers: 4},
		{Selection: "Draw", Odds: 3.5, Bookmaker: "Pinnacle", NumBookmakers: 4},
		{Selection: "Chelsea", Odds: 3.8, Bookmaker: "Unibet", NumBookmakers: 3},
	}
}

func TestEvaluateValueBetAndArbitrage(t *testing.T) {
	s := newTestScanner(nil, nil, nil)

	opps := s.Evaluate(testPrediction(7), arbitragePrices())
	require.Len(t, opps, 2)

	value := opps[0]
	assert.Equal(t, models.OpportunityValueBet, value.Type)
	assert.Equal(t, "HOME", value.Selection)
	assert.Equal(t, "Bet365", value.Bookmaker)
	assert.InDelta(t, 15.0, value.EdgePercent, 1e-9)
	assert.InDelta(t, 0.15, value.ExpectedValue, 1e-9)
	assert.InDelta(t, 2.0, value.FairOdds, 1e-12)
	assert.Equal(t, models.OpportunityStatusOpen, value.Status)
	assert.Equal(t, scanTime, value.Timestamp)

	arb := opps[1]
	assert.Equal(t, models.OpportunityArbitrage, arb.Type)
	assert.Equal(t, models.ArbitrageSelection, arb.Selection)
	assert.Equal(t, "Bet365/Pinnacle/Unibet", arb.Bookmaker)
	assert.InDelta(t, 1.6616816, arb.ProfitMarginPercent, 1e-6)
	assert.InDelta(t, 1.0166168, arb.BestOdds, 1e-6)
	assert.NoError(t, validate.Struct(arb))
}

func TestEvaluateNoArbitrageWithMargin(t *testing.T) {
	s := newTestScanner(nil, nil, nil)
	prices := arbitragePrices()
	prices[1].Odds = 3.2

	opps := s.Evaluate(testPrediction(7), prices)
	require.Len(t, opps, 1)
	assert.Equal(t, models.OpportunityValueBet, opps[0].Type)
}

func TestEvaluateSkipsUnknownAndInvalidPrices(t *testing.T) {
	s := newTestScanner(nil, nil, nil)
	prices := []*models.BestPrice{
		{Selection: "Over 2.5", Odds: 5.0},
		{Selection: "Arsenal", Odds: 1.0},
		{Selection: "Chelsea", Odds: 4.5, Bookmaker: "Unibet"},
	}

	opps := s.Evaluate(testPrediction(7), prices)
	require.Len(t, opps, 1)
	assert.Equal(t, "AWAY", opps[0].Selection)
	assert.InDelta(t, 12.5, opps[0].EdgePercent, 1e-9)
}

func TestEvaluateEdgeBelowMarginIsNotValue(t *testing.T) {
	s := newTestScanner(nil, nil, nil)
	// 0.5 * 2.08 - 1 = 0.04, under the configured margin
	opps := s.Evaluate(testPrediction(7), []*models.BestPrice{{Selection: "Arsenal", Odds: 2.08}})
	assert.Empty(t, opps)
}

func TestScan(t *testing.T) {
	predRepo := new(MockPredictionRepository)
	oddsRepo := new(MockOddsRepository)
	oppRepo := new(MockOpportunityRepository)
	ctx := context.Background()

	predRepo.On("GetWithOdds", ctx, 50).Return([]*models.PredictionWithFixture{testPrediction(1), testPrediction(2)}, nil)
	oddsRepo.On("GetBestPrices", ctx, int64(1), models.MarketTypeH2H).Return(arbitragePrices(), nil)
	oddsRepo.On("GetBestPrices", ctx, int64(2), models.MarketTypeH2H).Return(nil, errors.New("timeout"))

	oppRepo.On("Insert", ctx, mock.MatchedBy(func(o *models.Opportunity) bool { return o.Type == models.OpportunityValueBet })).
		Return(true, nil)
	oppRepo.On("Insert", ctx, mock.MatchedBy(func(o *models.Opportunity) bool { return o.Type == models.OpportunityArbitrage })).
		Return(false, nil)

	report, err := newTestScanner(predRepo, oddsRepo, oppRepo).Scan(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.MatchesScanned)
	assert.Equal(t, 1, report.ValueBets)
	assert.Equal(t, 1, report.Arbitrages)
	assert.Equal(t, 1, report.Stored)
	assert.Equal(t, 1, report.Failed)

	oppRepo.AssertNumberOfCalls(t, "Insert", 2)
	predRepo.AssertExpectations(t)
	oddsRepo.AssertExpectations(t)
}

func TestScanInsertErrorIsCounted(t *testing.T) {
	predRepo := new(MockPredictionRepository)
	oddsRepo := new(MockOddsRepository)
	oppRepo := new(MockOpportunityRepository)
	ctx := context.Background()

	predRepo.On("GetWithOdds", ctx, 50).Return([]*models.PredictionWithFixture{testPrediction(1)}, nil)
	oddsRepo.On("GetBestPrices", ctx, int64(1), models.MarketTypeH2H).
		Return([]*models.BestPrice{{Selection: "Arsenal", Odds: 2.5, Bookmaker: "Bet365"}}, nil)
	oppRepo.On("Insert", ctx, mock.AnythingOfType("*models.Opportunity")).Return(false, errors.New("constraint"))

	report, err := newTestScanner(predRepo, oddsRepo, oppRepo).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ValueBets)
	assert.Zero(t, report.Stored)
	assert.Equal(t, 1, report.Failed)
}

func TestScanLoadError(t *testing.T) {
	predRepo := new(MockPredictionRepository)
	ctx := context.Background()
	predRepo.On("GetWithOdds", ctx, 50).Return(nil, errors.New("db down"))

	_, err := newTestScanner(predRepo, new(MockOddsRepository), new(MockOpportunityRepository)).Scan(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load predictions")
}

func TestScanStoresMatchInOneTransaction(t *testing.T) {
	predRepo := new(MockPredictionRepository)
	oddsRepo := new(MockOddsRepository)
	oppRepo := new(MockOpportunityRepository)
	tx := new(MockTransactor)
	ctx := context.Background()

	predRepo.On("GetWithOdds", ctx, 50).Return([]*models.PredictionWithFixture{testPrediction(1)}, nil)
	oddsRepo.On("GetBestPrices", ctx, int64(1), models.MarketTypeH2H).Return(arbitragePrices(), nil)
	tx.On("WithTransaction", ctx).Return(nil).Once()
	oppRepo.On("Insert", ctx, mock.MatchedBy(func(o *models.Opportunity) bool { return o.Type == models.OpportunityValueBet })).
		Return(true, nil)
	oppRepo.On("Insert", ctx, mock.MatchedBy(func(o *models.Opportunity) bool { return o.Type == models.OpportunityArbitrage })).
		Return(false, errors.New("serialization failure"))

	s := NewOpportunityScanner(tx, predRepo, oddsRepo, oppRepo, testEngineConfig(), testLogger())
	report, err := s.Scan(ctx)
	require.NoError(t, err)

	// the failed arbitrage insert discards the value bet stored before it
	assert.Equal(t, 1, report.ValueBets)
	assert.Equal(t, 1, report.Arbitrages)
	assert.Zero(t, report.Stored)
	assert.Equal(t, 1, report.Failed)
	tx.AssertNumberOfCalls(t, "WithTransaction", 1)
	oppRepo.AssertNumberOfCalls(t, "Insert", 2)
}

func TestScanSkipsTransactionWithoutFindings(t *testing.T) {
	predRepo := new(MockPredictionRepository)
	oddsRepo := new(MockOddsRepository)
	tx := new(MockTransactor)
	ctx := context.Background()

	predRepo.On("GetWithOdds", ctx, 50).Return([]*models.PredictionWithFixture{testPrediction(1)}, nil)
	oddsRepo.On("GetBestPrices", ctx, int64(1), models.MarketTypeH2H).
		Return([]*models.BestPrice{{Selection: "Arsenal", Odds: 1.5}}, nil)

	s := NewOpportunityScanner(tx, predRepo, oddsRepo, new(MockOpportunityRepository), testEngineConfig(), testLogger())
	report, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Stored)
	tx.AssertNotCalled(t, "WithTransaction", mock.Anything)
}
