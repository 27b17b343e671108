package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*models.Fixture, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fixture), args.Error(1)
}

func (m *MockMatchRepository) GetFixturesWithoutPrediction(ctx context.Context, status string, limit int) ([]*models.Fixture, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Fixture), args.Error(1)
}

func (m *MockMatchRepository) GetUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Fixture), args.Error(1)
}

func (m *MockMatchRepository) GetRecent(ctx context.Context, limit int) ([]*models.Fixture, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Fixture), args.Error(1)
}

func (m *MockMatchRepository) GetFixtureContext(ctx context.Context, f *models.Fixture, formWindow int) (*models.FixtureContext, error) {
	args := m.Called(ctx, f, formWindow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FixtureContext), args.Error(1)
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Upsert(ctx context.Context, prediction *models.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByMatchID(ctx context.Context, matchID int64) (*models.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetWithOdds(ctx context.Context, limit int) ([]*models.PredictionWithFixture, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PredictionWithFixture), args.Error(1)
}

// MockOddsRepository is a mock implementation of OddsRepository
type MockOddsRepository struct {
	mock.Mock
}

func (m *MockOddsRepository) GetByMatchID(ctx context.Context, matchID int64, marketType string) ([]*models.MarketOdds, error) {
	args := m.Called(ctx, matchID, marketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MarketOdds), args.Error(1)
}

func (m *MockOddsRepository) GetBestPrices(ctx context.Context, matchID int64, marketType string) ([]*models.BestPrice, error) {
	args := m.Called(ctx, matchID, marketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BestPrice), args.Error(1)
}

// MockOpportunityRepository is a mock implementation of OpportunityRepository
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) Insert(ctx context.Context, opportunity *models.Opportunity) (bool, error) {
	args := m.Called(ctx, opportunity)
	return args.Bool(0), args.Error(1)
}

func (m *MockOpportunityRepository) ListOpen(ctx context.Context, limit int) ([]*models.OpportunityWithFixture, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OpportunityWithFixture), args.Error(1)
}

// MockTransactor runs fn inline and records each transaction
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
