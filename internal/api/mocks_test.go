package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

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

type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Upsert(ctx context.Context, prediction *models.Prediction) error {
	return m.Called(ctx, prediction).Error(0)
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

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}
