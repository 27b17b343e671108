package repository

import (
	"context"

	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Fixture, error)
	GetFixturesWithoutPrediction(ctx context.Context, status string, limit int) ([]*models.Fixture, error)
	GetUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Fixture, error)
	GetFixtureContext(ctx context.Context, f *models.Fixture, formWindow int) (*models.FixtureContext, error)
}

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	Upsert(ctx context.Context, prediction *models.Prediction) error
	GetByMatchID(ctx context.Context, matchID int64) (*models.Prediction, error)
	GetWithOdds(ctx context.Context, limit int) ([]*models.PredictionWithFixture, error)
}

// OddsRepository defines the interface for bookmaker odds data access
type OddsRepository interface {
	GetByMatchID(ctx context.Context, matchID int64, marketType string) ([]*models.MarketOdds, error)
	GetBestPrices(ctx context.Context, matchID int64, marketType string) ([]*models.BestPrice, error)
}

// OpportunityRepository defines the interface for opportunity data access
type OpportunityRepository interface {
	// Insert stores the opportunity and reports whether a new row was written.
	Insert(ctx context.Context, opportunity *models.Opportunity) (bool, error)
	ListOpen(ctx context.Context, limit int) ([]*models.OpportunityWithFixture, error)
}

// StatsRepository defines the interface for data set summaries
type StatsRepository interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}
