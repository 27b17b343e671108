package repository

import (
	"context"
	"fmt"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// GetByMatchID retrieves every bookmaker price for a match market
func (o *PostgresOddsRepository) GetByMatchID(ctx context.Context, matchID int64, marketType string) ([]*models.MarketOdds, error) {
	query := `
		SELECT mo.match_id, mo.bookie_id, b.name, mo.market_type, mo.selection, mo.odds, mo.updated_at
		FROM market_odds mo
		JOIN bookmakers b ON b.bookie_id = mo.bookie_id
		WHERE mo.match_id = $1 AND mo.market_type = $2
		ORDER BY mo.selection, mo.odds DESC
	`

	rows, err := o.db.Conn(ctx).Query(ctx, query, matchID, marketType)
	if err != nil {
		return nil, mapError(err, "query odds by match")
	}
	defer rows.Close()

	var odds []*models.MarketOdds
	for rows.Next() {
		mo := &models.MarketOdds{}
		if err := rows.Scan(&mo.MatchID, &mo.BookmakerID, &mo.Bookmaker, &mo.MarketType, &mo.Selection, &mo.Odds, &mo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan odds: %w", err)
		}
		odds = append(odds, mo)
	}
	return odds, rows.Err()
}

// GetBestPrices retrieves the highest price per selection, the bookmaker
// offering it and the number of bookmakers pricing the selection
func (o *PostgresOddsRepository) GetBestPrices(ctx context.Context, matchID int64, marketType string) ([]*models.BestPrice, error) {
	query := `
		SELECT DISTINCT ON (mo.selection)
		       mo.selection, mo.odds, b.name,
		       COUNT(*) OVER (PARTITION BY mo.selection)
		FROM market_odds mo
		JOIN bookmakers b ON b.bookie_id = mo.bookie_id
		WHERE mo.match_id = $1 AND mo.market_type = $2
		ORDER BY mo.selection, mo.odds DESC, b.name ASC
	`

	rows, err := o.db.Conn(ctx).Query(ctx, query, matchID, marketType)
	if err != nil {
		return nil, mapError(err, "query best prices")
	}
	defer rows.Close()

	var prices []*models.BestPrice
	for rows.Next() {
		bp := &models.BestPrice{}
		if err := rows.Scan(&bp.Selection, &bp.Odds, &bp.Bookmaker, &bp.NumBookmakers); err != nil {
			return nil, fmt.Errorf("failed to scan best price: %w", err)
		}
		prices = append(prices, bp)
	}
	return prices, rows.Err()
}
