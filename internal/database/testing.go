package database

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestDSNEnv names the variable holding the integration test database DSN
const TestDSNEnv = "QUANT_ENGINE_TEST_DSN"

// TestSchema creates the tables the repositories use
const TestSchema = `
CREATE TABLE IF NOT EXISTS teams (
	team_id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	attack_strength NUMERIC,
	defense_strength NUMERIC,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS matches (
	match_id BIGSERIAL PRIMARY KEY,
	home_team_id BIGINT NOT NULL REFERENCES teams(team_id),
	away_team_id BIGINT NOT NULL REFERENCES teams(team_id),
	kickoff_time TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	home_score INT,
	away_score INT
);
CREATE TABLE IF NOT EXISTS predictions (
	pred_id BIGSERIAL PRIMARY KEY,
	match_id BIGINT NOT NULL UNIQUE REFERENCES matches(match_id),
	prob_home NUMERIC NOT NULL,
	prob_draw NUMERIC NOT NULL,
	prob_away NUMERIC NOT NULL,
	xg_home NUMERIC NOT NULL,
	xg_away NUMERIC NOT NULL,
	prob_0_0 NUMERIC NOT NULL,
	prob_over_2_5 NUMERIC NOT NULL,
	prob_btts NUMERIC NOT NULL,
	model_version TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS bookmakers (
	bookie_id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS market_odds (
	match_id BIGINT NOT NULL REFERENCES matches(match_id),
	bookie_id BIGINT NOT NULL REFERENCES bookmakers(bookie_id),
	market_type TEXT NOT NULL,
	selection TEXT NOT NULL,
	odds NUMERIC NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (match_id, bookie_id, market_type, selection)
);
CREATE TABLE IF NOT EXISTS opportunities (
	opportunity_id UUID PRIMARY KEY,
	match_id BIGINT NOT NULL REFERENCES matches(match_id),
	opportunity_type TEXT NOT NULL,
	selection TEXT NOT NULL,
	bookmaker TEXT,
	model_prob NUMERIC NOT NULL,
	best_odds NUMERIC NOT NULL,
	fair_odds NUMERIC NOT NULL,
	edge_percent NUMERIC NOT NULL,
	expected_value NUMERIC NOT NULL,
	profit_margin_percent NUMERIC NOT NULL,
	status TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL,
	UNIQUE (match_id, opportunity_type, selection)
);
CREATE TABLE IF NOT EXISTS players (
	player_id BIGSERIAL PRIMARY KEY,
	team_id BIGINT NOT NULL REFERENCES teams(team_id),
	name TEXT NOT NULL,
	position TEXT,
	is_injured BOOLEAN NOT NULL DEFAULT FALSE
);
`

// SetupTestDB connects to the integration database named by TestDSNEnv,
// applies TestSchema and truncates all tables. The test is skipped when the
// variable is unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping database test", TestDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	if _, err := db.pool.Exec(ctx, TestSchema); err != nil {
		db.Close()
		t.Fatalf("failed to apply test schema: %v", err)
	}
	if _, err := db.pool.Exec(ctx,
		`TRUNCATE players, opportunities, market_odds, bookmakers, predictions, matches, teams RESTART IDENTITY CASCADE`,
	); err != nil {
		db.Close()
		t.Fatalf("failed to truncate test tables: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
