package models

import "time"

// Match statuses as stored by the ingestion side
const (
	MatchStatusScheduled  = "SCHEDULED"
	MatchStatusNotStarted = "Not Started"
	MatchStatusFinished   = "FINISHED"
)

// Match represents a fixture between two teams
type Match struct {
	ID          int64     `db:"match_id" json:"match_id" validate:"required,gt=0"`
	HomeTeamID  int64     `db:"home_team_id" json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID  int64     `db:"away_team_id" json:"away_team_id" validate:"required,gt=0,nefield=HomeTeamID"`
	KickoffTime time.Time `db:"kickoff_time" json:"kickoff_time" validate:"required"`
	Status      string    `db:"status" json:"status"`
	HomeScore   *int      `db:"home_score" json:"home_score,omitempty"`
	AwayScore   *int      `db:"away_score" json:"away_score,omitempty"`
}

// IsUpcoming checks if the match has not kicked off yet
func (m *Match) IsUpcoming() bool {
	return m.Status != MatchStatusFinished && m.KickoffTime.After(time.Now())
}

// Fixture is a match joined with both teams
type Fixture struct {
	Match
	Home Team `json:"home_team"`
	Away Team `json:"away_team"`
}

// Label returns "Home vs Away"
func (f *Fixture) Label() string {
	return f.Home.Name + " vs " + f.Away.Name
}
