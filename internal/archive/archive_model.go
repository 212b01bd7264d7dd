package archive

import (
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/models"
)

// MatchRecord is the archived header of a completed match. The full
// snapshot is kept alongside so a scorecard can be rebuilt exactly.
type MatchRecord struct {
	ID           string             `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedBy    string             `gorm:"type:varchar(64);index" json:"created_by"`
	Venue        string             `gorm:"type:varchar(255)" json:"venue,omitempty"`
	TotalOvers   int                `gorm:"not null" json:"total_overs"`
	Team1ID      string             `gorm:"type:varchar(64);index;not null" json:"team1_id"`
	Team1Name    string             `gorm:"type:varchar(255)" json:"team1_name"`
	Team1Score   int                `json:"team1_score"`
	Team1Wickets int                `json:"team1_wickets"`
	Team1Overs   string             `gorm:"type:varchar(8)" json:"team1_overs"`
	Team2ID      string             `gorm:"type:varchar(64);index;not null" json:"team2_id"`
	Team2Name    string             `gorm:"type:varchar(255)" json:"team2_name"`
	Team2Score   int                `json:"team2_score"`
	Team2Wickets int                `json:"team2_wickets"`
	Team2Overs   string             `gorm:"type:varchar(8)" json:"team2_overs"`
	Target       *int               `json:"target,omitempty"`
	Status       string             `gorm:"type:varchar(20);not null" json:"status"`
	ResultText   string             `gorm:"type:varchar(255)" json:"result_text"`
	WinnerTeamID *string            `gorm:"type:varchar(64)" json:"winner_team_id,omitempty"`
	PlayerIDs    models.StringSlice `gorm:"type:jsonb" json:"player_ids"`
	Snapshot     datatypes.JSON     `gorm:"type:jsonb;not null" json:"-"`
	StartedAt    *time.Time         `json:"started_at,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// BattingStatRecord is one archived batting row.
type BattingStatRecord struct {
	models.BaseModel
	MatchID       string  `gorm:"type:varchar(64);index;not null" json:"match_id"`
	PlayerID      string  `gorm:"type:varchar(64);index;not null" json:"player_id"`
	TeamID        string  `gorm:"type:varchar(64);not null" json:"team_id"`
	InningsNumber int     `gorm:"not null" json:"innings_number"`
	Runs          int     `gorm:"default:0" json:"runs"`
	BallsFaced    int     `gorm:"default:0" json:"balls_faced"`
	Fours         int     `gorm:"default:0" json:"fours"`
	Sixes         int     `gorm:"default:0" json:"sixes"`
	StrikeRate    float64 `gorm:"type:decimal(6,2)" json:"strike_rate"`
	IsOut         bool    `gorm:"default:false" json:"is_out"`
	DismissalType *string `gorm:"type:varchar(30)" json:"dismissal_type,omitempty"`
}

// BowlingStatRecord is one archived bowling row.
type BowlingStatRecord struct {
	models.BaseModel
	MatchID        string  `gorm:"type:varchar(64);index;not null" json:"match_id"`
	PlayerID       string  `gorm:"type:varchar(64);index;not null" json:"player_id"`
	TeamID         string  `gorm:"type:varchar(64);not null" json:"team_id"`
	InningsNumber  int     `gorm:"not null" json:"innings_number"`
	OversCompleted int     `gorm:"default:0" json:"overs_completed"`
	BallsBowled    int     `gorm:"default:0" json:"balls_bowled"`
	RunsConceded   int     `gorm:"default:0" json:"runs_conceded"`
	Wickets        int     `gorm:"default:0" json:"wickets"`
	Maidens        int     `gorm:"default:0" json:"maidens"`
	EconomyRate    float64 `gorm:"type:decimal(6,2)" json:"economy_rate"`
}

// BallRow is one archived delivery. The natural key is unique, so only the
// first delivery recorded at a ball position survives.
type BallRow struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	MatchID       string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_ball_position,priority:1" json:"match_id"`
	InningsNumber int       `gorm:"not null;uniqueIndex:uk_ball_position,priority:2" json:"innings_number"`
	OverNumber    int       `gorm:"not null;uniqueIndex:uk_ball_position,priority:3" json:"over_number"`
	BallNumber    int       `gorm:"not null;uniqueIndex:uk_ball_position,priority:4" json:"ball_number"`
	TeamID        string    `gorm:"type:varchar(64)" json:"team_id"`
	BatsmanID     string    `gorm:"type:varchar(64);index" json:"batsman_id"`
	NonStrikerID  string    `gorm:"type:varchar(64)" json:"non_striker_id"`
	BowlerID      string    `gorm:"type:varchar(64);index" json:"bowler_id"`
	RunsScored    int       `json:"runs_scored"`
	Extras        int       `json:"extras"`
	BallType      string    `gorm:"type:varchar(20);not null" json:"ball_type"`
	WicketType    *string   `gorm:"type:varchar(30)" json:"wicket_type,omitempty"`
	IsBoundary    bool      `json:"is_boundary"`
	IsSix         bool      `json:"is_six"`
	Commentary    string    `gorm:"type:text" json:"commentary"`
	CreatedAt     time.Time `json:"created_at"`
}

// CareerStat is a player's career line, rebuilt from every archived row.
type CareerStat struct {
	PlayerID string `gorm:"primaryKey;type:varchar(64)" json:"player_id"`
	Matches  int    `json:"matches"`

	BattingInnings int     `json:"batting_innings"`
	NotOuts        int     `json:"not_outs"`
	Runs           int     `json:"runs"`
	BallsFaced     int     `json:"balls_faced"`
	Fours          int     `json:"fours"`
	Sixes          int     `json:"sixes"`
	HighestScore   int     `json:"highest_score"`
	HighestNotOut  bool    `json:"highest_not_out"`
	Fifties        int     `json:"fifties"`
	Hundreds       int     `json:"hundreds"`
	Ducks          int     `json:"ducks"`
	BattingAverage float64 `gorm:"type:decimal(8,2)" json:"batting_average"`
	BattingStrike  float64 `gorm:"type:decimal(8,2)" json:"batting_strike_rate"`

	BowlingInnings  int     `json:"bowling_innings"`
	BallsBowled     int     `json:"balls_bowled"`
	RunsConceded    int     `json:"runs_conceded"`
	Wickets         int     `json:"wickets"`
	Maidens         int     `json:"maidens"`
	FiveWicketHauls int     `json:"five_wicket_hauls"`
	BowlingAverage  float64 `gorm:"type:decimal(8,2)" json:"bowling_average"`
	Economy         float64 `gorm:"type:decimal(6,2)" json:"economy"`
	BowlingStrike   float64 `gorm:"type:decimal(8,2)" json:"bowling_strike_rate"`
	BestFigures     string  `gorm:"type:varchar(10)" json:"best_figures"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (MatchRecord) TableName() string { return "match_records" }
func (BallRow) TableName() string     { return "ball_rows" }
func (CareerStat) TableName() string  { return "career_stats" }

// Models lists every archive table for AutoMigrate.
func Models() []interface{} {
	return []interface{}{&MatchRecord{}, &BattingStatRecord{}, &BowlingStatRecord{}, &BallRow{}, &CareerStat{}}
}

func optString[T ~string](v T) *string {
	if v == "" {
		return nil
	}
	s := string(v)
	return &s
}

func toBattingRecord(matchID string, r match.BattingStatRow) BattingStatRecord {
	return BattingStatRecord{
		MatchID:       matchID,
		PlayerID:      r.PlayerID,
		TeamID:        r.TeamID,
		InningsNumber: r.InningsNumber,
		Runs:          r.Runs,
		BallsFaced:    r.BallsFaced,
		Fours:         r.Fours,
		Sixes:         r.Sixes,
		StrikeRate:    r.StrikeRate,
		IsOut:         r.IsOut,
		DismissalType: optString(r.DismissalType),
	}
}

func (r BattingStatRecord) toRow() match.BattingStatRow {
	row := match.BattingStatRow{
		PlayerID:      r.PlayerID,
		TeamID:        r.TeamID,
		InningsNumber: r.InningsNumber,
		Runs:          r.Runs,
		BallsFaced:    r.BallsFaced,
		Fours:         r.Fours,
		Sixes:         r.Sixes,
		StrikeRate:    r.StrikeRate,
		IsOut:         r.IsOut,
	}
	if r.DismissalType != nil {
		row.DismissalType = match.WicketType(*r.DismissalType)
	}
	return row
}

func toBowlingRecord(matchID string, r match.BowlingStatRow) BowlingStatRecord {
	return BowlingStatRecord{
		MatchID:        matchID,
		PlayerID:       r.PlayerID,
		TeamID:         r.TeamID,
		InningsNumber:  r.InningsNumber,
		OversCompleted: r.OversCompleted,
		BallsBowled:    r.BallsBowled,
		RunsConceded:   r.RunsConceded,
		Wickets:        r.Wickets,
		Maidens:        r.Maidens,
		EconomyRate:    r.EconomyRate,
	}
}

func (r BowlingStatRecord) toRow() match.BowlingStatRow {
	return match.BowlingStatRow{
		PlayerID:       r.PlayerID,
		TeamID:         r.TeamID,
		InningsNumber:  r.InningsNumber,
		OversCompleted: r.OversCompleted,
		BallsBowled:    r.BallsBowled,
		RunsConceded:   r.RunsConceded,
		Wickets:        r.Wickets,
		Maidens:        r.Maidens,
		EconomyRate:    r.EconomyRate,
	}
}

func toBallRow(matchID string, b match.BallRecord) BallRow {
	return BallRow{
		ID:            b.ID,
		MatchID:       matchID,
		InningsNumber: b.InningsNumber,
		OverNumber:    b.OverNumber,
		BallNumber:    b.BallNumber,
		TeamID:        b.TeamID,
		BatsmanID:     b.BatsmanID,
		NonStrikerID:  b.NonStrikerID,
		BowlerID:      b.BowlerID,
		RunsScored:    b.RunsScored,
		Extras:        b.Extras,
		BallType:      string(b.BallType),
		WicketType:    optString(b.WicketType),
		IsBoundary:    b.IsBoundary,
		IsSix:         b.IsSix,
		Commentary:    b.Commentary,
		CreatedAt:     b.CreatedAt,
	}
}
