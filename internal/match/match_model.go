package match

import (
	"fmt"
	"slices"
	"time"
)

// MatchStatus defines the lifecycle status of a match
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "not_started"
	StatusLive       MatchStatus = "live"
	StatusCompleted  MatchStatus = "completed"
)

// BallType classifies a delivery in the ball log
type BallType string

const (
	BallLegal  BallType = "legal"
	BallWide   BallType = "wide"
	BallNoBall BallType = "no_ball"
	BallWicket BallType = "wicket"
)

// Valid reports whether t is a known ball type.
func (t BallType) Valid() bool {
	switch t {
	case BallLegal, BallWide, BallNoBall, BallWicket:
		return true
	}
	return false
}

// CountsAsLegal reports whether the delivery advances the ball counter.
func (t BallType) CountsAsLegal() bool {
	return t == BallLegal || t == BallWicket
}

// WicketType for cricket dismissals
type WicketType string

const (
	WicketBowled      WicketType = "bowled"
	WicketCaught      WicketType = "caught"
	WicketLBW         WicketType = "lbw"
	WicketRunOut      WicketType = "run_out"
	WicketStumped     WicketType = "stumped"
	WicketHitWicket   WicketType = "hit_wicket"
	WicketRetiredHurt WicketType = "retired_hurt"
)

// Valid reports whether w is a known dismissal.
func (w WicketType) Valid() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketHitWicket, WicketRetiredHurt:
		return true
	}
	return false
}

// CreditsBowler reports whether the bowler is credited with the wicket.
func (w WicketType) CreditsBowler() bool {
	return w != WicketRunOut && w != WicketRetiredHurt
}

// Phase is the innings state machine position derived from a snapshot.
type Phase string

const (
	PhaseNotStarted         Phase = "not_started"
	PhaseInnings1InProgress Phase = "innings1_in_progress"
	PhaseInnings2Setup      Phase = "innings2_setup"
	PhaseInnings2InProgress Phase = "innings2_in_progress"
	PhaseCompleted          Phase = "completed"
)

// Player is a roster entry supplied by the surrounding system.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamState holds a side's roster and running innings totals.
type TeamState struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
	Score   int      `json:"score"`
	Wickets int      `json:"wickets"`
	Overs   int      `json:"overs"`
	Balls   int      `json:"balls"` // 0-5, legal balls in the current over
}

// HasPlayer reports whether id is on the roster.
func (t *TeamState) HasPlayer(id string) bool {
	return slices.ContainsFunc(t.Players, func(p Player) bool { return p.ID == id })
}

// TotalBalls is the legal-ball count of the innings so far.
func (t *TeamState) TotalBalls() int {
	return t.Overs*6 + t.Balls
}

// BattingStatRow is one player's batting line for one innings.
type BattingStatRow struct {
	PlayerID      string     `json:"player_id"`
	TeamID        string     `json:"team_id"`
	InningsNumber int        `json:"innings_number"`
	Runs          int        `json:"runs"`
	BallsFaced    int        `json:"balls_faced"`
	Fours         int        `json:"fours"`
	Sixes         int        `json:"sixes"`
	StrikeRate    float64    `json:"strike_rate"`
	IsOut         bool       `json:"is_out"`
	DismissalType WicketType `json:"dismissal_type,omitempty"` // empty while not out
}

// BowlingStatRow is one player's bowling line for one innings.
type BowlingStatRow struct {
	PlayerID       string  `json:"player_id"`
	TeamID         string  `json:"team_id"`
	InningsNumber  int     `json:"innings_number"`
	OversCompleted int     `json:"overs_completed"`
	BallsBowled    int     `json:"balls_bowled"` // 0-5 within the current over
	RunsConceded   int     `json:"runs_conceded"`
	Wickets        int     `json:"wickets"`
	Maidens        int     `json:"maidens"`
	RunsThisOver   int     `json:"runs_this_over"`
	EconomyRate    float64 `json:"economy_rate"`
}

// TotalBalls is the cumulative legal-ball count for the row.
func (r *BowlingStatRow) TotalBalls() int {
	return r.OversCompleted*6 + r.BallsBowled
}

// BallRecord is an append-only ball log entry.
type BallRecord struct {
	ID            string     `json:"id"`
	InningsNumber int        `json:"innings_number"`
	OverNumber    int        `json:"over_number"`
	BallNumber    int        `json:"ball_number"` // 0-indexed, shared by wides and no-balls
	TeamID        string     `json:"team_id"`
	BatsmanID     string     `json:"batsman_id"`
	NonStrikerID  string     `json:"non_striker_id"`
	BowlerID      string     `json:"bowler_id"`
	RunsScored    int        `json:"runs_scored"`
	Extras        int        `json:"extras"`
	BallType      BallType   `json:"ball_type"`
	WicketType    WicketType `json:"wicket_type,omitempty"`
	IsBoundary    bool       `json:"is_boundary"`
	IsSix         bool       `json:"is_six"`
	Commentary    string     `json:"commentary"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TotalRuns is what the delivery added to the team score.
func (b BallRecord) TotalRuns() int {
	return b.RunsScored + b.Extras
}

// Validate rejects ball records whose fields contradict the ball type.
func (b BallRecord) Validate() error {
	if !b.BallType.Valid() {
		return invalidf("unknown ball type %q", b.BallType)
	}
	if b.RunsScored < 0 {
		return invalidf("negative runs on ball %d.%d", b.OverNumber, b.BallNumber)
	}
	if b.BallNumber < 0 || b.BallNumber > 5 {
		return invalidf("ball number %d out of range", b.BallNumber)
	}
	switch b.BallType {
	case BallWicket:
		if !b.WicketType.Valid() || b.WicketType == WicketRetiredHurt {
			return invalidf("wicket ball with dismissal %q", b.WicketType)
		}
	default:
		if b.WicketType != "" {
			return invalidf("%s ball cannot carry dismissal %q", b.BallType, b.WicketType)
		}
	}
	wantExtras := 0
	if b.BallType == BallWide || b.BallType == BallNoBall {
		wantExtras = 1
	}
	if b.Extras != wantExtras {
		return invalidf("%s ball with %d extras", b.BallType, b.Extras)
	}
	return nil
}

// Crease tracks who is on strike and who is bowling. Slots are cleared
// when a batsman leaves and filled again by AddBatsman.
type Crease struct {
	StrikerID        string `json:"striker_id"`
	NonStrikerID     string `json:"non_striker_id"`
	BowlerID         string `json:"bowler_id"`
	LastOverBowlerID string `json:"last_over_bowler_id,omitempty"`
}

// Snapshot is the complete state of one match.
type Snapshot struct {
	MatchID        string           `json:"match_id"`
	CreatedBy      string           `json:"created_by"`
	Venue          string           `json:"venue,omitempty"`
	TotalOvers     int              `json:"total_overs"`
	CurrentInnings int              `json:"current_innings"`
	Target         *int             `json:"target,omitempty"`
	Team1          TeamState        `json:"team1"`
	Team2          TeamState        `json:"team2"`
	Status         MatchStatus      `json:"status"`
	ResultText     string           `json:"result_text,omitempty"`
	WinnerTeamID   *string          `json:"winner_team_id,omitempty"`
	Crease         Crease           `json:"crease"`
	Batting        []BattingStatRow `json:"batting"`
	Bowling        []BowlingStatRow `json:"bowling"`
	Balls          []BallRecord     `json:"balls"`
	CreatedAt      time.Time        `json:"created_at"`
	StartedAt      *time.Time       `json:"started_at,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

// State pairs the working snapshot with the single undo slot.
type State struct {
	Current  *Snapshot `json:"current"`
	Previous *Snapshot `json:"previous,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Team1.Players = slices.Clone(s.Team1.Players)
	c.Team2.Players = slices.Clone(s.Team2.Players)
	c.Batting = slices.Clone(s.Batting)
	c.Bowling = slices.Clone(s.Bowling)
	c.Balls = slices.Clone(s.Balls)
	c.Target = clonePtr(s.Target)
	c.WinnerTeamID = clonePtr(s.WinnerTeamID)
	c.StartedAt = clonePtr(s.StartedAt)
	c.CompletedAt = clonePtr(s.CompletedAt)
	return &c
}

// Clone deep-copies both slots.
func (st *State) Clone() *State {
	if st == nil {
		return nil
	}
	return &State{Current: st.Current.Clone(), Previous: st.Previous.Clone()}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// battingTeamFor returns the side batting in the given innings. Team 1 bats first.
func (s *Snapshot) battingTeamFor(innings int) *TeamState {
	if innings == 2 {
		return &s.Team2
	}
	return &s.Team1
}

func (s *Snapshot) bowlingTeamFor(innings int) *TeamState {
	if innings == 2 {
		return &s.Team1
	}
	return &s.Team2
}

// InningsTeams returns the batting and bowling sides of an innings.
func (s *Snapshot) InningsTeams(innings int) (batting, bowling *TeamState) {
	return s.battingTeamFor(innings), s.bowlingTeamFor(innings)
}

// BattingTeam is the side batting in the current innings.
func (s *Snapshot) BattingTeam() *TeamState {
	return s.battingTeamFor(s.CurrentInnings)
}

// BowlingTeam is the side bowling in the current innings.
func (s *Snapshot) BowlingTeam() *TeamState {
	return s.bowlingTeamFor(s.CurrentInnings)
}

// Team returns the side with the given id, or nil.
func (s *Snapshot) Team(id string) *TeamState {
	switch id {
	case s.Team1.ID:
		return &s.Team1
	case s.Team2.ID:
		return &s.Team2
	}
	return nil
}

// Player looks a player up across both rosters.
func (s *Snapshot) Player(id string) (Player, bool) {
	for _, t := range []*TeamState{&s.Team1, &s.Team2} {
		for _, p := range t.Players {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Player{}, false
}

// PlayerName falls back to the id when the player is unknown.
func (s *Snapshot) PlayerName(id string) string {
	if p, ok := s.Player(id); ok && p.Name != "" {
		return p.Name
	}
	return id
}

// BattingRow returns the player's row for the innings, or nil.
func (s *Snapshot) BattingRow(playerID string, innings int) *BattingStatRow {
	for i := range s.Batting {
		if s.Batting[i].PlayerID == playerID && s.Batting[i].InningsNumber == innings {
			return &s.Batting[i]
		}
	}
	return nil
}

// BowlingRow returns the player's row for the innings, or nil.
func (s *Snapshot) BowlingRow(playerID string, innings int) *BowlingStatRow {
	for i := range s.Bowling {
		if s.Bowling[i].PlayerID == playerID && s.Bowling[i].InningsNumber == innings {
			return &s.Bowling[i]
		}
	}
	return nil
}

// ActiveBatsmen lists the ids of not-out batsmen in the innings.
func (s *Snapshot) ActiveBatsmen(innings int) []string {
	var ids []string
	for _, r := range s.Batting {
		if r.InningsNumber == innings && !r.IsOut {
			ids = append(ids, r.PlayerID)
		}
	}
	return ids
}

// InningsBalls returns the ball log of one innings in delivery order.
func (s *Snapshot) InningsBalls(innings int) []BallRecord {
	var out []BallRecord
	for _, b := range s.Balls {
		if b.InningsNumber == innings {
			out = append(out, b)
		}
	}
	return out
}

// Phase derives the innings state machine position.
func (s *Snapshot) Phase() Phase {
	switch {
	case s.Status == StatusNotStarted:
		return PhaseNotStarted
	case s.Status == StatusCompleted:
		return PhaseCompleted
	case s.CurrentInnings == 1:
		return PhaseInnings1InProgress
	case len(s.InningsBalls(2)) == 0:
		return PhaseInnings2Setup
	default:
		return PhaseInnings2InProgress
	}
}

// Validate checks the structural invariants of a loaded snapshot.
func (s *Snapshot) Validate() error {
	if s == nil {
		return &Error{Kind: KindStateNotFound, Message: "snapshot is empty"}
	}
	if s.MatchID == "" {
		return invalidf("snapshot has no match id")
	}
	if s.CurrentInnings != 1 && s.CurrentInnings != 2 {
		return invalidf("current innings %d out of range", s.CurrentInnings)
	}
	for _, t := range []*TeamState{&s.Team1, &s.Team2} {
		if t.Balls < 0 || t.Balls > 5 {
			return invalidf("team %s has %d balls in the over", t.ID, t.Balls)
		}
	}
	for _, b := range s.Balls {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("ball %s: %w", b.ID, err)
		}
	}
	return nil
}
