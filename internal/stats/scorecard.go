// Package stats projects scorecards and career figures from engine rows.
// Nothing here mutates a snapshot.
package stats

import (
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/rules"
)

type BattingLine struct {
	PlayerID   string  `json:"player_id"`
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
	IsOut      bool    `json:"is_out"`
	Dismissal  string  `json:"dismissal,omitempty"`
}

type BowlingLine struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Overs    string  `json:"overs"`
	Maidens  int     `json:"maidens"`
	Runs     int     `json:"runs"`
	Wickets  int     `json:"wickets"`
	Economy  float64 `json:"economy"`
}

type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Total   int `json:"total"`
}

type FallOfWicket struct {
	Wicket   int    `json:"wicket"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Overs    string `json:"overs"`
}

type Partnership struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// InningsCard is the scorecard of one innings.
type InningsCard struct {
	Number          int            `json:"number"`
	BattingTeamID   string         `json:"batting_team_id"`
	BattingTeam     string         `json:"batting_team"`
	BowlingTeamID   string         `json:"bowling_team_id"`
	Total           int            `json:"total"`
	Wickets         int            `json:"wickets"`
	Overs           string         `json:"overs"`
	RunRate         float64        `json:"run_rate"`
	Target          *int           `json:"target,omitempty"`
	RequiredRunRate float64        `json:"required_run_rate,omitempty"`
	Extras          Extras         `json:"extras"`
	Batting         []BattingLine  `json:"batting"`
	Bowling         []BowlingLine  `json:"bowling"`
	FallOfWickets   []FallOfWicket `json:"fall_of_wickets"`
	Partnership     Partnership    `json:"partnership"`
}

// Scorecard is the full read model of a match.
type Scorecard struct {
	MatchID       string            `json:"match_id"`
	Status        match.MatchStatus `json:"status"`
	Phase         match.Phase       `json:"phase"`
	ResultText    string            `json:"result_text,omitempty"`
	WinnerTeamID  *string           `json:"winner_team_id,omitempty"`
	Innings       []InningsCard     `json:"innings"`
	PlayerOfMatch *Award            `json:"player_of_match,omitempty"`
}

// BuildScorecard renders every innings that has started.
func BuildScorecard(s *match.Snapshot) Scorecard {
	card := Scorecard{
		MatchID:      s.MatchID,
		Status:       s.Status,
		Phase:        s.Phase(),
		ResultText:   s.ResultText,
		WinnerTeamID: s.WinnerTeamID,
	}
	for innings := 1; innings <= s.CurrentInnings; innings++ {
		card.Innings = append(card.Innings, buildInnings(s, innings))
	}
	if s.Status == match.StatusCompleted {
		if award, ok := PlayerOfMatch(s); ok {
			card.PlayerOfMatch = &award
		}
	}
	return card
}

func buildInnings(s *match.Snapshot, innings int) InningsCard {
	bat, bowl := s.InningsTeams(innings)
	ic := InningsCard{
		Number:        innings,
		BattingTeamID: bat.ID,
		BattingTeam:   bat.Name,
		BowlingTeamID: bowl.ID,
		Total:         bat.Score,
		Wickets:       bat.Wickets,
		Overs:         rules.FormatOvers(bat.Overs, bat.Balls),
		RunRate:       rules.CurrentRunRate(bat.Score, bat.TotalBalls()),
		Batting:       []BattingLine{},
		Bowling:       []BowlingLine{},
		FallOfWickets: []FallOfWicket{},
	}
	if innings == 2 && s.Target != nil {
		ic.Target = s.Target
		needed := *s.Target - bat.Score
		remaining := rules.TotalBalls(s.TotalOvers, 0) - bat.TotalBalls()
		if needed > 0 {
			ic.RequiredRunRate = rules.RequiredRunRate(needed, remaining)
		}
	}

	for _, r := range s.Batting {
		if r.InningsNumber != innings {
			continue
		}
		ic.Batting = append(ic.Batting, BattingLine{
			PlayerID:   r.PlayerID,
			Name:       s.PlayerName(r.PlayerID),
			Runs:       r.Runs,
			Balls:      r.BallsFaced,
			Fours:      r.Fours,
			Sixes:      r.Sixes,
			StrikeRate: r.StrikeRate,
			IsOut:      r.IsOut,
			Dismissal:  string(r.DismissalType),
		})
	}
	for _, r := range s.Bowling {
		if r.InningsNumber != innings {
			continue
		}
		ic.Bowling = append(ic.Bowling, BowlingLine{
			PlayerID: r.PlayerID,
			Name:     s.PlayerName(r.PlayerID),
			Overs:    rules.FormatOvers(r.OversCompleted, r.BallsBowled),
			Maidens:  r.Maidens,
			Runs:     r.RunsConceded,
			Wickets:  r.Wickets,
			Economy:  r.EconomyRate,
		})
	}

	score, legal := 0, 0
	var pair batsmanPair
	for _, b := range s.InningsBalls(innings) {
		if p := pairOf(b.BatsmanID, b.NonStrikerID); p != pair {
			pair = p
			ic.Partnership = Partnership{}
		}
		score += b.TotalRuns()
		ic.Partnership.Runs += b.TotalRuns()
		switch b.BallType {
		case match.BallWide:
			ic.Extras.Wides += b.Extras + b.RunsScored
			ic.Extras.Total += b.Extras + b.RunsScored
		case match.BallNoBall:
			ic.Extras.NoBalls += b.Extras
			ic.Extras.Total += b.Extras
		}
		if !b.BallType.CountsAsLegal() {
			continue
		}
		legal++
		ic.Partnership.Balls++
		if b.BallType == match.BallWicket {
			o, bl := rules.BallsToOvers(legal)
			ic.FallOfWickets = append(ic.FallOfWickets, FallOfWicket{
				Wicket:   len(ic.FallOfWickets) + 1,
				PlayerID: b.BatsmanID,
				Name:     s.PlayerName(b.BatsmanID),
				Score:    score,
				Overs:    rules.FormatOvers(o, bl),
			})
			ic.Partnership = Partnership{}
		}
	}
	// a retirement changes the crease without logging a ball
	if s.Status == match.StatusLive && innings == s.CurrentInnings &&
		pairOf(s.Crease.StrikerID, s.Crease.NonStrikerID) != pair {
		ic.Partnership = Partnership{}
	}
	return ic
}

// batsmanPair identifies the two batsmen at the crease regardless of strike.
type batsmanPair struct{ a, b string }

func pairOf(x, y string) batsmanPair {
	if y < x {
		x, y = y, x
	}
	return batsmanPair{x, y}
}
