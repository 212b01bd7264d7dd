package stats

import (
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/rules"
)

// BattingCareer sums a player's batting rows. Rates are recomputed from
// the sums, never averaged.
type BattingCareer struct {
	PlayerID      string  `json:"player_id"`
	Innings       int     `json:"innings"`
	NotOuts       int     `json:"not_outs"`
	Runs          int     `json:"runs"`
	Balls         int     `json:"balls"`
	Fours         int     `json:"fours"`
	Sixes         int     `json:"sixes"`
	Highest       int     `json:"highest"`
	HighestNotOut bool    `json:"highest_not_out"`
	Fifties       int     `json:"fifties"`
	Hundreds      int     `json:"hundreds"`
	Ducks         int     `json:"ducks"`
	Average       float64 `json:"average"`
	StrikeRate    float64 `json:"strike_rate"`
}

// AggregateBatting builds a career line from every innings row of one player.
func AggregateBatting(playerID string, rows []match.BattingStatRow) BattingCareer {
	c := BattingCareer{PlayerID: playerID}
	outs := 0
	for _, r := range rows {
		if r.PlayerID != playerID {
			continue
		}
		c.Innings++
		c.Runs += r.Runs
		c.Balls += r.BallsFaced
		c.Fours += r.Fours
		c.Sixes += r.Sixes

		// retired hurt counts as not out
		out := r.IsOut && r.DismissalType != match.WicketRetiredHurt
		if out {
			outs++
		} else {
			c.NotOuts++
		}
		if r.Runs > c.Highest || (r.Runs == c.Highest && !out) {
			c.Highest = r.Runs
			c.HighestNotOut = !out
		}
		switch {
		case r.Runs >= 100:
			c.Hundreds++
		case r.Runs >= 50:
			c.Fifties++
		case r.Runs == 0 && out:
			c.Ducks++
		}
	}
	c.Average = rules.BattingAverage(c.Runs, outs)
	c.StrikeRate = rules.StrikeRate(c.Runs, c.Balls)
	return c
}

// Figures are a bowler's wickets and runs in one innings.
type Figures struct {
	Wickets int `json:"wickets"`
	Runs    int `json:"runs"`
}

func (f Figures) String() string {
	return rules.FormatFigures(f.Wickets, f.Runs)
}

// BetterFigures reports whether a beats b: more wickets first, then fewer runs.
func BetterFigures(a, b Figures) bool {
	if a.Wickets != b.Wickets {
		return a.Wickets > b.Wickets
	}
	return a.Runs < b.Runs
}

type BowlingCareer struct {
	PlayerID        string   `json:"player_id"`
	Innings         int      `json:"innings"`
	Balls           int      `json:"balls"`
	Overs           string   `json:"overs"`
	Runs            int      `json:"runs"`
	Wickets         int      `json:"wickets"`
	Maidens         int      `json:"maidens"`
	FiveWicketHauls int      `json:"five_wicket_hauls"`
	Average         float64  `json:"average"`
	Economy         float64  `json:"economy"`
	StrikeRate      float64  `json:"strike_rate"`
	Best            *Figures `json:"best,omitempty"`
}

// AggregateBowling builds a career line from every innings row of one
// player. Rows where the player never delivered a ball are skipped.
func AggregateBowling(playerID string, rows []match.BowlingStatRow) BowlingCareer {
	c := BowlingCareer{PlayerID: playerID}
	for _, r := range rows {
		if r.PlayerID != playerID || (r.TotalBalls() == 0 && r.RunsConceded == 0) {
			continue
		}
		c.Innings++
		c.Balls += r.TotalBalls()
		c.Runs += r.RunsConceded
		c.Wickets += r.Wickets
		c.Maidens += r.Maidens
		if r.Wickets >= 5 {
			c.FiveWicketHauls++
		}
		f := Figures{Wickets: r.Wickets, Runs: r.RunsConceded}
		if c.Best == nil || BetterFigures(f, *c.Best) {
			c.Best = &f
		}
	}
	overs, balls := rules.BallsToOvers(c.Balls)
	c.Overs = rules.FormatOvers(overs, balls)
	c.Average = rules.BowlingAverage(c.Runs, c.Wickets)
	c.Economy = rules.EconomyRate(c.Runs, overs, balls)
	c.StrikeRate = rules.BowlingStrikeRate(c.Balls, c.Wickets)
	return c
}
