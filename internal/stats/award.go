package stats

import (
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/rules"
)

// Award names the player of the match and the points that won it.
type Award struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
}

// PlayerOfMatch scores every player who batted or bowled: a point a run,
// 20 for a strike rate above 150, 20 a wicket and 15 for an economy
// under 6 with at least one wicket. Ties go to the earlier roster entry.
func PlayerOfMatch(s *match.Snapshot) (Award, bool) {
	type tally struct {
		runs, balls, conceded, bowled, wickets int
		involved                               bool
	}
	totals := map[string]*tally{}
	get := func(id string) *tally {
		t, ok := totals[id]
		if !ok {
			t = &tally{}
			totals[id] = t
		}
		return t
	}
	for _, r := range s.Batting {
		t := get(r.PlayerID)
		t.runs += r.Runs
		t.balls += r.BallsFaced
		t.involved = t.involved || r.BallsFaced > 0 || r.Runs > 0
	}
	for _, r := range s.Bowling {
		t := get(r.PlayerID)
		t.conceded += r.RunsConceded
		t.bowled += r.TotalBalls()
		t.wickets += r.Wickets
		t.involved = t.involved || r.TotalBalls() > 0
	}

	var best Award
	found := false
	for _, team := range []*match.TeamState{&s.Team1, &s.Team2} {
		for _, p := range team.Players {
			t, ok := totals[p.ID]
			if !ok || !t.involved {
				continue
			}
			points := t.runs
			if t.balls > 0 && rules.StrikeRate(t.runs, t.balls) > 150 {
				points += 20
			}
			points += t.wickets * 20
			overs, balls := rules.BallsToOvers(t.bowled)
			if t.wickets > 0 && rules.EconomyRate(t.conceded, overs, balls) < 6 {
				points += 15
			}
			if !found || points > best.Points {
				best = Award{PlayerID: p.ID, Name: p.Name, Points: points}
				found = true
			}
		}
	}
	return best, found
}
