// Package rules holds the pure cricket arithmetic shared by the engine,
// the stats projection and the HTTP layer.
package rules

import (
	"fmt"
	"math"
)

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// BallsToOvers converts a legal-ball count into completed overs and
// the balls bowled in the current over.
func BallsToOvers(totalBalls int) (overs, balls int) {
	if totalBalls <= 0 {
		return 0, 0
	}
	return totalBalls / BallsPerOver, totalBalls % BallsPerOver
}

// TotalBalls is the inverse of BallsToOvers.
func TotalBalls(overs, balls int) int {
	return overs*BallsPerOver + balls
}

// StrikeRotates reports whether the batsmen cross for the given runs.
func StrikeRotates(runs int) bool {
	return runs%2 == 1
}

// FormatOvers renders overs in the usual "4.2" notation.
func FormatOvers(overs, balls int) string {
	return fmt.Sprintf("%d.%d", overs, balls)
}

// IsOverComplete reports whether legalBalls closes an over.
func IsOverComplete(legalBalls int) bool {
	return legalBalls > 0 && legalBalls%BallsPerOver == 0
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CurrentRunRate is runs per over over totalBalls legal deliveries.
func CurrentRunRate(runs, totalBalls int) float64 {
	if totalBalls <= 0 {
		return 0
	}
	return Round2(float64(runs) / (float64(totalBalls) / BallsPerOver))
}

// RequiredRunRate is the rate needed to score runsNeeded in ballsRemaining.
func RequiredRunRate(runsNeeded, ballsRemaining int) float64 {
	if ballsRemaining <= 0 {
		return 0
	}
	return Round2(float64(runsNeeded) / (float64(ballsRemaining) / BallsPerOver))
}

// StrikeRate is runs per hundred balls faced.
func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return Round2(float64(runs) / float64(balls) * 100)
}

// EconomyRate is runs conceded per over bowled.
func EconomyRate(runsConceded, overs, balls int) float64 {
	denom := float64(overs) + float64(balls)/BallsPerOver
	if denom == 0 {
		return 0
	}
	return Round2(float64(runsConceded) / denom)
}

// BattingAverage divides by dismissals; a batsman never out averages his runs.
func BattingAverage(runs, timesOut int) float64 {
	if timesOut <= 0 {
		return float64(runs)
	}
	return Round2(float64(runs) / float64(timesOut))
}

// BowlingAverage is runs conceded per wicket, 0 without wickets.
func BowlingAverage(runs, wickets int) float64 {
	if wickets <= 0 {
		return 0
	}
	return Round2(float64(runs) / float64(wickets))
}

// BowlingStrikeRate is legal balls per wicket, 0 without wickets.
func BowlingStrikeRate(balls, wickets int) float64 {
	if wickets <= 0 {
		return 0
	}
	return Round2(float64(balls) / float64(wickets))
}

// Target is what the side batting second must reach.
func Target(firstInningsScore int) int {
	return firstInningsScore + 1
}

// FormatFigures renders bowling figures as "wickets/runs".
func FormatFigures(wickets, runs int) string {
	return fmt.Sprintf("%d/%d", wickets, runs)
}

// CanBowlNextOver is the advisory check that a bowler does not bowl two
// overs in a row. It is never enforced by the engine.
func CanBowlNextOver(bowlerID, previousOverBowlerID string) bool {
	return previousOverBowlerID == "" || bowlerID != previousOverBowlerID
}

// Winner identifies which side won a match.
type Winner int

const (
	NoWinner Winner = iota
	Team1Won
	Team2Won
)

// ResultInput carries the final scores. Team 1 always bats first.
type ResultInput struct {
	Team1Name    string
	Team2Name    string
	Team1Score   int
	Team2Score   int
	Team2Wickets int
	// WicketsAvailable is the all-out threshold of the chasing side.
	WicketsAvailable int
}

// Result is the outcome of a completed match.
type Result struct {
	Winner Winner
	Text   string
}

// MatchResult decides the winner and margin from final scores.
func MatchResult(in ResultInput) Result {
	switch {
	case in.Team2Score > in.Team1Score:
		margin := in.WicketsAvailable - in.Team2Wickets
		if margin < 0 {
			margin = 0
		}
		return Result{
			Winner: Team2Won,
			Text:   fmt.Sprintf("%s won by %d %s", in.Team2Name, margin, plural(margin, "wicket")),
		}
	case in.Team1Score > in.Team2Score:
		margin := in.Team1Score - in.Team2Score
		return Result{
			Winner: Team1Won,
			Text:   fmt.Sprintf("%s won by %d %s", in.Team1Name, margin, plural(margin, "run")),
		}
	default:
		return Result{Winner: NoWinner, Text: "Match Tied"}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
