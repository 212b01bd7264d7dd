package rules

import "testing"

func TestBallsToOvers(t *testing.T) {
	tests := []struct {
		total, overs, balls int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{6, 1, 0},
		{26, 4, 2},
		{-3, 0, 0},
	}
	for _, tt := range tests {
		o, b := BallsToOvers(tt.total)
		if o != tt.overs || b != tt.balls {
			t.Errorf("BallsToOvers(%d) = (%d, %d), want (%d, %d)", tt.total, o, b, tt.overs, tt.balls)
		}
		if tt.total >= 0 && TotalBalls(o, b) != tt.total {
			t.Errorf("TotalBalls(%d, %d) = %d, want %d", o, b, TotalBalls(o, b), tt.total)
		}
	}
}

func TestStrikeRotates(t *testing.T) {
	for runs, want := range map[int]bool{0: false, 1: true, 2: false, 3: true, 4: false, 5: true, 6: false} {
		if got := StrikeRotates(runs); got != want {
			t.Errorf("StrikeRotates(%d) = %v, want %v", runs, got, want)
		}
	}
}

func TestFormatOvers(t *testing.T) {
	if got := FormatOvers(4, 2); got != "4.2" {
		t.Errorf("FormatOvers(4, 2) = %q, want %q", got, "4.2")
	}
}

func TestRates(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"run rate", CurrentRunRate(45, 30), 9},
		{"run rate zero balls", CurrentRunRate(10, 0), 0},
		{"required rate", RequiredRunRate(30, 24), 7.5},
		{"required rate no balls", RequiredRunRate(30, 0), 0},
		{"strike rate", StrikeRate(50, 30), 166.67},
		{"strike rate zero", StrikeRate(5, 0), 0},
		{"economy", EconomyRate(25, 3, 3), 7.14},
		{"economy zero", EconomyRate(4, 0, 0), 0},
		{"batting average not out", BattingAverage(73, 0), 73},
		{"batting average", BattingAverage(100, 3), 33.33},
		{"bowling average", BowlingAverage(60, 4), 15},
		{"bowling average no wickets", BowlingAverage(60, 0), 0},
		{"bowling strike rate", BowlingStrikeRate(50, 4), 12.5},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestTargetAndFigures(t *testing.T) {
	if got := Target(120); got != 121 {
		t.Errorf("Target(120) = %d, want 121", got)
	}
	if got := FormatFigures(3, 24); got != "3/24" {
		t.Errorf("FormatFigures = %q, want 3/24", got)
	}
}

func TestIsOverComplete(t *testing.T) {
	for balls, want := range map[int]bool{0: false, 3: false, 6: true, 12: true, 13: false} {
		if got := IsOverComplete(balls); got != want {
			t.Errorf("IsOverComplete(%d) = %v, want %v", balls, got, want)
		}
	}
}

func TestCanBowlNextOver(t *testing.T) {
	if !CanBowlNextOver("b1", "") {
		t.Error("first over should always be allowed")
	}
	if CanBowlNextOver("b1", "b1") {
		t.Error("consecutive overs should be flagged")
	}
	if !CanBowlNextOver("b2", "b1") {
		t.Error("change of bowler should be allowed")
	}
}

func TestMatchResult(t *testing.T) {
	tests := []struct {
		name   string
		in     ResultInput
		winner Winner
		text   string
	}{
		{
			name:   "chase",
			in:     ResultInput{Team1Name: "Lions", Team2Name: "Tigers", Team1Score: 120, Team2Score: 121, Team2Wickets: 3, WicketsAvailable: 10},
			winner: Team2Won,
			text:   "Tigers won by 7 wickets",
		},
		{
			name:   "defended",
			in:     ResultInput{Team1Name: "Lions", Team2Name: "Tigers", Team1Score: 120, Team2Score: 100, Team2Wickets: 10, WicketsAvailable: 10},
			winner: Team1Won,
			text:   "Lions won by 20 runs",
		},
		{
			name:   "singular",
			in:     ResultInput{Team1Name: "Lions", Team2Name: "Tigers", Team1Score: 120, Team2Score: 119, WicketsAvailable: 10},
			winner: Team1Won,
			text:   "Lions won by 1 run",
		},
		{
			name:   "one wicket",
			in:     ResultInput{Team1Name: "Lions", Team2Name: "Tigers", Team1Score: 50, Team2Score: 51, Team2Wickets: 9, WicketsAvailable: 10},
			winner: Team2Won,
			text:   "Tigers won by 1 wicket",
		},
		{
			name:   "tie",
			in:     ResultInput{Team1Name: "Lions", Team2Name: "Tigers", Team1Score: 99, Team2Score: 99, WicketsAvailable: 10},
			winner: NoWinner,
			text:   "Match Tied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchResult(tt.in)
			if got.Winner != tt.winner || got.Text != tt.text {
				t.Errorf("MatchResult() = %+v, want {%v %q}", got, tt.winner, tt.text)
			}
		})
	}
}
