package match

import (
	"errors"
	"reflect"
	"testing"
)

func TestCloneIsDeep(t *testing.T) {
	e := newTestEngine(t, 11, 20, Options{})
	mustOK(t, e.RecordRuns(1, "l1", "l2", "t1"))
	mustOK(t, e.EndInnings())
	orig := e.Snapshot()
	c := orig.Clone()
	if !reflect.DeepEqual(orig, c) {
		t.Fatal("clone differs from original")
	}
	c.Batting[0].Runs = 99
	c.Balls[0].RunsScored = 99
	c.Team1.Players[0].Name = "changed"
	*c.Target = 500
	if orig.Batting[0].Runs == 99 || orig.Balls[0].RunsScored == 99 || orig.Team1.Players[0].Name == "changed" || *orig.Target == 500 {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestBattingAndBowlingTeamFollowInnings(t *testing.T) {
	s := &Snapshot{CurrentInnings: 1, Team1: TeamState{ID: "a"}, Team2: TeamState{ID: "b"}}
	if s.BattingTeam().ID != "a" || s.BowlingTeam().ID != "b" {
		t.Errorf("innings 1: batting %s bowling %s", s.BattingTeam().ID, s.BowlingTeam().ID)
	}
	s.CurrentInnings = 2
	if s.BattingTeam().ID != "b" || s.BowlingTeam().ID != "a" {
		t.Errorf("innings 2: batting %s bowling %s", s.BattingTeam().ID, s.BowlingTeam().ID)
	}
	if s.Team("b") != &s.Team2 || s.Team("zzz") != nil {
		t.Error("Team lookup returned the wrong side")
	}
}

func TestBallRecordValidate(t *testing.T) {
	tests := []struct {
		name string
		ball BallRecord
		ok   bool
	}{
		{"legal", BallRecord{BallType: BallLegal, RunsScored: 4}, true},
		{"wide", BallRecord{BallType: BallWide, Extras: 1}, true},
		{"wicket", BallRecord{BallType: BallWicket, WicketType: WicketCaught}, true},
		{"legal with dismissal", BallRecord{BallType: BallLegal, WicketType: WicketBowled}, false},
		{"wicket without dismissal", BallRecord{BallType: BallWicket}, false},
		{"retired hurt ball", BallRecord{BallType: BallWicket, WicketType: WicketRetiredHurt}, false},
		{"wide without extra", BallRecord{BallType: BallWide}, false},
		{"legal with extra", BallRecord{BallType: BallLegal, Extras: 1}, false},
		{"unknown type", BallRecord{BallType: "dead_ball"}, false},
		{"ball number", BallRecord{BallType: BallLegal, BallNumber: 6}, false},
	}
	for _, tt := range tests {
		err := tt.ball.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("%s: error kind = %v", tt.name, err)
		}
	}
}

func TestWicketTypeCredit(t *testing.T) {
	for _, w := range []WicketType{WicketBowled, WicketCaught, WicketLBW, WicketStumped, WicketHitWicket} {
		if !w.CreditsBowler() {
			t.Errorf("%s should credit the bowler", w)
		}
	}
	for _, w := range []WicketType{WicketRunOut, WicketRetiredHurt} {
		if w.CreditsBowler() {
			t.Errorf("%s should not credit the bowler", w)
		}
	}
	if WicketType("handled_ball").Valid() {
		t.Error("unexpected wicket type accepted")
	}
}

func TestSnapshotValidate(t *testing.T) {
	var nilSnap *Snapshot
	if err := nilSnap.Validate(); !errors.Is(err, ErrStateNotFound) {
		t.Errorf("nil snapshot err = %v", err)
	}
	s := &Snapshot{MatchID: "m", CurrentInnings: 3}
	if err := s.Validate(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("innings 3 err = %v", err)
	}
	s.CurrentInnings = 1
	s.Team1.Balls = 6
	if err := s.Validate(); err == nil {
		t.Error("six balls in an over accepted")
	}
}

func TestErrorIs(t *testing.T) {
	err := playerNotFound("x")
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Error("player not found does not match its sentinel")
	}
	if errors.Is(err, ErrInvalidOperation) {
		t.Error("player not found matched invalid operation")
	}
	if ErrMatchNotFound.Error() != "match_not_found" {
		t.Errorf("sentinel text = %q", ErrMatchNotFound.Error())
	}
}
