package archive

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DhavalSuthar-24/crease/internal/commentary"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/stats"
)

// fakeRepo keeps the archive tables in memory. WithTransaction restores
// the tables when the callback fails.
type fakeRepo struct {
	matches     map[string]MatchRecord
	batting     []BattingStatRecord
	bowling     []BowlingStatRecord
	balls       []BallRow
	careers     map[string]CareerStat
	failReplace bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{matches: map[string]MatchRecord{}, careers: map[string]CareerStat{}}
}

func (f *fakeRepo) SaveMatch(_ context.Context, record *MatchRecord) error {
	f.matches[record.ID] = *record
	return nil
}

func (f *fakeRepo) GetMatch(_ context.Context, matchID string) (*MatchRecord, error) {
	r, ok := f.matches[matchID]
	if !ok {
		return nil, ErrNotArchived
	}
	return &r, nil
}

func (f *fakeRepo) ReplaceMatchRows(_ context.Context, matchID string, batting []BattingStatRecord, bowling []BowlingStatRecord, balls []BallRow) error {
	if f.failReplace {
		return errors.New("disk full")
	}
	f.batting = slices.DeleteFunc(f.batting, func(r BattingStatRecord) bool { return r.MatchID == matchID })
	f.bowling = slices.DeleteFunc(f.bowling, func(r BowlingStatRecord) bool { return r.MatchID == matchID })
	f.balls = slices.DeleteFunc(f.balls, func(r BallRow) bool { return r.MatchID == matchID })
	f.batting = append(f.batting, batting...)
	f.bowling = append(f.bowling, bowling...)
	f.balls = append(f.balls, balls...)
	return nil
}

func (f *fakeRepo) PlayerBatting(_ context.Context, playerID string) ([]BattingStatRecord, error) {
	var out []BattingStatRecord
	for _, r := range f.batting {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) PlayerBowling(_ context.Context, playerID string) ([]BowlingStatRecord, error) {
	var out []BowlingStatRecord
	for _, r := range f.bowling {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountPlayerMatches(_ context.Context, playerID string) (int64, error) {
	var n int64
	for _, m := range f.matches {
		if m.PlayerIDs.Contains(playerID) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) SaveCareer(_ context.Context, career *CareerStat) error {
	f.careers[career.PlayerID] = *career
	return nil
}

func (f *fakeRepo) GetCareer(_ context.Context, playerID string) (*CareerStat, error) {
	c, ok := f.careers[playerID]
	if !ok {
		return nil, ErrNotArchived
	}
	return &c, nil
}

func (f *fakeRepo) WithTransaction(txFunc func(Repository) error) error {
	saved := fakeRepo{
		matches: maps.Clone(f.matches),
		batting: slices.Clone(f.batting),
		bowling: slices.Clone(f.bowling),
		balls:   slices.Clone(f.balls),
		careers: maps.Clone(f.careers),
	}
	if err := txFunc(f); err != nil {
		f.matches, f.batting, f.bowling, f.balls, f.careers =
			saved.matches, saved.batting, saved.bowling, saved.balls, saved.careers
		return err
	}
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// playedSnapshot is a live match after a wide, a four and a single.
func playedSnapshot(t *testing.T) *match.Snapshot {
	t.Helper()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	snap, err := match.NewMatch(match.Setup{
		MatchID:      "arch-1",
		TotalOvers:   2,
		Team1:        match.TeamSetup{ID: "a", Name: "A", Players: []match.Player{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}},
		Team2:        match.TeamSetup{ID: "b", Name: "B", Players: []match.Player{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}},
		StrikerID:    "a1",
		NonStrikerID: "a2",
		BowlerID:     "b1",
		CreatedBy:    "scorer",
	}, now)
	if err != nil {
		t.Fatal(err)
	}
	e, err := match.NewEngine(&match.State{Current: snap}, match.Options{
		Commentary: commentary.NewSeeded(1),
		Now:        func() time.Time { return now },
	})
	if err != nil {
		t.Fatal(err)
	}
	steps := []func() error{
		e.Start,
		func() error { return e.RecordWide("a1", "a2", "b1", 0) },
		func() error { return e.RecordRuns(4, "a1", "a2", "b1") },
		func() error { return e.RecordRuns(1, "a1", "a2", "b1") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return e.Snapshot()
}

func TestDedupeBalls(t *testing.T) {
	balls := []match.BallRecord{
		{ID: "w", InningsNumber: 1, OverNumber: 0, BallNumber: 0, BallType: match.BallWide},
		{ID: "l", InningsNumber: 1, OverNumber: 0, BallNumber: 0, BallType: match.BallLegal},
		{ID: "n", InningsNumber: 1, OverNumber: 0, BallNumber: 1, BallType: match.BallLegal},
		{ID: "x", InningsNumber: 2, OverNumber: 0, BallNumber: 0, BallType: match.BallLegal},
	}
	got := DedupeBalls(balls)
	var ids []string
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	if want := []string{"w", "n", "x"}; !slices.Equal(ids, want) {
		t.Errorf("DedupeBalls ids = %v, want %v", ids, want)
	}
	if len(DedupeBalls(nil)) != 0 {
		t.Error("DedupeBalls(nil) should be empty")
	}
}

func TestFlushIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	a := NewArchiver(repo, quietLogger())
	snap := playedSnapshot(t)

	for i := 0; i < 2; i++ {
		if err := a.Flush(ctx, snap); err != nil {
			t.Fatalf("Flush #%d error = %v", i+1, err)
		}
		if len(repo.matches) != 1 {
			t.Errorf("match records = %d, want 1", len(repo.matches))
		}
		if len(repo.batting) != len(snap.Batting) {
			t.Errorf("batting rows = %d, want %d", len(repo.batting), len(snap.Batting))
		}
		if len(repo.bowling) != len(snap.Bowling) {
			t.Errorf("bowling rows = %d, want %d", len(repo.bowling), len(snap.Bowling))
		}
		if len(repo.balls) != 2 {
			t.Errorf("ball rows = %d, want 2 after dedupe", len(repo.balls))
		}
	}

	career, err := a.Career(ctx, "a1")
	if err != nil {
		t.Fatalf("Career(a1) error = %v", err)
	}
	if career.Runs != 5 || career.BattingInnings != 1 || career.Matches != 1 {
		t.Errorf("a1 career = %+v, want 5 runs in 1 innings of 1 match", career)
	}

	bowler := snap.BowlingRow("b1", 1)
	bc, err := a.Career(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if bc.RunsConceded != bowler.RunsConceded || bc.BowlingInnings != 1 {
		t.Errorf("b1 career = %+v, want %d runs conceded in 1 innings", bc, bowler.RunsConceded)
	}

	// a roster player who never batted still has a career row
	if c, err := a.Career(ctx, "a3"); err != nil || c.Matches != 1 || c.BattingInnings != 0 {
		t.Errorf("a3 career = %+v, %v", c, err)
	}
}

func TestFlushRollsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.failReplace = true
	a := NewArchiver(repo, quietLogger())
	if err := a.Flush(context.Background(), playedSnapshot(t)); err == nil {
		t.Fatal("Flush should fail")
	}
	if len(repo.matches) != 0 || len(repo.careers) != 0 {
		t.Errorf("failed flush left rows behind: %d matches, %d careers", len(repo.matches), len(repo.careers))
	}
}

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	a := NewArchiver(newFakeRepo(), quietLogger())
	if _, err := a.LoadSnapshot(ctx, "nope"); !errors.Is(err, match.ErrMatchNotFound) {
		t.Errorf("LoadSnapshot(nope) err = %v, want match not found", err)
	}

	snap := playedSnapshot(t)
	if err := a.Flush(ctx, snap); err != nil {
		t.Fatal(err)
	}
	got, err := a.LoadSnapshot(ctx, snap.MatchID)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(got.Balls) != len(snap.Balls) {
		t.Errorf("archived snapshot has %d balls, want the full log of %d", len(got.Balls), len(snap.Balls))
	}
	if got.Team1.Score != snap.Team1.Score {
		t.Errorf("Team1.Score = %d, want %d", got.Team1.Score, snap.Team1.Score)
	}
}

func TestCareerNotArchived(t *testing.T) {
	a := NewArchiver(newFakeRepo(), quietLogger())
	if _, err := a.Career(context.Background(), "ghost"); !errors.Is(err, match.ErrPlayerNotFound) {
		t.Errorf("Career(ghost) err = %v, want player not found", err)
	}
}

func TestNewMatchRecord(t *testing.T) {
	snap := playedSnapshot(t)
	r, err := NewMatchRecord(snap)
	if err != nil {
		t.Fatal(err)
	}
	if r.Team1Overs != "0.2" {
		t.Errorf("Team1Overs = %q, want 0.2", r.Team1Overs)
	}
	if len(r.PlayerIDs) != 6 || !r.PlayerIDs.Contains("b3") {
		t.Errorf("PlayerIDs = %v", r.PlayerIDs)
	}
	if r.Status != string(match.StatusLive) {
		t.Errorf("Status = %q", r.Status)
	}
}

func TestNewCareerStatBestFigures(t *testing.T) {
	bowl := stats.AggregateBowling("p", []match.BowlingStatRow{
		{PlayerID: "p", OversCompleted: 4, RunsConceded: 30, Wickets: 2},
		{PlayerID: "p", OversCompleted: 4, RunsConceded: 18, Wickets: 2},
	})
	c := NewCareerStat("p", 2, stats.BattingCareer{}, bowl)
	if c.BestFigures != "2/18" {
		t.Errorf("BestFigures = %q, want 2/18", c.BestFigures)
	}
	if c.BallsBowled != 48 {
		t.Errorf("BallsBowled = %d, want 48", c.BallsBowled)
	}
}

func TestRefreshCareers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	a := NewArchiver(repo, quietLogger())
	if err := a.Flush(ctx, playedSnapshot(t)); err != nil {
		t.Fatal(err)
	}
	repo.careers = map[string]CareerStat{}

	if err := a.RefreshCareers(ctx, []string{"a1"}); err != nil {
		t.Fatalf("RefreshCareers error = %v", err)
	}
	c, err := a.Career(ctx, "a1")
	if err != nil {
		t.Fatalf("Career(a1) error = %v", err)
	}
	if c.Runs != 5 || c.Matches != 1 {
		t.Errorf("a1 career = %+v, want 5 runs in 1 match", c)
	}
	if _, err := a.Career(ctx, "a2"); !errors.Is(err, match.ErrPlayerNotFound) {
		t.Errorf("Career(a2) error = %v, want ErrPlayerNotFound", err)
	}
}
