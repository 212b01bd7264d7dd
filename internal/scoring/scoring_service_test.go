package scoring

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DhavalSuthar-24/crease/internal/archive"
	"github.com/DhavalSuthar-24/crease/internal/commentary"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/store"
)

type fakeArchive struct {
	mu       sync.Mutex
	flushed  map[string]*match.Snapshot
	failNext bool
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{flushed: map[string]*match.Snapshot{}}
}

func (f *fakeArchive) Flush(_ context.Context, snap *match.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errors.New("connection refused")
	}
	f.flushed[snap.MatchID] = snap.Clone()
	return nil
}

func (f *fakeArchive) LoadSnapshot(_ context.Context, matchID string) (*match.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.flushed[matchID]
	if !ok {
		return nil, match.ErrMatchNotFound
	}
	return snap.Clone(), nil
}

func (f *fakeArchive) Career(_ context.Context, playerID string) (*archive.CareerStat, error) {
	return &archive.CareerStat{PlayerID: playerID}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testOptions() match.Options {
	return match.Options{
		Commentary: commentary.NewSeeded(11),
		Now:        func() time.Time { return time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC) },
	}
}

func newTestService(arch Archive) (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewService(st, arch, testOptions(), quietLogger()), st
}

// testSetup is a match between two sides of size players each.
func testSetup(id string, overs, size int) match.Setup {
	team := func(prefix string) match.TeamSetup {
		t := match.TeamSetup{ID: prefix, Name: prefix + " XI"}
		for i := 1; i <= size; i++ {
			pid := prefix + string(rune('0'+i))
			t.Players = append(t.Players, match.Player{ID: pid, Name: "Player " + pid})
		}
		return t
	}
	return match.Setup{
		MatchID:      id,
		TotalOvers:   overs,
		Team1:        team("a"),
		Team2:        team("b"),
		StrikerID:    "a1",
		NonStrikerID: "a2",
		BowlerID:     "b1",
		CreatedBy:    "owner",
	}
}

// must fails the test on a service error: must(t)(svc.Start(...)).
func must(t *testing.T) func(*match.Snapshot, error) *match.Snapshot {
	return func(snap *match.Snapshot, err error) *match.Snapshot {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return snap
	}
}

func TestServiceScoresFromCrease(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))
	must(t)(svc.Start(ctx, "m1", "owner"))

	snap := must(t)(svc.RecordRuns(ctx, "m1", "owner", Delivery{}, 1))
	if snap.Team1.Score != 1 {
		t.Errorf("Score = %d, want 1", snap.Team1.Score)
	}
	if snap.Crease.StrikerID != "a2" || snap.Crease.NonStrikerID != "a1" {
		t.Errorf("crease = %+v, want a2 on strike after a single", snap.Crease)
	}

	got, err := svc.Get(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Balls) != 1 {
		t.Errorf("stored balls = %d, want 1", len(got.Balls))
	}

	card, err := svc.Scorecard(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if len(card.Innings) == 0 || card.Innings[0].Total != 1 {
		t.Errorf("scorecard innings = %+v", card.Innings)
	}
}

func TestServiceOnlyCreatorScores(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))
	if _, err := svc.Start(ctx, "m1", "intruder"); !errors.Is(err, ErrNotScorer) {
		t.Errorf("Start by intruder err = %v, want ErrNotScorer", err)
	}
}

func TestServiceFailedOperationIsNotSaved(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))

	if _, err := svc.RecordRuns(ctx, "m1", "owner", Delivery{}, 4); !errors.Is(err, match.ErrInvalidOperation) {
		t.Fatalf("RecordRuns before start err = %v, want invalid operation", err)
	}
	got, err := svc.Get(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Team1.Score != 0 || len(got.Balls) != 0 {
		t.Errorf("rejected ball was persisted: score %d, %d balls", got.Team1.Score, len(got.Balls))
	}
}

func TestServiceDuplicateMatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))
	if _, err := svc.CreateMatch(ctx, testSetup("m1", 2, 4)); !errors.Is(err, match.ErrInvalidOperation) {
		t.Errorf("duplicate CreateMatch err = %v, want invalid operation", err)
	}
}

func TestServiceUnknownMatch(t *testing.T) {
	svc, _ := newTestService(newFakeArchive())
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, match.ErrMatchNotFound) {
		t.Errorf("Get(ghost) err = %v, want match not found", err)
	}
}

// playToCompletion plays a two-a-side match: a1 is bowled first ball,
// then b1 hits the winning single.
func playToCompletion(t *testing.T, svc *Service, id string) *match.Snapshot {
	t.Helper()
	ctx := context.Background()
	must(t)(svc.CreateMatch(ctx, testSetup(id, 1, 2)))
	must(t)(svc.Start(ctx, id, "owner"))
	snap := must(t)(svc.RecordWicket(ctx, id, "owner", Delivery{}, match.WicketBowled))
	if snap.CurrentInnings != 2 {
		t.Fatalf("CurrentInnings = %d, want 2 after all out", snap.CurrentInnings)
	}
	must(t)(svc.AddBatsman(ctx, id, "owner", "b1", 0))
	must(t)(svc.AddBatsman(ctx, id, "owner", "b2", 0))
	snap, _, err := svc.AddBowler(ctx, id, "owner", "a1", 0)
	must(t)(snap, err)
	return must(t)(svc.RecordRuns(ctx, id, "owner", Delivery{}, 1))
}

func TestServiceArchivesCompletedMatch(t *testing.T) {
	ctx := context.Background()
	arch := newFakeArchive()
	svc, st := newTestService(arch)

	final := playToCompletion(t, svc, "m1")
	if final.Status != match.StatusCompleted {
		t.Fatalf("Status = %s, want completed", final.Status)
	}
	if _, ok := arch.flushed["m1"]; !ok {
		t.Fatal("completed match was not flushed")
	}
	if _, err := st.Load(ctx, "m1"); !errors.Is(err, match.ErrMatchNotFound) {
		t.Errorf("working copy still present after a good flush: %v", err)
	}

	got, err := svc.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("Get after archive error = %v", err)
	}
	if got.ResultText != final.ResultText {
		t.Errorf("ResultText = %q, want %q", got.ResultText, final.ResultText)
	}
}

func TestServiceFlushFailureKeepsCopyForSync(t *testing.T) {
	ctx := context.Background()
	arch := newFakeArchive()
	arch.failNext = true
	svc, st := newTestService(arch)

	playToCompletion(t, svc, "m1")
	if _, err := st.Load(ctx, "m1"); err != nil {
		t.Fatalf("working copy dropped after a failed flush: %v", err)
	}

	if _, err := svc.Sync(ctx, "m1", "intruder"); !errors.Is(err, ErrNotScorer) {
		t.Errorf("Sync by intruder err = %v", err)
	}
	if _, err := svc.Sync(ctx, "m1", "owner"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if _, ok := arch.flushed["m1"]; !ok {
		t.Error("Sync did not flush")
	}
	if _, err := st.Load(ctx, "m1"); !errors.Is(err, match.ErrMatchNotFound) {
		t.Errorf("working copy kept after Sync: %v", err)
	}
}

func TestServiceSyncRequiresCompletion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeArchive())
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))
	if _, err := svc.Sync(ctx, "m1", "owner"); !errors.Is(err, match.ErrInvalidOperation) {
		t.Errorf("Sync of live match err = %v, want invalid operation", err)
	}
}

func TestServiceWithoutArchive(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(nil)
	playToCompletion(t, svc, "m1")
	if _, err := st.Load(ctx, "m1"); err != nil {
		t.Errorf("completed match should stay in the store without an archive: %v", err)
	}
	if _, err := svc.Career(ctx, "a1"); !errors.Is(err, ErrArchiveDisabled) {
		t.Errorf("Career err = %v, want ErrArchiveDisabled", err)
	}
	if _, err := svc.Sync(ctx, "m1", "owner"); !errors.Is(err, ErrArchiveDisabled) {
		t.Errorf("Sync err = %v, want ErrArchiveDisabled", err)
	}
}

func TestServiceAddBowlerWarnsOnConsecutiveOvers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 3, 4)))
	must(t)(svc.Start(ctx, "m1", "owner"))
	for i := 0; i < 6; i++ {
		must(t)(svc.RecordRuns(ctx, "m1", "owner", Delivery{}, 0))
	}

	_, warning, err := svc.AddBowler(ctx, "m1", "owner", "b1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if warning == "" {
		t.Error("expected a warning for b1 bowling consecutive overs")
	}

	snap, warning, err := svc.AddBowler(ctx, "m1", "owner", "b2", 0)
	if err != nil {
		t.Fatal(err)
	}
	if warning != "" {
		t.Errorf("unexpected warning %q for a fresh bowler", warning)
	}
	if snap.Crease.BowlerID != "b2" {
		t.Errorf("BowlerID = %q, want b2", snap.Crease.BowlerID)
	}
}

func TestServiceUndoAndRetireHurt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))
	must(t)(svc.Start(ctx, "m1", "owner"))

	if _, err := svc.Undo(ctx, "m1", "owner"); !errors.Is(err, match.ErrNothingToUndo) {
		t.Errorf("Undo on fresh match err = %v", err)
	}
	must(t)(svc.RecordRuns(ctx, "m1", "owner", Delivery{}, 6))
	snap := must(t)(svc.Undo(ctx, "m1", "owner"))
	if snap.Team1.Score != 0 || len(snap.Balls) != 0 {
		t.Errorf("after undo score = %d with %d balls", snap.Team1.Score, len(snap.Balls))
	}

	snap = must(t)(svc.RetireHurt(ctx, "m1", "owner", ""))
	if snap.Crease.StrikerID != "" {
		t.Errorf("striker slot = %q, want empty after retire hurt", snap.Crease.StrikerID)
	}
	if row := snap.BattingRow("a1", 1); row == nil || row.DismissalType != match.WicketRetiredHurt {
		t.Errorf("a1 row = %+v", row)
	}
	if snap.Team1.Wickets != 0 {
		t.Errorf("Wickets = %d, retire hurt must not count", snap.Team1.Wickets)
	}
}

func TestServiceEndInnings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 2, 4)))
	must(t)(svc.Start(ctx, "m1", "owner"))
	must(t)(svc.RecordRuns(ctx, "m1", "owner", Delivery{}, 4))

	snap := must(t)(svc.EndInnings(ctx, "m1", "owner"))
	if snap.CurrentInnings != 2 || snap.Target == nil || *snap.Target != 5 {
		t.Errorf("after EndInnings innings = %d target = %v, want 2 and 5", snap.CurrentInnings, snap.Target)
	}
}

func TestServiceSerializesWrites(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	must(t)(svc.CreateMatch(ctx, testSetup("m1", 20, 4)))
	must(t)(svc.Start(ctx, "m1", "owner"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.RecordRuns(ctx, "m1", "owner", Delivery{}, 2); err != nil {
				t.Errorf("RecordRuns: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Team1.Score != 40 || len(got.Balls) != 20 {
		t.Errorf("score %d with %d balls, want 40 with 20", got.Team1.Score, len(got.Balls))
	}
}
