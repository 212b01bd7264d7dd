// Package scoring runs the match engine behind a store and exposes it over HTTP.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DhavalSuthar-24/crease/internal/archive"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/rules"
	"github.com/DhavalSuthar-24/crease/internal/stats"
)

var (
	// ErrNotScorer is returned when someone other than the match creator scores.
	ErrNotScorer = errors.New("only the match creator may score this match")
	// ErrArchiveDisabled is returned by archive reads when no database is configured.
	ErrArchiveDisabled = errors.New("match archive is not configured")
)

// Archive is the completed-match sink. *archive.Archiver satisfies it.
type Archive interface {
	Flush(ctx context.Context, snap *match.Snapshot) error
	LoadSnapshot(ctx context.Context, matchID string) (*match.Snapshot, error)
	Career(ctx context.Context, playerID string) (*archive.CareerStat, error)
}

// Delivery names the players involved in one ball. Empty ids are taken
// from the crease.
type Delivery struct {
	StrikerID    string
	NonStrikerID string
	BowlerID     string
}

func (d Delivery) withCrease(c match.Crease) Delivery {
	if d.StrikerID == "" {
		d.StrikerID = c.StrikerID
	}
	if d.NonStrikerID == "" {
		d.NonStrikerID = c.NonStrikerID
	}
	if d.BowlerID == "" {
		d.BowlerID = c.BowlerID
	}
	return d
}

// Service serializes writes per match, persists the working copy after
// every operation and archives the match once it completes.
type Service struct {
	store   match.Store
	archive Archive
	opts    match.Options
	logger  *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds a Service. archive may be nil, in which case completed
// matches stay in the working store.
func NewService(store match.Store, archive Archive, opts match.Options, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:   store,
		archive: archive,
		opts:    opts,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Service) lock(matchID string) func() {
	s.mu.Lock()
	l, ok := s.locks[matchID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[matchID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// CreateMatch builds and stores a new not-started match.
func (s *Service) CreateMatch(ctx context.Context, setup match.Setup) (*match.Snapshot, error) {
	snap, err := match.NewMatch(setup, s.opts.Now())
	if err != nil {
		return nil, err
	}
	defer s.lock(snap.MatchID)()

	if _, err := s.store.Load(ctx, snap.MatchID); err == nil {
		return nil, &match.Error{Kind: match.KindInvalidOperation, Message: fmt.Sprintf("match %s already exists", snap.MatchID)}
	} else if !errors.Is(err, match.ErrMatchNotFound) {
		return nil, err
	}
	if err := s.store.Save(ctx, &match.State{Current: snap}); err != nil {
		return nil, fmt.Errorf("save new match: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"match_id":   snap.MatchID,
		"op":         "create",
		"created_by": snap.CreatedBy,
	}).Info("Match created")
	return snap, nil
}

// Get returns the live snapshot, or the archived one once the working copy
// has been discarded.
func (s *Service) Get(ctx context.Context, matchID string) (*match.Snapshot, error) {
	st, err := s.store.Load(ctx, matchID)
	if err == nil {
		return st.Current, nil
	}
	if !errors.Is(err, match.ErrMatchNotFound) || s.archive == nil {
		return nil, err
	}
	return s.archive.LoadSnapshot(ctx, matchID)
}

// Scorecard builds the scorecard of a live or archived match.
func (s *Service) Scorecard(ctx context.Context, matchID string) (stats.Scorecard, error) {
	snap, err := s.Get(ctx, matchID)
	if err != nil {
		return stats.Scorecard{}, err
	}
	return stats.BuildScorecard(snap), nil
}

// Career returns a player's archived career line.
func (s *Service) Career(ctx context.Context, playerID string) (*archive.CareerStat, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.Career(ctx, playerID)
}

func (s *Service) Start(ctx context.Context, matchID, actorID string) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "start", func(e *match.Engine) error {
		return e.Start()
	})
}

func (s *Service) RecordRuns(ctx context.Context, matchID, actorID string, d Delivery, runs int) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "runs", func(e *match.Engine) error {
		d = d.withCrease(e.Snapshot().Crease)
		return e.RecordRuns(runs, d.StrikerID, d.NonStrikerID, d.BowlerID)
	})
}

func (s *Service) RecordWide(ctx context.Context, matchID, actorID string, d Delivery, additionalRuns int) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "wide", func(e *match.Engine) error {
		d = d.withCrease(e.Snapshot().Crease)
		return e.RecordWide(d.StrikerID, d.NonStrikerID, d.BowlerID, additionalRuns)
	})
}

func (s *Service) RecordNoBall(ctx context.Context, matchID, actorID string, d Delivery, additionalRuns int) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "no_ball", func(e *match.Engine) error {
		d = d.withCrease(e.Snapshot().Crease)
		return e.RecordNoBall(d.StrikerID, d.NonStrikerID, d.BowlerID, additionalRuns)
	})
}

func (s *Service) RecordWicket(ctx context.Context, matchID, actorID string, d Delivery, wicketType match.WicketType) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "wicket", func(e *match.Engine) error {
		d = d.withCrease(e.Snapshot().Crease)
		return e.RecordWicket(d.StrikerID, d.NonStrikerID, d.BowlerID, wicketType)
	})
}

func (s *Service) RetireHurt(ctx context.Context, matchID, actorID, strikerID string) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "retire_hurt", func(e *match.Engine) error {
		if strikerID == "" {
			strikerID = e.Snapshot().Crease.StrikerID
		}
		return e.RetireHurt(strikerID)
	})
}

// AddBatsman brings playerID in. A zero innings means the current one.
func (s *Service) AddBatsman(ctx context.Context, matchID, actorID, playerID string, innings int) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "add_batsman", func(e *match.Engine) error {
		if innings == 0 {
			innings = e.Snapshot().CurrentInnings
		}
		return e.AddBatsman(playerID, innings)
	})
}

// AddBowler makes playerID the current bowler. The returned warning is set
// when the same bowler also bowled the previous over; it is advisory only.
func (s *Service) AddBowler(ctx context.Context, matchID, actorID, playerID string, innings int) (*match.Snapshot, string, error) {
	var warning string
	snap, err := s.apply(ctx, matchID, actorID, "add_bowler", func(e *match.Engine) error {
		cur := e.Snapshot()
		if innings == 0 {
			innings = cur.CurrentInnings
		}
		if !rules.CanBowlNextOver(playerID, cur.Crease.LastOverBowlerID) {
			warning = fmt.Sprintf("%s also bowled the previous over", cur.PlayerName(playerID))
		}
		return e.AddBowler(playerID, innings)
	})
	if err != nil {
		return nil, "", err
	}
	return snap, warning, nil
}

func (s *Service) Undo(ctx context.Context, matchID, actorID string) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "undo", func(e *match.Engine) error {
		return e.UndoLastBall()
	})
}

func (s *Service) EndInnings(ctx context.Context, matchID, actorID string) (*match.Snapshot, error) {
	return s.apply(ctx, matchID, actorID, "end_innings", func(e *match.Engine) error {
		return e.EndInnings()
	})
}

// Sync retries the archive flush of a completed match whose earlier flush
// failed.
func (s *Service) Sync(ctx context.Context, matchID, actorID string) (*match.Snapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	defer s.lock(matchID)()

	st, err := s.store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := authorize(st.Current, actorID); err != nil {
		return nil, err
	}
	if st.Current.Status != match.StatusCompleted {
		return nil, &match.Error{Kind: match.KindInvalidOperation, Message: fmt.Sprintf("match %s is not completed", matchID)}
	}
	if err := s.flush(ctx, st.Current); err != nil {
		return nil, err
	}
	return st.Current, nil
}

func authorize(snap *match.Snapshot, actorID string) error {
	if snap.CreatedBy != "" && snap.CreatedBy != actorID {
		return ErrNotScorer
	}
	return nil
}

// apply loads the state, runs op through an engine and saves the result.
// The state is only saved when op succeeds.
func (s *Service) apply(ctx context.Context, matchID, actorID, op string, fn func(*match.Engine) error) (*match.Snapshot, error) {
	defer s.lock(matchID)()

	st, err := s.store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := authorize(st.Current, actorID); err != nil {
		return nil, err
	}
	wasCompleted := st.Current.Status == match.StatusCompleted

	e, err := match.NewEngine(st, s.opts)
	if err != nil {
		return nil, err
	}
	log := s.logger.WithFields(logrus.Fields{
		"match_id": matchID,
		"op":       op,
		"innings":  st.Current.CurrentInnings,
	})
	if err := fn(e); err != nil {
		log.WithError(err).Debug("Operation rejected")
		return nil, err
	}

	st = e.State()
	if err := st.Current.Validate(); err != nil {
		log.WithError(err).Error("Operation produced an inconsistent snapshot")
		return nil, err
	}
	if err := s.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save match %s: %w", matchID, err)
	}
	log.WithField("score", fmt.Sprintf("%d/%d", st.Current.BattingTeam().Score, st.Current.BattingTeam().Wickets)).
		Info("Match updated")

	if !wasCompleted && st.Current.Status == match.StatusCompleted && s.archive != nil {
		// the working copy is kept for Sync when the flush fails
		if err := s.flush(ctx, st.Current); err != nil {
			log.WithError(err).Error("Archive flush failed")
		}
	}
	return st.Current, nil
}

func (s *Service) flush(ctx context.Context, snap *match.Snapshot) error {
	if err := s.archive.Flush(ctx, snap); err != nil {
		return fmt.Errorf("archive match %s: %w", snap.MatchID, err)
	}
	if err := s.store.Delete(ctx, snap.MatchID); err != nil {
		s.logger.WithError(err).WithField("match_id", snap.MatchID).Warn("Archived match left in working store")
	}
	return nil
}
