// Package archive flushes completed matches into Postgres and keeps the
// career tables built from them.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/rules"
	"github.com/DhavalSuthar-24/crease/internal/stats"
)

// Archiver is the sync boundary between the working copy and the archive.
type Archiver struct {
	repo   Repository
	logger *logrus.Logger
	now    func() time.Time
}

func NewArchiver(repo Repository, logger *logrus.Logger) *Archiver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Archiver{repo: repo, logger: logger, now: time.Now}
}

// Flush writes snap and every row derived from it in one transaction, then
// rebuilds the careers of everyone on both rosters. Flushing the same
// snapshot twice leaves the archive unchanged.
func (a *Archiver) Flush(ctx context.Context, snap *match.Snapshot) error {
	if snap == nil {
		return match.ErrStateNotFound
	}
	record, err := NewMatchRecord(snap)
	if err != nil {
		return err
	}

	batting := make([]BattingStatRecord, 0, len(snap.Batting))
	for _, r := range snap.Batting {
		batting = append(batting, toBattingRecord(snap.MatchID, r))
	}
	bowling := make([]BowlingStatRecord, 0, len(snap.Bowling))
	for _, r := range snap.Bowling {
		bowling = append(bowling, toBowlingRecord(snap.MatchID, r))
	}
	balls := make([]BallRow, 0, len(snap.Balls))
	for _, b := range DedupeBalls(snap.Balls) {
		balls = append(balls, toBallRow(snap.MatchID, b))
	}

	err = a.repo.WithTransaction(func(tx Repository) error {
		if err := tx.SaveMatch(ctx, record); err != nil {
			return fmt.Errorf("save match record: %w", err)
		}
		if err := tx.ReplaceMatchRows(ctx, snap.MatchID, batting, bowling, balls); err != nil {
			return fmt.Errorf("replace match rows: %w", err)
		}
		return refreshCareers(ctx, tx, record.PlayerIDs, a.now())
	})
	if err != nil {
		return fmt.Errorf("flush match %s: %w", snap.MatchID, err)
	}

	a.logger.WithFields(logrus.Fields{
		"match_id": snap.MatchID,
		"balls":    len(balls),
		"players":  len(record.PlayerIDs),
	}).Info("Match archived")
	return nil
}

// RefreshCareers rebuilds the career line of each player from every row in
// the archive.
func (a *Archiver) RefreshCareers(ctx context.Context, playerIDs []string) error {
	return a.repo.WithTransaction(func(tx Repository) error {
		return refreshCareers(ctx, tx, playerIDs, a.now())
	})
}

func refreshCareers(ctx context.Context, repo Repository, playerIDs []string, now time.Time) error {
	for _, id := range playerIDs {
		batRecords, err := repo.PlayerBatting(ctx, id)
		if err != nil {
			return fmt.Errorf("load batting of %s: %w", id, err)
		}
		bowlRecords, err := repo.PlayerBowling(ctx, id)
		if err != nil {
			return fmt.Errorf("load bowling of %s: %w", id, err)
		}
		matches, err := repo.CountPlayerMatches(ctx, id)
		if err != nil {
			return fmt.Errorf("count matches of %s: %w", id, err)
		}

		batRows := make([]match.BattingStatRow, len(batRecords))
		for i, r := range batRecords {
			batRows[i] = r.toRow()
		}
		bowlRows := make([]match.BowlingStatRow, len(bowlRecords))
		for i, r := range bowlRecords {
			bowlRows[i] = r.toRow()
		}

		career := NewCareerStat(id, int(matches),
			stats.AggregateBatting(id, batRows),
			stats.AggregateBowling(id, bowlRows))
		career.UpdatedAt = now
		if err := repo.SaveCareer(ctx, career); err != nil {
			return fmt.Errorf("save career of %s: %w", id, err)
		}
	}
	return nil
}

// LoadSnapshot reads a completed match back from its archived JSON.
func (a *Archiver) LoadSnapshot(ctx context.Context, matchID string) (*match.Snapshot, error) {
	record, err := a.repo.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, ErrNotArchived) {
			return nil, match.ErrMatchNotFound
		}
		return nil, err
	}
	var snap match.Snapshot
	if err := json.Unmarshal(record.Snapshot, &snap); err != nil {
		return nil, fmt.Errorf("decode archived match %s: %w", matchID, err)
	}
	return &snap, nil
}

// Career returns the stored career line of a player.
func (a *Archiver) Career(ctx context.Context, playerID string) (*CareerStat, error) {
	career, err := a.repo.GetCareer(ctx, playerID)
	if err != nil {
		if errors.Is(err, ErrNotArchived) {
			return nil, match.ErrPlayerNotFound
		}
		return nil, err
	}
	return career, nil
}

// DedupeBalls drops every record whose (innings, over, ball) position was
// already taken, keeping the first. Extras share a ball number with the
// delivery that follows them, so only one row per position reaches the
// archive table. The full log stays in the archived snapshot.
func DedupeBalls(balls []match.BallRecord) []match.BallRecord {
	type position struct{ innings, over, ball int }
	seen := make(map[position]bool, len(balls))
	out := make([]match.BallRecord, 0, len(balls))
	for _, b := range balls {
		key := position{b.InningsNumber, b.OverNumber, b.BallNumber}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, b)
	}
	return out
}

// NewMatchRecord builds the archive header for snap.
func NewMatchRecord(snap *match.Snapshot) (*MatchRecord, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	ids := make([]string, 0, len(snap.Team1.Players)+len(snap.Team2.Players))
	for _, p := range snap.Team1.Players {
		ids = append(ids, p.ID)
	}
	for _, p := range snap.Team2.Players {
		ids = append(ids, p.ID)
	}
	return &MatchRecord{
		ID:           snap.MatchID,
		CreatedBy:    snap.CreatedBy,
		Venue:        snap.Venue,
		TotalOvers:   snap.TotalOvers,
		Team1ID:      snap.Team1.ID,
		Team1Name:    snap.Team1.Name,
		Team1Score:   snap.Team1.Score,
		Team1Wickets: snap.Team1.Wickets,
		Team1Overs:   rules.FormatOvers(snap.Team1.Overs, snap.Team1.Balls),
		Team2ID:      snap.Team2.ID,
		Team2Name:    snap.Team2.Name,
		Team2Score:   snap.Team2.Score,
		Team2Wickets: snap.Team2.Wickets,
		Team2Overs:   rules.FormatOvers(snap.Team2.Overs, snap.Team2.Balls),
		Target:       snap.Target,
		Status:       string(snap.Status),
		ResultText:   snap.ResultText,
		WinnerTeamID: snap.WinnerTeamID,
		PlayerIDs:    ids,
		Snapshot:     datatypes.JSON(data),
		StartedAt:    snap.StartedAt,
		CompletedAt:  snap.CompletedAt,
		CreatedAt:    snap.CreatedAt,
	}, nil
}

// NewCareerStat flattens the two aggregates into one career row.
func NewCareerStat(playerID string, matches int, bat stats.BattingCareer, bowl stats.BowlingCareer) *CareerStat {
	c := &CareerStat{
		PlayerID:        playerID,
		Matches:         matches,
		BattingInnings:  bat.Innings,
		NotOuts:         bat.NotOuts,
		Runs:            bat.Runs,
		BallsFaced:      bat.Balls,
		Fours:           bat.Fours,
		Sixes:           bat.Sixes,
		HighestScore:    bat.Highest,
		HighestNotOut:   bat.HighestNotOut,
		Fifties:         bat.Fifties,
		Hundreds:        bat.Hundreds,
		Ducks:           bat.Ducks,
		BattingAverage:  bat.Average,
		BattingStrike:   bat.StrikeRate,
		BowlingInnings:  bowl.Innings,
		BallsBowled:     bowl.Balls,
		RunsConceded:    bowl.Runs,
		Wickets:         bowl.Wickets,
		Maidens:         bowl.Maidens,
		FiveWicketHauls: bowl.FiveWicketHauls,
		BowlingAverage:  bowl.Average,
		Economy:         bowl.Economy,
		BowlingStrike:   bowl.StrikeRate,
	}
	if bowl.Best != nil {
		c.BestFigures = bowl.Best.String()
	}
	return c
}
