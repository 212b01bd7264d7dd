package archive

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotArchived is returned when a match or player has no archived rows.
var ErrNotArchived = errors.New("not archived")

// Repository defines methods to interact with the archive tables
type Repository interface {
	// Match methods
	SaveMatch(ctx context.Context, record *MatchRecord) error
	GetMatch(ctx context.Context, matchID string) (*MatchRecord, error)
	ReplaceMatchRows(ctx context.Context, matchID string, batting []BattingStatRecord, bowling []BowlingStatRecord, balls []BallRow) error

	// Player methods
	PlayerBatting(ctx context.Context, playerID string) ([]BattingStatRecord, error)
	PlayerBowling(ctx context.Context, playerID string) ([]BowlingStatRecord, error)
	CountPlayerMatches(ctx context.Context, playerID string) (int64, error)
	SaveCareer(ctx context.Context, career *CareerStat) error
	GetCareer(ctx context.Context, playerID string) (*CareerStat, error)

	// Transaction support
	WithTransaction(txFunc func(Repository) error) error
}

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// AutoMigrate creates or updates every archive table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// WithTransaction implements transaction support
func (r *GormRepository) WithTransaction(txFunc func(Repository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// SaveMatch inserts or updates the match header
func (r *GormRepository) SaveMatch(ctx context.Context, record *MatchRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// GetMatch retrieves an archived match by id
func (r *GormRepository) GetMatch(ctx context.Context, matchID string) (*MatchRecord, error) {
	var record MatchRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotArchived
		}
		return nil, err
	}
	return &record, nil
}

// ReplaceMatchRows deletes every stat and ball row of a match and inserts
// the given ones, so a repeated flush never duplicates rows.
func (r *GormRepository) ReplaceMatchRows(ctx context.Context, matchID string, batting []BattingStatRecord, bowling []BowlingStatRecord, balls []BallRow) error {
	db := r.db.WithContext(ctx)
	// Unscoped so soft-deleted rows do not collide on re-insert
	if err := db.Unscoped().Where("match_id = ?", matchID).Delete(&BattingStatRecord{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("match_id = ?", matchID).Delete(&BowlingStatRecord{}).Error; err != nil {
		return err
	}
	if err := db.Where("match_id = ?", matchID).Delete(&BallRow{}).Error; err != nil {
		return err
	}

	if len(batting) > 0 {
		if err := db.CreateInBatches(&batting, 100).Error; err != nil {
			return err
		}
	}
	if len(bowling) > 0 {
		if err := db.CreateInBatches(&bowling, 100).Error; err != nil {
			return err
		}
	}
	if len(balls) > 0 {
		if err := db.CreateInBatches(&balls, 200).Error; err != nil {
			return err
		}
	}
	return nil
}

// PlayerBatting returns every archived batting row of a player
func (r *GormRepository) PlayerBatting(ctx context.Context, playerID string) ([]BattingStatRecord, error) {
	var rows []BattingStatRecord
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// PlayerBowling returns every archived bowling row of a player
func (r *GormRepository) PlayerBowling(ctx context.Context, playerID string) ([]BowlingStatRecord, error) {
	var rows []BowlingStatRecord
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// CountPlayerMatches counts the archived matches a player was named in
func (r *GormRepository) CountPlayerMatches(ctx context.Context, playerID string) (int64, error) {
	needle, err := json.Marshal([]string{playerID})
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(&MatchRecord{}).
		Where("player_ids @> ?::jsonb", string(needle)).
		Count(&count).Error
	return count, err
}

// SaveCareer inserts or replaces a career line
func (r *GormRepository) SaveCareer(ctx context.Context, career *CareerStat) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		UpdateAll: true,
	}).Create(career).Error
}

// GetCareer retrieves a career line by player id
func (r *GormRepository) GetCareer(ctx context.Context, playerID string) (*CareerStat, error) {
	var career CareerStat
	if err := r.db.WithContext(ctx).First(&career, "player_id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotArchived
		}
		return nil, err
	}
	return &career, nil
}
