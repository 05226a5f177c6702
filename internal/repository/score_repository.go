package repository

import (
	"context"

	"gorm.io/gorm"

	"arcadestore/internal/model"
)

// ScoreRepository defines score persistence operations.
type ScoreRepository interface {
	Create(ctx context.Context, score *model.Score) error
	// TopByGame returns at most limit scores for a game, highest first.
	// Ties break on achieved time then id, so the order is deterministic
	// for a fixed data set.
	TopByGame(ctx context.Context, gameID string, limit int) ([]model.Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(ctx context.Context, score *model.Score) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *scoreRepository) TopByGame(ctx context.Context, gameID string, limit int) ([]model.Score, error) {
	var scores []model.Score
	if err := r.db.WithContext(ctx).Preload("User").
		Where("game_id = ?", gameID).
		Order("score DESC").
		Order("achieved_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
