package repository

import (
	"context"

	"gorm.io/gorm"

	"arcadestore/internal/model"
)

// GameRepository defines catalog persistence operations.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Game, error)
	FindByIDWithCreator(ctx context.Context, id string) (*model.Game, error)
	ListActive(ctx context.Context) ([]model.Game, error)
	FindByGameType(ctx context.Context, gameType model.GameType) (*model.Game, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

// Delete permanently removes the catalog entry.
func (r *gameRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Game{}).Error
}

func (r *gameRepository) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByIDWithCreator loads the game with its creator for listing responses.
func (r *gameRepository) FindByIDWithCreator(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Preload("CreatedBy").
		Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// ListActive returns every active catalog entry, newest first, with creators.
func (r *gameRepository) ListActive(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := r.db.WithContext(ctx).Preload("CreatedBy").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// FindByGameType returns the first entry with the given mini-game tag. Used
// by bootstrap seeding to keep default games idempotent.
func (r *gameRepository) FindByGameType(ctx context.Context, gameType model.GameType) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("game_type = ?", gameType).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}
