package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"arcadestore/internal/cache"
	"arcadestore/internal/errors"
	"arcadestore/internal/model"
	"arcadestore/internal/repository"
)

const (
	activeGamesCacheKey = "games:active"
	activeGamesCacheTTL = time.Minute
)

// CreateGameInput carries the fields a creator supplies for a new entry.
// The creator reference always comes from the authenticated caller.
type CreateGameInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    model.Category
	Icon        string
	GameType    model.GameType
	IsActive    *bool
}

// UpdateGameInput carries a partial update; nil fields are left unchanged.
type UpdateGameInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *model.Category
	Icon        *string
	GameType    *model.GameType
	IsActive    *bool
}

// CatalogService is CRUD over catalog entries with the creator-or-admin rule.
type CatalogService interface {
	List(ctx context.Context) ([]model.WithCreator, error)
	Get(ctx context.Context, id string) (*model.WithCreator, error)
	Create(ctx context.Context, caller *model.User, in CreateGameInput) (*model.WithCreator, error)
	Update(ctx context.Context, caller *model.User, id string, in UpdateGameInput) (*model.WithCreator, error)
	Delete(ctx context.Context, caller *model.User, id string) error
}

type catalogService struct {
	gameRepo repository.GameRepository
	cache    *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(gameRepo repository.GameRepository, cache *cache.Client) CatalogService {
	return &catalogService{gameRepo: gameRepo, cache: cache}
}

// List returns all active entries, newest first, creators attached. The
// result is cached briefly; any catalog write invalidates it.
func (s *catalogService) List(ctx context.Context) ([]model.WithCreator, error) {
	if data, _ := s.cache.Get(ctx, activeGamesCacheKey); data != nil {
		var cached []model.WithCreator
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	games, err := s.gameRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]model.WithCreator, 0, len(games))
	for i := range games {
		out = append(out, games[i].Attach())
	}

	if payload, err := json.Marshal(out); err == nil {
		_ = s.cache.Set(ctx, activeGamesCacheKey, payload, activeGamesCacheTTL)
	}
	return out, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.WithCreator, error) {
	game, err := s.gameRepo.FindByIDWithCreator(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrGameNotFound
		}
		return nil, fmt.Errorf("load game: %w", err)
	}
	attached := game.Attach()
	return &attached, nil
}

func (s *catalogService) Create(ctx context.Context, caller *model.User, in CreateGameInput) (*model.WithCreator, error) {
	game := &model.Game{
		ID:          model.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Icon:        in.Icon,
		GameType:    in.GameType,
		IsActive:    true,
		CreatedByID: caller.ID,
	}
	if in.IsActive != nil {
		game.IsActive = *in.IsActive
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	_ = s.cache.Delete(ctx, activeGamesCacheKey)

	return s.Get(ctx, game.ID)
}

// Update merges the supplied fields onto the entry. Only the creator or an
// admin may update.
func (s *catalogService) Update(ctx context.Context, caller *model.User, id string, in UpdateGameInput) (*model.WithCreator, error) {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrGameNotFound
		}
		return nil, fmt.Errorf("load game: %w", err)
	}

	if game.CreatedByID != caller.ID && !caller.IsAdmin() {
		return nil, errors.ErrNotGameOwner
	}

	if in.Name != nil {
		game.Name = *in.Name
	}
	if in.Description != nil {
		game.Description = *in.Description
	}
	if in.Price != nil {
		game.Price = *in.Price
	}
	if in.Category != nil {
		game.Category = *in.Category
	}
	if in.Icon != nil {
		game.Icon = *in.Icon
	}
	if in.GameType != nil {
		game.GameType = *in.GameType
	}
	if in.IsActive != nil {
		game.IsActive = *in.IsActive
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	_ = s.cache.Delete(ctx, activeGamesCacheKey)

	return s.Get(ctx, game.ID)
}

// Delete permanently removes the entry, under the same creator-or-admin rule.
func (s *catalogService) Delete(ctx context.Context, caller *model.User, id string) error {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrGameNotFound
		}
		return fmt.Errorf("load game: %w", err)
	}

	if game.CreatedByID != caller.ID && !caller.IsAdmin() {
		return errors.ErrNotGameOwner
	}

	if err := s.gameRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	_ = s.cache.Delete(ctx, activeGamesCacheKey, rankingsCacheKey(id))
	return nil
}
