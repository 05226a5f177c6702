package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"arcadestore/internal/cache"
	"arcadestore/internal/errors"
	"arcadestore/internal/model"
	"arcadestore/internal/repository"
)

const (
	// rankingsLimit caps the leaderboard at the top ten scores.
	rankingsLimit = 10

	rankingsCacheTTL = 30 * time.Second
)

func rankingsCacheKey(gameID string) string {
	return "rankings:" + gameID
}

// CommerceService covers the purchase workflow, the owned library, score
// submission, and leaderboard queries.
type CommerceService interface {
	// Purchase buys the game for the caller at its current price. The
	// returned flag reports whether the game was free.
	Purchase(ctx context.Context, caller *model.User, gameID string) (*model.Purchase, bool, error)
	Library(ctx context.Context, userID string) ([]*model.Game, error)
	SubmitScore(ctx context.Context, caller *model.User, gameID string, score uint, gameData map[string]interface{}) (*model.Score, error)
	Rankings(ctx context.Context, gameID string) ([]model.RankingEntry, error)
}

type commerceService struct {
	userRepo     repository.UserRepository
	gameRepo     repository.GameRepository
	purchaseRepo repository.PurchaseRepository
	scoreRepo    repository.ScoreRepository
	cache        *cache.Client
}

// NewCommerceService creates a new commerce service.
func NewCommerceService(
	userRepo repository.UserRepository,
	gameRepo repository.GameRepository,
	purchaseRepo repository.PurchaseRepository,
	scoreRepo repository.ScoreRepository,
	cache *cache.Client,
) CommerceService {
	return &commerceService{
		userRepo:     userRepo,
		gameRepo:     gameRepo,
		purchaseRepo: purchaseRepo,
		scoreRepo:    scoreRepo,
		cache:        cache,
	}
}

func (s *commerceService) Purchase(ctx context.Context, caller *model.User, gameID string) (*model.Purchase, bool, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.ErrGameNotFound
		}
		return nil, false, fmt.Errorf("load game: %w", err)
	}

	if _, err := s.purchaseRepo.FindByUserAndGame(ctx, caller.ID, game.ID); err == nil {
		return nil, false, errors.ErrAlreadyOwned
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("check existing purchase: %w", err)
	}

	purchase := &model.Purchase{
		UserID:        caller.ID,
		GameID:        game.ID,
		Price:         game.Price, // snapshot at purchase time
		PaymentMethod: model.PaymentMethodFictitious,
	}

	if err := s.purchaseRepo.CreateWithOwnership(ctx, purchase); err != nil {
		// Concurrent purchase of the same pair loses on the unique index
		// and is reported the same way as a repeated attempt.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, errors.ErrAlreadyOwned
		}
		return nil, false, fmt.Errorf("record purchase: %w", err)
	}

	return purchase, game.IsFree(), nil
}

// Library returns the caller's owned set fully resolved to game documents.
func (s *commerceService) Library(ctx context.Context, userID string) ([]*model.Game, error) {
	user, err := s.userRepo.FindByIDWithGames(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load library: %w", err)
	}
	if user.OwnedGames == nil {
		return []*model.Game{}, nil
	}
	return user.OwnedGames, nil
}

// SubmitScore records a new score. The caller must own the game or the game
// must be free; every submission creates a new record.
func (s *commerceService) SubmitScore(ctx context.Context, caller *model.User, gameID string, score uint, gameData map[string]interface{}) (*model.Score, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrGameNotFound
		}
		return nil, fmt.Errorf("load game: %w", err)
	}

	if !game.IsFree() {
		if _, err := s.purchaseRepo.FindByUserAndGame(ctx, caller.ID, game.ID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.ErrNotEntitled
			}
			return nil, fmt.Errorf("check entitlement: %w", err)
		}
	}

	if gameData == nil {
		gameData = map[string]interface{}{}
	}
	record := &model.Score{
		UserID:   caller.ID,
		GameID:   game.ID,
		Score:    score,
		GameData: datatypes.JSONMap(gameData),
	}

	if err := s.scoreRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record score: %w", err)
	}
	_ = s.cache.Delete(ctx, rankingsCacheKey(game.ID))

	return record, nil
}

// Rankings returns up to the top ten scores for a game, highest first, with
// player names attached. Results are cached briefly.
func (s *commerceService) Rankings(ctx context.Context, gameID string) ([]model.RankingEntry, error) {
	key := rankingsCacheKey(gameID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.RankingEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	scores, err := s.scoreRepo.TopByGame(ctx, gameID, rankingsLimit)
	if err != nil {
		return nil, fmt.Errorf("load rankings: %w", err)
	}

	entries := make([]model.RankingEntry, 0, len(scores))
	for i := range scores {
		entry := model.RankingEntry{
			ID:         scores[i].ID,
			PlayerID:   scores[i].UserID,
			Score:      scores[i].Score,
			GameData:   scores[i].GameData,
			AchievedAt: scores[i].AchievedAt,
		}
		if scores[i].User != nil {
			entry.PlayerName = scores[i].User.FullName
		}
		entries = append(entries, entry)
	}

	if payload, err := json.Marshal(entries); err == nil {
		_ = s.cache.Set(ctx, key, payload, rankingsCacheTTL)
	}
	return entries, nil
}
