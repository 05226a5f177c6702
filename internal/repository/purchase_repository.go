package repository

import (
	"context"

	"gorm.io/gorm"

	"arcadestore/internal/model"
)

// PurchaseRepository defines purchase persistence operations.
type PurchaseRepository interface {
	FindByUserAndGame(ctx context.Context, userID, gameID string) (*model.Purchase, error)
	// CreateWithOwnership inserts the purchase record and appends the game to
	// the user's owned set in a single transaction. The composite unique
	// index on (user_id, game_id) backstops concurrent duplicates.
	CreateWithOwnership(ctx context.Context, purchase *model.Purchase) error
}

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository.
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) FindByUserAndGame(ctx context.Context, userID, gameID string) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) CreateWithOwnership(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		user := model.User{ID: purchase.UserID}
		game := model.Game{ID: purchase.GameID}
		return tx.Model(&user).Association("OwnedGames").Append(&game)
	})
}
