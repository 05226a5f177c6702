package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethodFictitious marks purchases made without a real payment rail.
const PaymentMethodFictitious = "fictitious"

// Purchase records that a user acquired a game. The price is a snapshot taken
// at purchase time, not a live join to the game's current price.
type Purchase struct {
	ID            string          `json:"id" gorm:"type:char(24);primaryKey"`
	UserID        string          `json:"user" gorm:"type:char(24);not null;uniqueIndex:idx_user_game"`
	GameID        string          `json:"game" gorm:"type:char(24);not null;uniqueIndex:idx_user_game"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	PaymentMethod string          `json:"paymentMethod" gorm:"size:50;not null;default:'fictitious'"`
	Reference     string          `json:"reference" gorm:"type:char(36);not null"` // receipt reference
	PurchasedAt   time.Time       `json:"purchaseDate" gorm:"autoCreateTime"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
	Game *Game `json:"-" gorm:"foreignKey:GameID"`
}

// BeforeCreate assigns the identifier and receipt reference.
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = PaymentMethodFictitious
	}
	if p.Reference == "" {
		p.Reference = uuid.New().String()
	}
	return nil
}
