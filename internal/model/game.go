package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category classifies a catalog entry for browsing.
type Category string

const (
	CategoryAction    Category = "action"
	CategoryPuzzle    Category = "puzzle"
	CategoryStrategy  Category = "strategy"
	CategoryAdventure Category = "adventure"
	CategoryArcade    Category = "arcade"
	CategoryOther     Category = "other"
)

// GameType tags which embedded mini-game handles a catalog entry.
type GameType string

const (
	GameTypeBalloonPop GameType = "balloon-pop"
	GameTypePuzzle     GameType = "puzzle"
	GameTypeOther      GameType = "other"
)

// Game represents a purchasable catalog entry.
type Game struct {
	ID          string          `json:"id" gorm:"type:char(24);primaryKey"`
	Name        string          `json:"name" gorm:"size:100;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Category    Category        `json:"category" gorm:"type:varchar(20);not null;index"`
	Icon        string          `json:"icon" gorm:"size:512"`
	GameType    GameType        `json:"gameType" gorm:"type:varchar(20);not null;index"`
	IsActive    bool            `json:"isActive" gorm:"default:true;index"`
	CreatedByID string          `json:"-" gorm:"type:char(24);not null;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	CreatedBy *User `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

// BeforeCreate assigns an identifier before inserting the record.
func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = NewID()
	}
	return nil
}

// IsFree reports whether the game costs nothing. Free games can be played
// and scored without a purchase.
func (g *Game) IsFree() bool {
	return g.Price.IsZero()
}

// Creator is the name/email projection attached to listed games.
type Creator struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// WithCreator is a game with its creator's public identity attached.
type WithCreator struct {
	Game
	Creator *Creator `json:"createdBy,omitempty"`
	IsFree  bool     `json:"isFree"`
}

// Attach builds the listing projection for a loaded game.
func (g *Game) Attach() WithCreator {
	out := WithCreator{Game: *g, IsFree: g.IsFree()}
	if g.CreatedBy != nil {
		out.Creator = &Creator{
			ID:       g.CreatedBy.ID,
			FullName: g.CreatedBy.FullName,
			Email:    g.CreatedBy.Email,
		}
	}
	out.Game.CreatedBy = nil
	return out
}
