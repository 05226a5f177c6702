package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Score records one play result. A user may submit any number of scores per
// game; leaderboards rank over the full history.
type Score struct {
	ID     string `json:"id" gorm:"type:char(24);primaryKey"`
	UserID string `json:"user" gorm:"type:char(24);not null;index:idx_user_game_score"`
	GameID string `json:"game" gorm:"type:char(24);not null;index:idx_user_game_score;index:idx_game_score"`
	Score  uint   `json:"score" gorm:"not null;index:idx_game_score,sort:desc"`

	// GameData is an opaque payload the mini-game attaches; stored verbatim,
	// never interpreted server-side.
	GameData datatypes.JSONMap `json:"gameData" gorm:"type:json"`

	AchievedAt time.Time `json:"achievedAt" gorm:"autoCreateTime;index"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
	Game *Game `json:"-" gorm:"foreignKey:GameID"`
}

// BeforeCreate assigns an identifier before inserting the record.
func (s *Score) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// RankingEntry is one leaderboard row with the player's display name attached.
type RankingEntry struct {
	ID         string            `json:"id"`
	PlayerID   string            `json:"playerId"`
	PlayerName string            `json:"playerName"`
	Score      uint              `json:"score"`
	GameData   datatypes.JSONMap `json:"gameData,omitempty"`
	AchievedAt time.Time         `json:"achievedAt"`
}
