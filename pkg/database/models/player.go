package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is one (game, user) participation row. A user appears at most once
// per game; a character is held by at most one player at a time. Deleting a
// character clears the assignment rather than the row.
type Player struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GameID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_players_game_user,priority:1"`
	UserID      string     `gorm:"not null;uniqueIndex:idx_players_game_user,priority:2"`
	CharacterID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_players_character"`
	CreatedAt   time.Time  `gorm:"default:now()"`
	UpdatedAt   time.Time  `gorm:"default:now()"`

	// Relationships
	Game      Game       `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Character *Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Player
func (Player) TableName() string {
	return "players"
}
