package models

import (
	"time"

	"github.com/google/uuid"
)

// Character represents a character owned by a game. Names are unique within
// the owning game. The character row outlives player reassignment; only the
// player's reference to it changes.
type Character struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GuildID     string    `gorm:"index;not null"`
	GameID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_characters_game_name,priority:1"`
	AuthorID    string    `gorm:"index;not null"`
	Name        string    `gorm:"not null;uniqueIndex:idx_characters_game_name,priority:2"`
	Pronouns    *string
	Description *string
	Image       *string
	CreatedAt   time.Time `gorm:"default:now()"`
	UpdatedAt   time.Time `gorm:"default:now()"`

	// Relationships
	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Character
func (Character) TableName() string {
	return "characters"
}
