package models

import (
	"time"

	"github.com/google/uuid"
)

// Game represents a play session in a guild: an owner, a dedicated role, an
// optional home channel, an optional rule system and a roster of players.
// Title and abbreviation are unique per guild; a channel can be the home of
// at most one game.
type Game struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GuildID      string    `gorm:"index;not null;uniqueIndex:idx_games_guild_title,priority:1;uniqueIndex:idx_games_guild_abbreviation,priority:1;uniqueIndex:idx_games_guild_channel,priority:1"`
	Title        string    `gorm:"not null;uniqueIndex:idx_games_guild_title,priority:2"`
	Abbreviation string    `gorm:"not null;uniqueIndex:idx_games_guild_abbreviation,priority:2"`
	Description  *string
	Image        *string
	OwnerID      string `gorm:"index;not null"`
	// RoleID is the mentionable guild role created with the game and
	// destroyed with it.
	RoleID string `gorm:"not null"`
	// ChannelID is the game's home channel. NULLs don't collide, so only
	// bound channels participate in the uniqueness.
	ChannelID *string    `gorm:"uniqueIndex:idx_games_guild_channel,priority:2"`
	SystemID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"default:now()"`
	UpdatedAt time.Time  `gorm:"default:now()"`

	// Relationships
	System     *System     `gorm:"foreignKey:SystemID;constraint:OnDelete:SET NULL"`
	Characters []Character `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Players    []Player    `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Game
func (Game) TableName() string {
	return "games"
}
