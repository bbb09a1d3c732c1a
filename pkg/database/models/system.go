package models

import (
	"time"

	"github.com/google/uuid"
)

// System represents a tabletop rule system scoped to one guild. Title and
// abbreviation are unique per guild.
type System struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GuildID      string    `gorm:"index;not null;uniqueIndex:idx_systems_guild_title,priority:1;uniqueIndex:idx_systems_guild_abbreviation,priority:1"`
	Title        string    `gorm:"not null;uniqueIndex:idx_systems_guild_title,priority:2"`
	Abbreviation string    `gorm:"not null;uniqueIndex:idx_systems_guild_abbreviation,priority:2"`
	Description  *string
	Image        *string
	CreatedAt    time.Time `gorm:"default:now()"`
	UpdatedAt    time.Time `gorm:"default:now()"`

	// Relationships
	Games []Game `gorm:"foreignKey:SystemID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for System
func (System) TableName() string {
	return "systems"
}
