package models

import (
	"time"

	"github.com/google/uuid"
)

// CommandLog is a persisted log entry from the centralized logging system.
type CommandLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	GuildID   string    `gorm:"index"`
	Component string    `gorm:"index;not null"`
	Level     string    `gorm:"index;not null"`
	Message   string    `gorm:"type:text;not null"`
	Error     string    `gorm:"type:text"`
	Fields    string    `gorm:"type:text"` // JSON-encoded structured fields
	UserID    string    `gorm:"index"`
	ChannelID string    `gorm:"index"`
	CreatedAt time.Time `gorm:"default:now()"`
}

// TableName specifies the table name for CommandLog
func (CommandLog) TableName() string {
	return "command_logs"
}
