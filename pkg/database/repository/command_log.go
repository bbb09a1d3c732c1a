package repository

import (
	"encoding/json"

	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"gorm.io/gorm"
)

// CommandLogRepository persists centralized log entries. It implements
// logging.LogRepository.
type CommandLogRepository struct {
	db *gorm.DB
}

func NewCommandLogRepository(db *gorm.DB) *CommandLogRepository {
	return &CommandLogRepository{db: db}
}

// SaveLog stores one log entry; structured fields are kept as JSON.
func (r *CommandLogRepository) SaveLog(entry logging.LogEntry) error {
	fields := ""
	if entry.Fields != nil {
		if data, err := json.Marshal(entry.Fields); err == nil {
			fields = string(data)
		}
	}

	log := models.CommandLog{
		GuildID:   entry.GuildID,
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    fields,
		UserID:    entry.UserID,
		ChannelID: entry.ChannelID,
	}
	return r.db.Create(&log).Error
}
