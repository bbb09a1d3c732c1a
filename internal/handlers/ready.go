package handlers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/logging"
)

// Ready logs the session start and sets the bot's presence.
func Ready(s *discordgo.Session, r *discordgo.Ready) {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("session")

	if err := s.UpdateGameStatus(0, "/game view"); err != nil {
		logger.Error("Failed to set presence", err, nil)
	}

	logger.Info("Session ready", map[string]interface{}{
		"username": r.User.Username,
		"guilds":   len(r.Guilds),
	})
}
