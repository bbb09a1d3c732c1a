package embed

import (
	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/database/models"
)

// EmbedBuilder provides basic embed creation functionality
type EmbedBuilder interface {
	Success(title, description string) *discordgo.MessageEmbed
	Error(title, description string) *discordgo.MessageEmbed
	Info(title, description string) *discordgo.MessageEmbed
	Warning(title, description string) *discordgo.MessageEmbed
}

// TabletopEmbedBuilder renders entity summaries for the command glue. The
// builders take plain model values; nothing here makes decisions.
type TabletopEmbedBuilder interface {
	EmbedBuilder
	System(system *models.System) *discordgo.MessageEmbed
	Game(game *models.Game, systemAbbreviation string, playerIDs []string) *discordgo.MessageEmbed
	Character(character *models.Character, gameTitle, playerID string) *discordgo.MessageEmbed
}
