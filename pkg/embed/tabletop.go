package embed

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/database/models"
)

// TabletopEmbeds implements TabletopEmbedBuilder
type TabletopEmbeds struct{}

// NewTabletopEmbedBuilder creates a new TabletopEmbeds instance
func NewTabletopEmbedBuilder() TabletopEmbedBuilder {
	return &TabletopEmbeds{}
}

// Success creates a standard success embed
func (t *TabletopEmbeds) Success(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0x00ff00, // Green
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// Error creates a standard error embed
func (t *TabletopEmbeds) Error(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0xff0000, // Red
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// Info creates an info embed
func (t *TabletopEmbeds) Info(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0x7289da, // Discord blurple
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// Warning creates a warning embed
func (t *TabletopEmbeds) Warning(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0xffaa00, // Orange
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// System renders a rule system summary
func (t *TabletopEmbeds) System(system *models.System) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: system.Title,
		Color: 0x7289da,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Abbreviation", Value: system.Abbreviation, Inline: true},
		},
	}

	if system.Description != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "Description",
			Value: *system.Description,
		})
	}
	if system.Image != nil {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *system.Image}
	}
	return e
}

// Game renders a game summary: role, channel, system, owner and roster.
func (t *TabletopEmbeds) Game(game *models.Game, systemAbbreviation string, playerIDs []string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("[%s] %s", game.Abbreviation, game.Title),
		Color:     0x7289da,
		Timestamp: game.CreatedAt.Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Created"},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: fmt.Sprintf("<@&%s>", game.RoleID), Inline: true},
		},
	}

	if game.ChannelID != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   "Main Channel",
			Value:  fmt.Sprintf("<#%s>", *game.ChannelID),
			Inline: true,
		})
	}
	if systemAbbreviation != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   "System",
			Value:  systemAbbreviation,
			Inline: true,
		})
	}

	// The owner leads the roster whether or not they hold a player row.
	roster := fmt.Sprintf("<@%s>", game.OwnerID)
	if len(playerIDs) > 0 {
		mentions := make([]string, len(playerIDs))
		for i, id := range playerIDs {
			mentions[i] = fmt.Sprintf("<@%s>", id)
		}
		roster = fmt.Sprintf("%s | %s", roster, strings.Join(mentions, " "))
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:  "Players",
		Value: roster,
	})

	if game.Description != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "Description",
			Value: *game.Description,
		})
	}
	if game.Image != nil {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *game.Image}
	}
	return e
}

// Character renders a character sheet summary
func (t *TabletopEmbeds) Character(character *models.Character, gameTitle, playerID string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: character.Name,
		Color: 0x7289da,
	}

	if character.Pronouns != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   "Pronouns",
			Value:  *character.Pronouns,
			Inline: true,
		})
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:   "Game",
		Value:  gameTitle,
		Inline: true,
	})
	if character.Description != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "Description",
			Value: *character.Description,
		})
	}
	if character.Image != nil {
		e.Image = &discordgo.MessageEmbedImage{URL: *character.Image}
	}
	if playerID != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   "Played by",
			Value:  fmt.Sprintf("<@%s>", playerID),
			Inline: true,
		})
	}
	return e
}
