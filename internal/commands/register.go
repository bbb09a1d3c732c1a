package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func systemOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "system",
		Description:  "The rule system",
		Required:     required,
		Autocomplete: true,
	}
}

func gameOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "game",
		Description:  "The game, if this isn't its channel",
		Autocomplete: true,
	}
}

func characterOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "character",
		Description:  "The character",
		Required:     required,
		Autocomplete: true,
	}
}

func userOptionDef(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func textOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// Definitions returns the full slash-command surface.
func Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "system",
			Description: "Manage the guild's rule system catalog",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Add a rule system (moderators only)",
					Options: []*discordgo.ApplicationCommandOption{
						textOption("title", "Full title of the system", true),
						textOption("abbreviation", "Short label, e.g. 5e", true),
						textOption("description", "What the system is about", false),
						textOption("image", "Cover image URL", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show a rule system",
					Options:     []*discordgo.ApplicationCommandOption{systemOption(true)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Edit a rule system (moderators only)",
					Options: []*discordgo.ApplicationCommandOption{
						systemOption(true),
						textOption("title", "New title", false),
						textOption("abbreviation", "New abbreviation", false),
						textOption("description", "New description", false),
						textOption("image", "New cover image URL", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a rule system (moderators only)",
					Options:     []*discordgo.ApplicationCommandOption{systemOption(true)},
				},
			},
		},
		{
			Name:        "game",
			Description: "Manage games and their rosters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Start a game you'll run",
					Options: []*discordgo.ApplicationCommandOption{
						textOption("title", "Full title of the game", true),
						textOption("abbreviation", "Short label, also the role name", true),
						textOption("description", "What the game is about", false),
						textOption("image", "Cover image URL", false),
						systemOption(false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show a game and its roster",
					Options:     []*discordgo.ApplicationCommandOption{gameOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Edit a game you manage",
					Options: []*discordgo.ApplicationCommandOption{
						gameOption(),
						textOption("title", "New title", false),
						textOption("abbreviation", "New abbreviation", false),
						textOption("description", "New description", false),
						textOption("image", "New cover image URL", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a game and everything in it",
					Options:     []*discordgo.ApplicationCommandOption{gameOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "transfer",
					Description: "Hand the game to a new owner",
					Options: []*discordgo.ApplicationCommandOption{
						userOptionDef("The new owner"),
						gameOption(),
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "leave",
							Description: "Leave the game instead of staying as a player",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "activate",
					Description: "Put character names into player nicknames",
					Options:     []*discordgo.ApplicationCommandOption{gameOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "deactivate",
					Description: "Restore player nicknames",
					Options:     []*discordgo.ApplicationCommandOption{gameOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "player",
					Description: "Manage the roster",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "add",
							Description: "Add a player to the game",
							Options: []*discordgo.ApplicationCommandOption{
								userOptionDef("The player to add"),
								gameOption(),
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "remove",
							Description: "Remove a player from the game",
							Options: []*discordgo.ApplicationCommandOption{
								userOptionDef("The player to remove"),
								gameOption(),
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "channel",
					Description: "Manage the game's home channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "set",
							Description: "Bind a home channel to the game",
							Options: []*discordgo.ApplicationCommandOption{
								gameOption(),
								{
									Type:        discordgo.ApplicationCommandOptionChannel,
									Name:        "channel",
									Description: "The channel, defaults to this one",
								},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "unset",
							Description: "Unbind the game's home channel",
							Options:     []*discordgo.ApplicationCommandOption{gameOption()},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "system",
					Description: "Manage the game's rule system",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "set",
							Description: "Link the game to a rule system",
							Options: []*discordgo.ApplicationCommandOption{
								systemOption(true),
								gameOption(),
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "unset",
							Description: "Unlink the game from its rule system",
							Options:     []*discordgo.ApplicationCommandOption{gameOption()},
						},
					},
				},
			},
		},
		{
			Name:        "character",
			Description: "Manage characters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a character in a game you play",
					Options: []*discordgo.ApplicationCommandOption{
						textOption("name", "The character's name", true),
						gameOption(),
						textOption("pronouns", "The character's pronouns", false),
						textOption("description", "Who they are", false),
						textOption("image", "Portrait URL", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show a character",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption(false),
						gameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Edit a character you manage",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption(false),
						gameOption(),
						textOption("name", "New name", false),
						textOption("pronouns", "New pronouns", false),
						textOption("description", "New description", false),
						textOption("image", "New portrait URL", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a character",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption(false),
						gameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "claim",
					Description: "Claim an unplayed character",
					Options:     []*discordgo.ApplicationCommandOption{characterOption(true)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "release",
					Description: "Give up a character",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption(false),
						gameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "assign",
					Description: "Hand a character to a player",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption(true),
						userOptionDef("The player who'll hold the character"),
					},
				},
			},
		},
	}
}

// Register overwrites the application's command set. With a guild id the
// commands land instantly in that guild; empty registers them globally.
func Register(s *discordgo.Session, guildID string) error {
	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, guildID, Definitions())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}
