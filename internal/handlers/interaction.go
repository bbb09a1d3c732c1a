package handlers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/internal/commands"
)

// InteractionCreate is the single entry point for every interaction: slash
// commands, autocomplete queries and confirmation modal submits.
func InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "system":
			commands.SystemCommand(s, i)
		case "game":
			commands.GameCommand(s, i)
		case "character":
			commands.CharacterCommand(s, i)
		}

	case discordgo.InteractionApplicationCommandAutocomplete:
		commands.Autocomplete(s, i)

	case discordgo.InteractionModalSubmit:
		if commands.IsConfirmationModal(i.ModalSubmitData().CustomID) {
			commands.HandleConfirmationModal(s, i)
		}
	}
}
