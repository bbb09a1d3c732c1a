package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
)

// confirmPrefix namespaces confirmation modals in the shared custom id space.
const confirmPrefix = "confirm:"

// IsConfirmationModal reports whether a modal submit belongs to a pending
// confirmation.
func IsConfirmationModal(customID string) bool {
	return strings.HasPrefix(customID, confirmPrefix)
}

// beginConfirmation registers the guarded effect and challenges the caller
// with a modal. The effect only runs if the caller types the phrase back.
func beginConfirmation(s *discordgo.Session, i *discordgo.InteractionCreate, phrase, successMessage, failureMessage string, effect tabletop.Effect) error {
	confirmation := confirmer.Begin(phrase, successMessage, failureMessage, effect)

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: confirmPrefix + confirmation.ID,
			Title:    "Are you sure?",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "confirmation",
							Label:       fmt.Sprintf("Type \"%s\" to confirm", phrase),
							Style:       discordgo.TextInputShort,
							Placeholder: phrase,
							Required:    true,
						},
					},
				},
			},
		},
	})
}

// HandleConfirmationModal resolves a confirmation modal submit. The matching
// is case-insensitive; a mismatch cancels the action and says so, a late
// submit against an expired confirmation just tells the caller to start over.
func HandleConfirmationModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	logger := logging.GetGlobalLoggerFactory().CreateCommandLogger("confirm")

	data := i.ModalSubmitData()
	id := strings.TrimPrefix(data.CustomID, confirmPrefix)
	input := modalInput(data)

	outcome, confirmation, err := confirmer.Resolve(id, input)
	switch outcome {
	case tabletop.Abandoned:
		_ = respondEphemeral(s, i, "That confirmation is no longer active. Run the command again!")

	case tabletop.Rejected:
		_ = respondEphemeral(s, i, confirmation.FailureMessage)

	case tabletop.Confirmed:
		if err != nil {
			respondError(s, i, logger, err)
			return
		}
		if respondErr := respondEmbed(s, i, embeds.Success("Confirmed", confirmation.SuccessMessage)); respondErr != nil {
			logger.Error("Failed to send confirmation response", respondErr, map[string]interface{}{
				"guild_id": i.GuildID,
			})
		}
	}
}

func modalInput(data discordgo.ModalSubmitInteractionData) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				return input.Value
			}
		}
	}
	return ""
}
