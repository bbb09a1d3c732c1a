package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
)

// searchLimit caps every autocomplete query; Discord shows at most 25 choices.
const searchLimit = 25

// Autocomplete routes a focused entity option to the matching search. Which
// search runs depends on the subcommand: pickers on privileged commands only
// offer entities the caller could actually act on, so the suggestions mirror
// the authorization rules without replacing them.
func Autocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil {
		return
	}

	logger := logging.GetGlobalLoggerFactory().CreateCommandLogger("autocomplete")
	rc := requestContext(i)
	data := i.ApplicationCommandData()
	sub, options := subcommand(data)

	focused := focusedOption(options)
	if focused == nil {
		return
	}
	partial := focused.StringValue()

	var choices []*discordgo.ApplicationCommandOptionChoice
	var err error

	switch focused.Name {
	case "system":
		choices, err = systemChoices(rc.GuildID, partial)
	case "game":
		choices, err = gameChoices(data.Name, sub, rc, partial)
	case "character":
		choices, err = characterChoices(sub, rc, partial)
	}
	if err != nil {
		logger.Error("Autocomplete search failed", err, map[string]interface{}{
			"guild_id": rc.GuildID,
			"option":   focused.Name,
		})
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}); err != nil {
		logger.Error("Failed to send autocomplete choices", err, map[string]interface{}{
			"guild_id": rc.GuildID,
		})
	}
}

func focusedOption(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Focused {
			return opt
		}
	}
	return nil
}

func systemChoices(guildID, partial string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	systems, err := systemRepo.Search(guildID, partial, searchLimit)
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(systems))
	for idx, system := range systems {
		choices[idx] = &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("[%s] %s", system.Abbreviation, system.Title),
			Value: system.ID.String(),
		}
	}
	return choices, nil
}

func gameChoices(command, sub string, rc tabletop.RequestContext, partial string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	var games []models.Game
	var err error

	switch {
	case command == "character" && sub == "create":
		// Creating a character needs a game the caller participates in.
		games, err = gameRepo.SearchJoined(rc.GuildID, partial, rc.UserID, searchLimit)
	case sub == "view":
		games, err = gameRepo.Search(rc.GuildID, partial, searchLimit)
	default:
		games, err = gameRepo.SearchEditable(rc.GuildID, partial, rc.UserID, rc.Moderator, searchLimit)
	}
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(games))
	for idx, game := range games {
		choices[idx] = &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("[%s] %s", game.Abbreviation, game.Title),
			Value: game.ID.String(),
		}
	}
	return choices, nil
}

func characterChoices(sub string, rc tabletop.RequestContext, partial string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	var characters []models.Character
	var err error

	switch sub {
	case "view":
		characters, err = characterRepo.Search(rc.GuildID, partial, searchLimit)
	case "claim":
		characters, err = characterRepo.SearchClaimable(rc.GuildID, partial, rc.UserID, searchLimit)
	case "release":
		characters, err = characterRepo.SearchAssigned(rc.GuildID, partial, rc.UserID, searchLimit)
	default:
		characters, err = characterRepo.SearchEditable(rc.GuildID, partial, rc.UserID, rc.Moderator, searchLimit)
	}
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(characters))
	for idx, character := range characters {
		choices[idx] = &discordgo.ApplicationCommandOptionChoice{
			Name:  character.Name,
			Value: character.ID.String(),
		}
	}
	return choices, nil
}
