package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
)

// CharacterCommand handles the /character command group: the character
// lifecycle plus the claim/release/assign binding between characters and
// player rows.
func CharacterCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireGuild(s, i) {
		return
	}

	logger := logging.GetGlobalLoggerFactory().CreateCommandLogger("character")
	rc := requestContext(i)
	sub, options := subcommand(i.ApplicationCommandData())
	opts := optionMap(options)

	switch sub {
	case "create":
		characterCreate(s, i, logger, rc, opts)
	case "view":
		characterView(s, i, logger, rc, opts)
	case "edit":
		characterEdit(s, i, logger, rc, opts)
	case "delete":
		characterDelete(s, i, logger, rc, opts)
	case "claim":
		characterClaim(s, i, logger, rc, opts)
	case "release":
		characterRelease(s, i, logger, rc, opts)
	case "assign":
		characterAssign(s, i, logger, rc, opts)
	}
}

// characterCreate adds a character to a game the caller participates in.
// When the caller holds a character-less player row there, the new character
// is assigned to them on the spot.
func characterCreate(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	gameArg, err := uuidArg(opts, "game", "Game")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	resolution, err := resolver.Resolve(rc, gameArg, tabletop.NoArg())
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	if err := authorizer.RequireMembership(rc, resolution.GameID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	character := &models.Character{
		GuildID:     rc.GuildID,
		GameID:      resolution.GameID,
		AuthorID:    rc.UserID,
		Name:        stringOption(opts, "name"),
		Pronouns:    optionalString(opts, "pronouns"),
		Description: optionalString(opts, "description"),
		Image:       optionalString(opts, "image"),
	}

	autoAssigned, err := characterRepo.Create(character)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	logger.Info("Character created", map[string]interface{}{
		"guild_id":     rc.GuildID,
		"game_id":      resolution.GameID.String(),
		"character_id": character.ID.String(),
		"assigned":     autoAssigned,
	})

	playerID := ""
	if autoAssigned {
		playerID = rc.UserID
	}
	_ = respondEmbed(s, i, embeds.Character(character, gameTitle(rc.GuildID, character.GameID), playerID))
}

func characterView(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	character, err := resolveCharacter(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	holder, err := characterRepo.AssignedUserID(character.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	_ = respondEmbed(s, i, embeds.Character(character, gameTitle(rc.GuildID, character.GameID), holder))
}

func characterEdit(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	character, err := resolveCharacter(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	if err := authorizer.AuthorizeCharacter(rc, character.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	name := character.Name
	if v := stringOption(opts, "name"); v != "" {
		name = v
	}
	pronouns := character.Pronouns
	if v := optionalString(opts, "pronouns"); v != nil {
		pronouns = v
	}
	description := character.Description
	if v := optionalString(opts, "description"); v != nil {
		description = v
	}
	image := character.Image
	if v := optionalString(opts, "image"); v != nil {
		image = v
	}

	updated, err := characterRepo.Update(rc.GuildID, character.ID, name, pronouns, description, image)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	logger.Info("Character updated", map[string]interface{}{
		"guild_id":     rc.GuildID,
		"character_id": updated.ID.String(),
	})

	holder, err := characterRepo.AssignedUserID(updated.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	_ = respondEmbed(s, i, embeds.Character(updated, gameTitle(rc.GuildID, updated.GameID), holder))
}

func characterDelete(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	character, err := resolveCharacter(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	if err := authorizer.AuthorizeCharacter(rc, character.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	guildID := rc.GuildID
	characterID := character.ID
	err = beginConfirmation(s, i,
		character.Name,
		fmt.Sprintf("**%s** is gone. Their player stays in the game.", character.Name),
		"That didn't match, so nothing was deleted.",
		func() error {
			return characterRepo.Delete(guildID, characterID)
		})
	if err != nil {
		logger.Error("Failed to show confirmation modal", err, map[string]interface{}{
			"guild_id": rc.GuildID,
		})
	}
}

// characterClaim binds an unheld character to the caller's own player row in
// its game.
func characterClaim(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	id, err := uuidValue(opts, "character", "Character")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	character, err := characterRepo.GetByID(rc.GuildID, id)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	if err := playerRepo.Bind(character.ID, rc.UserID); err != nil {
		if tabletop.IsKind(err, tabletop.KindNotFound) {
			_ = respondEphemeral(s, i, tabletop.MsgNotAPlayer)
			return
		}
		if tabletop.IsKind(err, tabletop.KindConflict) {
			_ = respondEphemeral(s, i, fmt.Sprintf("Someone already plays **%s**!", character.Name))
			return
		}
		respondError(s, i, logger, err)
		return
	}

	logger.Info("Character claimed", map[string]interface{}{
		"guild_id":     rc.GuildID,
		"character_id": character.ID.String(),
		"user_id":      rc.UserID,
	})
	_ = respondText(s, i, fmt.Sprintf("You now play **%s**!", character.Name))
}

// characterRelease drops the binding. With no explicit character the
// caller's own assignment in the contextual game is released.
func characterRelease(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	character, err := resolveCharacter(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	holder, err := characterRepo.AssignedUserID(character.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	if holder == "" {
		_ = respondEphemeral(s, i, fmt.Sprintf("Nobody plays **%s**!", character.Name))
		return
	}

	// Releasing someone else's character is a management action.
	if holder != rc.UserID {
		if err := authorizer.AuthorizeCharacter(rc, character.ID); err != nil {
			respondError(s, i, logger, err)
			return
		}
	}

	if _, err := playerRepo.Release(character.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	logger.Info("Character released", map[string]interface{}{
		"guild_id":     rc.GuildID,
		"character_id": character.ID.String(),
	})
	_ = respondText(s, i, fmt.Sprintf("**%s** is up for grabs!", character.Name))
}

// characterAssign hands a character to a specific player, taking it from the
// current holder if there is one.
func characterAssign(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	id, err := uuidValue(opts, "character", "Character")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	character, err := characterRepo.GetByID(rc.GuildID, id)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	if err := authorizer.AuthorizeCharacter(rc, character.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	user := userOption(opts, "user", s)
	if user == nil || user.Bot {
		_ = respondEphemeral(s, i, "You can't assign a character to a bot!")
		return
	}

	if _, err := playerRepo.Release(character.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}
	if err := playerRepo.Bind(character.ID, user.ID); err != nil {
		if tabletop.IsKind(err, tabletop.KindNotFound) {
			_ = respondEphemeral(s, i, fmt.Sprintf("<@%s> isn't a player in that game!", user.ID))
			return
		}
		respondError(s, i, logger, err)
		return
	}

	logger.Info("Character assigned", map[string]interface{}{
		"guild_id":     rc.GuildID,
		"character_id": character.ID.String(),
		"user_id":      user.ID,
	})
	_ = respondText(s, i, fmt.Sprintf("<@%s> now plays **%s**!", user.ID, character.Name))
}

// resolveCharacter fills the character slot from the explicit option or from
// the caller's own assignment in the contextual game.
func resolveCharacter(rc tabletop.RequestContext, opts optionValues) (*models.Character, error) {
	gameArg, err := uuidArg(opts, "game", "Game")
	if err != nil {
		return nil, err
	}
	characterArg, err := uuidArg(opts, "character", "Character")
	if err != nil {
		return nil, err
	}

	resolution, err := resolver.Resolve(rc, gameArg, characterArg)
	if err != nil {
		return nil, err
	}
	return characterRepo.GetByID(rc.GuildID, *resolution.CharacterID)
}

// gameTitle is a best-effort label lookup for embeds.
func gameTitle(guildID string, gameID uuid.UUID) string {
	game, err := gameRepo.GetByID(guildID, gameID)
	if err != nil {
		return ""
	}
	return game.Title
}
