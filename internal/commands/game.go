package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
)

// GameCommand handles the /game command group: the game lifecycle, the
// roster, the home channel and system bindings, and roster activation.
func GameCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireGuild(s, i) {
		return
	}

	logger := logging.GetGlobalLoggerFactory().CreateCommandLogger("game")
	rc := requestContext(i)
	sub, options := subcommand(i.ApplicationCommandData())
	opts := optionMap(options)

	switch sub {
	case "create":
		gameCreate(s, i, logger, rc, opts)
	case "view":
		gameView(s, i, logger, rc, opts)
	case "edit":
		gameEdit(s, i, logger, rc, opts)
	case "delete":
		gameDelete(s, i, logger, rc, opts)
	case "transfer":
		gameTransfer(s, i, logger, rc, opts)
	case "activate":
		gameActivate(s, i, logger, rc, opts, tabletop.Activate)
	case "deactivate":
		gameActivate(s, i, logger, rc, opts, tabletop.Deactivate)
	case "player.add":
		gamePlayerAdd(s, i, logger, rc, opts)
	case "player.remove":
		gamePlayerRemove(s, i, logger, rc, opts)
	case "channel.set":
		gameChannelSet(s, i, logger, rc, opts)
	case "channel.unset":
		gameChannelUnset(s, i, logger, rc, opts)
	case "system.set":
		gameSystemSet(s, i, logger, rc, opts)
	case "system.unset":
		gameSystemUnset(s, i, logger, rc, opts)
	}
}

// gameCreate provisions the game's mentionable role first, then the row. A
// rejected insert tears the role back down so nothing half-made lingers.
func gameCreate(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	title := stringOption(opts, "title")
	abbreviation := stringOption(opts, "abbreviation")

	var systemID *uuid.UUID
	if _, ok := opts["system"]; ok {
		id, err := uuidValue(opts, "system", "System")
		if err != nil {
			respondError(s, i, logger, err)
			return
		}
		if _, err := systemRepo.GetByID(rc.GuildID, id); err != nil {
			respondError(s, i, logger, err)
			return
		}
		systemID = &id
	}

	mentionable := true
	role, err := s.GuildRoleCreate(rc.GuildID, &discordgo.RoleParams{
		Name:        abbreviation,
		Mentionable: &mentionable,
	})
	if err != nil {
		respondError(s, i, logger, tabletop.CollaboratorFailure(err))
		return
	}

	game := &models.Game{
		GuildID:      rc.GuildID,
		Title:        title,
		Abbreviation: abbreviation,
		Description:  optionalString(opts, "description"),
		Image:        optionalString(opts, "image"),
		OwnerID:      rc.UserID,
		RoleID:       role.ID,
		SystemID:     systemID,
	}

	if err := gameRepo.Create(game); err != nil {
		if deleteErr := s.GuildRoleDelete(rc.GuildID, role.ID); deleteErr != nil {
			logger.Error("Failed to clean up role after rejected game", deleteErr, map[string]interface{}{
				"guild_id": rc.GuildID,
				"role_id":  role.ID,
			})
		}
		respondError(s, i, logger, err)
		return
	}

	if err := s.GuildMemberRoleAdd(rc.GuildID, rc.UserID, role.ID); err != nil {
		respondError(s, i, logger, tabletop.CollaboratorFailure(err))
		return
	}

	logger.Info("Game created", map[string]interface{}{
		"guild_id": rc.GuildID,
		"game_id":  game.ID.String(),
		"title":    game.Title,
	})
	_ = respondEmbed(s, i, embeds.Game(game, systemAbbreviation(rc.GuildID, game.SystemID), nil))
}

func gameView(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
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

	game, err := gameRepo.GetByID(rc.GuildID, resolution.GameID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	playerIDs, err := gameRepo.PlayerIDs(game.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	_ = respondEmbed(s, i, embeds.Game(game, systemAbbreviation(rc.GuildID, game.SystemID), playerIDs))
}

func gameEdit(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	title := game.Title
	if v := stringOption(opts, "title"); v != "" {
		title = v
	}
	abbreviation := game.Abbreviation
	if v := stringOption(opts, "abbreviation"); v != "" {
		abbreviation = v
	}
	description := game.Description
	if v := optionalString(opts, "description"); v != nil {
		description = v
	}
	image := game.Image
	if v := optionalString(opts, "image"); v != nil {
		image = v
	}

	updated, err := gameRepo.Update(rc.GuildID, game.ID, title, abbreviation, description, image)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	// Keep the role label in step with the abbreviation it mirrors.
	if updated.Abbreviation != game.Abbreviation {
		if _, err := s.GuildRoleEdit(rc.GuildID, updated.RoleID, &discordgo.RoleParams{
			Name: updated.Abbreviation,
		}); err != nil {
			respondError(s, i, logger, tabletop.CollaboratorFailure(err))
			return
		}
	}

	logger.Info("Game updated", map[string]interface{}{
		"guild_id": rc.GuildID,
		"game_id":  updated.ID.String(),
	})

	playerIDs, err := gameRepo.PlayerIDs(updated.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	_ = respondEmbed(s, i, embeds.Game(updated, systemAbbreviation(rc.GuildID, updated.SystemID), playerIDs))
}

func gameDelete(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	guildID := rc.GuildID
	gameID := game.ID
	roleID := game.RoleID
	err = beginConfirmation(s, i,
		game.Abbreviation,
		fmt.Sprintf("Deleted **%s** and all of its characters.", game.Title),
		"That didn't match, so nothing was deleted.",
		func() error {
			if err := gameRepo.Delete(guildID, gameID); err != nil {
				return err
			}
			if err := s.GuildRoleDelete(guildID, roleID); err != nil {
				return tabletop.CollaboratorFailure(err)
			}
			return nil
		})
	if err != nil {
		logger.Error("Failed to show confirmation modal", err, map[string]interface{}{
			"guild_id": rc.GuildID,
		})
	}
}

func gameTransfer(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	newOwner := userOption(opts, "user", s)
	if newOwner == nil || newOwner.Bot {
		_ = respondEphemeral(s, i, "You can't transfer a game to a bot!")
		return
	}
	if newOwner.ID == game.OwnerID {
		_ = respondEphemeral(s, i, "They already own this game!")
		return
	}

	ownerLeaves := boolOption(opts, "leave")
	guildID := rc.GuildID
	gameID := game.ID
	oldOwnerID := game.OwnerID
	roleID := game.RoleID
	newOwnerID := newOwner.ID

	err = beginConfirmation(s, i,
		game.Abbreviation,
		fmt.Sprintf("**%s** now belongs to <@%s>.", game.Title, newOwnerID),
		"That didn't match, so the game was not transferred.",
		func() error {
			if err := gameRepo.Transfer(guildID, gameID, newOwnerID, ownerLeaves); err != nil {
				return err
			}
			if err := s.GuildMemberRoleAdd(guildID, newOwnerID, roleID); err != nil {
				return tabletop.CollaboratorFailure(err)
			}
			if ownerLeaves {
				if err := s.GuildMemberRoleRemove(guildID, oldOwnerID, roleID); err != nil {
					return tabletop.CollaboratorFailure(err)
				}
			}
			return nil
		})
	if err != nil {
		logger.Error("Failed to show confirmation modal", err, map[string]interface{}{
			"guild_id": rc.GuildID,
		})
	}
}

// resolveManagedGame resolves the game slot and checks the caller may manage
// the result. Shared by every privileged /game subcommand.
func resolveManagedGame(rc tabletop.RequestContext, opts optionValues) (*models.Game, error) {
	gameArg, err := uuidArg(opts, "game", "Game")
	if err != nil {
		return nil, err
	}

	resolution, err := resolver.Resolve(rc, gameArg, tabletop.NoArg())
	if err != nil {
		return nil, err
	}
	if err := authorizer.AuthorizeGame(rc, resolution.GameID); err != nil {
		return nil, err
	}
	return gameRepo.GetByID(rc.GuildID, resolution.GameID)
}

// systemAbbreviation is a best-effort label lookup for embeds; a missing
// system just renders without the field.
func systemAbbreviation(guildID string, systemID *uuid.UUID) string {
	if systemID == nil {
		return ""
	}
	system, err := systemRepo.GetByID(guildID, *systemID)
	if err != nil {
		return ""
	}
	return system.Abbreviation
}
