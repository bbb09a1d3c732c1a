package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
)

func gamePlayerAdd(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	user := userOption(opts, "user", s)
	if user == nil || user.Bot {
		_ = respondEphemeral(s, i, "You can't add a bot to a game!")
		return
	}
	if user.ID == game.OwnerID {
		_ = respondEphemeral(s, i, "The owner is always in the game!")
		return
	}

	if err := playerRepo.Add(game.ID, user.ID); err != nil {
		if tabletop.IsKind(err, tabletop.KindConflict) {
			_ = respondEphemeral(s, i, fmt.Sprintf("<@%s> is already in that game!", user.ID))
			return
		}
		respondError(s, i, logger, err)
		return
	}

	if err := s.GuildMemberRoleAdd(rc.GuildID, user.ID, game.RoleID); err != nil {
		respondError(s, i, logger, tabletop.CollaboratorFailure(err))
		return
	}

	logger.Info("Player added", map[string]interface{}{
		"guild_id": rc.GuildID,
		"game_id":  game.ID.String(),
		"user_id":  user.ID,
	})
	_ = respondText(s, i, fmt.Sprintf("Added <@%s> to **%s**!", user.ID, game.Title))
}

func gamePlayerRemove(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	user := userOption(opts, "user", s)
	if user == nil {
		respondError(s, i, logger, tabletop.NotFound("User"))
		return
	}

	removed, err := playerRepo.Remove(game.ID, user.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	if !removed {
		_ = respondEphemeral(s, i, fmt.Sprintf("<@%s> isn't in that game!", user.ID))
		return
	}

	if err := s.GuildMemberRoleRemove(rc.GuildID, user.ID, game.RoleID); err != nil {
		respondError(s, i, logger, tabletop.CollaboratorFailure(err))
		return
	}

	logger.Info("Player removed", map[string]interface{}{
		"guild_id": rc.GuildID,
		"game_id":  game.ID.String(),
		"user_id":  user.ID,
	})
	_ = respondText(s, i, fmt.Sprintf("Removed <@%s> from **%s**.", user.ID, game.Title))
}

// gameChannelSet binds a home channel. The channel option defaults to the
// invoking channel, so "/game channel set" run inside the right channel with
// an explicit game is the common path.
func gameChannelSet(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	channelID := rc.ChannelID
	if opt, ok := opts["channel"]; ok {
		channelID = opt.ChannelValue(nil).ID
	}

	if err := gameRepo.SetChannel(rc.GuildID, game.ID, channelID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	_ = respondText(s, i, fmt.Sprintf("<#%s> is now the home channel of **%s**!", channelID, game.Title))
}

func gameChannelUnset(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	if err := gameRepo.UnsetChannel(rc.GuildID, game.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	_ = respondText(s, i, fmt.Sprintf("**%s** no longer has a home channel.", game.Title))
}

func gameSystemSet(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	systemID, err := uuidValue(opts, "system", "System")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	system, err := systemRepo.GetByID(rc.GuildID, systemID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	if err := gameRepo.SetSystem(rc.GuildID, game.ID, systemID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	_ = respondText(s, i, fmt.Sprintf("**%s** now uses %s!", game.Title, system.Title))
}

func gameSystemUnset(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	if err := gameRepo.UnsetSystem(rc.GuildID, game.ID); err != nil {
		respondError(s, i, logger, err)
		return
	}

	_ = respondText(s, i, fmt.Sprintf("**%s** is no longer linked to a system.", game.Title))
}
