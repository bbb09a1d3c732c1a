package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
)

// SystemCommand handles the /system command group. Rule systems are a
// moderator-curated catalog, so every mutation requires the moderation
// capability; viewing is open to everyone.
func SystemCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireGuild(s, i) {
		return
	}

	logger := logging.GetGlobalLoggerFactory().CreateCommandLogger("system")
	rc := requestContext(i)
	sub, options := subcommand(i.ApplicationCommandData())
	opts := optionMap(options)

	switch sub {
	case "create":
		systemCreate(s, i, logger, rc, opts)
	case "view":
		systemView(s, i, logger, rc, opts)
	case "edit":
		systemEdit(s, i, logger, rc, opts)
	case "delete":
		systemDelete(s, i, logger, rc, opts)
	}
}

func systemCreate(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	if !rc.Moderator {
		respondError(s, i, logger, tabletop.PermissionDenied())
		return
	}

	system := &models.System{
		GuildID:      rc.GuildID,
		Title:        stringOption(opts, "title"),
		Abbreviation: stringOption(opts, "abbreviation"),
		Description:  optionalString(opts, "description"),
		Image:        optionalString(opts, "image"),
	}

	if err := systemRepo.Create(system); err != nil {
		respondError(s, i, logger, err)
		return
	}

	logger.Info("System created", map[string]interface{}{
		"guild_id":  rc.GuildID,
		"system_id": system.ID.String(),
		"title":     system.Title,
	})
	_ = respondEmbed(s, i, embeds.System(system))
}

func systemView(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	id, err := uuidValue(opts, "system", "System")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	system, err := systemRepo.GetByID(rc.GuildID, id)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}
	_ = respondEmbed(s, i, embeds.System(system))
}

func systemEdit(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	if !rc.Moderator {
		respondError(s, i, logger, tabletop.PermissionDenied())
		return
	}

	id, err := uuidValue(opts, "system", "System")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	current, err := systemRepo.GetByID(rc.GuildID, id)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	// Omitted options keep their current value.
	title := current.Title
	if v := stringOption(opts, "title"); v != "" {
		title = v
	}
	abbreviation := current.Abbreviation
	if v := stringOption(opts, "abbreviation"); v != "" {
		abbreviation = v
	}
	description := current.Description
	if v := optionalString(opts, "description"); v != nil {
		description = v
	}
	image := current.Image
	if v := optionalString(opts, "image"); v != nil {
		image = v
	}

	system, err := systemRepo.Update(rc.GuildID, id, title, abbreviation, description, image)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	logger.Info("System updated", map[string]interface{}{
		"guild_id":  rc.GuildID,
		"system_id": system.ID.String(),
	})
	_ = respondEmbed(s, i, embeds.System(system))
}

func systemDelete(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues) {
	if !rc.Moderator {
		respondError(s, i, logger, tabletop.PermissionDenied())
		return
	}

	id, err := uuidValue(opts, "system", "System")
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	system, err := systemRepo.GetByID(rc.GuildID, id)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	guildID := rc.GuildID
	err = beginConfirmation(s, i,
		system.Abbreviation,
		fmt.Sprintf("Deleted **%s**. Games that used it are no longer linked to a system.", system.Title),
		"That didn't match, so nothing was deleted.",
		func() error {
			return systemRepo.Delete(guildID, id)
		})
	if err != nil {
		logger.Error("Failed to show confirmation modal", err, map[string]interface{}{
			"guild_id": rc.GuildID,
		})
	}
}
