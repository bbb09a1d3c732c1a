package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
)

// gameActivate applies the roster display-name transform: activation appends
// each player's character name to their nickname, deactivation strips it.
// Renames are applied one by one; a failed Discord call stops the walk and
// whatever was already renamed stays renamed.
func gameActivate(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, rc tabletop.RequestContext, opts optionValues, mode tabletop.Mode) {
	game, err := resolveManagedGame(rc, opts)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	roster, err := gameRepo.Roster(game.ID)
	if err != nil {
		respondError(s, i, logger, err)
		return
	}

	guildOwnerID, err := guildOwner(s, rc.GuildID)
	if err != nil {
		respondError(s, i, logger, tabletop.CollaboratorFailure(err))
		return
	}

	participants := make([]tabletop.Participant, 0, len(roster))
	for _, entry := range roster {
		member, err := s.GuildMember(rc.GuildID, entry.UserID)
		if err != nil {
			// A player who left the guild keeps their row but can't be renamed.
			logger.Warn("Skipping roster member not in guild", map[string]interface{}{
				"guild_id": rc.GuildID,
				"user_id":  entry.UserID,
			})
			continue
		}
		participants = append(participants, tabletop.Participant{
			UserID:        entry.UserID,
			DisplayName:   memberDisplayName(member),
			CharacterName: entry.CharacterName,
			Owner:         entry.UserID == guildOwnerID,
		})
	}

	changes := tabletop.ComputeTransform(mode, participants)
	if len(changes) == 0 {
		_ = respondEphemeral(s, i, "Nobody needed a rename!")
		return
	}

	var applied, selfService []string
	for _, change := range changes {
		line := fmt.Sprintf("%s --> %s", change.OldName, change.NewName)
		if change.RequiresSelfAction {
			// Discord refuses to let a bot rename the server owner.
			selfService = append(selfService,
				fmt.Sprintf("<@%s> has to rename themselves to `%s`.", change.UserID, change.NewName))
			continue
		}
		if err := s.GuildMemberNickname(rc.GuildID, change.UserID, change.NewName); err != nil {
			respondError(s, i, logger, tabletop.CollaboratorFailure(err))
			return
		}
		applied = append(applied, line)
	}

	title := fmt.Sprintf("%s is on!", game.Title)
	if mode == tabletop.Deactivate {
		title = fmt.Sprintf("%s is over.", game.Title)
	}

	var description strings.Builder
	if len(applied) > 0 {
		description.WriteString("```\n")
		description.WriteString(strings.Join(applied, "\n"))
		description.WriteString("\n```")
	}
	if len(selfService) > 0 {
		if description.Len() > 0 {
			description.WriteString("\n")
		}
		description.WriteString(strings.Join(selfService, "\n"))
	}

	logger.Info("Roster renamed", map[string]interface{}{
		"guild_id": rc.GuildID,
		"game_id":  game.ID.String(),
		"renames":  len(applied),
	})
	_ = respondEmbed(s, i, embeds.Success(title, description.String()))
}

func guildOwner(s *discordgo.Session, guildID string) (string, error) {
	if guild, err := s.State.Guild(guildID); err == nil && guild.OwnerID != "" {
		return guild.OwnerID, nil
	}
	guild, err := s.Guild(guildID)
	if err != nil {
		return "", err
	}
	return guild.OwnerID, nil
}

// memberDisplayName mirrors what the guild shows for a member: nickname,
// then global display name, then the account name.
func memberDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil && member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	if member.User != nil {
		return member.User.Username
	}
	return ""
}
