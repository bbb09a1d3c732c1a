package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/logging"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
)

// requestContext normalizes an interaction into the invocation facts the core
// works with. Moderator capability is the Manage Messages permission in the
// invoking channel.
func requestContext(i *discordgo.InteractionCreate) tabletop.RequestContext {
	rc := tabletop.RequestContext{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}
	if i.Member != nil {
		rc.UserID = i.Member.User.ID
		rc.Moderator = i.Member.Permissions&discordgo.PermissionManageMessages != 0
	}
	return rc
}

// subcommand walks the option tree down to the invoked subcommand. The path
// is "name" for a plain subcommand and "group.name" under a group.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(data.Options) == 0 {
		return "", nil
	}

	first := data.Options[0]
	switch first.Type {
	case discordgo.ApplicationCommandOptionSubCommandGroup:
		if len(first.Options) == 0 {
			return first.Name, nil
		}
		nested := first.Options[0]
		return first.Name + "." + nested.Name, nested.Options
	case discordgo.ApplicationCommandOptionSubCommand:
		return first.Name, first.Options
	}
	return "", data.Options
}

// optionValues indexes the invoked subcommand's options by name.
type optionValues = map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionValues {
	m := make(optionValues, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts optionValues, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// optionalString maps an omitted option to nil so that model pointer fields
// stay NULL instead of becoming empty strings.
func optionalString(opts optionValues, name string) *string {
	if opt, ok := opts[name]; ok {
		value := opt.StringValue()
		return &value
	}
	return nil
}

func boolOption(opts optionValues, name string) bool {
	if opt, ok := opts[name]; ok {
		return opt.BoolValue()
	}
	return false
}

func userOption(opts optionValues, name string, s *discordgo.Session) *discordgo.User {
	if opt, ok := opts[name]; ok {
		return opt.UserValue(s)
	}
	return nil
}

// uuidArg maps an entity option onto a resolver slot. Autocomplete fills
// these options with entity ids, but callers can still submit free text; text
// that is not an id resolves like a missing entity.
func uuidArg(opts optionValues, name, label string) (tabletop.Arg, error) {
	opt, ok := opts[name]
	if !ok {
		return tabletop.UnsetArg(), nil
	}
	id, err := uuid.Parse(opt.StringValue())
	if err != nil {
		return tabletop.Arg{}, tabletop.NotFound(label)
	}
	return tabletop.ProvidedArg(id), nil
}

// uuidValue parses a required entity option.
func uuidValue(opts optionValues, name, label string) (uuid.UUID, error) {
	opt, ok := opts[name]
	if !ok {
		return uuid.Nil, tabletop.NotFound(label)
	}
	id, err := uuid.Parse(opt.StringValue())
	if err != nil {
		return uuid.Nil, tabletop.NotFound(label)
	}
	return id, nil
}

func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// respondError logs the failure and surfaces the error's user-safe message.
// Expected outcomes (denied, not found, conflicts) log at info; store and
// Discord failures log as errors.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger, err error) {
	fields := map[string]interface{}{
		"guild_id":   i.GuildID,
		"channel_id": i.ChannelID,
	}
	if i.Member != nil {
		fields["user_id"] = i.Member.User.ID
	}

	switch tabletop.KindOf(err) {
	case tabletop.KindInternal, tabletop.KindCollaboratorFailure:
		logger.Error("Command failed", err, fields)
	default:
		logger.Info(err.Error(), fields)
	}

	if respondErr := respondEphemeral(s, i, tabletop.UserMessage(err)); respondErr != nil {
		logger.Error("Failed to send error response", respondErr, fields)
	}
}

// requireGuild rejects invocations outside a guild (DMs have no member).
func requireGuild(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		_ = respondEphemeral(s, i, "This command only works in a server!")
		return false
	}
	return true
}
