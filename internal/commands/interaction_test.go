package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandPlain(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "system",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name: "create",
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "title", Type: discordgo.ApplicationCommandOptionString, Value: "Blades in the Dark"},
				},
			},
		},
	}

	sub, options := subcommand(data)
	assert.Equal(t, "create", sub)
	require.Len(t, options, 1)
	assert.Equal(t, "title", options[0].Name)
}

func TestSubcommandGroup(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "game",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name: "player",
				Type: discordgo.ApplicationCommandOptionSubCommandGroup,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name: "add",
						Type: discordgo.ApplicationCommandOptionSubCommand,
						Options: []*discordgo.ApplicationCommandInteractionDataOption{
							{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "42"},
						},
					},
				},
			},
		},
	}

	sub, options := subcommand(data)
	assert.Equal(t, "player.add", sub)
	require.Len(t, options, 1)
	assert.Equal(t, "user", options[0].Name)
}

func TestSubcommandEmpty(t *testing.T) {
	sub, options := subcommand(discordgo.ApplicationCommandInteractionData{Name: "game"})
	assert.Empty(t, sub)
	assert.Nil(t, options)
}

func TestUUIDArgOmitted(t *testing.T) {
	arg, err := uuidArg(optionValues{}, "game", "Game")
	require.NoError(t, err)

	_, provided := arg.Provided()
	assert.False(t, provided)
	assert.True(t, arg.Applicable())
}

func TestUUIDArgProvided(t *testing.T) {
	id := uuid.New()
	opts := optionValues{
		"game": {Name: "game", Type: discordgo.ApplicationCommandOptionString, Value: id.String()},
	}

	arg, err := uuidArg(opts, "game", "Game")
	require.NoError(t, err)

	got, provided := arg.Provided()
	assert.True(t, provided)
	assert.Equal(t, id, got)
}

func TestUUIDArgFreeText(t *testing.T) {
	opts := optionValues{
		"game": {Name: "game", Type: discordgo.ApplicationCommandOptionString, Value: "my cool game"},
	}

	_, err := uuidArg(opts, "game", "Game")
	require.Error(t, err)
	assert.True(t, tabletop.IsKind(err, tabletop.KindNotFound))
}

func TestUUIDValueMissing(t *testing.T) {
	_, err := uuidValue(optionValues{}, "system", "System")
	require.Error(t, err)
	assert.True(t, tabletop.IsKind(err, tabletop.KindNotFound))
}

func TestRequestContextModerator(t *testing.T) {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			GuildID:   "guild",
			ChannelID: "channel",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user"},
				Permissions: discordgo.PermissionManageMessages,
			},
		},
	}

	rc := requestContext(i)
	assert.Equal(t, "guild", rc.GuildID)
	assert.Equal(t, "channel", rc.ChannelID)
	assert.Equal(t, "user", rc.UserID)
	assert.True(t, rc.Moderator)
}

func TestRequestContextRegularUser(t *testing.T) {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			GuildID:   "guild",
			ChannelID: "channel",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user"},
				Permissions: discordgo.PermissionSendMessages,
			},
		},
	}

	assert.False(t, requestContext(i).Moderator)
}

func TestMemberDisplayNamePrecedence(t *testing.T) {
	member := &discordgo.Member{
		Nick: "Table Nick",
		User: &discordgo.User{Username: "account", GlobalName: "Display"},
	}
	assert.Equal(t, "Table Nick", memberDisplayName(member))

	member.Nick = ""
	assert.Equal(t, "Display", memberDisplayName(member))

	member.User.GlobalName = ""
	assert.Equal(t, "account", memberDisplayName(member))
}

func TestConfirmationCustomID(t *testing.T) {
	assert.True(t, IsConfirmationModal("confirm:6f2c"))
	assert.False(t, IsConfirmationModal("settings:6f2c"))
}

func TestModalInput(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "confirm:6f2c",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "confirmation", Value: "bitd"},
				},
			},
		},
	}
	assert.Equal(t, "bitd", modalInput(data))
}
