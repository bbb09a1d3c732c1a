package tabletop

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	channelGames map[string]uuid.UUID            // channel id -> game id
	characters   map[uuid.UUID]uuid.UUID         // character id -> game id
	assignments  map[uuid.UUID]map[string]*Assignment // game id -> user id -> row
}

func (f *fakeStore) GameByChannel(guildID, channelID string) (uuid.UUID, bool, error) {
	id, ok := f.channelGames[channelID]
	return id, ok, nil
}

func (f *fakeStore) CharacterGame(guildID string, characterID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.characters[characterID]
	if !ok {
		return uuid.Nil, NotFound("Character")
	}
	return id, nil
}

func (f *fakeStore) PlayerAssignment(gameID uuid.UUID, userID string) (*Assignment, error) {
	return f.assignments[gameID][userID], nil
}

func TestResolveExplicitGameWins(t *testing.T) {
	gameID := uuid.New()
	otherID := uuid.New()
	resolver := NewResolver(&fakeStore{
		channelGames: map[string]uuid.UUID{"chan": otherID},
	})

	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}
	resolution, err := resolver.Resolve(rc, ProvidedArg(gameID), NoArg())
	require.NoError(t, err)
	assert.Equal(t, gameID, resolution.GameID)
}

func TestResolveFromChannelBinding(t *testing.T) {
	gameID := uuid.New()
	resolver := NewResolver(&fakeStore{
		channelGames: map[string]uuid.UUID{"chan": gameID},
	})

	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}
	resolution, err := resolver.Resolve(rc, UnsetArg(), NoArg())
	require.NoError(t, err)
	assert.Equal(t, gameID, resolution.GameID)
	assert.Nil(t, resolution.CharacterID)
}

func TestResolveGameFromExplicitCharacter(t *testing.T) {
	gameID := uuid.New()
	characterID := uuid.New()
	resolver := NewResolver(&fakeStore{
		characters: map[uuid.UUID]uuid.UUID{characterID: gameID},
	})

	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}
	resolution, err := resolver.Resolve(rc, UnsetArg(), ProvidedArg(characterID))
	require.NoError(t, err)
	assert.Equal(t, gameID, resolution.GameID)
	require.NotNil(t, resolution.CharacterID)
	assert.Equal(t, characterID, *resolution.CharacterID)
}

func TestResolveFailsOutsideGameChannel(t *testing.T) {
	resolver := NewResolver(&fakeStore{})
	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}

	_, err := resolver.Resolve(rc, UnsetArg(), NoArg())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAmbiguousContext))
	assert.Equal(t, MsgNoGameContext, UserMessage(err))

	// With a character slot on the command, the hint names both arguments.
	_, err = resolver.Resolve(rc, UnsetArg(), UnsetArg())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAmbiguousContext))
	assert.Equal(t, MsgNoGameOrCharacter, UserMessage(err))
}

func TestResolveCharacterFromAssignment(t *testing.T) {
	gameID := uuid.New()
	characterID := uuid.New()
	resolver := NewResolver(&fakeStore{
		channelGames: map[string]uuid.UUID{"chan": gameID},
		assignments: map[uuid.UUID]map[string]*Assignment{
			gameID: {"u": {CharacterID: &characterID}},
		},
	})

	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}
	resolution, err := resolver.Resolve(rc, UnsetArg(), UnsetArg())
	require.NoError(t, err)
	require.NotNil(t, resolution.CharacterID)
	assert.Equal(t, characterID, *resolution.CharacterID)
}

func TestResolveCharacterFailures(t *testing.T) {
	gameID := uuid.New()
	store := &fakeStore{
		channelGames: map[string]uuid.UUID{"chan": gameID},
		assignments:  map[uuid.UUID]map[string]*Assignment{gameID: {}},
	}
	resolver := NewResolver(store)
	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}

	// No player row at all.
	_, err := resolver.Resolve(rc, UnsetArg(), UnsetArg())
	require.Error(t, err)
	assert.Equal(t, MsgNotAPlayer, UserMessage(err))

	// A row with no character bound to it.
	store.assignments[gameID]["u"] = &Assignment{}
	_, err = resolver.Resolve(rc, UnsetArg(), UnsetArg())
	require.Error(t, err)
	assert.Equal(t, MsgNoCharacterAssigned, UserMessage(err))
}

func TestResolveIsDeterministic(t *testing.T) {
	gameID := uuid.New()
	resolver := NewResolver(&fakeStore{
		channelGames: map[string]uuid.UUID{"chan": gameID},
	})
	rc := RequestContext{GuildID: "g", UserID: "u", ChannelID: "chan"}

	first, err := resolver.Resolve(rc, UnsetArg(), NoArg())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := resolver.Resolve(rc, UnsetArg(), NoArg())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
