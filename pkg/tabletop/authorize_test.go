package tabletop

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanManageGame(t *testing.T) {
	facts := GameFacts{OwnerID: "owner"}

	assert.True(t, CanManageGame(RequestContext{UserID: "owner"}, facts))
	assert.False(t, CanManageGame(RequestContext{UserID: "someone"}, facts))
	assert.True(t, CanManageGame(RequestContext{UserID: "someone", Moderator: true}, facts))
}

func TestCanManageCharacter(t *testing.T) {
	facts := CharacterFacts{
		AuthorID:       "author",
		AssignedUserID: "player",
		GameOwnerID:    "owner",
	}

	assert.True(t, CanManageCharacter(RequestContext{UserID: "author"}, facts))
	assert.True(t, CanManageCharacter(RequestContext{UserID: "player"}, facts))
	assert.True(t, CanManageCharacter(RequestContext{UserID: "owner"}, facts))
	assert.False(t, CanManageCharacter(RequestContext{UserID: "someone"}, facts))
	assert.True(t, CanManageCharacter(RequestContext{UserID: "someone", Moderator: true}, facts))
}

func TestUnassignedCharacterDoesNotMatchEmptyCaller(t *testing.T) {
	facts := CharacterFacts{AuthorID: "author", GameOwnerID: "owner"}
	assert.False(t, CanManageCharacter(RequestContext{UserID: ""}, facts))
}

func TestModerationIsMonotonic(t *testing.T) {
	// Granting the moderation capability can only turn a deny into an
	// allow, never the reverse.
	gameFacts := []GameFacts{{OwnerID: "owner"}, {OwnerID: "other"}}
	characterFacts := []CharacterFacts{
		{AuthorID: "author", AssignedUserID: "player", GameOwnerID: "owner"},
		{AuthorID: "x", GameOwnerID: "y"},
	}
	callers := []string{"owner", "author", "player", "someone"}

	for _, caller := range callers {
		plain := RequestContext{UserID: caller}
		elevated := RequestContext{UserID: caller, Moderator: true}

		for _, facts := range gameFacts {
			if CanManageGame(plain, facts) {
				assert.True(t, CanManageGame(elevated, facts))
			}
			assert.True(t, CanManageGame(elevated, facts))
		}
		for _, facts := range characterFacts {
			if CanManageCharacter(plain, facts) {
				assert.True(t, CanManageCharacter(elevated, facts))
			}
			assert.True(t, CanManageCharacter(elevated, facts))
		}
	}
}

type fakeFacts struct {
	games      map[uuid.UUID]GameFacts
	characters map[uuid.UUID]CharacterFacts
	members    map[uuid.UUID]map[string]bool
}

func (f *fakeFacts) GameFacts(guildID string, gameID uuid.UUID) (GameFacts, error) {
	facts, ok := f.games[gameID]
	if !ok {
		return GameFacts{}, NotFound("Game")
	}
	return facts, nil
}

func (f *fakeFacts) CharacterFacts(guildID string, characterID uuid.UUID) (CharacterFacts, error) {
	facts, ok := f.characters[characterID]
	if !ok {
		return CharacterFacts{}, NotFound("Character")
	}
	return facts, nil
}

func (f *fakeFacts) IsMember(guildID string, gameID uuid.UUID, userID string) (bool, error) {
	return f.members[gameID][userID], nil
}

func TestAuthorizerReloadsFactsEveryCall(t *testing.T) {
	gameID := uuid.New()
	facts := &fakeFacts{games: map[uuid.UUID]GameFacts{gameID: {OwnerID: "before"}}}
	authorizer := NewAuthorizer(facts)

	rc := RequestContext{GuildID: "g", UserID: "after"}
	err := authorizer.AuthorizeGame(rc, gameID)
	assert.True(t, IsKind(err, KindPermissionDenied))

	// Ownership transfer between calls must be observed.
	facts.games[gameID] = GameFacts{OwnerID: "after"}
	require.NoError(t, authorizer.AuthorizeGame(rc, gameID))
}

func TestAuthorizeGameNotFound(t *testing.T) {
	authorizer := NewAuthorizer(&fakeFacts{})
	err := authorizer.AuthorizeGame(RequestContext{GuildID: "g", UserID: "u"}, uuid.New())
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDenialMessageIsGeneric(t *testing.T) {
	gameID := uuid.New()
	authorizer := NewAuthorizer(&fakeFacts{
		games: map[uuid.UUID]GameFacts{gameID: {OwnerID: "owner"}},
	})

	err := authorizer.AuthorizeGame(RequestContext{GuildID: "g", UserID: "u"}, gameID)
	require.Error(t, err)
	assert.Equal(t, "You don't have permission to do that!", UserMessage(err))
	assert.NotContains(t, UserMessage(err), "owner")
}

func TestRequireMembership(t *testing.T) {
	gameID := uuid.New()
	authorizer := NewAuthorizer(&fakeFacts{
		members: map[uuid.UUID]map[string]bool{gameID: {"member": true}},
	})

	require.NoError(t, authorizer.RequireMembership(RequestContext{UserID: "member"}, gameID))
	err := authorizer.RequireMembership(RequestContext{UserID: "stranger"}, gameID)
	assert.True(t, IsKind(err, KindPermissionDenied))
}
