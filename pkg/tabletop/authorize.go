package tabletop

import "github.com/google/uuid"

// GameFacts are the ownership facts needed to authorize an action on a game.
type GameFacts struct {
	OwnerID string
}

// CharacterFacts are the ownership facts needed to authorize an action on a
// character.
type CharacterFacts struct {
	AuthorID       string
	AssignedUserID string // empty when no player holds the character
	GameOwnerID    string
}

// CanManageGame decides whether the caller may act on a game: moderators
// always, otherwise only the game's owner.
func CanManageGame(rc RequestContext, facts GameFacts) bool {
	if rc.Moderator {
		return true
	}
	return facts.OwnerID == rc.UserID
}

// CanManageCharacter decides whether the caller may act on a character:
// moderators always, otherwise the character's author, the player currently
// assigned to it, or the owner of its game.
func CanManageCharacter(rc RequestContext, facts CharacterFacts) bool {
	if rc.Moderator {
		return true
	}
	return facts.AuthorID == rc.UserID ||
		(facts.AssignedUserID != "" && facts.AssignedUserID == rc.UserID) ||
		facts.GameOwnerID == rc.UserID
}

// FactSource loads ownership facts from the entity store. Facts are loaded
// fresh on every privileged call; ownership can change between calls, so
// nothing here may be cached.
type FactSource interface {
	GameFacts(guildID string, gameID uuid.UUID) (GameFacts, error)
	CharacterFacts(guildID string, characterID uuid.UUID) (CharacterFacts, error)
	IsMember(guildID string, gameID uuid.UUID, userID string) (bool, error)
}

// Authorizer evaluates the layered ownership model against live store facts.
type Authorizer struct {
	facts FactSource
}

func NewAuthorizer(facts FactSource) *Authorizer {
	return &Authorizer{facts: facts}
}

// AuthorizeGame returns nil if the caller may act on the game, a
// PermissionDenied error otherwise.
func (a *Authorizer) AuthorizeGame(rc RequestContext, gameID uuid.UUID) error {
	facts, err := a.facts.GameFacts(rc.GuildID, gameID)
	if err != nil {
		return err
	}
	if !CanManageGame(rc, facts) {
		return PermissionDenied()
	}
	return nil
}

// AuthorizeCharacter returns nil if the caller may act on the character, a
// PermissionDenied error otherwise.
func (a *Authorizer) AuthorizeCharacter(rc RequestContext, characterID uuid.UUID) error {
	facts, err := a.facts.CharacterFacts(rc.GuildID, characterID)
	if err != nil {
		return err
	}
	if !CanManageCharacter(rc, facts) {
		return PermissionDenied()
	}
	return nil
}

// RequireMembership returns nil if the caller participates in the game. The
// game owner counts as a member whether or not they hold a player row.
func (a *Authorizer) RequireMembership(rc RequestContext, gameID uuid.UUID) error {
	member, err := a.facts.IsMember(rc.GuildID, gameID, rc.UserID)
	if err != nil {
		return err
	}
	if !member {
		return PermissionDenied()
	}
	return nil
}
