package tabletop

import "github.com/google/uuid"

// Literal remediation hints returned by the resolver. These are part of the
// observable contract; commands surface them verbatim.
const (
	MsgNoGameContext          = "This isn't a game channel. Pass the `game` argument so I know which game you mean."
	MsgNoGameOrCharacter      = "This isn't a game channel. Pass the `game` or `character` argument so I know which game you mean."
	MsgNotAPlayer             = "You are not a player in this game!"
	MsgNoCharacterAssigned    = "You have no character assigned in this game!"
)

// Assignment is a player row as seen by the resolver: the row may exist with
// or without a character bound to it.
type Assignment struct {
	CharacterID *uuid.UUID
}

// ResolverStore is the slice of the entity store the resolver reads from.
type ResolverStore interface {
	// GameByChannel looks up the game whose home channel is channelID.
	GameByChannel(guildID, channelID string) (uuid.UUID, bool, error)
	// CharacterGame returns the owning game of a character.
	CharacterGame(guildID string, characterID uuid.UUID) (uuid.UUID, error)
	// PlayerAssignment returns the caller's player row for a game, or nil
	// when the caller holds no row.
	PlayerAssignment(gameID uuid.UUID, userID string) (*Assignment, error)
}

// Resolution is a concrete command target: always a game, plus a character
// when the invoked command has a character slot.
type Resolution struct {
	GameID      uuid.UUID
	CharacterID *uuid.UUID
}

// Resolver infers which game and character a command applies to when the
// caller omits them, using the channel-to-game binding and the caller's
// player-to-character binding.
type Resolver struct {
	store ResolverStore
}

func NewResolver(store ResolverStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps the invocation onto a concrete target, in order: explicit game
// argument, then the channel binding, then the explicit character's owning
// game. The character slot is filled from the explicit argument or from the
// caller's assignment in the resolved game. Every failure carries a specific
// guidance message.
func (r *Resolver) Resolve(rc RequestContext, game, character Arg) (Resolution, error) {
	gameID, err := r.resolveGame(rc, game, character)
	if err != nil {
		return Resolution{}, err
	}

	if !character.Applicable() {
		return Resolution{GameID: gameID}, nil
	}

	if id, ok := character.Provided(); ok {
		return Resolution{GameID: gameID, CharacterID: &id}, nil
	}

	assignment, err := r.store.PlayerAssignment(gameID, rc.UserID)
	if err != nil {
		return Resolution{}, err
	}
	if assignment == nil {
		return Resolution{}, Ambiguous(MsgNotAPlayer)
	}
	if assignment.CharacterID == nil {
		return Resolution{}, Ambiguous(MsgNoCharacterAssigned)
	}
	return Resolution{GameID: gameID, CharacterID: assignment.CharacterID}, nil
}

func (r *Resolver) resolveGame(rc RequestContext, game, character Arg) (uuid.UUID, error) {
	if id, ok := game.Provided(); ok {
		return id, nil
	}

	bound, found, err := r.store.GameByChannel(rc.GuildID, rc.ChannelID)
	if err != nil {
		return uuid.Nil, err
	}
	if found {
		return bound, nil
	}

	if id, ok := character.Provided(); ok {
		return r.store.CharacterGame(rc.GuildID, id)
	}

	if character.Applicable() {
		return uuid.Nil, Ambiguous(MsgNoGameOrCharacter)
	}
	return uuid.Nil, Ambiguous(MsgNoGameContext)
}
