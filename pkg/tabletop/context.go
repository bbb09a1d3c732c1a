package tabletop

import "github.com/google/uuid"

// RequestContext is the normalized invocation built once at the boundary:
// who is calling, from where, and whether they hold the guild's moderation
// capability. The core never reaches back into the Discord session for any
// of these facts.
type RequestContext struct {
	GuildID   string
	UserID    string
	ChannelID string
	Moderator bool
}

type argState int

const (
	argNotApplicable argState = iota
	argUnset
	argProvided
)

// Arg is a three-state argument slot: explicitly provided, explicitly absent
// (the caller wants inference), or not applicable to the command at all.
type Arg struct {
	state argState
	value uuid.UUID
}

// ProvidedArg returns a slot carrying an explicit id.
func ProvidedArg(id uuid.UUID) Arg {
	return Arg{state: argProvided, value: id}
}

// UnsetArg returns a slot the caller left empty, asking for inference.
func UnsetArg() Arg {
	return Arg{state: argUnset}
}

// NoArg returns a slot that does not exist on the invoked command.
func NoArg() Arg {
	return Arg{state: argNotApplicable}
}

// OptionalArg maps a nillable id from the command glue onto a slot.
func OptionalArg(id *uuid.UUID) Arg {
	if id == nil {
		return UnsetArg()
	}
	return ProvidedArg(*id)
}

// Provided returns the explicit value, if one was given.
func (a Arg) Provided() (uuid.UUID, bool) {
	return a.value, a.state == argProvided
}

// Applicable reports whether the slot exists on the invoked command.
func (a Arg) Applicable() bool {
	return a.state != argNotApplicable
}
