package tabletop

import (
	"fmt"
	"strings"
)

// Mode selects the direction of the roster display-name transform.
type Mode int

const (
	Activate Mode = iota
	Deactivate
)

// Participant is one roster entry as the activation engine sees it.
type Participant struct {
	UserID        string
	DisplayName   string
	CharacterName string // empty when the player has no character assigned
	Owner         bool   // the guild's owning user
}

// NameChange is one computed rename. When RequiresSelfAction is set the bot
// cannot apply the rename itself (Discord refuses to rename the server
// owner) and the participant has to run the nick command on their own.
type NameChange struct {
	UserID             string
	OldName            string
	NewName            string
	RequiresSelfAction bool
}

// BaseName strips the parenthetical character suffix from a display name:
// everything before the first "(", right-trimmed. Position-based on purpose;
// a base name containing a literal "(" is not supported.
func BaseName(display string) string {
	base, _, _ := strings.Cut(display, "(")
	return strings.TrimRight(base, " ")
}

// ActivatedName derives the canonical "<base> (<character>)" form. The base
// is re-derived first, so applying it to an already-activated name is a
// no-op rather than a second suffix.
func ActivatedName(display, characterName string) string {
	return fmt.Sprintf("%s (%s)", BaseName(display), characterName)
}

// ComputeTransform computes the per-participant renames for a roster.
//
// Activate appends each assigned character's name; participants without a
// character are untouched. Deactivate strips the suffix from everyone.
// Both directions are idempotent: a participant whose name already matches
// the target produces no entry, so running the same transform twice yields
// no further changes.
func ComputeTransform(mode Mode, roster []Participant) []NameChange {
	var changes []NameChange
	for _, p := range roster {
		var target string
		switch mode {
		case Activate:
			if p.CharacterName == "" {
				continue
			}
			target = ActivatedName(p.DisplayName, p.CharacterName)
		case Deactivate:
			target = BaseName(p.DisplayName)
		}

		if target == p.DisplayName {
			continue
		}

		changes = append(changes, NameChange{
			UserID:             p.UserID,
			OldName:            p.DisplayName,
			NewName:            target,
			RequiresSelfAction: p.Owner,
		})
	}
	return changes
}
