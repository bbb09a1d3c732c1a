package tabletop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Rook", BaseName("Rook"))
	assert.Equal(t, "Rook", BaseName("Rook (Vex)"))
	assert.Equal(t, "Rook", BaseName("Rook (Vex) (Mira)"))
	assert.Equal(t, "", BaseName("(Vex)"))
}

func TestActivatedNameStripsPriorSuffix(t *testing.T) {
	assert.Equal(t, "Rook (Vex)", ActivatedName("Rook", "Vex"))
	assert.Equal(t, "Rook (Vex)", ActivatedName("Rook (Mira)", "Vex"))
}

func apply(roster []Participant, changes []NameChange) []Participant {
	byUser := make(map[string]string, len(changes))
	for _, change := range changes {
		byUser[change.UserID] = change.NewName
	}
	out := make([]Participant, len(roster))
	copy(out, roster)
	for i := range out {
		if name, ok := byUser[out[i].UserID]; ok {
			out[i].DisplayName = name
		}
	}
	return out
}

func TestActivateRoster(t *testing.T) {
	roster := []Participant{
		{UserID: "owner", DisplayName: "Dana", CharacterName: "Vex", Owner: true},
		{UserID: "a", DisplayName: "Sam", CharacterName: "Mira"},
		{UserID: "b", DisplayName: "Lee"},
	}

	changes := ComputeTransform(Activate, roster)
	assert.Len(t, changes, 2)

	assert.Equal(t, "owner", changes[0].UserID)
	assert.Equal(t, "Dana (Vex)", changes[0].NewName)
	assert.True(t, changes[0].RequiresSelfAction)

	assert.Equal(t, "a", changes[1].UserID)
	assert.Equal(t, "Sam", changes[1].OldName)
	assert.Equal(t, "Sam (Mira)", changes[1].NewName)
	assert.False(t, changes[1].RequiresSelfAction)
}

func TestActivateIsIdempotent(t *testing.T) {
	roster := []Participant{
		{UserID: "a", DisplayName: "Sam", CharacterName: "Mira"},
		{UserID: "b", DisplayName: "Lee (Old)", CharacterName: "Nyx"},
	}

	once := apply(roster, ComputeTransform(Activate, roster))
	assert.Empty(t, ComputeTransform(Activate, once))
}

func TestDeactivateIsIdempotent(t *testing.T) {
	roster := []Participant{
		{UserID: "a", DisplayName: "Sam (Mira)", CharacterName: "Mira"},
		{UserID: "b", DisplayName: "Lee"},
	}

	once := apply(roster, ComputeTransform(Deactivate, roster))
	assert.Empty(t, ComputeTransform(Deactivate, once))
}

func TestDeactivateStripsWithoutAssignment(t *testing.T) {
	// The suffix goes away even when no character is assigned anymore.
	roster := []Participant{{UserID: "a", DisplayName: "Sam (Mira)"}}

	changes := ComputeTransform(Deactivate, roster)
	assert.Len(t, changes, 1)
	assert.Equal(t, "Sam", changes[0].NewName)
}

func TestDeactivateAfterActivateRoundTrips(t *testing.T) {
	roster := []Participant{
		{UserID: "owner", DisplayName: "Dana", CharacterName: "Vex", Owner: true},
		{UserID: "a", DisplayName: "Sam", CharacterName: "Mira"},
		{UserID: "b", DisplayName: "Lee"},
	}

	activated := apply(roster, ComputeTransform(Activate, roster))
	restored := apply(activated, ComputeTransform(Deactivate, activated))

	for i, p := range restored {
		assert.Equal(t, roster[i].DisplayName, p.DisplayName)
	}
}

func TestOwnerIsNeverMachineActionable(t *testing.T) {
	roster := []Participant{
		{UserID: "owner", DisplayName: "Dana (Vex)", CharacterName: "Vex", Owner: true},
	}

	for _, mode := range []Mode{Activate, Deactivate} {
		for _, change := range ComputeTransform(mode, roster) {
			assert.True(t, change.RequiresSelfAction)
		}
	}
}
