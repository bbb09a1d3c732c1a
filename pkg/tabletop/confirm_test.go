package tabletop

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmCaseInsensitiveMatch(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)

	ran := 0
	confirmation := confirmer.Begin("BitD", "deleted", "kept", func() error {
		ran++
		return nil
	})

	outcome, _, err := confirmer.Resolve(confirmation.ID, "bitd")
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)
	assert.Equal(t, 1, ran)
}

func TestConfirmRejectsOtherInput(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)

	ran := 0
	confirmation := confirmer.Begin("BitD", "deleted", "kept", func() error {
		ran++
		return nil
	})

	outcome, _, err := confirmer.Resolve(confirmation.ID, "bit")
	require.NoError(t, err)
	assert.Equal(t, Rejected, outcome)
	assert.Equal(t, 0, ran)
}

func TestConfirmTrimsWhitespaceOnly(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)
	confirmation := confirmer.Begin("BitD", "", "", func() error { return nil })

	outcome, _, err := confirmer.Resolve(confirmation.ID, "  BITD  ")
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)

	confirmation = confirmer.Begin("BitD", "", "", func() error { return nil })
	outcome, _, err = confirmer.Resolve(confirmation.ID, "Bit D")
	require.NoError(t, err)
	assert.Equal(t, Rejected, outcome)
}

func TestConfirmEffectRunsAtMostOnce(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)

	ran := 0
	confirmation := confirmer.Begin("BitD", "", "", func() error {
		ran++
		return nil
	})

	outcome, _, err := confirmer.Resolve(confirmation.ID, "bitd")
	require.NoError(t, err)
	assert.Equal(t, Confirmed, outcome)

	// A duplicate submit for the same id finds nothing to run.
	outcome, _, err = confirmer.Resolve(confirmation.ID, "bitd")
	require.NoError(t, err)
	assert.Equal(t, Abandoned, outcome)
	assert.Equal(t, 1, ran)
}

func TestConfirmEffectErrorPropagates(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)
	boom := errors.New("role delete failed")
	confirmation := confirmer.Begin("BitD", "", "", func() error { return boom })

	outcome, _, err := confirmer.Resolve(confirmation.ID, "bitd")
	assert.Equal(t, Confirmed, outcome)
	assert.ErrorIs(t, err, boom)
}

func TestConfirmExpiresSilently(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)
	current := time.Now()
	confirmer.now = func() time.Time { return current }

	ran := 0
	confirmation := confirmer.Begin("BitD", "", "", func() error {
		ran++
		return nil
	})

	current = current.Add(2 * time.Minute)
	outcome, _, err := confirmer.Resolve(confirmation.ID, "bitd")
	require.NoError(t, err)
	assert.Equal(t, Abandoned, outcome)
	assert.Equal(t, 0, ran)
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	confirmer := NewConfirmer(time.Minute)
	current := time.Now()
	confirmer.now = func() time.Time { return current }

	stale := confirmer.Begin("old", "", "", func() error { return nil })
	current = current.Add(2 * time.Minute)
	fresh := confirmer.Begin("new", "", "", func() error { return nil })

	assert.Equal(t, 1, confirmer.Sweep())
	assert.Equal(t, 1, confirmer.Pending())

	outcome, _, _ := confirmer.Resolve(stale.ID, "old")
	assert.Equal(t, Abandoned, outcome)
	outcome, _, _ = confirmer.Resolve(fresh.ID, "new")
	assert.Equal(t, Confirmed, outcome)
}
