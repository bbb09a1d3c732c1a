package tabletop

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of a confirmation challenge.
type Outcome int

const (
	// Confirmed means the typed input matched and the effect ran.
	Confirmed Outcome = iota
	// Rejected means input arrived but did not match; the effect did not run.
	Rejected
	// Abandoned means no input arrived before the deadline; the expired
	// interaction can no longer be replied to, so this resolves silently.
	Abandoned
)

// Effect is the destructive action guarded by a confirmation. It runs at
// most once; its error propagates to the invoker unmodified.
type Effect func() error

// Confirmation is one pending challenge, keyed by ID in the modal custom id.
type Confirmation struct {
	ID             string
	Phrase         string
	SuccessMessage string
	FailureMessage string
	effect         Effect
	deadline       time.Time
}

// Confirmer is the one-shot challenge/response gate wrapping every
// destructive action: system and game deletion, ownership transfer,
// character deletion. Pending entries that outlive the timeout are dropped
// by Sweep.
type Confirmer struct {
	mu      sync.Mutex
	pending map[string]*Confirmation
	timeout time.Duration
	now     func() time.Time
}

func NewConfirmer(timeout time.Duration) *Confirmer {
	return &Confirmer{
		pending: make(map[string]*Confirmation),
		timeout: timeout,
		now:     time.Now,
	}
}

// Begin registers a pending confirmation and returns it so the glue can show
// the challenge phrase to the caller.
func (c *Confirmer) Begin(phrase, successMessage, failureMessage string, effect Effect) *Confirmation {
	confirmation := &Confirmation{
		ID:             uuid.NewString(),
		Phrase:         phrase,
		SuccessMessage: successMessage,
		FailureMessage: failureMessage,
		effect:         effect,
		deadline:       c.now().Add(c.timeout),
	}

	c.mu.Lock()
	c.pending[confirmation.ID] = confirmation
	c.mu.Unlock()

	return confirmation
}

// Resolve consumes the pending confirmation for id and matches input against
// its phrase, ignoring case and surrounding whitespace. The entry is removed
// before the effect runs, so a duplicate submit can never fire it twice. An
// unknown or expired id resolves as Abandoned.
func (c *Confirmer) Resolve(id, input string) (Outcome, *Confirmation, error) {
	c.mu.Lock()
	confirmation, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok || c.now().After(confirmation.deadline) {
		return Abandoned, confirmation, nil
	}

	if !strings.EqualFold(strings.TrimSpace(input), confirmation.Phrase) {
		return Rejected, confirmation, nil
	}

	if err := confirmation.effect(); err != nil {
		return Confirmed, confirmation, err
	}
	return Confirmed, confirmation, nil
}

// Sweep drops every pending confirmation whose deadline has passed and
// returns how many were dropped. Run periodically; abandoned entries get no
// caller-visible message.
func (c *Confirmer) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for id, confirmation := range c.pending {
		if now.After(confirmation.deadline) {
			delete(c.pending, id)
			dropped++
		}
	}
	return dropped
}

// Pending returns the number of outstanding confirmations, for health
// reporting.
func (c *Confirmer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
