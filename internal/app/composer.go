package app

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrSecretRejected is returned by a SubmitFunc when the server refuses
// the shared add-event secret.
var ErrSecretRejected = errors.New("event secret rejected")

// MsgIncorrectSecret is shown inline when the secret check fails.
const MsgIncorrectSecret = "Incorrect secret. Please try again."

// Gate checks an entered shared secret. A nil Gate defers entirely to the
// server-side check.
type Gate func(secret string) bool

// SubmitFunc delivers a constructed event to the events API.
type SubmitFunc func(Event) error

// Composer is the add-event dialog state machine: idle until a day is
// selected, composing until a submit succeeds. Draft fields are edited
// freely and only validated on submit.
type Composer struct {
	target    time.Time
	composing bool

	Title       string
	Description string
	Secret      string
	Err         string
}

// Composing reports whether the dialog is open.
func (c *Composer) Composing() bool {
	return c.composing
}

// Target returns the selected day, zero while idle.
func (c *Composer) Target() time.Time {
	return c.target
}

// Select opens the dialog for the given day and clears any previous error.
func (c *Composer) Select(date time.Time) {
	c.target = date
	c.composing = true
	c.Err = ""
}

// Submit validates the draft, checks the secret and sends the event.
//
// The stored date is the day after the selected one. That shift matches
// the behavior the original UI shipped with and is pinned by tests; change
// it only together with the browser code.
//
// A blank title or missing target is ignored. A rejected secret sets the
// inline error and clears the secret field. Any other delivery failure is
// logged and leaves the draft untouched so the user can retry. On success
// the constructed event is returned and the composer goes back to idle.
func (c *Composer) Submit(gate Gate, submit SubmitFunc) (Event, bool) {
	if strings.TrimSpace(c.Title) == "" || c.target.IsZero() {
		return Event{}, false
	}
	if gate != nil && !gate(c.Secret) {
		c.rejectSecret()
		return Event{}, false
	}

	event := Event{
		ID:          uuid.NewString(),
		Date:        c.target.AddDate(0, 0, 1).Format(DateLayout),
		Title:       c.Title,
		Description: c.Description,
	}

	if err := submit(event); err != nil {
		if errors.Is(err, ErrSecretRejected) {
			c.rejectSecret()
		} else {
			log.Printf("Error adding event: %v", err)
		}
		return Event{}, false
	}

	c.reset()
	return event, true
}

func (c *Composer) rejectSecret() {
	c.Err = MsgIncorrectSecret
	c.Secret = ""
}

func (c *Composer) reset() {
	c.target = time.Time{}
	c.composing = false
	c.Title = ""
	c.Description = ""
	c.Secret = ""
	c.Err = ""
}
