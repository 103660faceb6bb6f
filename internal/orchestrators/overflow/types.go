package overflow

import (
	overflowsession "github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session"
	rules "github.com/KirkDiggler/dx3rd-api/internal/rules/overflow"
)

// StartInput opens a selection. Pool gives the dice explicitly; otherwise
// DiceCount d10 are rolled. A nil Count means 1.
type StartInput struct {
	ActorID       string
	Pool          []int
	DiceCount     int
	Disabled      []int
	Mode          rules.Mode
	Count         *int
	OverrideTotal *int
}

// StartOutput contains the new session and its opening totals
type StartOutput struct {
	Session *overflowsession.Session
	Preview rules.Preview
}

// ToggleInput flips one die of a session
type ToggleInput struct {
	SessionID string
	Index     int
}

// ToggleOutput contains the session after the toggle
type ToggleOutput struct {
	Session *overflowsession.Session
	Preview rules.Preview
}

// ConfirmInput closes a session with its current selection
type ConfirmInput struct {
	SessionID string
}

// ConfirmOutput contains the dice to remove
type ConfirmOutput struct {
	Outcome *rules.Outcome
	Preview rules.Preview
	Pool    []int
}

// CancelInput discards a session
type CancelInput struct {
	SessionID string
}

// CancelOutput is empty
type CancelOutput struct{}
