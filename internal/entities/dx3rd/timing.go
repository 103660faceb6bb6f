// Package dx3rd holds the Double Cross 3rd Edition document shapes the rule
// engine reads and patches: actors, their items and applied effects, scenes.
package dx3rd

import "fmt"

// TimingKey names a point in the turn/round/scene/session structure at which
// temporary state expires.
type TimingKey string

// Timing keys
const (
	TimingRoll     TimingKey = "roll"
	TimingMajor    TimingKey = "major"
	TimingReaction TimingKey = "reaction"
	TimingGuard    TimingKey = "guard"
	TimingMain     TimingKey = "main"
	TimingRound    TimingKey = "round"
	TimingScene    TimingKey = "scene"
	TimingSession  TimingKey = "session"
)

// Sentinels meaning "never auto-expires". Usage counters use NotCheck,
// toggles and effects use Never.
const (
	TimingNotCheck TimingKey = "notCheck"
	TimingNever    TimingKey = "-"
)

// TimingKeys lists every expiring timing in turn-structure order.
var TimingKeys = []TimingKey{
	TimingRoll,
	TimingMajor,
	TimingReaction,
	TimingGuard,
	TimingMain,
	TimingRound,
	TimingScene,
	TimingSession,
}

// ParseTimingKey validates a raw timing name
func ParseTimingKey(raw string) (TimingKey, error) {
	for _, t := range TimingKeys {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown timing %q", raw)
}

// Expires reports whether t names a real timing rather than a "never" sentinel
func (t TimingKey) Expires() bool {
	switch t {
	case "", TimingNotCheck, TimingNever:
		return false
	default:
		return true
	}
}

func (t TimingKey) String() string {
	return string(t)
}
