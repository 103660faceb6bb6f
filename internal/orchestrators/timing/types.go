package timing

import (
	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
)

// TargetMode selects how a sweep finds its actors
type TargetMode string

// Target modes
const (
	// TargetAll sweeps the actors with tokens on the active scene
	TargetAll TargetMode = "all"
	// TargetOne sweeps a single actor
	TargetOne TargetMode = "one"
	// TargetMany sweeps an explicit list of actors
	TargetMany TargetMode = "many"
)

// Target names the actors a sweep runs over. The zero value means TargetAll.
type Target struct {
	Mode     TargetMode
	ActorIDs []string
}

// All targets the active scene
func All() Target {
	return Target{Mode: TargetAll}
}

// One targets a single actor
func One(actorID string) Target {
	return Target{Mode: TargetOne, ActorIDs: []string{actorID}}
}

// Many targets the listed actors
func Many(actorIDs ...string) Target {
	return Target{Mode: TargetMany, ActorIDs: actorIDs}
}

// SweepInput contains the timing that fired and who it applies to
type SweepInput struct {
	Timing dx3rd.TimingKey
	Target Target
}

// SweepOutput reports what a sweep changed. Writes that failed are listed in
// Failures and are not counted.
type SweepOutput struct {
	ActorsScanned    int
	ItemsDeactivated int
	UsageReset       int
	AttackUsageReset int
	EffectsRemoved   int
	Failures         []Failure
}

// Failure is one write the sweep could not apply
type Failure struct {
	ActorID string
	ItemID  string
	Reason  errors.Reason
	Message string
}

// Changed reports whether the sweep wrote anything
func (o *SweepOutput) Changed() bool {
	return o.ItemsDeactivated+o.UsageReset+o.AttackUsageReset+o.EffectsRemoved > 0
}
