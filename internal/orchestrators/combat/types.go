package combat

import (
	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/rules/bonus"
)

// WeaponOption is one entry of the weapon picker
type WeaponOption struct {
	Item      *dx3rd.Item
	Exhausted bool
}

// ListWeaponOptionsInput contains the actor whose weapons are listed
type ListWeaponOptionsInput struct {
	ActorID string
}

// ListWeaponOptionsOutput lists weapons and vehicles in display order
type ListWeaponOptionsOutput struct {
	Options []*WeaponOption
}

// AggregateSelectionInput names the items picked for an attack
type AggregateSelectionInput struct {
	ActorID string
	ItemIDs []string
}

// AggregateSelectionOutput contains the combined bonus
type AggregateSelectionOutput struct {
	Result bonus.Result
}

// ConsumeAttackInput names the items an attack was made with
type ConsumeAttackInput struct {
	ActorID string
	ItemIDs []string
}

// ConsumeAttackOutput contains the bonus the attack used and the weapons
// whose allowance was spent
type ConsumeAttackOutput struct {
	Result   bonus.Result
	Consumed []string
}
