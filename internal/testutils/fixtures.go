package testutils

import (
	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
)

// Fixture IDs
const (
	ActorKaito  = "actor-kaito"
	ActorRina   = "actor-rina"
	ActorTroop  = "actor-troop"
	ItemBlade   = "item-blade"
	ItemRifle   = "item-rifle"
	ItemBike    = "item-bike"
	ItemHaste   = "item-haste"
	ItemBarrier = "item-barrier"
)

// NewCharacter builds a character actor with the given items
func NewCharacter(id, name string, items ...*dx3rd.Item) *dx3rd.Actor {
	return &dx3rd.Actor{
		ID:    id,
		Name:  name,
		Type:  dx3rd.ActorTypeCharacter,
		Items: items,
		System: dx3rd.ActorSystem{
			AppliedEffects: map[string]*dx3rd.AppliedEffect{},
		},
	}
}

// NewWeapon builds a weapon with an attack allowance
func NewWeapon(id, name string, attack, add dx3rd.LooseNumber, used, limit int) *dx3rd.Item {
	return &dx3rd.Item{
		ID:   id,
		Name: name,
		Type: dx3rd.ItemTypeWeapon,
		System: dx3rd.ItemSystem{
			Active: dx3rd.ActiveState{Disable: dx3rd.TimingNever},
			Used:   dx3rd.UsageCounter{Disable: dx3rd.TimingNotCheck},
			AttackUsed: &dx3rd.UsageCounter{
				State:   used,
				Max:     limit,
				Disable: dx3rd.TimingRound,
			},
			Effect: dx3rd.EffectSettings{Disable: dx3rd.TimingNever},
			Attack: attack,
			Add:    add,
		},
	}
}

// NewVehicle builds a vehicle; vehicles have no attack allowance
func NewVehicle(id, name string, attack dx3rd.LooseNumber) *dx3rd.Item {
	return &dx3rd.Item{
		ID:   id,
		Name: name,
		Type: dx3rd.ItemTypeVehicle,
		System: dx3rd.ItemSystem{
			Active: dx3rd.ActiveState{Disable: dx3rd.TimingNever},
			Used:   dx3rd.UsageCounter{Disable: dx3rd.TimingNotCheck},
			Effect: dx3rd.EffectSettings{Disable: dx3rd.TimingNever},
			Attack: attack,
		},
	}
}

// NewEffectItem builds an effect item whose toggle, usage counter and applied
// effects all expire on the given timings
func NewEffectItem(id, name string, active bool, activeOff dx3rd.TimingKey, used int, usedReset, effectOff dx3rd.TimingKey) *dx3rd.Item {
	return &dx3rd.Item{
		ID:   id,
		Name: name,
		Type: dx3rd.ItemTypeEffect,
		System: dx3rd.ItemSystem{
			Active: dx3rd.ActiveState{State: active, Disable: activeOff},
			Used:   dx3rd.UsageCounter{State: used, Max: 3, Disable: usedReset},
			Effect: dx3rd.EffectSettings{Disable: effectOff},
		},
	}
}
