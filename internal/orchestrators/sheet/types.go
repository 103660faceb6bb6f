package sheet

import "github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"

// ApplyFieldChangeInput writes one field. Path is relative to the item when
// ItemID is set, otherwise to the actor.
type ApplyFieldChangeInput struct {
	ActorID string
	ItemID  string
	Path    string
	Value   interface{}
}

// ApplyFieldChangeOutput returns the changed document; Item is set for item
// changes, Actor for actor changes
type ApplyFieldChangeOutput struct {
	Actor *dx3rd.Actor
	Item  *dx3rd.Item
}

// ToggleEquipmentInput names the item to equip or unequip
type ToggleEquipmentInput struct {
	ActorID string
	ItemID  string
}

// ToggleEquipmentOutput returns the item and its new equipment flag
type ToggleEquipmentOutput struct {
	Item     *dx3rd.Item
	Equipped bool
}
