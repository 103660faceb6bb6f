package dx3rd

// ItemType is the category of an item document
type ItemType string

// Item types
const (
	ItemTypeWeapon  ItemType = "weapon"
	ItemTypeVehicle ItemType = "vehicle"
	ItemTypeCombo   ItemType = "combo"
	ItemTypeEffect  ItemType = "effect"
	ItemTypeSpell   ItemType = "spell"
	ItemTypePsionic ItemType = "psionic"
	ItemTypeItem    ItemType = "item"
)

// Item is an owned sheet entry. Which System fields matter depends on Type.
type Item struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Type   ItemType   `json:"type"`
	Sort   int        `json:"sort"`
	System ItemSystem `json:"system"`
}

// ItemSystem holds the rule-system fields of an item
type ItemSystem struct {
	Active     ActiveState    `json:"active"`
	Used       UsageCounter   `json:"used"`
	AttackUsed *UsageCounter  `json:"attackUsed,omitempty"`
	Effect     EffectSettings `json:"effect"`
	Equipment  bool           `json:"equipment"`
	Attack     LooseNumber    `json:"attack,omitempty"`
	Add        LooseNumber    `json:"add,omitempty"`
}

// ActiveState is an on/off toggle that a timing can switch off
type ActiveState struct {
	State   bool      `json:"state"`
	Disable TimingKey `json:"disable"`
}

// UsageCounter counts uses and is reset to zero by its timing
type UsageCounter struct {
	State   int       `json:"state"`
	Max     int       `json:"max"`
	Disable TimingKey `json:"disable"`
}

// EffectSettings controls effects this item applies to actors
type EffectSettings struct {
	Disable TimingKey `json:"disable"`
}

// IsCombat reports whether the item can be picked for an attack
func (i *Item) IsCombat() bool {
	return i != nil && (i.Type == ItemTypeWeapon || i.Type == ItemTypeVehicle)
}
