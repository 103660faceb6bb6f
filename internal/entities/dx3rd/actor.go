package dx3rd

// ActorType is the category of an actor document
type ActorType string

// Actor types
const (
	ActorTypeCharacter ActorType = "character"
	ActorTypeNPC       ActorType = "npc"
	ActorTypeTroop     ActorType = "troop"
)

// Actor is a character sheet: its items and the effects currently applied to it
type Actor struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Type   ActorType   `json:"type"`
	Items  []*Item     `json:"items"`
	System ActorSystem `json:"system"`
}

// ActorSystem holds the rule-system fields of an actor
type ActorSystem struct {
	AppliedEffects map[string]*AppliedEffect `json:"appliedEffects,omitempty"`
}

// IsCharacter reports whether timed sweeps apply to this actor
func (a *Actor) IsCharacter() bool {
	return a != nil && a.Type == ActorTypeCharacter
}

// FindItem returns the item with the given ID, or nil
func (a *Actor) FindItem(itemID string) *Item {
	if a == nil || itemID == "" {
		return nil
	}
	for _, item := range a.Items {
		if item != nil && item.ID == itemID {
			return item
		}
	}
	return nil
}
