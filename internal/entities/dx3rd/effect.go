package dx3rd

// AppliedEffect is a transient modifier attached to an actor. It either
// carries its own Disable timing or inherits one from the item named by
// ItemID, which may belong to a different actor.
type AppliedEffect struct {
	ItemID     string                 `json:"itemId,omitempty"`
	Disable    TimingKey              `json:"disable,omitempty"`
	Name       string                 `json:"name,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// HasOwnTiming reports whether the effect expires on its own timing
func (e *AppliedEffect) HasOwnTiming() bool {
	return e != nil && e.Disable.Expires()
}
