package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
)

// Request and response bodies. Each travels as the JSON form of a
// google.protobuf.Struct.

// SweepRequest asks for a timing sweep. Target is all, one or many.
type SweepRequest struct {
	Timing   string   `json:"timing"`
	Target   string   `json:"target,omitempty"`
	ActorIDs []string `json:"actorIds,omitempty"`
}

// SweepFailure is one write a sweep could not apply
type SweepFailure struct {
	ActorID string `json:"actorId"`
	ItemID  string `json:"itemId,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// SweepResponse reports what a sweep changed
type SweepResponse struct {
	ActorsScanned    int            `json:"actorsScanned"`
	ItemsDeactivated int            `json:"itemsDeactivated"`
	UsageReset       int            `json:"usageReset"`
	AttackUsageReset int            `json:"attackUsageReset"`
	EffectsRemoved   int            `json:"effectsRemoved"`
	Failures         []SweepFailure `json:"failures"`
}

// ActorRequest names an actor
type ActorRequest struct {
	ActorID string `json:"actorId"`
}

// WeaponOption is one row of the weapon picker
type WeaponOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Attack    int    `json:"attack"`
	Add       int    `json:"add"`
	Equipped  bool   `json:"equipped"`
	Exhausted bool   `json:"exhausted"`
}

// WeaponOptionsResponse lists weapons in display order
type WeaponOptionsResponse struct {
	Options []WeaponOption `json:"options"`
}

// WeaponSelectionRequest names the items picked for an attack
type WeaponSelectionRequest struct {
	ActorID string   `json:"actorId"`
	ItemIDs []string `json:"itemIds"`
}

// BonusResponse is the combined bonus of a selection
type BonusResponse struct {
	TotalAttack int      `json:"totalAttack"`
	TotalAdd    int      `json:"totalAdd"`
	Names       string   `json:"names"`
	IncludedIDs []string `json:"includedIds"`
	Consumed    []string `json:"consumed,omitempty"`
}

// StartSelectionRequest opens an overflow selection
type StartSelectionRequest struct {
	ActorID       string `json:"actorId,omitempty"`
	Pool          []int  `json:"pool,omitempty"`
	DiceCount     int    `json:"diceCount,omitempty"`
	Disabled      []int  `json:"disabled,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Count         *int   `json:"count,omitempty"`
	OverrideTotal *int   `json:"overrideTotal,omitempty"`
}

// ToggleDieRequest flips one die of a selection
type ToggleDieRequest struct {
	SessionID string `json:"sessionId"`
	Index     *int   `json:"index"`
}

// SessionRequest names a selection session
type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

// SelectionResponse is the live state of a selection
type SelectionResponse struct {
	SessionID    string `json:"sessionId"`
	Pool         []int  `json:"pool"`
	Disabled     []int  `json:"disabled"`
	Selected     []int  `json:"selected"`
	Mode         string `json:"mode"`
	Count        int    `json:"count"`
	CurrentTotal int    `json:"currentTotal"`
	SelectedSum  int    `json:"selectedSum"`
	PreviewTotal int    `json:"previewTotal"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// ConfirmSelectionResponse lists the dice to remove
type ConfirmSelectionResponse struct {
	Indices      []int `json:"indices"`
	NoRemoval    bool  `json:"noRemoval"`
	Pool         []int `json:"pool"`
	PreviewTotal int   `json:"previewTotal"`
}

// FieldChangeRequest writes one field on an actor or item
type FieldChangeRequest struct {
	ActorID string      `json:"actorId"`
	ItemID  string      `json:"itemId,omitempty"`
	Path    string      `json:"path"`
	Value   interface{} `json:"value"`
}

// FieldChangeResponse carries the changed document
type FieldChangeResponse struct {
	Actor interface{} `json:"actor,omitempty"`
	Item  interface{} `json:"item,omitempty"`
}

// EquipmentRequest names an item to toggle
type EquipmentRequest struct {
	ActorID string `json:"actorId"`
	ItemID  string `json:"itemId"`
}

// EquipmentResponse returns the new equipment flag
type EquipmentResponse struct {
	ItemID   string `json:"itemId"`
	Equipped bool   `json:"equipped"`
}

// Decode reads a Struct into a request body
func Decode(in *structpb.Struct, out interface{}) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

// Encode writes a response body into a Struct
func Encode(in interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
