// Package overflow implements the spell-overflow dice removal puzzle: a
// selection session over a fixed pool of d10 faces where the player picks
// which dice to strike from the total.
//
// A Selection is a small state machine. Toggle grows or shrinks the selected
// set under the rules of its Mode, Preview reports the live totals, and
// Confirm yields the chosen indices. Rejected toggles and confirms return an
// *errors.Error carrying a reason and never change the selection.
package overflow

import (
	"sort"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
)

// Face bounds of the pool
const (
	MinFace      = 1
	MaxFace      = 10
	OverflowFace = 10
)

// Mode constrains what may be selected
type Mode string

// Selection modes
const (
	// ModeExact requires exactly Count dice to be selected
	ModeExact Mode = "exact"
	// ModeOverflowOnly allows only overflow faces, up to Count of them
	ModeOverflowOnly Mode = "overflow_only"
)

// State is the serializable form of a Selection
type State struct {
	Pool          []int `json:"pool"`
	Disabled      []int `json:"disabled,omitempty"`
	Selected      []int `json:"selected,omitempty"`
	Mode          Mode  `json:"mode"`
	Count         int   `json:"count"`
	OverrideTotal *int  `json:"overrideTotal,omitempty"`
}

// Preview is the live view of a selection
type Preview struct {
	CurrentTotal int
	SelectedSum  int
	PreviewTotal int
	Selected     []int
}

// Outcome is the result of a confirmed selection. NoRemoval is set when an
// overflow-only selection was confirmed empty; Indices is then nil.
type Outcome struct {
	Indices   []int
	NoRemoval bool
}

// Selection is one player's selection over a dice pool
type Selection struct {
	pool     []int
	disabled map[int]bool
	selected []int
	mode     Mode
	count    int
	override *int
}

// New validates state and builds a Selection from it. An overflow-only count
// of zero means 1; an exact count is taken as given, so EXACT(0) only
// confirms an empty selection.
func New(state State) (*Selection, error) {
	vb := errors.NewValidationBuilder()

	if len(state.Pool) == 0 {
		vb.RequiredField("pool")
	}
	for i, face := range state.Pool {
		if face < MinFace || face > MaxFace {
			vb.Fieldf("pool", "die %d has face %d outside %d-%d", i, face, MinFace, MaxFace)
		}
	}

	mode := state.Mode
	switch mode {
	case "":
		mode = ModeExact
	case ModeExact, ModeOverflowOnly:
	default:
		vb.Fieldf("mode", "unknown mode %q", mode)
	}

	count := state.Count
	if count == 0 && mode == ModeOverflowOnly {
		count = 1
	}
	if count < 0 {
		vb.Field("count", "must not be negative")
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	s := &Selection{
		pool:     append([]int(nil), state.Pool...),
		disabled: make(map[int]bool, len(state.Disabled)),
		mode:     mode,
		count:    count,
	}
	if state.OverrideTotal != nil {
		total := *state.OverrideTotal
		s.override = &total
	}

	for _, index := range state.Disabled {
		if err := s.checkIndex(index); err != nil {
			return nil, err
		}
		s.disabled[index] = true
	}

	for _, index := range state.Selected {
		if err := s.checkIndex(index); err != nil {
			return nil, err
		}
		if s.isSelected(index) || s.disabled[index] {
			return nil, errors.InvalidArgumentf("die %d cannot be selected", index)
		}
		if err := s.canSelect(index); err != nil {
			return nil, err
		}
		s.selected = append(s.selected, index)
	}

	return s, nil
}

// Toggle selects or deselects the die at index. Disabled dice are ignored.
func (s *Selection) Toggle(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if s.disabled[index] {
		return nil
	}

	for i, selected := range s.selected {
		if selected == index {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return nil
		}
	}

	if err := s.canSelect(index); err != nil {
		return err
	}
	s.selected = append(s.selected, index)
	return nil
}

// Preview returns the totals for the current selection
func (s *Selection) Preview() Preview {
	current := 0
	if s.override != nil {
		current = *s.override
	} else {
		for _, face := range s.pool {
			current += face
		}
	}

	sum := 0
	for _, index := range s.selected {
		sum += s.pool[index]
	}

	return Preview{
		CurrentTotal: current,
		SelectedSum:  sum,
		PreviewTotal: current - sum,
		Selected:     append([]int(nil), s.selected...),
	}
}

// Confirm checks the selection size and returns the selected indices in
// ascending order
func (s *Selection) Confirm() (*Outcome, error) {
	switch s.mode {
	case ModeOverflowOnly:
		if len(s.selected) == 0 {
			return &Outcome{NoRemoval: true}, nil
		}
		if len(s.selected) > s.count {
			return nil, errors.CountMismatch(s.count, len(s.selected))
		}
	default:
		if len(s.selected) != s.count {
			return nil, errors.CountMismatch(s.count, len(s.selected))
		}
	}

	indices := append([]int(nil), s.selected...)
	sort.Ints(indices)
	return &Outcome{Indices: indices}, nil
}

// State returns a copy of the selection's state
func (s *Selection) State() State {
	state := State{
		Pool:     append([]int(nil), s.pool...),
		Selected: append([]int(nil), s.selected...),
		Mode:     s.mode,
		Count:    s.count,
	}
	for index := range s.disabled {
		state.Disabled = append(state.Disabled, index)
	}
	sort.Ints(state.Disabled)
	if s.override != nil {
		total := *s.override
		state.OverrideTotal = &total
	}
	return state
}

// Mode returns the selection mode
func (s *Selection) Mode() Mode {
	return s.mode
}

// Count returns the number of dice the mode calls for
func (s *Selection) Count() int {
	return s.count
}

// Pool returns a copy of the dice faces
func (s *Selection) Pool() []int {
	return append([]int(nil), s.pool...)
}

func (s *Selection) canSelect(index int) error {
	switch s.mode {
	case ModeOverflowOnly:
		if s.pool[index] != OverflowFace {
			return errors.WrongFaceKind(index, s.pool[index])
		}
	default:
		if len(s.selected) >= s.count {
			return errors.LimitExceeded(s.count)
		}
	}
	return nil
}

func (s *Selection) isSelected(index int) bool {
	for _, selected := range s.selected {
		if selected == index {
			return true
		}
	}
	return false
}

func (s *Selection) checkIndex(index int) error {
	if index < 0 || index >= len(s.pool) {
		return errors.InvalidArgumentf("die index %d out of range [0, %d)", index, len(s.pool))
	}
	return nil
}
