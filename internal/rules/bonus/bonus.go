// Package bonus totals the attack and damage bonuses of the weapons and
// vehicles picked for an attack.
package bonus

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
)

// NameSeparator joins the names of the items that contributed
const NameSeparator = ", "

// Result is the combined bonus of a weapon selection
type Result struct {
	TotalAttack int
	TotalAdd    int
	Names       string
	IncludedIDs []string
}

// IsExhausted reports whether a weapon has used up its attacks. Vehicles and
// weapons without an attack allowance never exhaust.
func IsExhausted(item *dx3rd.Item) bool {
	if item == nil || item.Type != dx3rd.ItemTypeWeapon || item.System.AttackUsed == nil {
		return false
	}
	used := item.System.AttackUsed
	if used.Disable == dx3rd.TimingNotCheck {
		return false
	}
	return used.Max <= 0 || used.State >= used.Max
}

// Aggregate sums attack and add over the items that are not exhausted.
// Non-numeric values count as 0.
func Aggregate(items []*dx3rd.Item) Result {
	result := Result{IncludedIDs: []string{}}
	names := make([]string, 0, len(items))

	for _, item := range items {
		if item == nil || IsExhausted(item) {
			continue
		}
		result.TotalAttack += item.System.Attack.Int()
		result.TotalAdd += item.System.Add.Int()
		result.IncludedIDs = append(result.IncludedIDs, item.ID)
		names = append(names, item.Name)
	}

	result.Names = strings.Join(names, NameSeparator)
	return result
}

// SortForDisplay returns the items ordered for a weapon picker: usable before
// exhausted, then equipped first, then weapons before vehicles, then by the
// stored sort index.
func SortForDisplay(items []*dx3rd.Item) []*dx3rd.Item {
	sorted := make([]*dx3rd.Item, 0, len(items))
	for _, item := range items {
		if item != nil {
			sorted = append(sorted, item)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ea, eb := IsExhausted(a), IsExhausted(b); ea != eb {
			return !ea
		}
		if a.System.Equipment != b.System.Equipment {
			return a.System.Equipment
		}
		if ra, rb := typeRank(a), typeRank(b); ra != rb {
			return ra < rb
		}
		return a.Sort < b.Sort
	})

	return sorted
}

func typeRank(item *dx3rd.Item) int {
	switch item.Type {
	case dx3rd.ItemTypeWeapon:
		return 0
	case dx3rd.ItemTypeVehicle:
		return 1
	default:
		return 2
	}
}
