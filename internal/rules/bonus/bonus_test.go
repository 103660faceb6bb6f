package bonus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/rules/bonus"
	"github.com/KirkDiggler/dx3rd-api/internal/testutils"
)

func TestIsExhausted(t *testing.T) {
	testCases := []struct {
		name string
		item *dx3rd.Item
		want bool
	}{
		{"fresh weapon", testutils.NewWeapon("w", "W", "1", "0", 0, 2), false},
		{"last attack used", testutils.NewWeapon("w", "W", "1", "0", 2, 2), true},
		{"over limit", testutils.NewWeapon("w", "W", "1", "0", 3, 2), true},
		{"no allowance", testutils.NewWeapon("w", "W", "1", "0", 0, 0), true},
		{"vehicle", testutils.NewVehicle("v", "V", "2"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bonus.IsExhausted(tc.item))
		})
	}

	t.Run("unchecked weapon", func(t *testing.T) {
		item := testutils.NewWeapon("w", "W", "1", "0", 5, 0)
		item.System.AttackUsed.Disable = dx3rd.TimingNotCheck
		assert.False(t, bonus.IsExhausted(item))
	})

	t.Run("weapon without allowance field", func(t *testing.T) {
		item := testutils.NewWeapon("w", "W", "1", "0", 0, 0)
		item.System.AttackUsed = nil
		assert.False(t, bonus.IsExhausted(item))
	})
}

func TestAggregate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		result := bonus.Aggregate(nil)
		assert.Equal(t, 0, result.TotalAttack)
		assert.Equal(t, 0, result.TotalAdd)
		assert.Equal(t, "", result.Names)
		assert.Empty(t, result.IncludedIDs)
		assert.NotNil(t, result.IncludedIDs)
	})

	t.Run("exhausted weapon is skipped", func(t *testing.T) {
		w1 := testutils.NewWeapon("w1", "W1", dx3rd.Num(3), dx3rd.Num(1), 0, 1)
		w2 := testutils.NewWeapon("w2", "W2", "2", "abc", 1, 1)

		result := bonus.Aggregate([]*dx3rd.Item{w1, w2})
		assert.Equal(t, bonus.Result{
			TotalAttack: 3,
			TotalAdd:    1,
			Names:       "W1",
			IncludedIDs: []string{"w1"},
		}, result)
	})

	t.Run("all exhausted", func(t *testing.T) {
		result := bonus.Aggregate([]*dx3rd.Item{
			testutils.NewWeapon("w1", "W1", "3", "1", 2, 2),
			testutils.NewWeapon("w2", "W2", "4", "1", 0, 0),
		})
		assert.Equal(t, 0, result.TotalAttack)
		assert.Equal(t, 0, result.TotalAdd)
		assert.Empty(t, result.IncludedIDs)
	})

	t.Run("vehicles and malformed numbers", func(t *testing.T) {
		result := bonus.Aggregate([]*dx3rd.Item{
			testutils.NewWeapon("w1", "Blade", "3", "2", 0, 2),
			testutils.NewVehicle("v1", "Bike", "-1"),
			testutils.NewWeapon("w2", "Rifle", "x", "1.5", 0, 1),
		})
		assert.Equal(t, 2, result.TotalAttack)
		assert.Equal(t, 3, result.TotalAdd)
		assert.Equal(t, "Blade, Bike, Rifle", result.Names)
		assert.Equal(t, []string{"w1", "v1", "w2"}, result.IncludedIDs)
	})
}

func TestSortForDisplay(t *testing.T) {
	exhausted := testutils.NewWeapon("exhausted", "Spent", "1", "0", 1, 1)
	exhausted.System.Equipment = true
	exhausted.Sort = 0

	equippedVehicle := testutils.NewVehicle("equipped-vehicle", "Bike", "1")
	equippedVehicle.System.Equipment = true
	equippedVehicle.Sort = 1

	equippedWeapon := testutils.NewWeapon("equipped-weapon", "Blade", "1", "0", 0, 1)
	equippedWeapon.System.Equipment = true
	equippedWeapon.Sort = 5

	looseWeaponLate := testutils.NewWeapon("loose-late", "Knife", "1", "0", 0, 1)
	looseWeaponLate.Sort = 9

	looseWeaponEarly := testutils.NewWeapon("loose-early", "Bat", "1", "0", 0, 1)
	looseWeaponEarly.Sort = 2

	sorted := bonus.SortForDisplay([]*dx3rd.Item{
		exhausted, looseWeaponLate, equippedVehicle, nil, looseWeaponEarly, equippedWeapon,
	})

	ids := make([]string, len(sorted))
	for i, item := range sorted {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{
		"equipped-weapon",
		"equipped-vehicle",
		"loose-early",
		"loose-late",
		"exhausted",
	}, ids)
}
