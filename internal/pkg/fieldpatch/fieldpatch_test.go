package fieldpatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
)

const actorDoc = `{"id":"a1","items":[{"id":"i1","system":{"active":{"state":true,"disable":"round"}}}],` +
	`"system":{"appliedEffects":{"fx1":{"disable":"round"},"fx2":{"itemId":"i1"}}}}`

func TestApply_SetsNestedFields(t *testing.T) {
	out, err := fieldpatch.Apply([]byte(actorDoc), "items.0", fieldpatch.Patch{
		"system.active.state": false,
		"system.used.state":   0,
	})
	require.NoError(t, err)

	assert.False(t, fieldpatch.Get(out, "items.0.system.active.state").Bool())
	assert.Equal(t, "round", fieldpatch.Get(out, "items.0.system.active.disable").String())
	assert.Equal(t, int64(0), fieldpatch.Get(out, "items.0.system.used.state").Int())
	assert.True(t, fieldpatch.Get(out, "items.0.system.used.state").Exists())
}

func TestApply_DeletesWithPrefix(t *testing.T) {
	out, err := fieldpatch.Apply([]byte(actorDoc), "", fieldpatch.Patch{
		fieldpatch.DeleteKey("system.appliedEffects", "fx1"): nil,
	})
	require.NoError(t, err)

	assert.False(t, fieldpatch.Get(out, "system.appliedEffects.fx1").Exists())
	assert.True(t, fieldpatch.Get(out, "system.appliedEffects.fx2").Exists())
}

func TestApply_DeleteMissingKeyIsNoop(t *testing.T) {
	patch := fieldpatch.Patch{"system.appliedEffects.-=nope": nil}

	out, err := fieldpatch.Apply([]byte(actorDoc), "", patch)
	require.NoError(t, err)
	assert.JSONEq(t, actorDoc, string(out))
}

func TestApply_EscapesDottedKeys(t *testing.T) {
	out, err := fieldpatch.Apply([]byte(`{"system":{}}`), "", fieldpatch.Patch{
		fieldpatch.Key("system", "appliedEffects", "fx.1", "name"): "Haste",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"system":{"appliedEffects":{"fx.1":{"name":"Haste"}}}}`, string(out))

	out, err = fieldpatch.Apply(out, "", fieldpatch.Patch{
		fieldpatch.DeleteKey("system.appliedEffects", "fx.1"): nil,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"system":{"appliedEffects":{}}}`, string(out))
}

func TestApply_Errors(t *testing.T) {
	_, err := fieldpatch.Apply([]byte(`{not json`), "", fieldpatch.Patch{"a": 1})
	assert.Error(t, err)

	_, err = fieldpatch.Apply([]byte(`{}`), "", fieldpatch.Patch{" ": 1})
	assert.Error(t, err)

	out, err := fieldpatch.Apply([]byte(`{not json`), "", nil)
	assert.NoError(t, err)
	assert.Equal(t, `{not json`, string(out))
}

func TestPatch_Paths(t *testing.T) {
	p := fieldpatch.Patch{"b": 1, "a": 2, "c.-=x": nil}
	assert.Equal(t, []string{"a", "b", "c.-=x"}, p.Paths())
}
