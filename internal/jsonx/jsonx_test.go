package jsonx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seo-audit/internal/jsonx"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestMap(t *testing.T) {
	v := decode(t, `{"a":{"b":{"c":1}},"s":"text","n":null}`)

	assert.NotNil(t, jsonx.Map(v, "a", "b"))
	assert.Nil(t, jsonx.Map(v, "a", "missing"))
	assert.Nil(t, jsonx.Map(v, "s"))
	assert.Nil(t, jsonx.Map(v, "n"))
	assert.Nil(t, jsonx.Map(nil, "a"))
	assert.NotNil(t, jsonx.Map(v))
}

func TestSliceAccessors(t *testing.T) {
	v := decode(t, `{"items":[{"id":1},"stray",{"id":2}],"tags":["a",3,"b"],"num":7}`)

	assert.Len(t, jsonx.Slice(v, "items"), 3)
	assert.Nil(t, jsonx.Slice(v, "num"))
	assert.Nil(t, jsonx.Slice(v, "missing"))

	maps := jsonx.MapSlice(v, "items")
	require.Len(t, maps, 2)
	assert.Equal(t, 1, jsonx.Int(maps[0], "id"))

	first := jsonx.First(v, "items")
	require.NotNil(t, first)
	assert.Equal(t, 1, jsonx.Int(first, "id"))
	assert.Nil(t, jsonx.First(v, "missing"))

	assert.Equal(t, []string{"a", "b"}, jsonx.Strings(v, "tags"))
}

func TestScalarAccessors(t *testing.T) {
	v := decode(t, `{"s":"text","f":2.5,"i":3,"b":true,"n":null}`)

	assert.Equal(t, "text", jsonx.String(v, "s"))
	assert.Equal(t, "", jsonx.String(v, "f"))
	assert.Equal(t, "", jsonx.String(nil, "s"))

	assert.InDelta(t, 2.5, jsonx.Float(v, "f"), 0.0001)
	assert.Zero(t, jsonx.Float(v, "s"))
	assert.Zero(t, jsonx.Float(v, "n"))
	assert.Equal(t, 3, jsonx.Int(v, "i"))
	assert.Equal(t, 2, jsonx.Int(v, "f"))

	assert.True(t, jsonx.Bool(v, "b"))
	assert.False(t, jsonx.Bool(v, "n"))
}

func TestScore100_Truncates(t *testing.T) {
	v := decode(t, `{"perfect":1,"mid":0.567,"low":0.239,"missing_score":null}`)

	assert.Equal(t, 100, jsonx.Score100(v, "perfect"))
	assert.Equal(t, 56, jsonx.Score100(v, "mid"))
	assert.Equal(t, 23, jsonx.Score100(v, "low"))
	assert.Equal(t, 0, jsonx.Score100(v, "missing_score"))
	assert.Equal(t, 0, jsonx.Score100(v, "absent"))
}
