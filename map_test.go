package unflatten

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSetKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	m := NewMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	value, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestMapKeysIsCopy(t *testing.T) {
	t.Parallel()

	m := NewMap()
	m.Set("a", 1)

	keys := m.Keys()
	keys[0] = "changed"
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestMapAllStopsEarly(t *testing.T) {
	t.Parallel()

	m := NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	for key := range m.All() {
		seen = append(seen, key)
		if key == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMapMarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	doc, err := Unflatten(Pairs{
		{Key: "zeta", Value: 1},
		{Key: "alpha.b", Value: "x"},
		{Key: "list[1]", Value: "y"},
	})
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"b":"x"},"list":[{},"y"]}`, string(out))
}

func TestMapMarshalJSONPropagatesValueErrors(t *testing.T) {
	t.Parallel()

	m := NewMap()
	m.Set("bad", make(chan int))

	_, err := json.Marshal(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestMapMarshalYAMLKeepsOrder(t *testing.T) {
	t.Parallel()

	doc, err := Unflatten(Pairs{
		{Key: "zeta", Value: 1},
		{Key: "alpha.b", Value: "x"},
		{Key: "alpha.a", Value: "y"},
	})
	require.NoError(t, err)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha:\n  b: x\n  a: y\n", string(out))
}

func TestMapPlainCopiesSequences(t *testing.T) {
	t.Parallel()

	doc, err := Unflatten(Pairs{{Key: "a[0].b", Value: 1}})
	require.NoError(t, err)

	plain := doc.Plain()
	plain["a"].([]any)[0] = "replaced"

	value, _ := doc.Get("a")
	assert.IsType(t, &Map{}, value.([]any)[0])
}
