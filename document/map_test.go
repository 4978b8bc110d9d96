package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("alpha", 4) // overwrite keeps position

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, ok := m.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, 4, v)

	m.Delete("zeta")
	m.Delete("missing")
	assert.Equal(t, []string{"alpha", "mid"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	m.SetFirst("mid", "first")
	assert.Equal(t, []string{"mid", "alpha"}, m.Keys())
}

func TestMapTypedGetters(t *testing.T) {
	m := FromPairs(
		"name", "pets",
		"enabled", true,
		"list", []any{"a"},
		"child", FromPairs("k", "v"),
	)

	s, ok := m.String("name")
	assert.True(t, ok)
	assert.Equal(t, "pets", s)

	b, ok := m.Bool("enabled")
	assert.True(t, ok)
	assert.True(t, b)

	l, ok := m.Slice("list")
	assert.True(t, ok)
	assert.Len(t, l, 1)

	child, ok := m.Map("child")
	require.True(t, ok)
	assert.True(t, child.Has("k"))

	_, ok = m.Map("name")
	assert.False(t, ok, "wrong type is reported as absent")
	_, ok = m.String("missing")
	assert.False(t, ok)
}

func TestNilMapIsEmpty(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("x"))
	m.Range(func(string, any) bool {
		t.Fatal("nil map must not call fn")
		return true
	})
	assert.Nil(t, m.Clone())
}

func TestMapRangeStopsAndToleratesMutation(t *testing.T) {
	m := FromPairs("a", 1, "b", 2, "c", 3)
	var seen []string
	m.Range(func(k string, _ any) bool {
		seen = append(seen, k)
		m.Delete("c")
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestEnsure(t *testing.T) {
	m := FromPairs("components", "oops")
	comps := m.Ensure("components")
	comps.Set("schemas", NewMap())
	got, ok := m.Map("components")
	require.True(t, ok)
	assert.Same(t, comps, got)
	assert.Same(t, comps, m.Ensure("components"))
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromPairs(
		"info", FromPairs("title", "Pets"),
		"tags", []any{FromPairs("name", "pets")},
	)
	cp := orig.Clone()
	if diff := cmp.Diff(orig, cp, cmp.AllowUnexported(Map{})); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	info, _ := cp.Map("info")
	info.Set("title", "Changed")
	tags, _ := cp.Slice("tags")
	tags[0].(*Map).Set("name", "store")

	origInfo, _ := orig.Map("info")
	title, _ := origInfo.String("title")
	assert.Equal(t, "Pets", title)
	origTags, _ := orig.Slice("tags")
	name, _ := origTags[0].(*Map).String("name")
	assert.Equal(t, "pets", name)
}
