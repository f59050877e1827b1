package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name    string
	Friends []string
	Attrs   map[string]int
}

type named interface {
	GetName() string
}

func (p *profile) GetName() string { return p.Name }

func TestPutGetIsolation(t *testing.T) {
	s := NewSnapshotStore()

	orig := &profile{
		Name:    "alice",
		Friends: []string{"bob"},
		Attrs:   map[string]int{"age": 30},
	}
	require.NoError(t, s.Put("user", orig))

	// Mutating the original after Put must not affect the snapshot.
	orig.Friends[0] = "mallory"
	orig.Attrs["age"] = 99

	got, err := Get[*profile](s, "user")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Friends[0])
	assert.Equal(t, 30, got.Attrs["age"])

	// Mutating one read copy must not affect later reads.
	got.Friends[0] = "eve"
	again, err := Get[*profile](s, "user")
	require.NoError(t, err)
	assert.Equal(t, "bob", again.Friends[0])
}

func TestCyclePreservedThroughStore(t *testing.T) {
	type ring struct {
		Name string
		Next *ring
	}
	a := &ring{Name: "a"}
	a.Next = a

	s := NewSnapshotStore()
	require.NoError(t, s.Put("ring", a))

	got, err := Get[*ring](s, "ring")
	require.NoError(t, err)
	assert.Same(t, got, got.Next)
	assert.NotSame(t, a, got)
}

func TestTypeMismatch(t *testing.T) {
	s := NewSnapshotStore()
	require.NoError(t, s.Put("n", 42))

	_, err := Get[string](s, "n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	got, err := Get[int](s, "n")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestInterfaceLookup(t *testing.T) {
	s := NewSnapshotStore()
	require.NoError(t, s.Put("p", &profile{Name: "carol"}))

	got, err := Get[named](s, "p")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.GetName())

	_, err = Get[error](s, "p")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNotFoundAndDefaults(t *testing.T) {
	s := NewSnapshotStore()

	_, err := Get[int](s, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := GetOrDefault(s, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestSnapshotIDStableAcrossOverwrites(t *testing.T) {
	s := NewSnapshotStore()
	require.NoError(t, s.Put("k", 1))

	id1, err := s.SnapshotID("k")
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	require.NoError(t, s.Put("k", 2))
	id2, err := s.SnapshotID("k")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	require.NoError(t, s.Put("other", 3))
	id3, err := s.SnapshotID("other")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

func TestMetadataAndTags(t *testing.T) {
	s := NewSnapshotStore()

	meta := NewMetadata()
	meta.AddTag("important")
	meta.Description = "test snapshot"
	require.NoError(t, s.PutWithMetadata("k1", "v1", meta))
	require.NoError(t, s.Put("k2", "v2"))
	require.NoError(t, s.AddTag("k2", "optional"))

	hasTag, err := s.HasTag("k1", "important")
	require.NoError(t, err)
	assert.True(t, hasTag)

	got, err := s.GetMetadata("k1")
	require.NoError(t, err)
	assert.Equal(t, "test snapshot", got.Description)

	assert.Equal(t, []string{"k1"}, s.FindKeysByTag("important"))
	assert.Equal(t, []string{"k2"}, s.FindKeysByTag("optional"))
}

func TestListKeysAndTypes(t *testing.T) {
	s := NewSnapshotStore()
	require.NoError(t, s.Put("a", 1))
	require.NoError(t, s.Put("b", 2))
	require.NoError(t, s.Put("c", "x"))

	assert.Equal(t, 3, s.Count())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s.ListKeys())
	assert.ElementsMatch(t, []string{"int", "string"}, s.ListTypes())
	assert.ElementsMatch(t, []string{"a", "b"}, KeysByType[int](s))

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	s.Clear()
	assert.Equal(t, 0, s.Count())
}

func TestMergeStrategies(t *testing.T) {
	newPair := func() (*SnapshotStore, *SnapshotStore) {
		dst := NewSnapshotStore()
		src := NewSnapshotStore()
		require.NoError(t, dst.Put("shared", "dst"))
		require.NoError(t, src.Put("shared", "src"))
		require.NoError(t, src.Put("only", "src"))
		return dst, src
	}

	dst, src := newPair()
	_, err := dst.Merge(src, Error)
	require.Error(t, err)

	dst, src = newPair()
	collisions, err := dst.Merge(src, Skip)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, collisions)
	v, err := Get[string](dst, "shared")
	require.NoError(t, err)
	assert.Equal(t, "dst", v)
	v, err = Get[string](dst, "only")
	require.NoError(t, err)
	assert.Equal(t, "src", v)

	dst, src = newPair()
	_, err = dst.Merge(src, Overwrite)
	require.NoError(t, err)
	v, err = Get[string](dst, "shared")
	require.NoError(t, err)
	assert.Equal(t, "src", v)
}

func TestCloneIndependence(t *testing.T) {
	s := NewSnapshotStore()
	require.NoError(t, s.Put("user", &profile{Name: "dan", Friends: []string{"erin"}}))

	cloned := s.Clone()

	// Snapshot identity survives cloning.
	idOrig, err := s.SnapshotID("user")
	require.NoError(t, err)
	idClone, err := cloned.SnapshotID("user")
	require.NoError(t, err)
	assert.Equal(t, idOrig, idClone)

	require.NoError(t, cloned.Put("user", &profile{Name: "replaced"}))
	got, err := Get[*profile](s, "user")
	require.NoError(t, err)
	assert.Equal(t, "dan", got.Name)
	assert.Equal(t, 1, cloned.Count())
}

func TestGetTypeSchema(t *testing.T) {
	s := NewSnapshotStore()
	require.NoError(t, s.Put("p", profile{Name: "x"}))

	schema, err := s.GetTypeSchema("p")
	require.NoError(t, err)

	schemaMap, ok := schema.(map[string]interface{})
	require.True(t, ok)
	props, ok := schemaMap["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "Name")
}
