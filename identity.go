package goclone

import "reflect"

// identityKey identifies an original object by its runtime identity rather
// than by value equality. Slices additionally carry their length: two slices
// over the same backing array with different lengths are distinct objects.
type identityKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// identityMap associates originals with their already-produced clones for
// the duration of one top-level copy. It is what preserves shared-reference
// topology and breaks cycles. Each session owns a private instance, so no
// locking is needed; nothing in it survives the session except by being part
// of the returned graph.
type identityMap map[identityKey]reflect.Value

// keyOf builds the identity key for v. v must be of pointer, map or slice
// kind, the only kinds with a stable runtime identity.
func keyOf(v reflect.Value) identityKey {
	k := identityKey{typ: v.Type(), ptr: v.Pointer()}
	if v.Kind() == reflect.Slice {
		k.len = v.Len()
	}
	return k
}

func (m identityMap) lookup(original reflect.Value) (reflect.Value, bool) {
	clone, ok := m[keyOf(original)]
	return clone, ok
}

func (m identityMap) store(original, clone reflect.Value) {
	m[keyOf(original)] = clone
}
