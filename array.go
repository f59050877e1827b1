package goclone

import "reflect"

// replicateArray replaces the elements of an already-shallow-cloned array
// with their deep copies, in place, preserving rank and per-dimension
// extents. arr must be addressable.
//
// Nested array types are treated as one multi-dimensional array: the element
// policy is decided once from the innermost element type, then the walk
// recurses outer-to-inner so elements are replaced in storage order.
func (s *session) replicateArray(arr reflect.Value) {
	et := arr.Type().Elem()
	rank := 1
	for et.Kind() == reflect.Array {
		et = et.Elem()
		rank++
	}

	if isImmutableType(et) {
		// The shallow clone already duplicated every element.
		return
	}

	// Individual array slots cannot be independently referenced from outside
	// the array, so value-typed elements skip the identity map; reference
	// elements keep it so repeated slots share one clone.
	track := trackedKind(et.Kind())
	if rank == 1 {
		s.replaceRow(arr, track)
		return
	}
	s.replicateDims(arr, track)
}

// replicateDims walks the outer dimensions recursively; the innermost
// dimension performs the actual element replacement.
func (s *session) replicateDims(v reflect.Value, track bool) {
	if v.Type().Elem().Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			s.replicateDims(v.Index(i), track)
		}
		return
	}
	s.replaceRow(v, track)
}

// replaceRow copies the elements of a single dimension in index order.
func (s *session) replaceRow(row reflect.Value, track bool) {
	for i := 0; i < row.Len(); i++ {
		slot := row.Index(i)
		write(slot, s.copy(readable(slot), track))
	}
}
