package goclone

import (
	"reflect"
	"sync"
)

// copyField identifies a struct field the engine must recurse into after the
// shallow duplication step.
type copyField struct {
	index int
	// track is false for fields whose declared type is a value kind. Such a
	// field can never be the target of an outside reference, so recursing
	// into it skips the identity map entirely.
	track bool
}

// fieldCache holds the non-shallow field list per struct type. The list is a
// pure function of the type, computed once for the process lifetime and
// shared across all copy sessions.
var fieldCache sync.Map // reflect.Type -> []copyField

// nonShallowFields returns the instance fields of t, exported and
// unexported, that require recursive copying, in declaration order. Fields
// whose declared type is deeply immutable are excluded: the shallow
// duplicate already copied them in full.
func nonShallowFields(t reflect.Type) []copyField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]copyField)
	}

	fields := make([]copyField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i).Type
		if isImmutableType(ft) {
			continue
		}
		fields = append(fields, copyField{index: i, track: trackedKind(ft.Kind())})
	}

	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]copyField)
}

// trackedKind reports whether values of kind k can be referenced from more
// than one place in a graph and therefore take part in identity tracking.
func trackedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}
