package goclone

import (
	"reflect"
	"sync"
	"time"
)

// The classifier answers "is this type deeply immutable?" — can instances be
// returned without copying because no reachable mutation is observable
// through either the original or the copy. It is consulted once per field
// per copy, so everything here is O(1) amortized: a kind check, then two
// lookups in process-wide maps that are only ever added to.
var (
	// registeredImmutable is the base set: types explicitly declared deeply
	// immutable, seeded at init and extended through RegisterImmutable.
	registeredImmutable sync.Map // reflect.Type -> struct{}

	// classifiedImmutable memoizes derived classifications. Recomputing an
	// entry always yields the same result, so concurrent population needs
	// no coordination beyond the map itself.
	classifiedImmutable sync.Map // reflect.Type -> bool
)

func init() {
	RegisterImmutable(time.Time{}, time.Location{})
}

// RegisterImmutable adds the types of the given prototype values to the set
// of known deeply immutable types. Instances of a registered type, and
// pointers to them, are returned as-is by the engine rather than copied.
//
// Registration is the only customization point of the classifier. It must
// happen before the types are first copied, typically from an init function;
// membership only ever grows.
func RegisterImmutable(prototypes ...interface{}) {
	for _, p := range prototypes {
		t := reflect.TypeOf(p)
		if t == nil {
			continue
		}
		registeredImmutable.Store(t, struct{}{})
		classifiedImmutable.Store(t, true)
		classifiedImmutable.Store(reflect.PointerTo(t), true)
	}
}

// isImmutableType reports whether t is deeply immutable: a primitive
// numeric, boolean, string or enum-style kind, a registered type, or a form
// derived from those (pointer to a registered type, array of immutable
// elements, struct whose field types are all immutable).
func isImmutableType(t reflect.Type) bool {
	if immutableKind(t.Kind()) {
		return true
	}
	if _, ok := registeredImmutable.Load(t); ok {
		return true
	}
	if v, ok := classifiedImmutable.Load(t); ok {
		return v.(bool)
	}
	v := deriveImmutable(t)
	classifiedImmutable.Store(t, v)
	return v
}

// immutableKind reports whether every value of kind k is copied in full by
// plain assignment and carries no references. Named types over these kinds,
// including enum-style constant types, inherit the classification.
func immutableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// deriveImmutable computes immutability for composite forms. Struct
// recursion terminates because a struct cannot contain itself by value and
// every reference kind short-circuits to false.
func deriveImmutable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer:
		// A pointer to a registered immutable type is the derived optional
		// form of the base set.
		_, ok := registeredImmutable.Load(t.Elem())
		return ok
	case reflect.Array:
		return isImmutableType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isImmutableType(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
