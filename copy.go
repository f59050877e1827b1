package goclone

import (
	"reflect"
	"time"
	"unsafe"
)

var (
	reflectTypeType  = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	deepCopyableType = reflect.TypeOf((*DeepCopyable)(nil)).Elem()
)

// Copier performs deep copies of arbitrary object graphs. The zero-argument
// New returns a Copier with default behavior; options attach a logger, an
// observer, or copy constructors for externally defined types.
//
// A Copier is safe for concurrent use once configured: every call to Clone
// runs an independent session with its own identity map.
type Copier struct {
	logger   Logger
	observer Observer
	copiers  map[reflect.Type]CopierFunc
}

// Option configures a Copier.
type Option func(*Copier)

// WithLogger attaches a logger; session boundaries are reported at debug
// level.
func WithLogger(l Logger) Option {
	return func(c *Copier) { c.logger = l }
}

// WithObserver attaches an observer receiving engine events.
func WithObserver(o Observer) Option {
	return func(c *Copier) { c.observer = o }
}

// WithCopier registers a copy constructor for the type of prototype. The
// engine invokes fn instead of field-wise duplication whenever it encounters
// a value of that exact type.
func WithCopier(prototype interface{}, fn CopierFunc) Option {
	return func(c *Copier) { c.copiers[reflect.TypeOf(prototype)] = fn }
}

// New constructs a Copier.
func New(opts ...Option) *Copier {
	c := &Copier{
		logger:  NewDefaultLogger(),
		copiers: make(map[reflect.Type]CopierFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCopier = New()

// DeepCopy returns a deep copy of v. The copy shares no mutable sub-object
// with v; cycles and shared references inside v's graph are preserved as
// equivalent shared references in the copy. Deeply immutable values are
// returned unchanged, and function-typed values come back nil.
func DeepCopy[T any](v T) T {
	out, ok := defaultCopier.Clone(v).(T)
	if !ok {
		var zero T
		return zero
	}
	return out
}

// Clone is the untyped equivalent of DeepCopy, using the default Copier.
func Clone(v interface{}) interface{} {
	return defaultCopier.Clone(v)
}

// Clone returns a deep copy of v. A nil original is returned unchanged.
func (c *Copier) Clone(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	if c.observer != nil {
		c.observer.SessionStart()
	}
	start := time.Now()

	// One identity map per top-level invocation; dropped when it returns.
	s := &session{copier: c, refs: make(identityMap)}
	out := s.copy(reflect.ValueOf(v), true)

	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.SessionEnd(elapsed, s.objects)
	}
	c.logger.Debug("copied %d objects in %s", s.objects, elapsed)

	if !out.IsValid() {
		return nil
	}
	return out.Interface()
}

// session is the state of one top-level copy invocation. The traversal runs
// synchronously on the calling goroutine and never blocks.
type session struct {
	copier  *Copier
	refs    identityMap
	objects int
}

// copy is the entry point for every sub-object encountered. trackIdentity
// controls whether the identity map is consulted and populated for this
// value; it is disabled for values that cannot be externally referenced.
func (s *session) copy(v reflect.Value, trackIdentity bool) reflect.Value {
	if !v.IsValid() {
		return v
	}
	t := v.Type()

	if isImmutableType(t) {
		return v
	}
	if t.Implements(reflectTypeType) {
		// Type descriptors are process-global handles, never duplicated.
		return v
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		elem := s.copy(v.Elem(), trackIdentity)
		out := reflect.New(t).Elem()
		if elem.IsValid() {
			out.Set(elem)
		}
		return out
	case reflect.Func:
		// Captured state of a callable cannot be duplicated safely; the
		// copy always gets a nil function instead.
		return reflect.Zero(t)
	case reflect.Chan, reflect.UnsafePointer:
		// Resource handles stay shared between original and copy.
		return v
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return v
		}
	}

	if fn, ok := s.copier.copiers[t]; ok {
		return s.construct(v, fn, trackIdentity)
	}
	if t.Implements(deepCopyableType) {
		return s.construct(v, func(original interface{}) interface{} {
			return original.(DeepCopyable).DeepCopy()
		}, trackIdentity)
	}

	switch v.Kind() {
	case reflect.Pointer:
		return s.copyPointer(v, trackIdentity)
	case reflect.Map:
		return s.copyMap(v, trackIdentity)
	case reflect.Slice:
		return s.copySlice(v, trackIdentity)
	case reflect.Array:
		clone := reflect.New(t).Elem()
		clone.Set(v)
		s.objects++
		s.replicateArray(clone)
		return clone
	case reflect.Struct:
		clone := reflect.New(t).Elem()
		clone.Set(v)
		s.objects++
		s.fillStruct(clone)
		return clone
	default:
		return v
	}
}

// construct invokes a copy constructor for an externally defined type,
// keeping the result inside the identity tracking policy.
func (s *session) construct(v reflect.Value, fn CopierFunc, trackIdentity bool) reflect.Value {
	trackIdentity = trackIdentity && hasIdentity(v.Kind())
	if trackIdentity {
		if clone, ok := s.refs.lookup(v); ok {
			s.hit()
			return clone
		}
	}

	out := reflect.ValueOf(fn(v.Interface()))
	if !out.IsValid() {
		return reflect.Zero(v.Type())
	}
	s.objects++
	if trackIdentity {
		s.refs.store(v, out)
	}
	return out
}

func (s *session) copyPointer(v reflect.Value, trackIdentity bool) reflect.Value {
	if trackIdentity {
		if clone, ok := s.refs.lookup(v); ok {
			s.hit()
			return clone
		}
	}

	clone := reflect.New(v.Type().Elem())
	clone.Elem().Set(readable(v.Elem()))
	s.objects++
	if trackIdentity {
		// Registered before any recursion into the pointee, so a field that
		// transitively references this object resolves to the clone instead
		// of re-entering the traversal.
		s.refs.store(v, clone)
	}
	s.fill(clone.Elem(), trackIdentity)
	return clone
}

// fill recursively copies the contents of an already-shallow-duplicated
// value in place. dst must be addressable.
func (s *session) fill(dst reflect.Value, trackIdentity bool) {
	if isImmutableType(dst.Type()) {
		return
	}
	switch dst.Kind() {
	case reflect.Struct:
		s.fillStruct(dst)
	case reflect.Array:
		s.replicateArray(dst)
	default:
		write(dst, s.copy(readable(dst), trackIdentity))
	}
}

// fillStruct replaces the non-shallow fields of a freshly shallow-duplicated
// struct with their deep copies. Reference-kind fields recurse with identity
// tracking on; value-kind fields cannot be externally referenced and skip
// the identity map.
func (s *session) fillStruct(clone reflect.Value) {
	for _, f := range nonShallowFields(clone.Type()) {
		field := clone.Field(f.index)
		write(field, s.copy(readable(field), f.track))
	}
}

func (s *session) copySlice(v reflect.Value, trackIdentity bool) reflect.Value {
	if trackIdentity {
		if clone, ok := s.refs.lookup(v); ok {
			s.hit()
			return clone
		}
	}

	clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
	reflect.Copy(clone, v)
	s.objects++
	if trackIdentity {
		s.refs.store(v, clone)
	}

	et := v.Type().Elem()
	if isImmutableType(et) {
		// The shallow copy above already duplicated every element.
		return clone
	}
	elemTrack := trackedKind(et.Kind())
	for i := 0; i < clone.Len(); i++ {
		slot := clone.Index(i)
		slot.Set(s.copy(slot, elemTrack))
	}
	return clone
}

func (s *session) copyMap(v reflect.Value, trackIdentity bool) reflect.Value {
	if trackIdentity {
		if clone, ok := s.refs.lookup(v); ok {
			s.hit()
			return clone
		}
	}

	clone := reflect.MakeMapWithSize(v.Type(), v.Len())
	s.objects++
	if trackIdentity {
		s.refs.store(v, clone)
	}

	kt, et := v.Type().Key(), v.Type().Elem()
	keyImmutable, elemImmutable := isImmutableType(kt), isImmutableType(et)
	keyTrack, elemTrack := trackedKind(kt.Kind()), trackedKind(et.Kind())
	for iter := v.MapRange(); iter.Next(); {
		k, e := iter.Key(), iter.Value()
		if !keyImmutable {
			k = s.copy(k, keyTrack)
		}
		if !elemImmutable {
			e = s.copy(e, elemTrack)
		}
		clone.SetMapIndex(k, e)
	}
	return clone
}

func (s *session) hit() {
	if s.copier.observer != nil {
		s.copier.observer.IdentityHit()
	}
}

// hasIdentity reports whether values of kind k have a stable runtime
// identity usable as an identity map key.
func hasIdentity(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// readable returns v stripped of the read-only flag reflect places on
// unexported fields, using the field's address when necessary.
func readable(v reflect.Value) reflect.Value {
	if v.CanInterface() {
		return v
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	return v
}

// write stores val into dst even when dst is an unexported field. dst must
// be addressable; access failures panic and abort the whole copy.
func write(dst, val reflect.Value) {
	if !val.IsValid() {
		return
	}
	if dst.CanSet() {
		dst.Set(val)
		return
	}
	reflect.NewAt(dst.Type(), unsafe.Pointer(dst.UnsafeAddr())).Elem().Set(readable(val))
}
