package store

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/davidroman0O/goclone"
	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/sasha-s/go-deadlock"
)

// MergeStrategy controls how key collisions are resolved by Merge.
type MergeStrategy int

const (
	// Error aborts the merge on the first collision.
	Error MergeStrategy = iota
	// Skip keeps the destination entry on collision.
	Skip
	// Overwrite replaces the destination entry on collision.
	Overwrite
)

// entry is one stored snapshot. The value is a private deep copy owned by
// the store; it is never handed out directly.
type entry struct {
	id       string
	typ      reflect.Type
	value    interface{}
	metadata *Metadata
}

// SnapshotStore is a threadsafe, type-aware store of isolated snapshots.
type SnapshotStore struct {
	mu     deadlock.RWMutex
	copier *goclone.Copier
	data   map[string]entry
}

// NewSnapshotStore constructs an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		copier: goclone.New(),
		data:   make(map[string]entry),
	}
}

// Put stores a deep copy of value under key, capturing its concrete type.
// Later mutations of value do not affect the stored snapshot.
func (s *SnapshotStore) Put(key string, value interface{}) error {
	return s.PutWithMetadata(key, value, nil)
}

// PutWithMetadata stores a deep copy of value with metadata. When metadata
// is nil and the key already exists, the existing metadata is preserved.
func (s *SnapshotStore) PutWithMetadata(key string, value interface{}, metadata *Metadata) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if value == nil {
		return errors.New("value cannot be nil")
	}

	t := reflect.TypeOf(value)
	snapshot := s.copier.Clone(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	meta := metadata
	if existing, ok := s.data[key]; ok {
		id = existing.id
		if meta == nil && existing.metadata != nil {
			meta = existing.metadata
			meta.UpdatedAt = time.Now()
		}
	}
	s.data[key] = entry{id: id, typ: t, value: snapshot, metadata: meta}
	return nil
}

// Get retrieves an isolated copy of the value stored under key. The caller
// receives its own graph; mutating it never affects the stored snapshot.
func Get[T any](s *SnapshotStore, key string) (T, error) {
	var zero T
	if key == "" {
		return zero, errors.New("key cannot be empty")
	}

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return zero, ErrNotFound
	}

	want := reflect.TypeOf((*T)(nil)).Elem()
	if want.Kind() == reflect.Interface {
		if !e.typ.Implements(want) {
			return zero, fmt.Errorf("%w: wanted interface %v, got %v which doesn't implement it",
				ErrTypeMismatch, want, e.typ)
		}
	} else if e.typ != want {
		return zero, fmt.Errorf("%w: wanted %v, got %v", ErrTypeMismatch, want, e.typ)
	}

	result, ok := s.copier.Clone(e.value).(T)
	if !ok {
		return zero, fmt.Errorf("type assertion failed: %T cannot be converted to %v", e.value, want)
	}
	return result, nil
}

// GetOrDefault retrieves a value of type T for the given key, falling back
// to defaultValue when the key is absent.
func GetOrDefault[T any](s *SnapshotStore, key string, defaultValue T) (T, error) {
	value, err := Get[T](s, key)
	if errors.Is(err, ErrNotFound) {
		return defaultValue, nil
	}
	return value, err
}

// SnapshotID returns the stable identifier of the snapshot under key. The
// identifier survives overwrites of the same key.
func (s *SnapshotStore) SnapshotID(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return e.id, nil
}

// Delete removes a key from the store.
func (s *SnapshotStore) Delete(key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	return true
}

// Clear removes all keys from the store.
func (s *SnapshotStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]entry)
}

// ListKeys returns all stored keys.
func (s *SnapshotStore) ListKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	return out
}

// Count returns the number of entries in the store.
func (s *SnapshotStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// ListTypes returns the set of all concrete types stored.
func (s *SnapshotStore) ListTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[reflect.Type]struct{}{}
	out := []string{}
	for _, e := range s.data {
		if _, ok := seen[e.typ]; ok {
			continue
		}
		seen[e.typ] = struct{}{}
		out = append(out, e.typ.String())
	}
	return out
}

// KeysByType returns all keys whose stored value has type T.
func KeysByType[T any](s *SnapshotStore) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := reflect.TypeOf((*T)(nil)).Elem()
	keys := []string{}
	for k, e := range s.data {
		if e.typ == want {
			keys = append(keys, k)
		}
	}
	return keys
}

// GetMetadata returns the metadata for a key, creating empty metadata on
// first access.
func (s *SnapshotStore) GetMetadata(key string) (*Metadata, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	if e.metadata == nil {
		e.metadata = NewMetadata()
		s.data[key] = e
	}
	return e.metadata, nil
}

// AddTag adds a tag to the metadata for a key.
func (s *SnapshotStore) AddTag(key, tag string) error {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return err
	}
	meta.AddTag(tag)
	return nil
}

// HasTag checks if a key's metadata has a specific tag.
func (s *SnapshotStore) HasTag(key, tag string) (bool, error) {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return false, err
	}
	return meta.HasTag(tag), nil
}

// FindKeysByTag returns all keys that have a specific tag in their metadata.
func (s *SnapshotStore) FindKeysByTag(tag string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k, e := range s.data {
		if e.metadata != nil && e.metadata.HasTag(tag) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Merge combines this store with another, handling collisions according to
// the strategy. Merged values are deep-copied, so the two stores share
// nothing afterwards. Returns the list of collided keys.
func (s *SnapshotStore) Merge(other *SnapshotStore, strategy MergeStrategy) ([]string, error) {
	other.mu.RLock()
	defer other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	collisions := []string{}
	for key, otherEntry := range other.data {
		if _, exists := s.data[key]; exists {
			collisions = append(collisions, key)
			switch strategy {
			case Error:
				return collisions, fmt.Errorf("key collision on merge: %s", key)
			case Skip:
				continue
			case Overwrite:
			}
		}
		s.data[key] = entry{
			id:       otherEntry.id,
			typ:      otherEntry.typ,
			value:    s.copier.Clone(otherEntry.value),
			metadata: otherEntry.metadata.clone(),
		}
	}
	return collisions, nil
}

// Clone creates a new store holding deep copies of all entries. The clone
// shares no mutable state with the original; snapshot identifiers are
// preserved.
func (s *SnapshotStore) Clone() *SnapshotStore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := NewSnapshotStore()
	for key, e := range s.data {
		out.data[key] = entry{
			id:       e.id,
			typ:      e.typ,
			value:    s.copier.Clone(e.value),
			metadata: e.metadata.clone(),
		}
	}
	return out
}

// GetTypeSchema returns a JSON Schema representation of the stored value's
// type.
func (s *SnapshotStore) GetTypeSchema(key string) (interface{}, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return TypeToSchema(e.typ), nil
}

// TypeToSchema converts a reflect.Type to a JSON schema map.
func TypeToSchema(t reflect.Type) interface{} {
	instance := reflect.New(t).Interface()
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(instance)

	fallback := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}

	data, err := gojson.Marshal(schema)
	if err != nil {
		return fallback
	}
	var schemaMap map[string]interface{}
	if err := gojson.Unmarshal(data, &schemaMap); err != nil {
		return fallback
	}

	if _, ok := schemaMap["type"]; !ok {
		schemaMap["type"] = "object"
	}
	if _, ok := schemaMap["properties"]; !ok {
		schemaMap["properties"] = map[string]interface{}{}
	}
	return schemaMap
}
