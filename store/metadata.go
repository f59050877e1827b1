package store

import "time"

// Metadata carries descriptive information about a stored snapshot.
type Metadata struct {
	Tags        []string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMetadata creates empty metadata with both timestamps set to now.
func NewMetadata() *Metadata {
	now := time.Now()
	return &Metadata{
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddTag adds a tag if it is not already present.
func (m *Metadata) AddTag(tag string) {
	if m.HasTag(tag) {
		return
	}
	m.Tags = append(m.Tags, tag)
	m.UpdatedAt = time.Now()
}

// RemoveTag removes a tag if present.
func (m *Metadata) RemoveTag(tag string) {
	for i, t := range m.Tags {
		if t == tag {
			m.Tags = append(m.Tags[:i], m.Tags[i+1:]...)
			m.UpdatedAt = time.Now()
			return
		}
	}
}

// HasTag checks whether a tag is present.
func (m *Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags checks whether every given tag is present.
func (m *Metadata) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !m.HasTag(t) {
			return false
		}
	}
	return true
}

// HasAnyTag checks whether at least one of the given tags is present.
func (m *Metadata) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if m.HasTag(t) {
			return true
		}
	}
	return false
}

// clone returns an independent copy of the metadata.
func (m *Metadata) clone() *Metadata {
	if m == nil {
		return nil
	}
	return &Metadata{
		Tags:        append([]string{}, m.Tags...),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
