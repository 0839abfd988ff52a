package services

import (
	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// MetadataStore collects entries for one run in generation order and writes
// them as a single document on Flush.
type MetadataStore struct {
	store   ports.ArtifactStore
	entries []domain.MetadataEntry
}

func NewMetadataStore(store ports.ArtifactStore) *MetadataStore {
	return &MetadataStore{store: store, entries: []domain.MetadataEntry{}}
}

// Record appends an entry for the named artifact.
func (m *MetadataStore) Record(name, description string, entry domain.MetadataEntry) {
	entry.VisualPath = name
	entry.Description = description
	m.entries = append(m.entries, entry)
}

func (m *MetadataStore) Entries() []domain.MetadataEntry {
	return append([]domain.MetadataEntry(nil), m.entries...)
}

// Flush overwrites the metadata document with every recorded entry.
func (m *MetadataStore) Flush() error {
	return m.store.WriteMetadata(m.entries)
}
