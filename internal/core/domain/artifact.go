package domain

import "time"

// MetadataEntry describes one rendered visual in visuals.json.
type MetadataEntry struct {
	VisualPath  string    `json:"visual_path"`
	Description string    `json:"description,omitempty"`
	Cluster     string    `json:"cluster,omitempty"`
	Type        string    `json:"type,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	MaleIDs     []string  `json:"male_ids"`
	FemaleIDs   []string  `json:"female_ids"`
}
