package ports

import "salary-bias-service/internal/core/domain"

// ClusterPart names one of the per-cluster CSV files.
type ClusterPart string

const (
	ClusterPartMale     ClusterPart = "male"
	ClusterPartFemale   ClusterPart = "female"
	ClusterPartCombined ClusterPart = "combined"
)

// ArtifactStore owns the artifact directory layout.
type ArtifactStore interface {
	Root() string

	// ResetVisuals deletes every image visuals.json can list (root
	// visual_*.png and the per-cluster folders), visuals.json itself and
	// samples/*.csv.
	ResetVisuals() error
	// ResetClusters deletes clusters/*.csv.
	ResetClusters() error

	// VisualPath resolves an artifact name relative to the root and creates
	// its parent directory.
	VisualPath(name string) (string, error)

	WriteSampleCSV(name string, records []domain.EmployeeRecord) error
	WriteGroupedSampleCSV(name string, male, female []domain.EmployeeRecord) error
	WriteClusterCSV(cluster domain.Cluster, part ClusterPart, records []domain.EmployeeRecord) error
	// ReadClusterCSV returns no records for a cluster that was never written.
	ReadClusterCSV(cluster domain.Cluster, part ClusterPart) ([]domain.EmployeeRecord, error)

	WriteMetadata(entries []domain.MetadataEntry) error
	ReadMetadata() ([]domain.MetadataEntry, error)

	WriteTTestResults(results []domain.TTestResult) error
}
