package filestore

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

const (
	samplesDir       = "samples"
	clustersDir      = "clusters"
	metadataFile     = "visuals.json"
	ttestResultsFile = "cluster_ttest_results.csv"
)

type store struct {
	root string
}

// NewStore returns an ArtifactStore rooted at root, creating it if needed.
func NewStore(root string) (ports.ArtifactStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root: %w", err)
	}
	return &store{root: root}, nil
}

func (s *store) Root() string {
	return s.root
}

// ResetVisuals clears the images of both the sample run and the cluster
// visuals stage, since they share one metadata document.
func (s *store) ResetVisuals() error {
	if err := removeGlob(filepath.Join(s.root, "visual_*.png")); err != nil {
		return err
	}
	for _, c := range domain.Clusters {
		if err := os.RemoveAll(filepath.Join(s.root, string(c))); err != nil {
			return fmt.Errorf("remove %s visuals: %w", c, err)
		}
	}
	if err := removeFile(filepath.Join(s.root, metadataFile)); err != nil {
		return err
	}
	return s.resetDir(samplesDir, "*.csv")
}

func (s *store) ResetClusters() error {
	return s.resetDir(clustersDir, "*.csv")
}

func (s *store) VisualPath(name string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create visual dir: %w", err)
	}
	return path, nil
}

func (s *store) WriteSampleCSV(name string, records []domain.EmployeeRecord) error {
	path := filepath.Join(s.root, samplesDir, name+".csv")
	return writeCSV(path, domain.EmployeeCSVHeader, func(w *csv.Writer) error {
		for _, r := range records {
			if err := w.Write(r.Fields()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) WriteGroupedSampleCSV(name string, male, female []domain.EmployeeRecord) error {
	path := filepath.Join(s.root, samplesDir, name+".csv")
	header := append(append([]string(nil), domain.EmployeeCSVHeader...), "Group")
	return writeCSV(path, header, func(w *csv.Writer) error {
		for _, r := range male {
			if err := w.Write(append(r.Fields(), "Red")); err != nil {
				return err
			}
		}
		for _, r := range female {
			if err := w.Write(append(r.Fields(), "Blue")); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) WriteClusterCSV(cluster domain.Cluster, part ports.ClusterPart, records []domain.EmployeeRecord) error {
	header := append(append([]string(nil), domain.EmployeeCSVHeader...), "Cluster")
	return writeCSV(s.clusterPath(cluster, part), header, func(w *csv.Writer) error {
		for _, r := range records {
			if err := w.Write(append(r.Fields(), string(cluster))); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) ReadClusterCSV(cluster domain.Cluster, part ports.ClusterPart) ([]domain.EmployeeRecord, error) {
	f, err := os.Open(s.clusterPath(cluster, part))
	if err != nil {
		// empty clusters are never exported
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.EmployeeRecord{}, nil
		}
		return nil, fmt.Errorf("open cluster csv: %w", err)
	}
	defer f.Close()
	return ReadEmployeeCSV(f)
}

func (s *store) WriteMetadata(entries []domain.MetadataEntry) error {
	if entries == nil {
		entries = []domain.MetadataEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, metadataFile), data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (s *store) ReadMetadata() ([]domain.MetadataEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.root, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var entries []domain.MetadataEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return entries, nil
}

func (s *store) WriteTTestResults(results []domain.TTestResult) error {
	header := []string{"Cluster", "Male_Mean", "Female_Mean", "P_Value", "Statistically_Significant", "N_Male", "N_Female"}
	return writeCSV(filepath.Join(s.root, ttestResultsFile), header, func(w *csv.Writer) error {
		for _, r := range results {
			significant := "No"
			if r.Significant {
				significant = "Yes"
			}
			row := []string{
				r.Scope,
				strconv.FormatFloat(r.MaleMean, 'f', 2, 64),
				strconv.FormatFloat(r.FemaleMean, 'f', 2, 64),
				strconv.FormatFloat(r.PValue, 'f', 5, 64),
				significant,
				strconv.Itoa(r.NMale),
				strconv.Itoa(r.NFemale),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) clusterPath(cluster domain.Cluster, part ports.ClusterPart) string {
	return filepath.Join(s.root, clustersDir, fmt.Sprintf("%s_%s.csv", cluster, part))
}

func (s *store) resetDir(dir, pattern string) error {
	full := filepath.Join(s.root, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return removeGlob(filepath.Join(full, pattern))
}

// ReadEmployeeCSV parses a CSV with a header row into records. Unknown columns
// are ignored.
func ReadEmployeeCSV(r io.Reader) ([]domain.EmployeeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty csv", domain.ErrSchemaMismatch)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := domain.CheckColumns(header); err != nil {
		return nil, err
	}

	records := []domain.EmployeeRecord{}
	for {
		line, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(line) {
				row[col] = line[i]
			}
		}
		rec, err := domain.RecordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeCSV(path string, header []string, rows func(*csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := rows(w); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func removeGlob(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("glob %s: %w", pattern, err)
	}
	for _, m := range matches {
		if err := removeFile(m); err != nil {
			return err
		}
	}
	return nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
