package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"salary-bias-service/internal/core/domain"
)

type configFile struct {
	Dataset domain.DatasetConfig `yaml:"dataset"`
}

// LoadConfig reads the dataset section of an ETL YAML file.
func LoadConfig(path string) (domain.DatasetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DatasetConfig{}, fmt.Errorf("read dataset config: %w", err)
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.DatasetConfig{}, fmt.Errorf("%w: %v", domain.ErrInvalidDatasetConfig, err)
	}
	return cfg.Dataset, nil
}
