package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Artifacts ArtifactsConfig
	Render    RenderConfig
	Sampling  SamplingConfig
	ETL       ETLConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string // postgres | sqlite
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	EmployeeTable   string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ArtifactsConfig struct {
	Root string
}

type RenderConfig struct {
	ScaleFactor float64
	MinSize     float64
	Jitter      float64
	MarginX     float64
	MarginY     float64
	Layout      string // side_by_side | overlay
	WidthInch   float64
	HeightInch  float64
	DPI         int
}

type SamplingConfig struct {
	// Seed of 0 seeds from the clock.
	Seed uint64
}

type ETLConfig struct {
	DatasetConfigPath string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "etl_pipeline_db")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_SQLITE_PATH", "salary.db")
	v.SetDefault("DATABASE_EMPLOYEE_TABLE", "cleaned_salary_data2")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("ARTIFACTS_ROOT", "static")
	v.SetDefault("RENDER_SCALE_FACTOR", 1.0)
	v.SetDefault("RENDER_MIN_SIZE", 350.0)
	v.SetDefault("RENDER_JITTER", 0.3)
	v.SetDefault("RENDER_MARGIN_X", 10.0)
	v.SetDefault("RENDER_MARGIN_Y", 5.0)
	v.SetDefault("RENDER_LAYOUT", "side_by_side")
	v.SetDefault("RENDER_WIDTH_INCH", 22.0)
	v.SetDefault("RENDER_HEIGHT_INCH", 12.0)
	v.SetDefault("RENDER_DPI", 96)
	v.SetDefault("SAMPLING_SEED", 0)
	v.SetDefault("ETL_DATASET_CONFIG", "config/config.yaml")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("DATABASE_DRIVER"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			SQLitePath:      v.GetString("DATABASE_SQLITE_PATH"),
			EmployeeTable:   v.GetString("DATABASE_EMPLOYEE_TABLE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Artifacts: ArtifactsConfig{
			Root: v.GetString("ARTIFACTS_ROOT"),
		},
		Render: RenderConfig{
			ScaleFactor: v.GetFloat64("RENDER_SCALE_FACTOR"),
			MinSize:     v.GetFloat64("RENDER_MIN_SIZE"),
			Jitter:      v.GetFloat64("RENDER_JITTER"),
			MarginX:     v.GetFloat64("RENDER_MARGIN_X"),
			MarginY:     v.GetFloat64("RENDER_MARGIN_Y"),
			Layout:      v.GetString("RENDER_LAYOUT"),
			WidthInch:   v.GetFloat64("RENDER_WIDTH_INCH"),
			HeightInch:  v.GetFloat64("RENDER_HEIGHT_INCH"),
			DPI:         v.GetInt("RENDER_DPI"),
		},
		Sampling: SamplingConfig{
			Seed: v.GetUint64("SAMPLING_SEED"),
		},
		ETL: ETLConfig{
			DatasetConfigPath: v.GetString("ETL_DATASET_CONFIG"),
		},
	}

	return cfg, nil
}
