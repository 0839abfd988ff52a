package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"salary-bias-service/internal/adapters/secondary/dataset"
)

func newETLCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Load raw employee datasets into the database",
	}
	cmd.AddCommand(newETLRunCmd(rt))
	return cmd
}

func newETLRunCmd(rt *runtime) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract a CSV or Excel file, clean it and replace the target table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.config()
			if err != nil {
				return err
			}
			path := configPath
			if path == "" {
				path = cfg.ETL.DatasetConfigPath
			}
			dsCfg, err := dataset.LoadConfig(path)
			if err != nil {
				return err
			}

			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			table, err := a.ETL.Run(cmd.Context(), dsCfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d rows into %s\n", len(table.Rows), dsCfg.TableName)
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "dataset config YAML (default $ETL_DATASET_CONFIG)")
	return cmd
}
