package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultChartName = "model_predictions.png"

func newPredictionsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Stored model prediction errors",
	}
	cmd.AddCommand(newPredictionsChartCmd(rt))
	return cmd
}

func newPredictionsChartCmd(rt *runtime) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render stored mean absolute errors as a bar chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			destination := out
			if destination == "" {
				destination = filepath.Join(a.Store.Root(), defaultChartName)
			}
			if err := a.Regression.Chart(cmd.Context(), destination); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), destination)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default <artifacts root>/"+defaultChartName+")")
	return cmd
}
