package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Statistical comparisons of male and female income",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.AddCommand(newTTestCmd(rt, &asJSON), newRegressionCmd(rt, &asJSON))
	return cmd
}

func newTTestCmd(rt *runtime, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "ttest",
		Short: "Welch's t-test on monthly income, for the full dataset and each cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			results, err := a.Analysis.Run(cmd.Context())
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(cmd, results)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCOPE\tMALE MEAN\tFEMALE MEAN\tT\tP\tSIGNIFICANT")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.4f\t%.5f\t%t\n",
					r.Scope, r.MaleMean, r.FemaleMean, r.TStatistic, r.PValue, r.Significant)
			}
			return w.Flush()
		},
	}
}

func newRegressionCmd(rt *runtime, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "regression",
		Short: "Fit income models per gender and store their cross-group errors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			preds, err := a.Regression.Evaluate(cmd.Context())
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(cmd, preds)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tTEST DATA\tPHASE\tMAE")
			for _, p := range preds {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", p.ModelType, p.TestDataset, p.Phase, p.MeanAbsoluteError)
			}
			return w.Flush()
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
