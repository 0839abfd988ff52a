package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/services"
)

func newClusterCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Age and experience clusters",
	}
	cmd.AddCommand(newClusterExportCmd(rt), newClusterVisualsCmd(rt))
	return cmd
}

func newClusterExportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Split employees into median-based clusters and write per-cluster CSVs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			assignment, err := a.Clusters.Export(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "age median: %g\tyears median: %g\n", assignment.AgeMedian, assignment.YearsMedian)
			fmt.Fprintln(w, "CLUSTER\tTOTAL\tMALE\tFEMALE")
			for _, c := range domain.Clusters {
				p := assignment.Partitions[c]
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", c, len(p.All), len(p.Male), len(p.Female))
			}
			return w.Flush()
		},
	}
}

func newClusterVisualsCmd(rt *runtime) *cobra.Command {
	req := services.DefaultClusterVisualRequest()

	cmd := &cobra.Command{
		Use:   "visuals",
		Short: "Render sampled visuals for every exported cluster and the full dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.ClusterVisuals.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), e.VisualPath); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&req.ImagesPerCluster, "images", req.ImagesPerCluster, "visuals per cluster")
	cmd.Flags().IntVar(&req.SampleSize, "size", req.SampleSize, "employees per gender in each cluster visual")
	cmd.Flags().IntVar(&req.FullSampleSize, "full-size", req.FullSampleSize, "employees per gender in the full dataset visual")

	return cmd
}
