package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd(rt *runtime) *cobra.Command {
	var (
		sampleSize int
		count      int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draw disjoint gender-balanced samples and render one visual per sample",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.Generation.Run(cmd.Context(), sampleSize, count)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.VisualPath, e.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sampleSize, "size", 0, "employees per gender in each sample")
	cmd.Flags().IntVar(&count, "count", 1, "number of samples")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}
