// Package cli is the biasctl command tree.
package cli

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	rt := newRuntime()
	defer rt.close()
	return newRootCmd(rt).Execute()
}

func newRootCmd(rt *runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "biasctl",
		Short:         "Salary bias toolkit: sample, cluster, visualise and analyse employee income data",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newGenerateCmd(rt),
		newClusterCmd(rt),
		newAnalyzeCmd(rt),
		newPredictionsCmd(rt),
		newETLCmd(rt),
	)

	return rootCmd
}
