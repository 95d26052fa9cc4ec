package cli

import (
	"fmt"

	"github.com/RenzRoos/test/internal/version"

	"github.com/spf13/cobra"
)

// addVersionCommand adds the version command
func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version of emutest with build information.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := version.ValidateVersion(); err != nil {
				return WrapExitError(ExitFailure, "", err)
			}

			detailed, _ := cmd.Flags().GetBool("detailed")
			if detailed {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
			}
			return nil
		},
	}

	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)
}
