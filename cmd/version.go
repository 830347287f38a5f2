package cmd

import (
	"github.com/spf13/cobra"

	"github.com/warmstack/primer/internal/pkg/utils"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version number",
	Run: func(cmd *cobra.Command, args []string) {
		version := utils.GetVersion()

		println("primer", version.Version)
		println("- go/version:", version.GoVersion)
	},
}
