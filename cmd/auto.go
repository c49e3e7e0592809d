package cmd

import (
	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Resume following the hardware speed selector",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return apiClient().SetAuto()
	},
}

func init() {
	rootCmd.AddCommand(autoCmd)
}
