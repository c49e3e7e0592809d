package cmd

import (
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Sweep through all speed levels once",
	Long: `Runs a self test stepping the fan through every speed level from
off to max, then restores the previous mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return apiClient().StartTest()
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
