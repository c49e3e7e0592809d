package cmd

import (
	"github.com/spf13/cobra"
)

var speedCmd = &cobra.Command{
	Use:   "speed [off|low|medium|high|max|<level>]",
	Short: "Freeze the fan at the given speed level",
	Long: `Overrides the hardware speed selector with a fixed speed level
until 'fanbridge auto' is issued. Accepts a level name or number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return apiClient().SetSpeed(args[0])
	},
}

func init() {
	rootCmd.AddCommand(speedCmd)
}
