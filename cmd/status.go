package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fanbridge/fanbridge/cmd/global"
	"github.com/fanbridge/fanbridge/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current state of the running daemon",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := apiClient().Status()
		if err != nil {
			return err
		}

		tab := table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"Mode", status.Mode},
				{"Level", fmt.Sprintf("%d (%s)", status.Level, status.LevelName)},
				{"Speed", fmt.Sprintf("%.0f %%", status.NormalizedPercent)},
				{"Duty", strconv.Itoa(status.Duty)},
				{"RPM", fmt.Sprintf("%.0f", status.Rpm)},
				{"RPM (avg)", fmt.Sprintf("%.0f", status.RpmAvg)},
				{"Self test", strconv.FormatBool(status.Testing)},
			},
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
