package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fanbridge/fanbridge/cmd/global"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/mapping"
	"github.com/fanbridge/fanbridge/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured speed table and resulting duty curve",
	Run: func(cmd *cobra.Command, args []string) {
		configuration.DetectAndReadConfigFile()
		err := configuration.Validate()
		if err != nil {
			ui.FatalWithoutStacktrace("Config Validation Error: %s", err.Error())
		}

		config := configuration.CurrentConfig
		mapper := mapping.NewSpeedMapper(config.Speeds, config.Pwm)

		// print table
		rows := make([][]string, 0, mapper.MaxLevel()+1)
		for level := 0; level <= mapper.MaxLevel(); level++ {
			rows = append(rows, []string{
				strconv.Itoa(level),
				mapper.LevelName(level),
				fmt.Sprintf("%.0f %%", mapper.ToNormalized(level)*100),
				strconv.Itoa(mapper.ToDuty(level)),
			})
		}
		tab := table.Table{
			Headers: []string{"Level", "Name", "Speed", "Duty"},
			Rows:    rows,
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
			ui.Fatal("Error printing speed table: %v", tableErr)
		}
		ui.Printfln(buf.String())

		// print graph
		values := make([]float64, 0, mapper.MaxLevel()+1)
		for level := 0; level <= mapper.MaxLevel(); level++ {
			values = append(values, float64(mapper.ToDuty(level)))
		}

		caption := "Duty / Level"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
}
