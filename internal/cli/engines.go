package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/driverjars/pkg/descriptor"
)

// enginesCommand creates the engines command, which lists the supported
// database engines with their driver versions.
func (c *CLI) enginesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List supported database engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
			cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle.Padding(0, 1)
					}
					return cellStyle
				}).
				Headers("ENGINE", "VERSION", "DRIVER CLASS", "ARCHIVE")

			for _, d := range descriptor.All() {
				if !d.RequiresDriver() {
					t.Row(d.Key, "-", StyleDim.Render("embedded, no driver needed"), "-")
					continue
				}
				t.Row(d.Key, d.Version, d.DriverClass, d.ArchiveName)
			}

			fmt.Println(t)
			printDetail("Aliases: pdw and synapse resolve to sql server")
			return nil
		},
	}
}
