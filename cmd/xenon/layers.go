package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/engine2000"
	"github.com/phanxgames/engine2000/internal/xenon"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Print the physics layer collision matrix",
	Long: `Print which physics layers collide once the game's layers and rules
are applied. A dot means the pair never produces contacts unless a sensor
with events is involved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t := engine2000.NewLayerTable()
		if err := xenon.SetupLayers(t); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderMatrix(t))
		return nil
	},
}

var (
	matrixHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(0, 1)
	matrixCell   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	matrixYes    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	matrixNo     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func renderMatrix(t *engine2000.LayerTable) string {
	names := t.Layers()
	headers := append([]string{""}, names...)
	rows := make([][]string, 0, len(names))
	for _, a := range names {
		row := []string{a}
		for _, b := range names {
			if t.ShouldLayersCollide(a, b) {
				row = append(row, matrixYes.Render("x"))
			} else {
				row = append(row, matrixNo.Render("."))
			}
		}
		rows = append(rows, row)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return matrixHeader
			}
			return matrixCell
		}).
		Render()
}
