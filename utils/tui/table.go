package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kris-hansen/hwflow/utils/workflow"
)

// RenderStepsTable renders steps as a bordered table
func RenderStepsTable(steps []workflow.Step) string {
	rows := make([][]string, 0, len(steps))
	for i, step := range steps {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			step.ID,
			step.Label,
			step.Type,
			FormatParameterSummary(step.Parameters),
			formatPosition(step.Position),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("#", "ID", "LABEL", "TYPE", "PARAMETERS", "POSITION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	return t.String()
}

// FormatParameterSummary renders parameters as "key=value" pairs in key order
func FormatParameterSummary(params map[string]interface{}) string {
	if len(params) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, params[key]))
	}
	return strings.Join(pairs, ", ")
}

func formatPosition(pos *workflow.Position) string {
	if pos == nil {
		return "-"
	}
	return fmt.Sprintf("(%g, %g)", pos.X, pos.Y)
}
