// Package charts renders summary graphics from aggregated ledger data.
package charts

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"

	"fintrack/internal/core"
)

// CategoryExpensesPNG renders a bar chart of expense totals per category.
// Returns nil bytes when there is nothing to draw. The float conversion
// here is display-only; aggregation stays decimal.
func CategoryExpensesPNG(byCategory []core.CategoryAmount) ([]byte, error) {
	if len(byCategory) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, len(byCategory))
	for i, ca := range byCategory {
		bars[i] = chart.Value{
			Label: string(ca.Category),
			Value: ca.Amount.InexactFloat64(),
		}
	}

	graph := chart.BarChart{
		Title:    "Expenses by category",
		Width:    1024,
		Height:   512,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
