package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoContenders is returned when a report has no MVP scores to plot.
var ErrNoContenders = errors.New("no eligible players: no MVP")

const (
	chartWidth  = 800
	chartHeight = 400
)

var (
	barColor       = drawing.ColorFromHex("3b82f6")
	mvpBarColor    = drawing.ColorFromHex("f59e0b")
	chartTextColor = drawing.ColorFromHex("1f2937")
)

// MVPChart writes a PNG bar chart of the report's MVP contenders, leader highlighted.
func MVPChart(w io.Writer, report usecase.Report) error {
	if len(report.Contenders) == 0 {
		return ErrNoContenders
	}

	bars := make([]chart.Value, 0, len(report.Contenders))
	top := 0.0
	for i, c := range report.Contenders {
		style := chart.Style{FillColor: barColor, StrokeColor: barColor}
		if i == 0 {
			style = chart.Style{FillColor: mvpBarColor, StrokeColor: mvpBarColor}
		}
		bars = append(bars, chart.Value{
			Label: c.Player.Name,
			Value: c.Score,
			Style: style,
		})
		top = max(top, c.Score)
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("MVP contenders (%s)", report.Policy),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.Style{
			FontColor: chartTextColor,
		},
		YAxis: chart.YAxis{
			Name: "Score",
			Style: chart.Style{
				FontColor: chartTextColor,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}
