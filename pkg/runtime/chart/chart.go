// Package chart renders summary rows as PNG bar charts.
package chart

import (
	"errors"
	"io"
	"math"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToDraw = errors.New("no bars to draw")

const (
	barWidth   = 36
	barSpacing = 14
	minWidth   = 640
	height     = 480
)

var barColor = drawing.ColorFromHex("3b82f6")

type Bar struct {
	Label string
	Value int
}

// Render writes a PNG bar chart. Empty input yields ErrNothingToDraw.
func Render(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNothingToDraw
	}

	values := make([]gochart.Value, 0, len(bars))
	peak := 0
	for _, b := range bars {
		values = append(values, gochart.Value{
			Label: b.Label,
			Value: float64(b.Value),
			Style: gochart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		peak = max(peak, b.Value)
	}

	graph := gochart.BarChart{
		Title:      title,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		Width:      max(minWidth, len(bars)*(barWidth+barSpacing)+120),
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: axisMax(peak)},
		},
		Bars: values,
	}
	return graph.Render(gochart.PNG, w)
}

// axisMax leaves headroom above the tallest bar and never collapses to zero.
func axisMax(peak int) float64 {
	if peak <= 0 {
		return 1
	}
	return math.Ceil(float64(peak) * 1.1)
}

func BoothBars(counts []domain.BoothCount) []Bar {
	bars := make([]Bar, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, Bar{Label: c.Booth, Value: c.Count})
	}
	return bars
}

func TimeBars(buckets []domain.TimeBucket) []Bar {
	bars := make([]Bar, 0, len(buckets))
	for _, b := range buckets {
		bars = append(bars, Bar{Label: b.Label, Value: b.Count})
	}
	return bars
}

func DefectAreaBars(views []domain.DefectAreaView) []Bar {
	bars := make([]Bar, 0, len(views))
	for _, v := range views {
		bars = append(bars, Bar{Label: v.DisplayName, Value: v.Count})
	}
	return bars
}
