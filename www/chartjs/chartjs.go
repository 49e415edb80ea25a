// Package chartjs builds Chart.js configuration objects that the
// dashboard serialises to JSON and hands straight to `new Chart(...)`
// in the browser.
package chartjs

import (
	"fmt"
	"math"
)

// NoOfHours is the number of hourly slots on a day chart.
const NoOfHours = 24

const (
	ColorRed       = "#f44336d4"
	ColorGreen     = "#4caf50d4"
	ColorGreenArea = "#4caf5033"
)

// Axis identifiers, also the keys in Chart.Options.Scales.
const (
	YAxis1 = "YAxis1"
	YAxis2 = "YAxis2"
)

// NewChart returns a two-series line chart with one label per hour of
// the day and a value axis on either side. Callers fill in the data
// points and may trim the datasets or restyle the scales afterwards.
func NewChart(title string) Chart {
	labels := make([]string, NoOfHours)
	for h := range labels {
		labels[h] = fmt.Sprintf("%02d:00", h)
	}

	return Chart{
		Type: "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{
				newDataset(ColorRed, YAxis1),
				newDataset(ColorGreen, YAxis2),
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: false},
				Title: ChartTitle{
					Display: title != "",
					Text:    title,
				},
			},
			Scales: map[string]*ChartScale{
				YAxis1: newScale("left"),
				YAxis2: newScale("right"),
			},
		},
	}
}

func newDataset(color, axisID string) ChartDataset {
	return ChartDataset{
		Data:        make([]*float64, NoOfHours),
		BorderWidth: 1,
		Tension:     0.4,
		BorderColor: color,
		YAxisID:     axisID,
	}
}

func newScale(position string) *ChartScale {
	return &ChartScale{
		Type:     "linear",
		Display:  true,
		Position: position,
	}
}

// WithTitle labels the scale and returns it for chaining.
func (s *ChartScale) WithTitle(title string) *ChartScale {
	s.Title = ChartTitle{Display: true, Text: title}
	return s
}

// WithMinAndMax pins the scale to a fixed range.
func (s *ChartScale) WithMinAndMax(min, max float64) *ChartScale {
	s.Min = &min
	s.Max = &max
	return s
}

// WithDisplay shows or hides the scale.
func (s *ChartScale) WithDisplay(display bool) *ChartScale {
	s.Display = display
	return s
}

// FixedFloat64 rounds val to the given number of decimals and returns a
// pointer to it, matching the optional-point representation Chart.js
// expects for missing samples.
func FixedFloat64(val float64, decimals int) *float64 {
	shift := math.Pow(10, float64(decimals))
	rounded := math.Round(val*shift) / shift
	return &rounded
}
