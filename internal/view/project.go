package view

import (
	"math"
	"strconv"
)

// Project maps a simulation coordinate in [0, axisExtent] to a pixel
// coordinate inside a square viewport with the given padding. A zero extent
// is floored at 1 to guard the division.
func Project(v, axisExtent, viewportSize, padding float64) float64 {
	den := axisExtent
	if den < 1 {
		den = 1
	}
	return padding + (v/den)*(viewportSize-2*padding)
}

// Tick is one axis gridline: its pixel position and the rounded real-world
// value it represents.
type Tick struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
}

// GridTicks returns evenly spaced gridline ticks for an axis of the given
// extent, at min(extent, 12) steps. Used identically for x and y.
func GridTicks(extent, viewportSize, padding float64) []Tick {
	steps := int(math.Min(extent, 12))
	if steps < 1 {
		steps = 1
	}

	ticks := make([]Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		val := extent * float64(i) / float64(steps)
		ticks = append(ticks, Tick{
			Label: strconv.Itoa(int(math.Round(val))),
			Value: val,
			Pos:   Project(val, extent, viewportSize, padding),
		})
	}
	return ticks
}
