package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gridcare-data/coverage.report/internal/simapi"
)

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatKm renders a distance with one decimal place and a km suffix.
func FormatKm(v float64) string {
	return fmt.Sprintf("%.1f km", v)
}

// ClusterChartRow is one bar-chart row of the per-cluster statistics.
type ClusterChartRow struct {
	HospitalLabel string  `json:"hospital_label"`
	Count         int     `json:"count"`
	Avg           float64 `json:"avg"`
	Max           float64 `json:"max"`
	Color         string  `json:"color"`
}

// ClusterChartRows reshapes the service's per-cluster stats for the cluster
// bar chart, preserving server order.
func ClusterChartRows(stats []simapi.ClusterStat) []ClusterChartRow {
	rows := make([]ClusterChartRow, len(stats))
	for i, s := range stats {
		rows[i] = ClusterChartRow{
			HospitalLabel: "H" + strconv.Itoa(s.HospitalID),
			Count:         s.Count,
			Avg:           Round2(s.AvgDistance),
			Max:           Round2(s.MaxDistance),
			Color:         ColorFor(i),
		}
	}
	return rows
}

// HistogramRow is one distance-histogram bar.
type HistogramRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramRows passes the service's histogram bins through in order.
func HistogramRows(bins []simapi.HistogramBin) []HistogramRow {
	rows := make([]HistogramRow, len(bins))
	for i, b := range bins {
		rows[i] = HistogramRow{Label: b.Label, Count: b.Count}
	}
	return rows
}

// KPICard is one labeled scalar summary statistic.
type KPICard struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Caption string `json:"caption"`
}

// KPICards derives the five fixed dashboard cards from a simulation
// response.
func KPICards(resp *simapi.SimulationResponse) []KPICard {
	return []KPICard{
		{
			Title:   "Neighborhoods",
			Value:   strconv.Itoa(len(resp.Neighborhoods)),
			Caption: fmt.Sprintf("on a %d km grid", resp.GridSize),
		},
		{
			Title:   "Hospitals",
			Value:   strconv.Itoa(len(resp.Hospitals)),
			Caption: fmt.Sprintf("converged in %d iterations", resp.Iterations),
		},
		{
			Title:   "Avg distance",
			Value:   FormatKm(resp.OverallAvgDistance),
			Caption: "mean travel distance",
		},
		{
			Title:   "Max distance",
			Value:   FormatKm(resp.OverallMaxDistance),
			Caption: "worst-case travel distance",
		},
		{
			Title:   "Inertia",
			Value:   fmt.Sprintf("%.2f", resp.Inertia),
			Caption: "sum of squared distances",
		},
	}
}
