package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gridcare-data/coverage.report/internal/simapi"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.3456, 12.35},
		{3.14159, 3.14},
		{5.678, 5.68},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatKm(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.14159, "3.1 km"},
		{0, "0.0 km"},
		{12.95, "13.0 km"},
	}
	for _, tt := range tests {
		if got := FormatKm(tt.in); got != tt.want {
			t.Errorf("FormatKm(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClusterChartRows(t *testing.T) {
	stats := []simapi.ClusterStat{
		{HospitalID: 0, Count: 12, AvgDistance: 2.3456, MaxDistance: 5.6789},
		{HospitalID: 3, Count: 7, AvgDistance: 1.0, MaxDistance: 4.444},
	}

	want := []ClusterChartRow{
		{HospitalLabel: "H0", Count: 12, Avg: 2.35, Max: 5.68, Color: ColorFor(0)},
		{HospitalLabel: "H3", Count: 7, Avg: 1.0, Max: 4.44, Color: ColorFor(1)},
	}

	if diff := cmp.Diff(want, ClusterChartRows(stats)); diff != "" {
		t.Errorf("ClusterChartRows mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogramRowsPassthrough(t *testing.T) {
	bins := []simapi.HistogramBin{
		{Label: "0-2", Count: 5},
		{Label: "2-4", Count: 9},
		{Label: "4-6", Count: 0},
	}

	rows := HistogramRows(bins)
	if len(rows) != len(bins) {
		t.Fatalf("got %d rows, want %d", len(rows), len(bins))
	}
	for i, row := range rows {
		if row.Label != bins[i].Label || row.Count != bins[i].Count {
			t.Errorf("row[%d] = %+v, want %+v", i, row, bins[i])
		}
	}
}

func TestKPICards(t *testing.T) {
	resp := &simapi.SimulationResponse{
		GridSize:           20,
		Iterations:         9,
		Inertia:            12.3456,
		OverallAvgDistance: 3.14159,
		OverallMaxDistance: 8.9,
		Neighborhoods:      make([]simapi.Neighborhood, 80),
		Hospitals:          make([]simapi.Hospital, 4),
	}

	cards := KPICards(resp)
	if len(cards) != 5 {
		t.Fatalf("got %d cards, want 5", len(cards))
	}

	if cards[0].Value != "80" {
		t.Errorf("neighborhood card value = %q, want \"80\"", cards[0].Value)
	}
	if cards[1].Value != "4" {
		t.Errorf("hospital card value = %q, want \"4\"", cards[1].Value)
	}
	if cards[2].Value != "3.1 km" {
		t.Errorf("avg distance card value = %q, want \"3.1 km\"", cards[2].Value)
	}
	if cards[3].Value != "8.9 km" {
		t.Errorf("max distance card value = %q, want \"8.9 km\"", cards[3].Value)
	}
	if cards[4].Value != "12.35" {
		t.Errorf("inertia card value = %q, want \"12.35\"", cards[4].Value)
	}
}
