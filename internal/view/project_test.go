package view

import (
	"math"
	"testing"
)

func TestProjectEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		extent float64
		size   float64
		pad    float64
		want   float64
	}{
		{"zero maps to pad", 0, 20, 640, 24, 24},
		{"extent maps to size-pad", 20, 20, 640, 24, 616},
		{"midpoint", 10, 20, 640, 24, 320},
		{"no padding", 5, 10, 100, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.v, tt.extent, tt.size, tt.pad)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Project(%v, %v, %v, %v) = %v, want %v",
					tt.v, tt.extent, tt.size, tt.pad, got, tt.want)
			}
		})
	}
}

func TestProjectStaysInsidePaddedViewport(t *testing.T) {
	const size, pad = 640.0, 24.0
	for _, extent := range []float64{1, 7, 20, 100, 250} {
		for i := 0; i <= 10; i++ {
			v := extent * float64(i) / 10
			got := Project(v, extent, size, pad)
			if got < pad || got > size-pad {
				t.Errorf("Project(%v, %v, %v, %v) = %v, outside [%v, %v]",
					v, extent, size, pad, got, pad, size-pad)
			}
		}
	}
}

func TestProjectZeroExtentGuard(t *testing.T) {
	// A zero extent must not divide by zero; the denominator floors at 1.
	got := Project(0, 0, 640, 24)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("Project with zero extent produced %v", got)
	}
	if got != 24 {
		t.Errorf("Project(0, 0, 640, 24) = %v, want 24", got)
	}
}

func TestGridTicks(t *testing.T) {
	tests := []struct {
		name      string
		extent    float64
		wantSteps int
	}{
		{"small grid uses one step per unit", 5, 5},
		{"large grid caps at 12 steps", 100, 12},
		{"exactly 12", 12, 12},
		{"zero extent still yields a step", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := GridTicks(tt.extent, 640, 24)
			if len(ticks) != tt.wantSteps+1 {
				t.Fatalf("GridTicks(%v) returned %d ticks, want %d", tt.extent, len(ticks), tt.wantSteps+1)
			}
			if ticks[0].Pos != 24 {
				t.Errorf("first tick at %v, want 24", ticks[0].Pos)
			}
			if last := ticks[len(ticks)-1]; tt.extent > 0 && last.Pos != 616 {
				t.Errorf("last tick at %v, want 616", last.Pos)
			}
		})
	}
}

func TestGridTickLabelsAreRoundedValues(t *testing.T) {
	ticks := GridTicks(100, 640, 24)
	if ticks[0].Label != "0" {
		t.Errorf("first label = %q, want \"0\"", ticks[0].Label)
	}
	if last := ticks[len(ticks)-1]; last.Label != "100" {
		t.Errorf("last label = %q, want \"100\"", last.Label)
	}
	// 100/12 steps: second tick is 8.33, labeled with the rounded value.
	if ticks[1].Label != "8" {
		t.Errorf("second label = %q, want \"8\"", ticks[1].Label)
	}
}
