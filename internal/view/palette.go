// Package view derives renderable view-state from a raw simulation result:
// cluster coloring, per-cluster summaries, map projection, chart shaping,
// and the view session state machine. Everything here is pure and safe to
// recompute on every render.
package view

// Palette is the fixed, ordered cluster color table. It is process-wide
// read-only data; colors repeat cyclically for cluster indices beyond its
// length.
var Palette = []string{
	"#5470c6", // blue
	"#91cc75", // green
	"#fac858", // yellow
	"#ee6666", // red
	"#73c0de", // light blue
	"#3ba272", // teal
	"#fc8452", // orange
	"#9a60b4", // purple
	"#ea7ccc", // pink
	"#2f4554", // slate
}

// UnassignedColor marks neighborhoods whose cluster assignment was invalid.
const UnassignedColor = "#9e9e9e"

// ColorFor returns the stable color for a cluster index. The same index
// always yields the same color regardless of total cluster count.
func ColorFor(clusterIndex int) string {
	if clusterIndex < 0 {
		return UnassignedColor
	}
	return Palette[clusterIndex%len(Palette)]
}
