package view

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/gridcare-data/coverage.report/internal/simapi"
)

// ClusterSummary is the per-hospital view aggregate, recomputed on every new
// result. Never transmitted or persisted on its own.
type ClusterSummary struct {
	HospitalID      int             `json:"hospital_id"`
	Color           string          `json:"color"`
	Count           int             `json:"count"`
	AverageDistance float64         `json:"average_distance"`
	Hospital        simapi.Hospital `json:"hospital"`
}

// Summarize computes one ClusterSummary per hospital, in hospital-array
// order (that order defines cluster indices 0..k-1). A hospital with no
// assigned neighborhoods gets an average distance of 0.
func Summarize(enriched *EnrichedResult) []ClusterSummary {
	hospitals := enriched.Response.Hospitals
	summaries := make([]ClusterSummary, len(hospitals))

	for idx, h := range hospitals {
		var dists []float64
		for _, nb := range enriched.Neighborhoods {
			if nb.Cluster == idx {
				dists = append(dists, math.Hypot(nb.X-h.X, nb.Y-h.Y))
			}
		}

		avg := 0.0
		if len(dists) > 0 {
			avg = stat.Mean(dists, nil)
		}

		summaries[idx] = ClusterSummary{
			HospitalID:      h.ID,
			Color:           ColorFor(idx),
			Count:           len(dists),
			AverageDistance: avg,
			Hospital:        h,
		}
	}

	return summaries
}
