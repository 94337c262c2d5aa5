package view

import (
	"errors"
	"fmt"

	"github.com/gridcare-data/coverage.report/internal/simapi"
)

// ClusterUnassigned marks a neighborhood whose assignment was not a valid
// hospital index. It renders in UnassignedColor rather than being silently
// folded into a real cluster.
const ClusterUnassigned = -1

// ErrAssignmentMismatch is returned when the assignment array does not line
// up one-to-one with the neighborhood array.
var ErrAssignmentMismatch = errors.New("assignment count does not match neighborhood count")

// EnrichedNeighborhood is a Neighborhood plus its derived cluster index.
// Lifetime is bound to one simulation run.
type EnrichedNeighborhood struct {
	simapi.Neighborhood
	Cluster int `json:"cluster"`
}

// EnrichedResult couples the raw response with its labeled neighborhoods.
type EnrichedResult struct {
	Response      *simapi.SimulationResponse `json:"response"`
	Neighborhoods []EnrichedNeighborhood     `json:"neighborhoods"`
}

// Enrich joins the flat assignment array back onto each neighborhood. The
// join is keyed on neighborhood id via a mapping built from original array
// order, so a reordered slice would still label correctly. A length mismatch
// fails loudly; an assignment outside [0, len(hospitals)) is marked
// ClusterUnassigned instead of being misassigned.
func Enrich(resp *simapi.SimulationResponse) (*EnrichedResult, error) {
	if len(resp.Assignments) != len(resp.Neighborhoods) {
		return nil, fmt.Errorf("%w: %d assignments for %d neighborhoods",
			ErrAssignmentMismatch, len(resp.Assignments), len(resp.Neighborhoods))
	}

	clusterByID := make(map[int]int, len(resp.Neighborhoods))
	for i, nb := range resp.Neighborhoods {
		clusterByID[nb.ID] = resp.Assignments[i]
	}

	k := len(resp.Hospitals)
	enriched := make([]EnrichedNeighborhood, len(resp.Neighborhoods))
	for i, nb := range resp.Neighborhoods {
		cluster, ok := clusterByID[nb.ID]
		if !ok || cluster < 0 || cluster >= k {
			cluster = ClusterUnassigned
		}
		enriched[i] = EnrichedNeighborhood{Neighborhood: nb, Cluster: cluster}
	}

	return &EnrichedResult{Response: resp, Neighborhoods: enriched}, nil
}
