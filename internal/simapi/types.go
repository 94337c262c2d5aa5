// Package simapi defines the wire types of the remote k-means computation
// service and a client for calling it. The service owns all computation;
// the dashboard only consumes its finished results.
package simapi

// SimulationParams are the caller-supplied simulation inputs: grid side
// length m, neighborhood count n, and hospital count k.
type SimulationParams struct {
	M int `json:"m"`
	N int `json:"n"`
	K int `json:"k"`
}

// Neighborhood is a simulated neighborhood position within [0,m]^2.
// Immutable once received.
type Neighborhood struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Hospital is a placed hospital position. Immutable once received.
// Hospital array order defines cluster indices 0..k-1.
type Hospital struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ClusterStat is the service's per-cluster aggregate.
type ClusterStat struct {
	HospitalID  int     `json:"hospital_id"`
	Count       int     `json:"count"`
	AvgDistance float64 `json:"avg_distance"`
	MaxDistance float64 `json:"max_distance"`
}

// HistogramBin is one bin of the service's distance histogram.
type HistogramBin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SimulationResponse is the raw result payload of one simulation run.
// assignments[i] is the cluster index of neighborhoods[i]: same length,
// same order.
type SimulationResponse struct {
	GridSize           int            `json:"grid_size"`
	Iterations         int            `json:"iterations"`
	Inertia            float64        `json:"inertia"`
	OverallAvgDistance float64        `json:"overall_avg_distance"`
	OverallMaxDistance float64        `json:"overall_max_distance"`
	Neighborhoods      []Neighborhood `json:"neighborhoods"`
	Hospitals          []Hospital     `json:"hospitals"`
	Assignments        []int          `json:"assignments"`
	ClusterStats       []ClusterStat  `json:"cluster_stats"`
	DistanceHistogram  []HistogramBin `json:"distance_histogram"`
}

// PretrainedModel describes a previously fitted hospital placement offered
// by the service.
type PretrainedModel struct {
	K           int          `json:"k"`
	Hospitals   [][2]float64 `json:"hospitals"`
	Description string       `json:"description"`
}
