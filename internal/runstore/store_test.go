package runstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcare-data/coverage.report/internal/simapi"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err, "open in-memory store")
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResponse() *simapi.SimulationResponse {
	return &simapi.SimulationResponse{
		GridSize:           20,
		Iterations:         7,
		Inertia:            12.3456,
		OverallAvgDistance: 3.1,
		OverallMaxDistance: 8.9,
		Neighborhoods: []simapi.Neighborhood{
			{ID: 0, X: 1, Y: 1},
			{ID: 1, X: 9, Y: 9},
		},
		Hospitals: []simapi.Hospital{
			{ID: 0, X: 0, Y: 0},
			{ID: 1, X: 10, Y: 10},
		},
		Assignments: []int{0, 1},
		ClusterStats: []simapi.ClusterStat{
			{HospitalID: 0, Count: 1, AvgDistance: 1.414, MaxDistance: 1.414},
			{HospitalID: 1, Count: 1, AvgDistance: 1.414, MaxDistance: 1.414},
		},
		DistanceHistogram: []simapi.HistogramBin{{Label: "0-2", Count: 2}},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := setupStore(t)
	params := simapi.SimulationParams{M: 20, N: 80, K: 4}

	id, err := s.SaveRun(params, sampleResponse())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, resp, err := s.GetRun(id)
	require.NoError(t, err)

	assert.Equal(t, id, record.RunID)
	assert.Equal(t, 20, record.M)
	assert.Equal(t, 80, record.N)
	assert.Equal(t, 4, record.K)
	assert.Equal(t, 7, record.Iterations)
	assert.InDelta(t, 12.3456, record.Inertia, 1e-9)
	assert.False(t, record.CreatedAt.IsZero())

	// The full payload round-trips.
	assert.Len(t, resp.Neighborhoods, 2)
	assert.Equal(t, []int{0, 1}, resp.Assignments)
	assert.Equal(t, "0-2", resp.DistanceHistogram[0].Label)
}

func TestGetRunNotFound(t *testing.T) {
	s := setupStore(t)

	_, _, err := s.GetRun("no-such-run")
	assert.True(t, errors.Is(err, ErrRunNotFound), "err = %v", err)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := setupStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.SaveRun(simapi.SimulationParams{M: 20, N: 80, K: 2 + i}, sampleResponse())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// All three runs are present; ordering within a single timestamp is by id.
	seen := map[string]bool{}
	for _, r := range records {
		seen[r.RunID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id], "missing run %s", id)
	}
}

func TestListRunsLimit(t *testing.T) {
	s := setupStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.SaveRun(simapi.SimulationParams{M: 20, N: 80, K: 4}, sampleResponse())
		require.NoError(t, err)
	}

	records, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLatestRunEmptyStore(t *testing.T) {
	s := setupStore(t)
	_, _, err := s.LatestRun()
	assert.True(t, errors.Is(err, ErrRunNotFound), "err = %v", err)
}

func TestLatestRun(t *testing.T) {
	s := setupStore(t)
	_, err := s.SaveRun(simapi.SimulationParams{M: 20, N: 80, K: 4}, sampleResponse())
	require.NoError(t, err)

	record, resp, err := s.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, 4, record.K)
	assert.Equal(t, 20, resp.GridSize)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := setupStore(t)
	// Running migrate again on an already-migrated database is a no-op.
	require.NoError(t, s.migrateUp())
}
