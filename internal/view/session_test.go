package view

import "testing"

func readySession(t *testing.T) (*Session, *EnrichedResult) {
	t.Helper()
	s := NewSession()
	enriched, err := Enrich(twoHospitalResponse())
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	gen := s.Begin()
	if !s.Complete(gen, enriched, Summarize(enriched)) {
		t.Fatal("Complete() rejected a current generation")
	}
	return s, enriched
}

func TestSessionStartsIdle(t *testing.T) {
	snap := NewSession().Snapshot()
	if snap.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", snap.Phase)
	}
	if snap.Result != nil {
		t.Error("idle session has a result")
	}
}

func TestSessionHappyPath(t *testing.T) {
	s, enriched := readySession(t)
	snap := s.Snapshot()
	if snap.Phase != PhaseReady {
		t.Errorf("phase = %v, want ready", snap.Phase)
	}
	if snap.Result != enriched {
		t.Error("snapshot result is not the completed result")
	}
	if snap.Err != "" {
		t.Errorf("snapshot error = %q, want empty", snap.Err)
	}
}

func TestSessionFailurePreservesPriorResult(t *testing.T) {
	s, enriched := readySession(t)

	gen := s.Begin()
	if snap := s.Snapshot(); snap.Phase != PhaseLoading || snap.Result != enriched {
		t.Fatalf("loading snapshot lost prior result: %+v", snap.Phase)
	}

	if !s.Fail(gen, "bad k") {
		t.Fatal("Fail() rejected a current generation")
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseFailed {
		t.Errorf("phase = %v, want failed", snap.Phase)
	}
	if snap.Err != "bad k" {
		t.Errorf("error = %q, want \"bad k\"", snap.Err)
	}
	if snap.Result != enriched {
		t.Error("failure discarded the prior result")
	}
}

func TestSessionDropsStaleCompletion(t *testing.T) {
	s := NewSession()
	staleGen := s.Begin()
	freshGen := s.Begin() // user resubmitted before the first request finished

	staleResult, err := Enrich(twoHospitalResponse())
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	if s.Complete(staleGen, staleResult, nil) {
		t.Fatal("stale completion was accepted")
	}
	if snap := s.Snapshot(); snap.Phase != PhaseLoading || snap.Result != nil {
		t.Errorf("stale completion mutated session: phase=%v", snap.Phase)
	}

	freshResult, err := Enrich(syntheticResponse())
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	if !s.Complete(freshGen, freshResult, Summarize(freshResult)) {
		t.Fatal("fresh completion was rejected")
	}
	if snap := s.Snapshot(); snap.Result != freshResult {
		t.Error("fresh completion did not install its result")
	}
}

func TestSessionDropsStaleFailure(t *testing.T) {
	s, enriched := readySession(t)

	staleGen := s.Begin()
	s.Begin()

	if s.Fail(staleGen, "timeout") {
		t.Fatal("stale failure was accepted")
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseLoading || snap.Err != "" {
		t.Errorf("stale failure mutated session: phase=%v err=%q", snap.Phase, snap.Err)
	}
	if snap.Result != enriched {
		t.Error("stale failure discarded the prior result")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseLoading, "loading"},
		{PhaseReady, "ready"},
		{PhaseFailed, "failed"},
		{Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
