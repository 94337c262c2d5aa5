package view

import "sync"

// Phase enumerates the view session states. Modeling them as one enum (plus
// the payload in Snapshot) makes impossible flag combinations, such as
// loading with a live error, unrepresentable.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one observable session state. Result and Summaries are nil
// until a run has succeeded; they keep the prior run's values while a new
// request is loading or after a failure.
type Snapshot struct {
	Phase     Phase
	Err       string
	Result    *EnrichedResult
	Summaries []ClusterSummary
}

// Session tracks the single active view session:
// Idle -> Loading -> Ready | Failed, with any state able to re-enter
// Loading on a new submission. Completions carry the generation token issued
// at Begin and are dropped when stale, so an out-of-date response can never
// overwrite newer intent. A new result fully replaces the prior one.
type Session struct {
	mu         sync.Mutex
	phase      Phase
	errMsg     string
	result     *EnrichedResult
	summaries  []ClusterSummary
	generation uint64
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{phase: PhaseIdle}
}

// Begin transitions to Loading and returns the generation token for the new
// request. Any prior result is kept for display; any prior error is cleared.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.phase = PhaseLoading
	s.errMsg = ""
	return s.generation
}

// Complete installs a finished result for the given generation and
// transitions to Ready. A stale completion (a newer Begin has since
// happened) is ignored and returns false.
func (s *Session) Complete(gen uint64, result *EnrichedResult, summaries []ClusterSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.phase = PhaseReady
	s.errMsg = ""
	s.result = result
	s.summaries = summaries
	return true
}

// Fail records a failure message for the given generation and transitions to
// Failed. The prior result is preserved. Stale failures are ignored.
func (s *Session) Fail(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.phase = PhaseFailed
	s.errMsg = msg
	return true
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:     s.phase,
		Err:       s.errMsg,
		Result:    s.result,
		Summaries: s.summaries,
	}
}
