package insight

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/ppiankov/lovewall/internal/model"
)

// State is the lifecycle of a Slot
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// Slot holds the one insight of a session. It is written exactly once by
// the fetch started in Start and read by any number of callers.
type Slot struct {
	mu      sync.RWMutex
	state   State
	value   model.Insight
	outcome Outcome

	once sync.Once
	done chan struct{}
	wg   conc.WaitGroup
}

// NewSlot creates an idle slot
func NewSlot() *Slot {
	return &Slot{done: make(chan struct{})}
}

// Start launches the fetch in the background. Only the first call has any
// effect; it reports whether this call started the fetch.
func (s *Slot) Start(ctx context.Context, source Source, items []model.ProofItem) bool {
	started := false
	s.once.Do(func() {
		started = true

		s.mu.Lock()
		s.state = StateLoading
		s.mu.Unlock()

		s.wg.Go(func() {
			value, outcome := source.Fetch(ctx, items)
			if !value.Valid() {
				value, outcome = OutcomeMalformed.Fallback(), OutcomeMalformed
			}
			s.publish(value, outcome)
		})
	})
	return started
}

func (s *Slot) publish(value model.Insight, outcome Outcome) {
	s.mu.Lock()
	s.value = value
	s.outcome = outcome
	s.state = StateReady
	s.mu.Unlock()

	close(s.done)
}

// Get returns the insight and whether it is ready
func (s *Slot) Get() (model.Insight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return model.Insight{}, false
	}
	return s.value.Clone(), true
}

// State returns the current lifecycle state
func (s *Slot) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Outcome returns how the insight was produced, OutcomeNone until ready
func (s *Slot) Outcome() Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

// Done is closed once the insight is ready
func (s *Slot) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the insight is ready or ctx is done
func (s *Slot) Wait(ctx context.Context) (model.Insight, error) {
	select {
	case <-s.done:
		value, _ := s.Get()
		return value, nil
	case <-ctx.Done():
		return model.Insight{}, ctx.Err()
	}
}

// Close waits for an in-flight fetch to finish. Cancel the context given to
// Start first to abandon the call.
func (s *Slot) Close() {
	s.wg.Wait()
}
