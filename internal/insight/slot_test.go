package insight

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lovewall/internal/model"
)

// gatedSource blocks until release is closed, then returns a fixed insight
type gatedSource struct {
	release chan struct{}
	value   model.Insight
	outcome Outcome
	calls   atomic.Int32
}

func newGatedSource(value model.Insight, outcome Outcome) *gatedSource {
	return &gatedSource{release: make(chan struct{}), value: value, outcome: outcome}
}

func (g *gatedSource) Fetch(ctx context.Context, items []model.ProofItem) (model.Insight, Outcome) {
	g.calls.Add(1)
	<-g.release
	return g.value, g.outcome
}

var liveInsight = model.Insight{
	Summary:    "People love it.",
	Highlights: []string{"Fit", "Support", "Value"},
}

func TestSlot_Lifecycle(t *testing.T) {
	s := NewSlot()
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, OutcomeNone, s.Outcome())

	src := newGatedSource(liveInsight, OutcomeLive)
	require.True(t, s.Start(context.Background(), src, sampleItems))

	assert.Equal(t, StateLoading, s.State())
	_, ready := s.Get()
	assert.False(t, ready)

	close(src.release)
	got, err := s.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, liveInsight, got)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, OutcomeLive, s.Outcome())
	s.Close()
}

func TestSlot_StartsOnce(t *testing.T) {
	s := NewSlot()
	first := newGatedSource(liveInsight, OutcomeLive)
	second := newGatedSource(FallbackMalformed, OutcomeMalformed)
	close(first.release)
	close(second.release)

	assert.True(t, s.Start(context.Background(), first, nil))
	assert.False(t, s.Start(context.Background(), second, nil))

	got, err := s.Wait(context.Background())
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, liveInsight, got)
	assert.EqualValues(t, 0, second.calls.Load())
}

func TestSlot_ConcurrentStartAndRead(t *testing.T) {
	s := NewSlot()
	src := newGatedSource(liveInsight, OutcomeLive)

	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if s.Start(context.Background(), src, sampleItems) {
				started.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			if v, ok := s.Get(); ok {
				assert.Equal(t, liveInsight, v)
			}
		}()
	}
	wg.Wait()
	close(src.release)

	<-s.Done()
	s.Close()

	assert.EqualValues(t, 1, started.Load())
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestSlot_ReplacesInvalidResult(t *testing.T) {
	s := NewSlot()
	src := newGatedSource(model.Insight{Summary: "only summary"}, OutcomeLive)
	close(src.release)

	s.Start(context.Background(), src, nil)
	got, err := s.Wait(context.Background())
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, FallbackMalformed, got)
	assert.Equal(t, OutcomeMalformed, s.Outcome())
}

func TestSlot_WaitHonorsContext(t *testing.T) {
	s := NewSlot()
	src := newGatedSource(liveInsight, OutcomeLive)
	s.Start(context.Background(), src, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(src.release)
	s.Close()
	assert.Equal(t, StateReady, s.State())
}

func TestSlot_GetReturnsCopy(t *testing.T) {
	s := NewSlot()
	src := newGatedSource(liveInsight.Clone(), OutcomeLive)
	close(src.release)
	s.Start(context.Background(), src, nil)
	<-s.Done()
	s.Close()

	got, _ := s.Get()
	got.Highlights[0] = "mutated"

	again, _ := s.Get()
	assert.Equal(t, "Fit", again.Highlights[0])
}

func TestSlot_WithFetcher(t *testing.T) {
	s := NewSlot()
	s.Start(context.Background(), NewFetcher(nil, nil, nil), sampleItems)

	got, err := s.Wait(context.Background())
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, FallbackUnconfigured, got)
	assert.Equal(t, OutcomeUnconfigured, s.Outcome())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
}
