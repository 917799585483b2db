package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/couchcryptid/umbrella-gate/internal/observability"
	"github.com/couchcryptid/umbrella-gate/internal/panel"
	"github.com/couchcryptid/umbrella-gate/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]domain.RawEvent
	index   atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawEvent, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

// flakyExtractor fails its first calls before serving batches.
type flakyExtractor struct {
	mockExtractor
	failures int
	calls    atomic.Int64
}

func (f *flakyExtractor) ExtractBatch(ctx context.Context, n int) ([]domain.RawEvent, error) {
	if int(f.calls.Add(1)) <= f.failures {
		return nil, errors.New("broker not available")
	}
	return f.mockExtractor.ExtractBatch(ctx, n)
}

type mockLoader struct {
	mu     sync.Mutex
	loaded []domain.Evaluation
	fails  int
	calls  int
}

func (m *mockLoader) LoadBatch(_ context.Context, evs []domain.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.fails {
		return errors.New("broker unavailable")
	}
	m.loaded = append(m.loaded, evs...)
	return nil
}

func (m *mockLoader) Loaded() []domain.Evaluation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Evaluation(nil), m.loaded...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runFor(t *testing.T, p *pipeline.Pipeline, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, p.Run(ctx))
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	pnl := panel.New(panel.WithLogger(discardLogger()))
	ext := &mockExtractor{batches: [][]domain.RawEvent{{
		command(`{"input":"rain","value":true}`),
		command(`{"input":"wind"}`),
	}}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, pipeline.NewTransformer(pnl, discardLogger()), ldr, discardLogger(), metrics, 50)
	runFor(t, p, 300*time.Millisecond)

	loaded := ldr.Loaded()
	require.Len(t, loaded, 2)
	assert.Equal(t, domain.InputState{Rain: true}, loaded[0].Inputs)
	assert.True(t, loaded[0].Result.ReminderOn)
	assert.Equal(t, domain.InputState{Rain: true, Wind: true}, loaded[1].Inputs)
	assert.Equal(t, domain.SourceKafka, loaded[1].Source)
	assert.Equal(t, loaded[1], pnl.Snapshot())

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.MessagesConsumed), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.MessagesProduced), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.PipelineRunning), 0)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	ldr := &mockLoader{}

	p := pipeline.New(ext, pipeline.NewTransformer(panel.New(), discardLogger()), ldr, discardLogger(), observability.NewMetricsForTesting(), 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.Loaded())
}

func TestPipeline_Run_InvalidCommandSkippedAndCommitted(t *testing.T) {
	var commits atomic.Int32
	bad := command(`{"input":"snow"}`)
	bad.Commit = func(_ context.Context) error {
		commits.Add(1)
		return nil
	}
	good := command(`{"input":"drizzle","value":true}`)
	good.Commit = bad.Commit

	pnl := panel.New(panel.WithLogger(discardLogger()))
	ext := &mockExtractor{batches: [][]domain.RawEvent{{bad, good}}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, pipeline.NewTransformer(pnl, discardLogger()), ldr, discardLogger(), metrics, 50)
	runFor(t, p, 300*time.Millisecond)

	loaded := ldr.Loaded()
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Inputs.Drizzle)
	assert.Equal(t, int32(2), commits.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CommandErrors), 0)
}

func TestPipeline_Run_RetriesLoadUntilPublished(t *testing.T) {
	var commits atomic.Int32
	raw := command(`{"input":"rain"}`)
	raw.Commit = func(_ context.Context) error {
		commits.Add(1)
		return nil
	}

	pnl := panel.New(panel.WithLogger(discardLogger()))
	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	ldr := &mockLoader{fails: 2}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, pipeline.NewTransformer(pnl, discardLogger()), ldr, discardLogger(), metrics, 50)
	runFor(t, p, 1500*time.Millisecond)

	// The toggle was applied once and its evaluation survived both failed writes.
	loaded := ldr.Loaded()
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.InputState{Rain: true}, loaded[0].Inputs)
	assert.Equal(t, uint64(2), loaded[0].Sequence)
	assert.Equal(t, pnl.Snapshot(), loaded[0])

	assert.Equal(t, int32(1), commits.Load())
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.PublishRetries), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.MessagesProduced), 0)
}

func TestPipeline_Run_StopDuringLoadRetryLeavesBatchUncommitted(t *testing.T) {
	var commits atomic.Int32
	commit := func(_ context.Context) error {
		commits.Add(1)
		return nil
	}
	bad := command(`{"input":"snow"}`)
	bad.Commit = commit
	good := command(`{"input":"wind","value":true}`)
	good.Commit = commit

	ext := &mockExtractor{batches: [][]domain.RawEvent{{bad, good}}}
	ldr := &mockLoader{fails: 1000}

	p := pipeline.New(ext, pipeline.NewTransformer(panel.New(), discardLogger()), ldr, discardLogger(), observability.NewMetricsForTesting(), 50)
	runFor(t, p, 400*time.Millisecond)

	assert.Empty(t, ldr.Loaded())
	assert.Equal(t, int32(0), commits.Load(), "no offset in the batch may be committed before its evaluations are published")
}

func TestPipeline_Run_InvalidOnlyBatchCommitted(t *testing.T) {
	var commits atomic.Int32
	raw := command(`not json`)
	raw.Commit = func(_ context.Context) error {
		commits.Add(1)
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, pipeline.NewTransformer(panel.New(), discardLogger()), ldr, discardLogger(), observability.NewMetricsForTesting(), 50)
	runFor(t, p, 300*time.Millisecond)

	assert.Empty(t, ldr.Loaded())
	assert.Equal(t, int32(1), commits.Load())
}

func TestPipeline_Run_ExtractErrorBacksOffAndRecovers(t *testing.T) {
	ext := &flakyExtractor{
		mockExtractor: mockExtractor{batches: [][]domain.RawEvent{{command(`{"input":"drizzle","value":true}`)}}},
		failures:      1,
	}
	ldr := &mockLoader{}

	p := pipeline.New(ext, pipeline.NewTransformer(panel.New(), discardLogger()), ldr, discardLogger(), observability.NewMetricsForTesting(), 50)
	runFor(t, p, 600*time.Millisecond)

	require.Len(t, ldr.Loaded(), 1)
	assert.True(t, ldr.Loaded()[0].Inputs.Drizzle)
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	commitCalled := false

	raw := command(`{"input":"time","value":true}`)
	raw.Topic = "umbrella-input-commands"
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, pipeline.NewTransformer(panel.New(), discardLogger()), ldr, discardLogger(), observability.NewMetricsForTesting(), 50)
	runFor(t, p, 300*time.Millisecond)

	assert.True(t, commitCalled)
}

func TestCommandTransformer_Transform(t *testing.T) {
	pnl := panel.New()
	tfm := pipeline.NewTransformer(pnl, discardLogger())

	ev, err := tfm.Transform(context.Background(), command(`{"input":"drizzle","value":true}`))
	require.NoError(t, err)
	assert.True(t, ev.Result.OrRisk)
	assert.True(t, ev.Result.ReminderOn)

	_, err = tfm.Transform(context.Background(), command("not json"))
	require.ErrorIs(t, err, domain.ErrInvalidCommand)
	assert.Equal(t, ev, pnl.Snapshot(), "invalid commands must not change the panel")
}

// --- helpers ---

func command(payload string) domain.RawEvent {
	return domain.RawEvent{
		Key:   []byte("panel"),
		Value: []byte(payload),
	}
}
