package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/couchcryptid/umbrella-gate/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw command messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer applies a raw command to the panel and returns the resulting evaluation.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.Evaluation, error)
}

// BatchLoader writes evaluations to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, evaluations []domain.Evaluation) error
}

// Pipeline feeds Kafka commands into the panel and publishes every
// evaluation they produce. A command's offset is committed only after its
// evaluation has been published.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// Run consumes command batches until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if ctx.Err() != nil {
			break
		}
		if err != nil {
			p.logger.Error("extract batch failed", "error", err)
			if !retry.SleepWithContext(ctx, backoff) {
				break
			}
			backoff = retry.NextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = initialBackoff

		if len(batch) > 0 {
			p.handle(ctx, batch)
		}
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// handle applies one batch of commands, publishes the evaluations and then
// commits every message in the batch, invalid ones included.
func (p *Pipeline) handle(ctx context.Context, batch []domain.RawEvent) {
	start := time.Now()
	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))

	evaluations := p.apply(ctx, batch)
	if len(evaluations) > 0 && !p.publish(ctx, evaluations) {
		p.logger.Warn("stopped before publishing; batch left uncommitted",
			"evaluations", len(evaluations),
			"messages", len(batch),
		)
		return
	}

	for _, raw := range batch {
		p.commit(ctx, raw)
	}
	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
}

// apply runs the commands against the panel in offset order and returns the
// evaluations of the valid ones.
func (p *Pipeline) apply(ctx context.Context, batch []domain.RawEvent) []domain.Evaluation {
	evaluations := make([]domain.Evaluation, 0, len(batch))
	for _, raw := range batch {
		ev, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("invalid command, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.CommandErrors.Inc()
			continue
		}
		evaluations = append(evaluations, ev)
	}
	return evaluations
}

// publish writes the evaluations, retrying the same batch with exponential
// backoff. The panel already reflects these commands, so only cancellation
// ends the retries. Returns false if ctx was cancelled first.
func (p *Pipeline) publish(ctx context.Context, evaluations []domain.Evaluation) bool {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := p.loader.LoadBatch(ctx, evaluations)
		if err == nil {
			p.metrics.MessagesProduced.Add(float64(len(evaluations)))
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		p.metrics.PublishRetries.Inc()
		p.logger.Error("load batch failed, retrying",
			"error", err,
			"batch_size", len(evaluations),
			"attempt", attempt,
			"backoff", backoff,
		)
		if !retry.SleepWithContext(ctx, backoff) {
			return false
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}

// commit commits the message offset if a commit function is available.
func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
