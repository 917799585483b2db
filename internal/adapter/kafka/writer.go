package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/umbrella-gate/internal/config"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces evaluations to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes evaluations to the sink topic in a
// single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, evaluations []domain.Evaluation) error {
	if len(evaluations) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(evaluations))
	for i := range evaluations {
		msg, err := serializeToMessage(evaluations[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Evaluation into a Kafka message.
func serializeToMessage(ev domain.Evaluation) (kafkago.Message, error) {
	data, err := domain.SerializeEvaluation(ev)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   []byte(ev.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "reminder", Value: []byte(domain.ReminderLabel(ev.Result.ReminderOn))},
			{Key: "evaluated_at", Value: []byte(ev.EvaluatedAt.Format(time.RFC3339))},
		},
	}, nil
}
