package domain

import (
	"context"
	"time"
)

// Evaluation sources recorded on every snapshot.
const (
	SourceStartup  = "startup"
	SourceHTTP     = "http"
	SourceKafka    = "kafka"
	SourceWeather  = "weather"
	SourceTerminal = "terminal"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Command is an input change published on the source topic. A nil Value
// flips the input; an explicit Value sets it.
type Command struct {
	Input Input `json:"input"`
	Value *bool `json:"value,omitempty"`
}

// Evaluation is the current panel snapshot: the inputs and the result they
// produced. It is the only place a GateResult is retained.
type Evaluation struct {
	ID          string     `json:"id"`
	Sequence    uint64     `json:"sequence"`
	Source      string     `json:"source"`
	Inputs      InputState `json:"inputs"`
	Result      GateResult `json:"result"`
	EvaluatedAt time.Time  `json:"evaluated_at"`
}
