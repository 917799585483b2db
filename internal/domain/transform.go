package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidCommand is returned for source messages that are not a usable command.
var ErrInvalidCommand = errors.New("invalid command")

// ParseCommand deserializes a RawEvent's value into a Command and normalizes
// the input name.
func ParseCommand(raw RawEvent) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(raw.Value, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	if cmd.Input == "" {
		return Command{}, fmt.Errorf("%w: missing input", ErrInvalidCommand)
	}
	in, err := ParseInput(string(cmd.Input))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	cmd.Input = in
	return cmd, nil
}

// ApplyTo returns the state after the command.
func (c Command) ApplyTo(s InputState) InputState {
	if c.Value == nil {
		return s.Toggle(c.Input)
	}
	return s.Set(c.Input, *c.Value)
}

// NewEvaluation stamps a freshly computed result with an id and the current time.
func NewEvaluation(seq uint64, source string, in InputState, result GateResult) Evaluation {
	return Evaluation{
		ID:          uuid.NewString(),
		Sequence:    seq,
		Source:      source,
		Inputs:      in,
		Result:      result,
		EvaluatedAt: clock.Now().UTC(),
	}
}

// SerializeEvaluation marshals an evaluation for the sink topic.
func SerializeEvaluation(ev Evaluation) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("serialize evaluation: %w", err)
	}
	return data, nil
}

// ReminderLabel is the compact on/off form used in message headers and logs.
func ReminderLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
