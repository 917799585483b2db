package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
)

// Executor applies a command to the live panel state.
type Executor interface {
	Execute(cmd domain.Command, source string) domain.Evaluation
}

// CommandTransformer implements Transformer by executing each command against the panel.
type CommandTransformer struct {
	executor Executor
	logger   *slog.Logger
}

// NewTransformer creates a CommandTransformer.
func NewTransformer(executor Executor, logger *slog.Logger) *CommandTransformer {
	return &CommandTransformer{
		executor: executor,
		logger:   logger,
	}
}

func (t *CommandTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.Evaluation, error) {
	cmd, err := domain.ParseCommand(raw)
	if err != nil {
		return domain.Evaluation{}, err
	}

	ev := t.executor.Execute(cmd, domain.SourceKafka)
	t.logger.Debug("command applied",
		"input", cmd.Input,
		"toggle", cmd.Value == nil,
		"sequence", ev.Sequence,
		"reminder", domain.ReminderLabel(ev.Result.ReminderOn),
	)
	return ev, nil
}
