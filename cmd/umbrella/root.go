package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/couchcryptid/umbrella-gate/internal/adapter/openmeteo"
	"github.com/couchcryptid/umbrella-gate/internal/adapter/tui"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/couchcryptid/umbrella-gate/internal/feed"
	"github.com/couchcryptid/umbrella-gate/internal/observability"
	"github.com/couchcryptid/umbrella-gate/internal/panel"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	lat, lon      float64
	weather       bool
	pollInterval  time.Duration
	rainThreshold float64
	windThreshold float64
	logFile       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "umbrella",
		Short: "Umbrella reminder logic panel",
		Long: `An interactive panel that decides whether to take an umbrella.

Four inputs (heavy rain, drizzle, strong wind, night time) feed a small
network of OR, AND, NOR and XNOR gates. Toggle inputs with r, d, w and t
(or 1-4) and watch the gate lamps and the reminder update.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.weather = cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon")
			return runPanel(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.lat, "lat", 0, "latitude for the live weather feed")
	f.Float64Var(&opts.lon, "lon", 0, "longitude for the live weather feed")
	f.DurationVar(&opts.pollInterval, "poll", 5*time.Minute, "weather poll interval")
	f.Float64Var(&opts.rainThreshold, "rain-threshold", domain.DefaultThresholds().RainMM, "precipitation (mm) that counts as heavy rain")
	f.Float64Var(&opts.windThreshold, "wind-threshold", domain.DefaultThresholds().WindKMH, "wind speed (km/h) that counts as strong wind")
	f.StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	cmd.AddCommand(newEvalCmd(), newTableCmd())
	return cmd
}

func runPanel(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger, closeLog, err := panelLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	pnl := panel.New(panel.WithLogger(logger))
	prog := tea.NewProgram(tui.New(pnl), tea.WithAltScreen(), tea.WithContext(ctx))
	pnl.Subscribe(tui.Observer(prog.Send))

	if opts.weather {
		if opts.pollInterval <= 0 {
			return fmt.Errorf("--poll must be positive")
		}
		client := openmeteo.NewClient(10*time.Second, observability.NewUnregisteredMetrics(), logger)
		th := domain.Thresholds{RainMM: opts.rainThreshold, WindKMH: opts.windThreshold}
		poller := feed.NewPoller(client, pnl, opts.lat, opts.lon, th, opts.pollInterval, logger)
		go func() {
			if err := poller.Run(ctx); err != nil {
				logger.Error("weather feed error", "error", err)
			}
		}()
	}

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run panel: %w", err)
	}
	return nil
}

// panelLogger keeps logs off the terminal the panel draws on.
func panelLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
