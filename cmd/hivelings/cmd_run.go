package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hivelings-server/internal/agent"
	"hivelings-server/internal/engine"
	"hivelings-server/internal/infrastructure/storage"
	"hivelings-server/internal/network"
	"hivelings-server/internal/server"
	"hivelings-server/internal/version"
	"hivelings-server/pkg/logger"
)

// resumeLatest - взять последний снимок из журнала истории.
const resumeLatest = "latest"

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and serve observers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, &cfg); err != nil {
				return err
			}
			resume, _ := cmd.Flags().GetString("resume")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, resume)
		},
	}

	cmd.Flags().String("scenario", "", "Scenario name (BASE, RANDOM, ...)")
	cmd.Flags().String("seed", "", "RNG seed string (empty keeps the scenario seed)")
	cmd.Flags().Int("ticks", -1, "Stop after N ticks (0 runs until interrupted)")
	cmd.Flags().Duration("interval", -1, "Pause between ticks")
	cmd.Flags().String("mind", "", "Mind kind: demo or remote")
	cmd.Flags().String("mind-url", "", "WebSocket URL of the remote mind")
	cmd.Flags().String("addr", "", "Observer server address (env HIVELINGS_ADDR)")
	cmd.Flags().String("resume", "", "Snapshot file to resume from, or \"latest\"")
	cmd.Flags().Bool("debug-ids", false, "Expose entity identifiers to the mind")
	return cmd
}

// applyRunFlags: флаги перекрывают конфиг, конфиг перекрывает значения по умолчанию.
func applyRunFlags(cmd *cobra.Command, cfg *engine.Config) error {
	f := cmd.Flags()
	if f.Changed("scenario") {
		cfg.Scenario, _ = f.GetString("scenario")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetString("seed")
	}
	if f.Changed("ticks") {
		cfg.Ticks, _ = f.GetInt("ticks")
	}
	if f.Changed("interval") {
		cfg.TickInterval, _ = f.GetDuration("interval")
	}
	if f.Changed("mind") {
		cfg.Mind.Kind, _ = f.GetString("mind")
	}
	if f.Changed("mind-url") {
		cfg.Mind.URL, _ = f.GetString("mind-url")
	}
	if f.Changed("debug-ids") {
		cfg.DebugIdentifiers, _ = f.GetBool("debug-ids")
	}
	if addr := os.Getenv("HIVELINGS_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if f.Changed("addr") {
		cfg.Server.Addr, _ = f.GetString("addr")
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg engine.Config, resume string) error {
	log := logger.Component("main")
	log.Info("Starting Hivelings...")
	log.Info(version.String())

	var opts []engine.Option
	var history *storage.History
	if cfg.Storage.HistoryPath != "" {
		h, err := storage.OpenHistory(cfg.Storage.HistoryPath)
		if err != nil {
			return err
		}
		history = h
		opts = append(opts, engine.WithHistory(h))
	}
	if cfg.Storage.ReplayDir != "" {
		opts = append(opts, engine.WithReplays(storage.NewReplayService(cfg.Storage.ReplayDir)))
	}

	if resume == resumeLatest {
		path, err := latestSnapshot(ctx, history)
		if err != nil {
			if history != nil {
				history.Close()
			}
			return err
		}
		resume = path
	}

	state, err := engine.BuildInitialState(cfg, resume)
	if err != nil {
		if history != nil {
			history.Close()
		}
		return err
	}

	mind, closeMind := buildMind(cfg)
	defer closeMind()

	svc, err := engine.NewService(cfg, state, mind, opts...)
	if err != nil {
		return err
	}

	srv := server.New(svc, cfg.Server.Addr)
	srvCtx, stopServer := context.WithCancel(ctx)
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run(srvCtx) }()

	runErr := svc.Run(ctx)
	if runErr != nil {
		log.WithError(runErr).Error("Simulation stopped")
	}

	log.Info("Shutting down...")
	stopServer()
	closeErr := svc.Close()
	if err := <-srvErr; err != nil {
		log.WithError(err).Error("Server stopped with error")
	}

	log.Info("Done.")
	return errors.Join(runErr, closeErr)
}

// buildMind выбирает источник решений по конфигу.
func buildMind(cfg engine.Config) (engine.Mind, func()) {
	switch cfg.Mind.Kind {
	case engine.MindRemote:
		m := network.NewRemoteMind(cfg.Mind.URL, cfg.Mind.Timeout)
		return m, func() {
			if err := m.Close(); err != nil {
				logger.Log.WithError(err).Debug("remote mind close")
			}
		}
	default:
		return agent.NewBot(), func() {}
	}
}

func latestSnapshot(ctx context.Context, h *storage.History) (string, error) {
	if h == nil {
		return "", fmt.Errorf("resume %s: history is disabled", resumeLatest)
	}
	tick, path, ok, err := h.LatestSnapshot(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("resume %s: no snapshots recorded", resumeLatest)
	}
	logger.Log.WithField("tick", tick).Infof("Resuming from %s", path)
	return path, nil
}
