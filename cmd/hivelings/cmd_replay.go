package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"hivelings-server/internal/engine"
	"hivelings-server/internal/infrastructure/storage"
	"hivelings-server/pkg/logger"
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <file.hvrp>",
		Short: "Re-run a recorded session and verify its final digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			session, err := storage.LoadReplay(args[0])
			if err != nil {
				return err
			}
			initial, err := storage.InitialStateOf(session)
			if err != nil {
				return err
			}

			logger.Log.WithField("scenario", session.Scenario).
				WithField("ticks", session.FinalTick-initial.Tick).
				Info("💿 Mode: Replay Simulation")

			final, err := engine.RunReplay(cmd.Context(), session, initial, cfg.StepOptions())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"scenario": session.Scenario,
					"tick":     final.Tick,
					"score":    final.Score,
					"digest":   final.Digest(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "replay OK: tick %d, score %d, digest %s\n", final.Tick, final.Score, final.Digest())
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
