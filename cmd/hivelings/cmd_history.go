package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hivelings-server/internal/infrastructure/storage"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per-tick statistics recorded by previous runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.HistoryPath == "" {
				return fmt.Errorf("history is disabled in config")
			}

			h, err := storage.OpenHistory(cfg.Storage.HistoryPath)
			if err != nil {
				return err
			}
			defer h.Close()

			from, _ := cmd.Flags().GetInt("from")
			limit, _ := cmd.Flags().GetInt("limit")
			rows, err := h.Ticks(cmd.Context(), from, limit)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TICK\tSCORE\tHIVELINGS\tFOOD\tTRAILS\tDIGEST")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n", r.Tick, r.Score, r.Hivelings, r.Food, r.Trails, r.Digest)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("from", 0, "First tick to show")
	cmd.Flags().Int("limit", 50, "Maximum rows")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
