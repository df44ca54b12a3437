package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hivelings-server/internal/agent"
	"hivelings-server/internal/server"
	"hivelings-server/pkg/logger"
)

// newMindCmd поднимает демо-бота как удаленный разум (для проверки режима remote).
func newMindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mind",
		Short: "Serve the demo bot as a remote mind over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			mux := http.NewServeMux()
			mux.HandleFunc("/mind", server.MindHandler(agent.NewBot()))
			srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			logger.Log.Infof("🧠 Demo mind listening on ws://%s/mind", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:8090", "Listen address")
	return cmd
}
