// Command relay runs the websocket broadcast hub that visualizers listen
// on. Each joining client makes the others receive "connect"; every
// message from any client is broadcast to all as "bump".
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/remote"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	addr := flag.String("addr", "", "Listen address (empty = use config remote.relay_addr)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	listenAddr := config.Cfg().Remote.RelayAddr
	if *addr != "" {
		listenAddr = *addr
	}

	relay := remote.NewRelay()
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           relay,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("relay listening", "addr", listenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("relay failed", "error", err)
		os.Exit(1)
	}
	slog.Info("relay stopped")
}
