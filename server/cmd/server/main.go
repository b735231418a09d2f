package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/skirmish/assets"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/server/core"
	"github.com/automoto/skirmish/shared/protocol"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type serverFlags struct {
	port        uint
	tickRate    int
	name        string
	version     string
	level       string
	levelsDir   string
	metricsAddr string
	tuning      string
}

// NewRootCmd creates the headless server command.
func NewRootCmd() *cobra.Command {
	f := serverFlags{}
	cmd := &cobra.Command{
		Use:   "skirmish-server",
		Short: "Run one skirmish level headless and stream it to clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(f)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.UintVar(&f.port, "port", config.Server.Port, "websocket port")
	flags.IntVar(&f.tickRate, "tickrate", config.Server.TickRate, "simulation ticks per second")
	flags.StringVar(&f.name, "name", "Skirmish Server", "server display name")
	flags.StringVar(&f.version, "version", "", "required client version (empty = accept any)")
	flags.StringVar(&f.level, "level", config.Server.Level, "level stem or path inside the level tree")
	flags.StringVar(&f.levelsDir, "levels-dir", "", "directory holding levels/ (empty = built in)")
	flags.StringVar(&f.metricsAddr, "metrics-addr", config.Server.MetricsAddr, "address for /metrics (empty = off)")
	flags.StringVar(&f.tuning, "tuning", "", "YAML file with configuration overrides")
	return cmd
}

func run(f serverFlags) error {
	if err := protocol.RegisterComponents(); err != nil {
		return err
	}
	if f.tuning != "" {
		if err := config.LoadOverrides(f.tuning); err != nil {
			return err
		}
	}

	level, err := core.LoadLevel(core.LevelFS(f.levelsDir, assets.FS()), f.level)
	if err != nil {
		return err
	}

	server := core.NewServer(level, core.Options{
		Name:     f.name,
		Version:  f.version,
		TickRate: f.tickRate,
	})

	if f.metricsAddr != "" {
		go serveMetrics(f.metricsAddr)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Skirmish server %q on port %d (tick rate: %d/s, level: %s, version: %s)",
		f.name, f.port, f.tickRate, level.Name, f.version)
	if err := server.Start(f.port); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Warning: Metrics server stopped: %v", oops.Code("METRICS_FAILED").With("addr", addr).Wrap(err))
	}
}
