package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gridcare-data/coverage.report/internal/config"
	"github.com/gridcare-data/coverage.report/internal/dashboard"
	"github.com/gridcare-data/coverage.report/internal/runstore"
	"github.com/gridcare-data/coverage.report/internal/simapi"
	"github.com/gridcare-data/coverage.report/internal/version"
)

var (
	listen      = flag.String("listen", "", "Listen address (overrides config)")
	apiBase     = flag.String("api-base", "", "Computation service base URL (overrides config)")
	dbPath      = flag.String("db", "", "Run history database path (overrides config)")
	configPath  = flag.String("config", "", "Path to JSON config file")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("coverage.report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	addr := cfg.GetListenAddr()
	if *listen != "" {
		addr = *listen
	}
	base := cfg.GetComputeBaseURL()
	if *apiBase != "" {
		base = *apiBase
	}
	dbFile := cfg.GetDBPath()
	if *dbPath != "" {
		dbFile = *dbPath
	}

	store, err := runstore.Open(dbFile)
	if err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}
	defer store.Close()

	client := simapi.NewClient(base, nil)

	ws := dashboard.NewWebServer(dashboard.WebServerConfig{
		Address: addr,
		Client:  client,
		Store:   store,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("coverage.report %s: dashboard on %s, compute service at %s", version.Version, addr, base)
	if err := ws.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
