package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hypermart/config"
	"hypermart/core"
	"hypermart/core/events"
	"hypermart/observability/logging"
	"hypermart/storage"
)

const envVar = "HYPERMART_ENV"

func main() {
	configFile := flag.String("config", "./hypermart.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv(envVar))
	logger := logging.Setup("hypermart", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("failed to load config", "path", *configFile, "error", err)
		os.Exit(1)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		logger.Error("invalid catalogue", "error", err)
		os.Exit(1)
	}

	store := core.NewStore(catalog, storage.NewFileStore(cfg.StoreFile))
	store.SetEmitter(logEmitter{logger: logger})

	// Startup load is mandatory. A corrupt or unreadable store is fatal here:
	// starting empty would overwrite customer data on the next save.
	if err := store.Restore(); err != nil {
		logger.Error("failed to load account store", "path", cfg.StoreFile, "error", err)
		os.Exit(1)
	}
	logger.Info("account store loaded", "path", cfg.StoreFile, "accounts", len(store.Accounts()))

	session := &session{store: store, logger: logger, in: os.Stdin, out: os.Stdout}
	session.mainMenu()

	if err := store.Persist(); err != nil {
		logger.Error("failed to persist account store", "error", err)
		os.Exit(1)
	}
}

// logEmitter forwards store events to the structured logger.
type logEmitter struct {
	logger *slog.Logger
}

// Emit implements the events.Emitter interface.
func (e logEmitter) Emit(evt events.Event) {
	e.logger.Info("event", "type", evt.EventType(), "detail", fmt.Sprintf("%+v", evt))
}
