package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"conduit/internal/api"
	"conduit/internal/config"
	"conduit/internal/page"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
	"conduit/internal/shell"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.WithFields(logrus.Fields{
		"api_base_url":  cfg.APIBaseURL,
		"badgerdb_path": cfg.BadgerDBPath,
	}).Info("Configuration loaded successfully")

	// --- Initialize Components ---
	log.Info("Initializing components...")

	// Local storage
	store, err := session.NewBadgerStore(cfg.BadgerDBPath, log)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	defer func() {
		log.Info("Closing session store...")
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Error closing session store")
		}
	}()

	// Backend client
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout(), log)

	// The stored viewer, if any, becomes the initial session.
	viewer, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("Stored viewer unreadable, starting as guest")
		viewer = nil
	}
	sess := session.FromStored(viewer)

	// History feeds route changes into the loop; the program is created
	// first so the observer can reference it.
	var prog *program.Program
	history := router.NewHistory(func(r router.Route) {
		prog.Send(page.RouteChanged{Route: r})
	}, log)

	deps := page.Deps{
		API:      client,
		Nav:      history,
		Store:    store,
		SlowLoad: cfg.SlowLoadThreshold(),
		Log:      log,
	}
	app := shell.New(deps, sess)

	// The CLI renderer: flatten the view tree to text after every update.
	render := func() {
		fmt.Println(app.View().Plain())
	}
	prog = program.New(app, render, log)

	// --- Application Startup ---
	log.Info("Starting conduit...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Land on the home page.
	history.Push(router.Home())

	log.Info("Conduit is running. Press Ctrl+C to exit.")

	if err := prog.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("Message loop failed")
	}

	// --- Graceful Shutdown ---
	log.Info("Shutting down conduit...")
	stop()

	log.Info("Conduit shut down gracefully.")
}
