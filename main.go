package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"rental_browser/api"
	"rental_browser/config"
	"rental_browser/httputil"
	"rental_browser/logging"
	"rental_browser/router"
	"rental_browser/views"
)

var (
	openFlag    = flag.String("open", "/", "Initial location, e.g. /search?location=Paris")
	profileFlag = flag.String("profile", "", "API profile from config/profiles (overrides RENTALS_PROFILE)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*profileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.Setup(cfg.LogPath, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up file logging: %v\n", err)
		logging.Discard()
	} else {
		defer logFile.Close()
	}

	start, err := router.Parse(*openFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -open location %q: %v\n", *openFlag, err)
		os.Exit(2)
	}

	slog.Info("starting rental browser",
		"api", cfg.API.BaseURL,
		"profile", cfg.Profile,
		"page_size", cfg.UI.PageSize,
		"open", start.String(),
	)

	clients := httputil.NewClients(cfg.API.Timeout)
	client := api.NewClient(cfg.API.BaseURL, clients.API).WithSuggestClient(clients.Suggest)

	app := views.NewApp(views.Deps{
		API:          client,
		PageSize:     cfg.UI.PageSize,
		SuggestDelay: cfg.UI.SuggestDelay,
	}, start)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		slog.Error("program exited with error", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.Info("goodbye")
}
