package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/accounts"
	"outlooker/internal/api"
	"outlooker/internal/cache"
	"outlooker/internal/config"
	"outlooker/internal/eventbus"
	"outlooker/internal/session"
	"outlooker/internal/tags"
	"outlooker/internal/ui"
)

func main() {
	// Parse command line arguments
	var apiURL string
	flag.StringVar(&apiURL, "api", "", "Base URL of the admin API (overrides config)")
	flag.StringVar(&apiURL, "a", "", "Base URL of the admin API (shorthand)")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("outlooker.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Load configuration
	configSvc := config.NewConfigService()
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	// OUTLOOKER_DATA_DIR relocates session and cache state, used to keep
	// test runs away from the real config directory.
	var sessDir, cacheDir string
	if dataDir := os.Getenv("OUTLOOKER_DATA_DIR"); dataDir != "" {
		sessDir = filepath.Join(dataDir, "session")
		cacheDir = filepath.Join(dataDir, "cache")
	}

	// Create event bus
	bus := eventbus.New()

	// Initialize services
	sess := session.NewStore(sessDir)
	snapshot := cache.New(cacheDir)
	client := api.NewClient(cfg.APIURL, time.Duration(cfg.TimeoutSec)*time.Second, sess, bus)
	_ = accounts.NewService(bus, client) // fetches pages on request events
	tagIndex := tags.NewManager(bus)     // rebuilds the tag index on every loaded page

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, client, sess, snapshot, tagIndex)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventAccountsLoaded,
		eventbus.EventAccountsDeleted,
		eventbus.EventTagsUpdated,
		eventbus.EventImportCompleted,
		eventbus.EventMetricsLoaded,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
		eventbus.EventCacheRefreshed,
		eventbus.EventAuthExpired,
		eventbus.EventLoggedIn,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
}
