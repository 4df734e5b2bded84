package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ngmaloney/anomaly-terminal/internal/config"
	"github.com/ngmaloney/anomaly-terminal/internal/database"
	"github.com/ngmaloney/anomaly-terminal/internal/journal"
	"github.com/ngmaloney/anomaly-terminal/internal/logger"
	"github.com/ngmaloney/anomaly-terminal/internal/models"
	"github.com/ngmaloney/anomaly-terminal/internal/prediction"
	"github.com/ngmaloney/anomaly-terminal/internal/ui"
)

func main() {
	os.Exit(run())
}

// run holds the program so deferred cleanup happens before the process exits
func run() int {
	endpoint := flag.String("endpoint", "", "Prediction service URL (overrides config, e.g. http://127.0.0.1:8000/predict)")
	date := flag.String("date", "", "Anchor the seven-day window on this date instead of today (YYYY-MM-DD)")
	history := flag.Int("history", 0, "Print the last N journaled fetches and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}
	if *endpoint != "" {
		cfg.Service.Endpoint = *endpoint
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
	}

	if *history > 0 {
		if err := printHistory(cfg.Journal.Path, *history); err != nil {
			fmt.Printf("Error reading history: %v\n", err)
			return 1
		}
		return 0
	}

	// Read the clock once; the window is fixed for the session
	anchor := time.Now()
	if *date != "" {
		anchor, err = time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			fmt.Printf("Error: --date must be YYYY-MM-DD: %v\n", err)
			return 1
		}
	}

	log, closer, err := logger.OpenFile(cfg.Log.File, "anomaly-terminal", cfg.Log.Level)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		return 1
	}
	defer closer.Close()

	sessionID := uuid.NewString()
	log = log.With("session_id", sessionID)

	opts := ui.Options{
		Window:    models.BuildDayWindow(anchor),
		Client:    prediction.NewHTTPClient(cfg.Service.Endpoint, cfg.Service.Timeout),
		Logger:    log,
		SessionID: sessionID,
	}

	if cfg.Journal.Enabled {
		repo, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			// The journal is diagnostic only; run without it
			log.Warn("journal unavailable", "path", cfg.Journal.Path, "error", err)
		} else {
			defer repo.Close()
			opts.Journal = repo
		}
	}

	log.Info("starting", "endpoint", cfg.Service.Endpoint, "anchor", anchor.Format("2006-01-02"))

	p := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program exited", "error", err)
		fmt.Printf("Error running application: %v\n", err)
		return 1
	}
	return 0
}

func printHistory(path string, limit int) error {
	repo, err := journal.OpenExisting(path)
	if errors.Is(err, database.ErrNoDatabase) {
		fmt.Println("No fetches recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer repo.Close()

	entries, err := repo.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No fetches recorded yet.")
		return nil
	}

	for _, e := range entries {
		detail := e.ErrorText
		if e.MinTemperature != nil && e.MaxTemperature != nil {
			detail = fmt.Sprintf("%.2f..%.2f °C", *e.MinTemperature, *e.MaxTemperature)
		}
		fmt.Printf("%-14s  day %d  gen %-3d  %-7s  %6s  %s\n",
			humanize.Time(e.CreatedAt),
			e.DayIndex,
			e.Generation,
			e.Outcome,
			e.Duration.Round(time.Millisecond),
			detail,
		)
	}
	return nil
}
