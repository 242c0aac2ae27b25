package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/dailyliving"
	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/reconcile"
	"github.com/sandeepkv93/medtui/internal/scheduler"
	"github.com/sandeepkv93/medtui/internal/storage"
	"github.com/sandeepkv93/medtui/internal/transport"
	"github.com/sandeepkv93/medtui/internal/update"
)

// unreachableTransport stands in when no API base URL is configured. Every
// call fails, so the reconcile cache runs purely off the sqlite mirror and
// queues writes as pending local writes.
type unreachableTransport struct{}

var errNoAPI = fmt.Errorf("no api base url configured")

func (unreachableTransport) ListMedications(context.Context, string) ([]model.Medication, error) {
	return nil, errNoAPI
}

func (unreachableTransport) CreateMedication(context.Context, string, transport.CreateMedicationFields) (model.Medication, error) {
	return model.Medication{}, errNoAPI
}

func (unreachableTransport) RecordDoseEvent(context.Context, string, string, string, string) error {
	return errNoAPI
}

// newRemote picks the API client when a base URL is configured, otherwise
// the unreachable stand-in that keeps the app fully local.
func newRemote(cfg update.RuntimeConfig) (reconcile.Transport, error) {
	if cfg.APIBaseURL == "" {
		return unreachableTransport{}, nil
	}
	return transport.NewClient(cfg.APIBaseURL, transport.DefaultTimeout)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "medtui failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := storage.MigrateUp(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		return err
	}

	remote, err := newRemote(cfg)
	if err != nil {
		return fmt.Errorf("configure api client: %w", err)
	}

	cache := reconcile.NewCache(remote, repo, cfg.UserID)
	daily := dailyliving.NewService(repo)

	driver := scheduler.NewDriver(cache, scheduler.NewDeduplicator(), scheduler.DriverConfig{
		Interval:         time.Duration(cfg.TickSeconds) * time.Second,
		ToleranceMinutes: cfg.ToleranceMinutes,
		BufferSize:       cfg.SchedulerBuffer,
	})
	driver.Start()
	defer driver.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	ui := update.NewModelWithRuntime(cache, daily, driver, notifier, cfg)
	program := tea.NewProgram(ui)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
