package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/yamatools/internal/config"
	"github.com/jask/yamatools/internal/database"
	"github.com/jask/yamatools/internal/lifecycle"
	"github.com/jask/yamatools/internal/notify"
	"github.com/jask/yamatools/internal/service"
	"github.com/jask/yamatools/internal/settings"
	"github.com/jask/yamatools/internal/tools"
	"github.com/jask/yamatools/internal/tui"
	"github.com/jask/yamatools/internal/widget"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !config.Exists() {
		if err := config.Save(cfg); err != nil {
			log.Printf("warn: could not write default config: %v", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}
	f, err := tea.LogToFile(cfg.Log.File, "yamatools | ")
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer f.Close()

	store, maintenance, db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	toasts := notify.NewToasts(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	host := lifecycle.New(lifecycle.Options{
		Store:      store,
		Notifier:   toasts,
		Logger:     log.Default(),
		GameMaster: cfg.IsGameMaster(),
		Layout: widget.Layout{
			AnchorWidth:  cfg.UI.AnchorWidth,
			AnchorHeight: cfg.UI.AnchorHeight,
			RowHeight:    cfg.UI.MenuRowHeight,
		},
	})
	if err := host.Initialize(ctx); err != nil {
		log.Fatalf("initialize: %v", err)
	}
	defer host.Close()
	defer host.Destroy()

	tools.Register(host, toasts, rand.New(rand.NewSource(time.Now().UnixNano())))

	p := tea.NewProgram(tui.New(ctx, cfg, host, toasts, maintenance), tea.WithAltScreen(), tea.WithMouseCellMotion())
	cancel := host.Registry.Subscribe(func() {
		go p.Send(tui.RegistryChanged())
	})
	defer cancel()

	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openStore picks the settings backend. The returned db is nil unless the
// sqlite backend is in use.
func openStore(ctx context.Context, cfg config.Config) (settings.Store, *service.MaintenanceService, *sql.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Backend)) {
	case "none":
		log.Printf("settings store disabled, button state will not persist")
		return nil, nil, nil, nil
	case "file":
		path := cfg.Storage.FilePath
		if path == "" {
			p, err := settings.DefaultFilePath()
			if err != nil {
				return nil, nil, nil, fmt.Errorf("settings file path: %w", err)
			}
			path = p
		}
		fs := settings.NewFileStore(path)
		return fs, &service.MaintenanceService{Files: fs}, nil, nil
	case "", "sqlite":
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	return settings.NewSQLStore(db, cfg.User.Name), &service.MaintenanceService{DB: db}, db, nil
}
