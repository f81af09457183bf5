package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/logging/events"
	"github.com/atomicstack/minimenu/internal/metrics"
	"github.com/atomicstack/minimenu/internal/ui"
	"github.com/atomicstack/minimenu/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 2 * time.Second

// Option adjusts how Run starts the program.
type Option func(*runOptions)

type runOptions struct {
	termWidth  int
	termHeight int
}

// WithTerminalSize lays the panels out for a terminal of the given size
// before the first resize message arrives. Explicit --width/--height win.
func WithTerminalSize(width, height int) Option {
	return func(o *runOptions) {
		o.termWidth, o.termHeight = width, height
	}
}

// Run bootstraps and executes the Bubble Tea program. When a metrics address
// is configured the registry series are served alongside it until the
// program exits.
func Run(cfg config.App, opts ...Option) error {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	menus, err := loadMenus(cfg.MenusPath)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	observer := metrics.NewObserver(reg)

	var watcher *watch.Watcher
	if cfg.MenusPath != "" && cfg.Reload > 0 {
		watcher = watch.NewWatcher(cfg.MenusPath, cfg.Reload)
		defer watcher.Stop()
	}
	model, err := ui.NewModel(ui.Config{
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialWidth:  ro.termWidth,
		InitialHeight: ro.termHeight,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		Offset:        cfg.Offset,
		Menus:         menus,
		Observer:      observer,
		Watcher:       watcher,
	})
	if err != nil {
		return fmt.Errorf("build ui: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	var srv *http.Server
	var ln net.Listener
	if cfg.MetricsAddr != "" {
		ln, err = net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		srv = &http.Server{Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
	}

	g, ctx := errgroup.WithContext(context.Background())
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			err = nil
		}
		if srv != nil {
			shutdown(srv)
		}
		return err
	})
	if srv != nil {
		events.App.MetricsListening(ln.Addr().String())
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-ctx.Done():
				program.Quit()
			case <-done:
			}
			return nil
		})
	}
	err = g.Wait()
	events.App.Stop(err)
	return err
}

// loadMenus reads the menu file at path, or returns the built-in demo when no
// path is configured.
func loadMenus(path string) (config.MenuFile, error) {
	if path == "" {
		return config.DefaultMenuFile(), nil
	}
	mf, err := config.LoadMenuFile(path)
	if err != nil {
		return config.MenuFile{}, err
	}
	return mf, nil
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
