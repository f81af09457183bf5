package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/minimenu/internal/app"
	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/logging"
	"github.com/atomicstack/minimenu/internal/logging/events"
	"golang.org/x/term"
)

const builtinMenus = "built-in demo"

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	terminal := probeTerminal()
	events.App.Start(startupTracePayload(cfg, terminal))

	if err := app.Run(cfg.App, runOptions(cfg.App, terminal)...); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runOptions seeds the document with the detected terminal size unless both
// dimensions were fixed on the command line.
func runOptions(cfg config.App, terminal terminalInfo) []app.Option {
	if terminal.Size == nil || (cfg.Width > 0 && cfg.Height > 0) {
		return nil
	}
	return []app.Option{app.WithTerminalSize(terminal.Size.Width, terminal.Size.Height)}
}

// startupTracePayload records what the session will show and where it runs.
func startupTracePayload(cfg config.Config, terminal terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	menus := cfg.App.MenusPath
	if menus == "" {
		menus = builtinMenus
	}
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"menus":    menus,
		"reload":   cfg.App.MenusPath != "" && cfg.App.Reload > 0,
		"metrics":  cfg.App.MetricsAddr,
		"terminal": terminal,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

type terminalInfo struct {
	Size   *terminalSize   `json:"size,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type terminalProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

// probeTerminal checks the standard descriptors in order and takes the size
// of the first one that is a terminal.
func probeTerminal() terminalInfo {
	descriptors := []struct {
		name string
		file *os.File
	}{
		{"stdout", os.Stdout},
		{"stdin", os.Stdin},
		{"stderr", os.Stderr},
	}
	info := terminalInfo{Probes: make([]terminalProbe, 0, len(descriptors))}
	for _, d := range descriptors {
		probe := terminalProbe{Name: d.name}
		fd := int(d.file.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.Terminal = true
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case info.Size == nil && width > 0 && height > 0:
				info.Size = &terminalSize{Source: d.name, Width: width, Height: height}
			}
		}
		info.Probes = append(info.Probes, probe)
	}
	return info
}
