package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      App
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

// App describes the options consumed by app.Run.
type App struct {
	MenusPath   string
	Width       int
	Height      int
	Offset      int
	ShowFooter  bool
	Verbose     bool
	MetricsAddr string
	Reload      time.Duration
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envMenus       = "MINIMENU_MENUS"
	envWidth       = "MINIMENU_WIDTH"
	envHeight      = "MINIMENU_HEIGHT"
	envOffset      = "MINIMENU_OFFSET"
	envShowFooter  = "MINIMENU_FOOTER"
	envVerbose     = "MINIMENU_VERBOSE"
	envTrace       = "MINIMENU_TRACE"
	envLogFile     = "MINIMENU_LOG_FILE"
	envMetricsAddr = "MINIMENU_METRICS_ADDR"
	envReload      = "MINIMENU_RELOAD"

	defaultOffset = 1
	defaultReload = 2 * time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("minimenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menus := fs.String("menus", envOrDefault(env, envMenus, ""), "path to a TOML menu definition file (empty uses the built-in demo)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	offset := fs.Int("offset", envOrInt(env, envOffset, defaultOffset), "cells a menu is shifted up and left of the pointer")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve Prometheus metrics on this address (empty disables)")
	reload := fs.Duration("reload", envOrDuration(env, envReload, defaultReload), "menu file poll interval (0 disables reloading)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: App{
			MenusPath:   *menus,
			Width:       *width,
			Height:      *height,
			Offset:      *offset,
			ShowFooter:  *footer,
			Verbose:     *verbose,
			MetricsAddr: *metricsAddr,
			Reload:      *reload,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"menus":       *menus,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"offset":      strconv.Itoa(*offset),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"metricsAddr": *metricsAddr,
			"reload":      reload.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks values that flag parsing alone cannot reject and makes
// sure the menu file, when one is named, loads cleanly.
func Validate(cfg Config) error {
	if cfg.App.Offset < 0 {
		return fmt.Errorf("offset must be >= 0 (got %d)", cfg.App.Offset)
	}
	if cfg.App.Reload < 0 {
		return fmt.Errorf("reload must be >= 0 (got %s)", cfg.App.Reload)
	}
	if cfg.App.MenusPath != "" {
		if _, err := LoadMenuFile(cfg.App.MenusPath); err != nil {
			return err
		}
	}
	return nil
}
