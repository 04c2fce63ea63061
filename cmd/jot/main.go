// Package main is the entry point for the jot editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/jot/internal/app"
	"github.com/dshills/jot/internal/config"
	"github.com/dshills/jot/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Path       string

	showVersion bool
	showHelp    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Printf("jot %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	settings, err := loadSettings(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logFile, err := app.OpenLogFile(settings.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(settings.LogLevel)
	logCfg.Output = logFile
	logger := app.NewLogger(logCfg)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		return 1
	}

	// Create application
	application, err := app.New(app.Options{
		Path:        opts.Path,
		FileMode:    settings.FileMode,
		BorderColor: settings.BorderColor,
		TitleBold:   settings.TitleBold,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	reportNewFile(os.Stderr, application.Editor().Document())

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Create terminal backend
	tty, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			logger.Info("signal received")
			application.Shutdown()
		}
	}()

	if err := application.Run(context.Background()); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		logger.Error("exit: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// reportNewFile tells the user, before the screen is taken over, that the
// file will be created by the first save.
func reportNewFile(w io.Writer, doc *app.Document) {
	if doc.Exists {
		return
	}
	fmt.Fprintf(w, "jot: %s does not exist; it will be created on save\n", doc.Path)
}

// loadSettings layers flags over the environment, the settings file and
// the built-in defaults.
func loadSettings(opts cliOptions) (config.Settings, error) {
	cfg := config.New(config.WithConfigFile(opts.ConfigPath))

	if opts.LogLevel != "" {
		if err := cfg.Set(config.PathLogLevel, opts.LogLevel); err != nil {
			return config.Settings{}, err
		}
	}
	if opts.LogFile != "" {
		if err := cfg.Set(config.PathLogFile, opts.LogFile); err != nil {
			return config.Settings{}, err
		}
	}

	if err := cfg.Load(); err != nil {
		return config.Settings{}, fmt.Errorf("loading configuration: %w", err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		return config.Settings{}, fmt.Errorf("configuration: %w", err)
	}

	switch settings.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return config.Settings{}, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", settings.LogLevel)
	}
	return settings, nil
}

// parseFlags parses args. It returns flag.ErrHelp after printing usage
// for -h, and a usage error unless exactly one path is given.
func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("jot", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "jot - a minimal terminal text editor\n\n")
		fmt.Fprintf(stderr, "Usage: jot [options] <file>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys:\n")
		fmt.Fprintf(stderr, "  Ctrl+S    save\n")
		fmt.Fprintf(stderr, "  Ctrl+X    quit\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.showHelp {
		fs.Usage()
		return opts, flag.ErrHelp
	}
	if opts.showVersion {
		return opts, nil
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one file, got %d\n\n", fs.NArg())
		fs.Usage()
		return opts, errors.New("usage")
	}
	opts.Path = fs.Arg(0)

	return opts, nil
}
