// Package cmd implements the kb command line to record grocery bills.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/kassabuch"
	"github.com/etnz/kassabuch/config"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Commands are the kb subcommands.
var Commands = []subcommands.Command{
	&lineCmd{},
	&searchCmd{},
	&templateCmd{},
	&billCmd{},
	&exportCmd{},
	&importCmd{},
	&dedupCmd{},
	&pricesCmd{},
	&storesCmd{},
	&paymentsCmd{},
	&topicCmd{},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "kassabuch.yaml", "Path to the configuration file")
var raw = flag.Bool("raw", false, "print markdown reports without rendering them")

// stdout and stdin are swapped by tests.
var stdout io.Writer = os.Stdout
var stdin io.Reader = os.Stdin

// loadConfig reads the configuration file given by -config.
func loadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// NewLogger returns a logger writing warnings (everything when debugging) to
// stderr and, when cfg names a log file, everything to that rotated file.
func NewLogger(cfg *config.Config) *zap.Logger {
	level := zap.WarnLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	if cfg.LogFile == "" {
		return zap.New(console)
	}
	file := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    16,
			MaxBackups: 3,
			MaxAge:     90,
		}),
		zap.DebugLevel,
	)
	return zap.New(zapcore.NewTee(console, file))
}

// openSession loads the catalog and the references named by cfg.
func openSession(cfg *config.Config, logger *zap.Logger) (*kassabuch.Session, error) {
	files := cfg.ReferenceFiles(logger)
	refs, err := files.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load references: %w", err)
	}
	store := cfg.ProductStore(logger)
	catalog, err := store.OpenCatalog()
	if err != nil {
		return nil, fmt.Errorf("could not load products: %w", err)
	}
	return &kassabuch.Session{
		Catalog:     catalog,
		References:  refs,
		Products:    store,
		Refs:        files,
		Output:      cfg.OutputFolder,
		Format:      cfg.Format(),
		Dialect:     cfg.Dialect(),
		Mode:        cfg.Mode(),
		SaveHistory: cfg.SaveHistory,
		Logger:      logger,
	}, nil
}

// setup loads the configuration and opens a session, reporting failures on stderr.
func setup() (*config.Config, *kassabuch.Session, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, nil, false
	}
	s, err := openSession(cfg, NewLogger(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bill book: %v\n", err)
		return nil, nil, false
	}
	return cfg, s, true
}

// backups returns the folder of bill backups.
func backups(cfg *config.Config) string {
	return filepath.Join(cfg.OutputFolder, kassabuch.BackupFolder)
}

// printMarkdown prints md rendered for the terminal.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
