package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arnavsurve/kplc/internal/compiler/parser"
	"github.com/arnavsurve/kplc/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrDiagnostics is returned when a source was rejected. The diagnostics
// themselves have already been printed.
var ErrDiagnostics = errors.New("source has diagnostics")

var (
	configPath string
	verbose    bool
	noColor    bool
	failFast   bool
	maxErrors  int

	// set up by loadSettings before any command runs
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	useColors bool
)

var rootCmd = &cobra.Command{
	Use:   "kplc [source.kpl]...",
	Short: "kplc: scanner, parser and semantic checker for KPL",
	Long: `kplc checks KPL programs and reports every lexical, syntactic and
semantic diagnostic as <line>-<column>: <message>.

Commands:
  check    Check one or more (.kpl) sources (the default)
  scan     Print the token stream of a source
  symbols  Print the symbol table built for a source
  init     Scaffold a new KPL project
`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              checkRun,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default: $"+config.EnvVar+" or ./kplc.yml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log parser traces at debug level")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&failFast, "fail-fast", false, "stop at the first syntactic or semantic diagnostic")
	flags.IntVar(&maxErrors, "max-errors", 0, "stop after this many diagnostics (0 = no limit)")

	rootCmd.AddCommand(CheckCmd, ScanCmd, SymbolsCmd, InitCmd)
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, cfgPath, err = config.LoadFrom(configPath, cwd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fail-fast") {
		cfg.Check.FailFast = failFast
	}
	if flags.Changed("max-errors") {
		if maxErrors < 0 {
			return fmt.Errorf("--max-errors must not be negative, got %d", maxErrors)
		}
		cfg.Check.MaxErrors = maxErrors
	}
	if noColor {
		cfg.Output.Color = "never"
	}

	useColors = cfg.UseColor(!color.NoColor)
	color.NoColor = !useColors
	logger = cfg.Logger(os.Stderr, verbose)
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}
	return nil
}

func parserOptions() parser.Options {
	return parser.Options{
		Logger:    logger,
		FailFast:  cfg.Check.FailFast,
		MaxErrors: cfg.Check.MaxErrors,
	}
}

// sourcesFromConfig expands the configured source globs relative to the
// config file's directory.
func sourcesFromConfig() ([]string, error) {
	base := "."
	if cfgPath != "" {
		base = filepath.Dir(cfgPath)
	}

	var files []string
	for _, pattern := range cfg.Sources {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(base, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}
