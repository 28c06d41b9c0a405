package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"ccfiles/internal/app"
	"ccfiles/internal/config"
	"ccfiles/internal/logging"
	"ccfiles/internal/scan"
	"ccfiles/internal/theme"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootOptions are the persistent flags every subcommand shares.
type bootOptions struct {
	configPath string
	hidden     bool
	recursive  bool
	themeName  string
	logFile    string
	debug      bool
	exclude    []string
}

func newRootCmd() *cobra.Command {
	opts := &bootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ccfiles [root...]",
		Short: "Browse Claude configuration files in the terminal",
		Long: `ccfiles scans one or more directory trees for Claude configuration
files (CLAUDE.md memory, slash commands, settings), classifies them,
and lets you browse, filter and act on them without leaving the
terminal.

Positional roots are walked recursively; without any, the working
directory plus the fixed home locations are scanned.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ccfiles/config.yaml)")
	pf.BoolVar(&opts.hidden, "hidden", false, "descend into hidden directories")
	pf.BoolVar(&opts.recursive, "recursive", true, "walk positional roots recursively")
	pf.StringVar(&opts.themeName, "theme", "", "theme: auto, dark, light or ascii")
	pf.StringVar(&opts.logFile, "log-file", "", "write a JSON log to this file")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug verbosity")
	pf.StringSliceVar(&opts.exclude, "exclude", nil, "extra directory patterns to skip (repeatable)")

	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newGuideCmd(opts))

	return rootCmd
}

// deps is everything boot resolves from config plus flags. Flags that
// were set on the command line beat the config file.
type deps struct {
	cfg     *config.Config
	theme   theme.Theme
	log     logr.Logger
	closeFn func()
}

func boot(cmd *cobra.Command, opts *bootOptions) (deps, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.LoadOrInit()
	}
	if err != nil {
		return deps{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("hidden") {
		cfg.IncludeHidden = opts.hidden
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.themeName
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	cfg.Exclude = append(cfg.Exclude, opts.exclude...)

	mode, err := theme.ParseMode(cfg.Theme)
	if err != nil {
		return deps{}, err
	}

	log, closeFn, err := logging.Open(cfg.LogFile, opts.debug)
	if err != nil {
		return deps{}, fmt.Errorf("open log file: %w", err)
	}

	return deps{cfg: cfg, theme: theme.Resolve(mode), log: log, closeFn: closeFn}, nil
}

// resolveRoots turns positional arguments into scan roots. The home
// locations are always probed so global configuration stays visible no
// matter which project tree was named.
func resolveRoots(args []string, recursive bool) ([]scan.Root, error) {
	home, _ := os.UserHomeDir()

	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return scan.DefaultRoots(cwd, home), nil
	}

	roots := make([]scan.Root, 0, len(args)+1)
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve root %q: %w", arg, err)
		}
		roots = append(roots, scan.Root{Path: abs, Recursive: recursive})
	}
	if home != "" {
		roots = append(roots, scan.Root{Path: home})
	}
	return roots, nil
}

func runTUI(cmd *cobra.Command, opts *bootOptions, args []string) error {
	d, err := boot(cmd, opts)
	if err != nil {
		return err
	}
	defer d.closeFn()

	roots, err := resolveRoots(args, opts.recursive)
	if err != nil {
		return err
	}

	scanner, err := scan.New(scan.Options{
		IncludeHidden: d.cfg.IncludeHidden,
		Exclude:       d.cfg.Exclude,
	}, d.log)
	if err != nil {
		return err
	}

	d.log.Info("starting", "version", version, "roots", len(roots), "theme", d.theme.Name)

	m := app.NewModel(app.Options{
		Scanner: scanner,
		Roots:   roots,
		Theme:   d.theme,
		Log:     d.log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
