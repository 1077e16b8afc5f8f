// Package cli provides the command-line interface for catalogen.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/catalogen/catalogen/internal/catalog"
	"github.com/catalogen/catalogen/internal/config"
	"github.com/catalogen/catalogen/internal/logging"
	"github.com/catalogen/catalogen/internal/ui"
	"github.com/catalogen/catalogen/internal/util"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "catalogen",
		Usage:   "Regenerate the documentation catalog from rules, skills, and agents",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "Verify the catalog is up to date instead of writing it",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Repository root (default: auto-detect from the working directory)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Target document path (default: docs/CATALOG.md under the root)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a config file (default: .catalogen.yaml in the working directory)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			return ctx, configureLogging(cmd)
		},
		Action: generate,
		Commands: []*cli.Command{
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// generate runs the default write mode, or check mode with --check.
func generate(_ context.Context, cmd *cli.Command) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("check") {
		if err := catalog.Check(opts); err != nil {
			var drift *catalog.DriftError
			if errors.As(err, &drift) {
				fmt.Fprintln(os.Stderr, ui.StatusError(drift.Error()))
				fmt.Fprint(os.Stderr, drift.Diff)
			}
			return err
		}
		fmt.Println(ui.StatusSuccess(fmt.Sprintf("%s is up to date", opts.OutputPath())))
		return nil
	}

	target, err := catalog.Write(opts)
	if err != nil {
		return err
	}
	fmt.Println(ui.StatusSuccess(fmt.Sprintf("Generated %s", target)))
	return nil
}

// resolveOptions merges flags, config file, and auto-detection into the
// catalog options. Precedence: flag, then config, then detection.
func resolveOptions(cmd *cli.Command) (catalog.Options, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Load(cwd)
		}
	}
	if err != nil {
		return catalog.Options{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags won; otherwise let the config file adjust diagnostics.
	if !cmd.Bool("debug") && !cmd.Bool("verbose") {
		applyLogConfig(cfg.Log)
	}

	fsys := afero.NewOsFs()

	root := cmd.String("root")
	if root == "" {
		root = cfg.Root
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return catalog.Options{}, err
		}
		root = util.FindRepoRoot(fsys, cwd)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return catalog.Options{}, err
	}

	output := cmd.String("output")
	if output == "" {
		output = cfg.Output
	}
	if output != "" && !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}

	logging.Debug("resolved catalog options",
		slog.String("root", root),
		slog.String("output", output),
	)

	return catalog.Options{Fs: fsys, Root: root, Output: output}, nil
}

// applyLogConfig reconfigures the default logger from file settings.
func applyLogConfig(lc config.LogConfig) {
	opts := logging.DefaultOptions()
	changed := false
	if lc.Level != "" {
		if level, err := logging.ParseLevel(lc.Level); err == nil && level != opts.Level {
			opts.Level = level
			changed = true
		}
	}
	if lc.JSON {
		opts.JSON = true
		changed = true
	}
	if changed {
		logging.SetDefault(logging.New(opts))
	}
}

// configureColors sets up color output based on CLI flags.
func configureColors(cmd *cli.Command) {
	if cmd.Bool("no-color") {
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level based on CLI flags.
func configureLogging(cmd *cli.Command) error {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}
