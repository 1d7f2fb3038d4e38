// Package cli implements the diskviz command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lumipallolabs/diskviz/internal/logging"
	"github.com/lumipallolabs/diskviz/internal/scanner"
	"github.com/lumipallolabs/diskviz/internal/settings"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options holds the resolved command line.
type Options struct {
	Path         string
	Depth        int
	Workers      int
	SizeMode     string
	Plain        bool
	JSON         bool
	Top          int
	Verify       bool
	Last         bool
	Version      bool
	SettingsPath string
}

// Execute runs the CLI with os.Args.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options Options

	cmd := &cobra.Command{
		Use:   "diskviz [flags] [path]",
		Short: "Show what is using disk space under a directory",
		Long: heredoc.Doc(`
			diskviz scans a directory in parallel and shows where its bytes go.

			The tree is kept to a fixed depth below the root: directories deeper
			than --depth are not listed, but their bytes still count towards the
			root total. Use --depth 0 to keep the whole tree.

			On a terminal diskviz starts an interactive browser. When output is
			redirected, or with --plain or --json, it prints a report instead.

			Preferences given as flags are remembered in the settings file and
			used as defaults on later runs.
		`),
		Example: heredoc.Doc(`
			diskviz
			diskviz --depth 3 ~/Downloads
			diskviz --json --size-mode allocated /var | jq .root.size
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)
				return nil
			}

			prefs := settings.NewManager(options.SettingsPath)
			if err := prefs.Load(); err != nil {
				// A broken settings file should not block a scan
				logging.Debug.Printf("loading settings: %v", err)
			}
			defer func() {
				if err := prefs.Close(); err != nil {
					logging.Debug.Printf("saving settings: %v", err)
				}
			}()

			if err := resolve(&options, cmd.Flags(), args, prefs); err != nil {
				return err
			}

			return logic(cmd.Context(), cmd.OutOrStdout(), options, prefs)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.IntVarP(&options.Depth, "depth", "d", scanner.DefaultDepth, "Levels of directories kept below the root (0=unlimited)")
	flags.IntVarP(&options.Workers, "workers", "w", 0, "Parallel workers (0=one per CPU)")
	flags.StringVarP(&options.SizeMode, "size-mode", "s", "apparent", "File size to count: apparent or allocated")
	flags.BoolVarP(&options.Plain, "plain", "p", false, "Print a text report instead of the interactive browser")
	flags.BoolVarP(&options.JSON, "json", "j", false, "Print the tree as JSON")
	flags.IntVarP(&options.Top, "top", "t", 10, "Rows per directory in the text report (0=all)")
	flags.BoolVar(&options.Verify, "verify", false, "Check that directory sizes add up and fail otherwise")
	flags.BoolVarP(&options.Last, "last", "l", false, "Scan the most recently scanned path")
	flags.StringVar(&options.SettingsPath, "settings", "", "Settings file (default ~/.diskviz/settings.json)")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")

	return cmd
}

// resolve fills in options from positional args, saved settings and
// defaults, in that order of precedence after explicit flags. Explicit
// flags are saved back as the new defaults.
func resolve(options *Options, flags *pflag.FlagSet, args []string, prefs *settings.Manager) error {
	saved := prefs.Get()

	switch {
	case len(args) > 0:
		options.Path = args[0]
	case options.Last && saved.LastRoot != "":
		options.Path = saved.LastRoot
	case options.Last:
		return errors.New("no previous scan to repeat")
	default:
		options.Path = "."
	}

	if !flags.Changed("depth") && saved.Depth != nil {
		options.Depth = *saved.Depth
	}
	if !flags.Changed("workers") && saved.Workers > 0 {
		options.Workers = saved.Workers
	}
	if !flags.Changed("size-mode") && saved.SizeMode != "" {
		options.SizeMode = saved.SizeMode
	}

	if options.Depth < 0 {
		return errors.New("depth cannot be negative")
	}
	if options.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	if options.Top < 0 {
		return errors.New("top cannot be negative")
	}
	if options.Plain && options.JSON {
		return errors.New("--plain and --json are mutually exclusive")
	}
	if _, err := scanner.ParseSizeMode(options.SizeMode); err != nil {
		return err
	}
	if _, err := os.Stat(options.Path); err != nil {
		return fmt.Errorf("cannot scan %s: %w", options.Path, err)
	}

	prefs.Update(func(s *settings.Settings) {
		if flags.Changed("depth") {
			depth := options.Depth
			s.Depth = &depth
		}
		if flags.Changed("workers") {
			s.Workers = options.Workers
		}
		if flags.Changed("size-mode") {
			s.SizeMode = options.SizeMode
		}
	})

	return nil
}
