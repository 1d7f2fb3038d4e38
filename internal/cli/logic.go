package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/lumipallolabs/diskviz/internal/core"
	"github.com/lumipallolabs/diskviz/internal/model"
	"github.com/lumipallolabs/diskviz/internal/scanner"
	"github.com/lumipallolabs/diskviz/internal/settings"
	"github.com/lumipallolabs/diskviz/internal/ui"
	"github.com/lumipallolabs/diskviz/internal/workpool"
)

// Report is what a finished scan delivered through its mailbox.
type Report struct {
	Root     *model.Node
	Progress model.ScanProgress
	Elapsed  time.Duration
}

func logic(ctx context.Context, out io.Writer, options Options, prefs *settings.Manager) error {
	if ctx == nil {
		ctx = context.Background()
	}

	mode, err := scanner.ParseSizeMode(options.SizeMode)
	if err != nil {
		return err
	}

	root := options.Path
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	pool := workpool.New(options.Workers)
	walker := scanner.NewWalker(pool, scanner.Options{Depth: options.Depth, SizeMode: mode})
	coord := core.NewCoordinator(walker)

	interactive := !options.Plain && !options.JSON && !options.Verify &&
		isatty.IsTerminal(os.Stdout.Fd())

	if interactive {
		app := ui.NewApp(core.NewSession(coord), prefs, root)
		if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("running interface: %w", err)
		}
		return nil
	}

	prefs.SetLastRoot(root)

	enableProgress := !options.JSON && isatty.IsTerminal(os.Stderr.Fd())

	var progressHook func(model.ScanProgress)
	if enableProgress {
		fmt.Fprint(os.Stderr, "Scanning…")
		progressHook = func(p model.ScanProgress) {
			fmt.Fprintf(os.Stderr, "\r\033[2KScanned %d dirs, %s\r",
				p.TotalDirs, humanize.IBytes(p.TotalBytes))
		}
	}

	report, err := Collect(ctx, coord.BeginScan(root), progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if options.Verify {
		if err := report.Root.Verify(options.Depth <= 0); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	switch {
	case options.JSON:
		return PrintJSON(report, out)
	case options.Verify && !options.Plain:
		fmt.Fprintf(out, "ok: %s, %s\n", report.Root.Path, humanize.IBytes(uint64(report.Root.TotalSize())))
		return nil
	default:
		return PrintTable(report, options.Top, out)
	}
}

// Collect waits on mb until the scan finishes. progress, if set, is called
// for every ProgressMessage.
func Collect(ctx context.Context, mb *core.Mailbox, progress func(model.ScanProgress)) (*Report, error) {
	defer mb.Close()

	start := time.Now()
	report := &Report{}

	for {
		for _, msg := range mb.Drain() {
			switch m := msg.(type) {
			case core.ProgressMessage:
				report.Progress = m.Progress
				if progress != nil {
					progress(m.Progress)
				}
			case core.FinishedMessage:
				report.Root = m.Root
				report.Elapsed = time.Since(start)
				return report, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-mb.Notify():
		}
	}
}
