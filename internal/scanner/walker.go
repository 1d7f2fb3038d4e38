package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/diskviz/internal/logging"
	"github.com/lumipallolabs/diskviz/internal/model"
	"github.com/lumipallolabs/diskviz/internal/workpool"
)

// Walker implements parallel filesystem scanning
type Walker struct {
	pool *workpool.Pool
	opts Options
}

// NewWalker creates a walker that fans out over pool
func NewWalker(pool *workpool.Pool, opts Options) *Walker {
	if pool == nil {
		pool = workpool.New(0)
	}
	return &Walker{pool: pool, opts: opts}
}

// Options returns the walker's configuration
func (w *Walker) Options() Options {
	return w.opts
}

// Scan enumerates root, reduces the totals in parallel and builds the tree
func (w *Walker) Scan(ctx context.Context, root string) (*Result, error) {
	start := time.Now()
	absRoot := resolveRoot(root)

	entries, skipped, err := w.Enumerate(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	logging.Scanner.Printf("enumerated %d entries under %s in %v (%d skipped)",
		len(entries), absRoot, time.Since(start), skipped)

	dirs, bytes, err := Totals(ctx, w.pool, entries)
	if err != nil {
		return nil, err
	}

	tree := Aggregate(absRoot, entries, w.opts.Depth)

	stats := Stats{
		Dirs:    int(dirs),
		Files:   len(entries) - int(dirs),
		Skipped: skipped,
		Elapsed: time.Since(start),
	}
	logging.Scanner.Printf("aggregated %s: %d dirs, %d bytes in %v", absRoot, dirs, bytes, stats.Elapsed)

	return &Result{
		Root: tree,
		Progress: model.ScanProgress{
			TotalDirs:    dirs,
			TotalBytes:   bytes,
			ScannedDirs:  dirs,
			ScannedBytes: bytes,
		},
		Stats: stats,
	}, nil
}

// Enumerate walks root and returns every readable file and directory below
// it, plus the root directory itself. Entries that cannot be read are
// dropped and counted in skipped. A missing root yields no entries.
func (w *Walker) Enumerate(ctx context.Context, root string) (entries []Entry, skipped int64, err error) {
	info, statErr := os.Stat(root)
	if statErr != nil {
		logging.Scanner.Printf("root %s unreadable: %v", root, statErr)
		return nil, 0, nil
	}
	if !info.IsDir() {
		logging.Scanner.Printf("root %s is not a directory", root)
		return nil, 0, nil
	}

	// Collect entries in background so walker goroutines never contend on a lock
	entryCh := make(chan Entry, 4096)
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		collected := make([]Entry, 0, 1024)
		for e := range entryCh {
			collected = append(collected, e)
		}
		entries = collected
	}()

	// Directories whose listing failed; dropped from the result afterwards
	var failedDirs sync.Map
	// Inodes already counted, for allocated-size hard link dedup
	var seen sync.Map
	var skippedCount atomic.Int64

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.pool.Size(),
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logging.Scanner.Printf("skip %s: %v", path, err)
			skippedCount.Add(1)
			failedDirs.Store(path, struct{}{})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			entryCh <- Entry{Path: path, Name: d.Name(), Kind: KindDir}
		case d.Type().IsRegular():
			if path == root {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				logging.Scanner.Printf("skip %s: %v", path, err)
				skippedCount.Add(1)
				return nil
			}
			size := fi.Size()
			if w.opts.SizeMode == SizeAllocated {
				size = allocatedSize(fi, &seen)
				if size < 0 {
					// hard link already counted
					return nil
				}
			}
			entryCh <- Entry{Path: path, Name: d.Name(), Kind: KindFile, Size: size}
		default:
			// symlinks, sockets, devices: neither file nor directory
		}
		return nil
	})

	close(entryCh)
	collectWg.Wait()

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return nil, skippedCount.Load(), walkErr
		}
		// The callback swallows per-entry errors, so anything else is about the root
		logging.Scanner.Printf("walk %s: %v", root, walkErr)
	}

	entries = dropFailedDirs(entries, &failedDirs)
	return entries, skippedCount.Load(), nil
}

// dropFailedDirs removes directory entries whose contents could not be listed
func dropFailedDirs(entries []Entry, failed *sync.Map) []Entry {
	kept := entries[:0]
	for _, e := range entries {
		if e.Kind == KindDir {
			if _, bad := failed.Load(e.Path); bad {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}

// resolveRoot makes root absolute and follows a symlinked root, the way a
// user pointing at a link expects its target to be scanned
func resolveRoot(root string) string {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Clean(root)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
