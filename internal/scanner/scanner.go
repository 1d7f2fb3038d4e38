package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/lumipallolabs/diskviz/internal/model"
)

// DefaultDepth is the truncation depth used unless configured otherwise:
// the root's files plus one level of subdirectories with their own files.
const DefaultDepth = 1

// Kind classifies an enumerated entry
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// SizeMode selects how a file's size is measured
type SizeMode int

const (
	// SizeApparent uses the file length
	SizeApparent SizeMode = iota
	// SizeAllocated uses blocks allocated on disk, counting hard links once.
	// Platforms without block counts fall back to the file length.
	SizeAllocated
)

func (m SizeMode) String() string {
	switch m {
	case SizeApparent:
		return "apparent"
	case SizeAllocated:
		return "allocated"
	default:
		return fmt.Sprintf("SizeMode(%d)", int(m))
	}
}

// ParseSizeMode parses the String form of a SizeMode
func ParseSizeMode(s string) (SizeMode, error) {
	switch s {
	case "", "apparent":
		return SizeApparent, nil
	case "allocated":
		return SizeAllocated, nil
	default:
		return SizeApparent, fmt.Errorf("unknown size mode %q: must be apparent or allocated", s)
	}
}

// Options configures a scan
type Options struct {
	// Depth is the number of directory levels below the root whose nodes are
	// materialized in the tree. Zero or negative means unlimited.
	Depth int
	// SizeMode selects apparent or allocated file sizes
	SizeMode SizeMode
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Depth:    DefaultDepth,
		SizeMode: SizeApparent,
	}
}

// Entry is one filesystem object found during traversal
type Entry struct {
	Path string
	Name string
	Kind Kind
	Size int64 // zero for directories
}

// Stats describes how a scan went
type Stats struct {
	Files   int
	Dirs    int
	Skipped int64 // entries dropped because they could not be read
	Elapsed time.Duration
}

// Result is everything a finished scan produces
type Result struct {
	Root     *model.Node
	Progress model.ScanProgress
	Stats    Stats
}

// Scanner defines the interface for filesystem scanning
type Scanner interface {
	// Scan enumerates root and aggregates it into a tree. Unreadable entries
	// and a missing root are not errors; only ctx cancellation is.
	Scan(ctx context.Context, root string) (*Result, error)
}
