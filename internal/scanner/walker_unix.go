//go:build !windows

package scanner

import (
	"io/fs"
	"sync"
	"syscall"
)

// allocatedSize returns the bytes allocated on disk for a file, or -1 if the
// file is a hard link to an inode that has already been counted
func allocatedSize(info fs.FileInfo, seen *sync.Map) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}

	if stat.Nlink > 1 {
		key := [2]uint64{uint64(stat.Dev), uint64(stat.Ino)}
		if _, exists := seen.LoadOrStore(key, true); exists {
			return -1
		}
	}

	// Blocks is in 512-byte units regardless of the filesystem block size
	return int64(stat.Blocks) * 512
}
