//go:build windows

package scanner

import (
	"io/fs"
	"sync"
)

// allocatedSize falls back to the file length; FileInfo carries no block count
func allocatedSize(info fs.FileInfo, seen *sync.Map) int64 {
	return info.Size()
}
