//go:build windows

package model

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

func diskSpace(path string) (total, free int64, err error) {
	// GetDiskFreeSpaceEx wants a directory; the volume root always works
	vol := filepath.VolumeName(path) + `\`
	ptr, err := windows.UTF16PtrFromString(vol)
	if err != nil {
		return 0, 0, err
	}

	var freeAvailable, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeAvailable, &totalBytes, &totalFree); err != nil {
		return 0, 0, fmt.Errorf("GetDiskFreeSpaceEx %s: %w", vol, err)
	}
	return int64(totalBytes), int64(freeAvailable), nil
}
