//go:build !linux && !darwin && !windows

package model

func diskSpace(path string) (total, free int64, err error) {
	return 0, 0, ErrVolumeUnsupported
}
