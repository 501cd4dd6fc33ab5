// Package sizeprobe reports how many bytes files occupy on disk.
package sizeprobe

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Size returns the on-disk footprint of the file at path. Callers treat an
// error as unknown and count zero.
func Size(path string) (int64, error) {
	return size(path)
}

// DirSize sums Size over every regular file below dir without applying any
// exclusion rules. Unreadable entries are skipped.
func DirSize(dir string) (int64, int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, 0, err
	}
	var total int64
	var count int
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		count++
		if n, err := Size(path); err == nil {
			total += n
		}
		return nil
	})
	return total, count, err
}

func logicalSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
