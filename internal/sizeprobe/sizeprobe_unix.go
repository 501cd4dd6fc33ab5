//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

package sizeprobe

import "golang.org/x/sys/unix"

// blockSize is the unit st_blocks is counted in.
const blockSize = 512

func size(path string) (int64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}
	allocated := int64(st.Blocks) * blockSize
	logical := int64(st.Size)
	// sparse files allocate fewer blocks than their length
	if allocated < logical {
		return allocated, nil
	}
	return logical, nil
}
