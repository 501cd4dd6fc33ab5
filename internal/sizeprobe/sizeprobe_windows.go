//go:build windows

package sizeprobe

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const invalidFileSize = 0xFFFFFFFF

var procGetCompressedFileSizeW = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetCompressedFileSizeW")

func size(path string) (int64, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	if attrs, err := windows.GetFileAttributes(p); err == nil && attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		return 0, nil
	}
	if err := procGetCompressedFileSizeW.Find(); err != nil {
		return logicalSize(path)
	}
	var high uint32
	low, _, _ := procGetCompressedFileSizeW.Call(uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&high)))
	if uint32(low) == invalidFileSize {
		return logicalSize(path)
	}
	return int64(high)<<32 | int64(uint32(low)), nil
}
