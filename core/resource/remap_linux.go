//go:build linux

// Package resource
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux-specific contiguous region mapping for remapped resources and
// mmap-backed slice fragments.

package resource

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mapRegion maps an anonymous private region of size bytes.
func mapRegion(size int) ([]byte, func(), error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mapRegion: invalid size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, nil, fmt.Errorf("mapRegion: mmap: %w", err)
	}
	release := func() {
		_ = unix.Munmap(data)
	}
	return data, release, nil
}

// MapSlice maps one anonymous fragment of size bytes as a Slice. The
// fragment is released by Unmap.
func MapSlice(size int) (Slice, error) {
	data, release, err := mapRegion(size)
	if err != nil {
		return Slice{}, err
	}
	return newSliceWithRelease(data, release), nil
}
