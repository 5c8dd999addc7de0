//go:build !linux

// Package resource
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable fallback: heap-backed regions where mmap is unavailable.

package resource

import "fmt"

// mapRegion allocates a heap-backed region of size bytes.
func mapRegion(size int) ([]byte, func(), error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mapRegion: invalid size %d", size)
	}
	return make([]byte, size), func() {}, nil
}

// MapSlice allocates one heap-backed fragment of size bytes as a Slice.
func MapSlice(size int) (Slice, error) {
	data, release, err := mapRegion(size)
	if err != nil {
		return Slice{}, err
	}
	return newSliceWithRelease(data, release), nil
}
