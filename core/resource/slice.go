// File: core/resource/slice.go
// Package resource implements the slice store: per-plane runs of fixed
// mapped memory fragments backing a frame buffer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package resource

// Slice is one contiguous mapped memory fragment backing part of a plane.
// Immutable once mapped; owned by the resource and released on destroy.
type Slice struct {
	data    []byte
	release func()
}

// NewSlice wraps an already-owned byte region as a slice fragment.
func NewSlice(data []byte) Slice {
	return Slice{data: data}
}

// newSliceWithRelease attaches an unmap hook invoked on Unmap.
func newSliceWithRelease(data []byte, release func()) Slice {
	return Slice{data: data, release: release}
}

// Bytes returns the fragment's backing memory.
func (s Slice) Bytes() []byte { return s.data }

// Len returns the fragment length in bytes.
func (s Slice) Len() int { return len(s.data) }

// Unmap releases the backing memory. The slice must not be used afterwards.
func (s *Slice) Unmap() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.data = nil
}

// runLength sums the lengths of a slice run.
func runLength(run []Slice) uint64 {
	var total uint64
	for _, s := range run {
		total += uint64(s.Len())
	}
	return total
}
