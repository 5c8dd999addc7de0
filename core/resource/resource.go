// File: core/resource/resource.go
// Package resource
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Resource owns the plane geometry of one frame buffer: slice runs, the
// layout tag, per-plane offsets for the single-buffer layout, and the
// optional pre-mapped contiguous region that bypasses slice traversal.

package resource

import (
	"github.com/momentics/hioload-video/api"
)

// Resource is one frame buffer composed of discontiguous slices grouped
// into planes. Geometry is validated at construction and immutable after.
type Resource struct {
	ID     uint32
	Layout api.PlanesLayout

	planes  [][]Slice // single-buffer layout: only planes[0] is populated
	offsets []uint32  // single-buffer layout: payload start per plane

	remapped     []byte
	remapRelease func()
	list         *List
}

// New builds a per-plane layout resource: each entry of planes is an
// independent slice run starting at offset zero.
func New(id uint32, planes [][]Slice) (*Resource, error) {
	if len(planes) == 0 {
		return nil, api.ErrMalformedGeometry
	}
	return &Resource{
		ID:      id,
		Layout:  api.LayoutPerPlane,
		planes:  planes,
		offsets: make([]uint32, len(planes)),
	}, nil
}

// NewSingleBuffer builds a single-buffer layout resource: all planes share
// run, located via offsets. offsets must carry one entry per plane.
func NewSingleBuffer(id uint32, run []Slice, offsets []uint32) (*Resource, error) {
	if len(offsets) == 0 {
		return nil, api.ErrMalformedGeometry
	}
	return &Resource{
		ID:      id,
		Layout:  api.LayoutSingleBuffer,
		planes:  [][]Slice{run},
		offsets: offsets,
	}, nil
}

// NumPlanes returns the plane count.
func (r *Resource) NumPlanes() int { return len(r.offsets) }

// PlaneRun returns the slice run backing plane idx under the resource's
// layout, or nil for an out-of-range plane.
func (r *Resource) PlaneRun(idx int) []Slice {
	if idx < 0 || idx >= r.NumPlanes() {
		return nil
	}
	if r.Layout == api.LayoutSingleBuffer {
		return r.planes[0]
	}
	return r.planes[idx]
}

// PlaneOffset returns the byte position within the run where plane idx's
// payload begins. Zero under the per-plane layout.
func (r *Resource) PlaneOffset(idx int) uint64 {
	if r.Layout != api.LayoutSingleBuffer {
		return 0
	}
	return uint64(r.offsets[idx])
}

// PlaneCursor positions a traversal cursor at plane idx's payload start.
func (r *Resource) PlaneCursor(idx int) Cursor {
	return NewCursor(r.PlaneRun(idx), r.PlaneOffset(idx))
}

// PlaneCapacity returns the addressable byte count of plane idx: the run's
// total length minus the plane offset.
func (r *Resource) PlaneCapacity(idx int) uint64 {
	run := r.PlaneRun(idx)
	total := runLength(run)
	off := r.PlaneOffset(idx)
	if off > total {
		return 0
	}
	return total - off
}

// Remapped returns the pre-mapped contiguous region, or nil when the
// resource has none and per-slice traversal applies.
func (r *Resource) Remapped() []byte { return r.remapped }

// SetRemapped attaches a contiguous region with an optional release hook.
func (r *Resource) SetRemapped(data []byte, release func()) {
	r.remapped = data
	r.remapRelease = release
}

// Remap maps an anonymous contiguous region of size bytes and attaches it.
// On platforms without mmap support the region is heap-backed.
func (r *Resource) Remap(size int) error {
	data, release, err := mapRegion(size)
	if err != nil {
		return err
	}
	r.SetRemapped(data, release)
	return nil
}

// Destroy unmaps the remapped region and every slice and releases the
// plane runs. The resource must have been removed from its per-direction
// list first; destroying a listed resource is an invariant violation.
func (r *Resource) Destroy() error {
	if r.list != nil {
		return api.ErrInvariantViolation
	}
	if r.remapped != nil {
		if r.remapRelease != nil {
			r.remapRelease()
		}
		r.remapped = nil
		r.remapRelease = nil
	}
	for i := range r.planes {
		for j := range r.planes[i] {
			r.planes[i][j].Unmap()
		}
		r.planes[i] = nil
	}
	return nil
}
