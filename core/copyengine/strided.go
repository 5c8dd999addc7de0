// File: core/copyengine/strided.go
// Package copyengine
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Row-oriented write variants for sources whose rows are separated by a
// pitch larger than the packed row width (captured frames with padding).
// Only rowWidth bytes of each source row reach the destination; padding
// between rowWidth and rowPitch never does.

package copyengine

import (
	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/core/resource"
)

// WriteStrided copies totalRows rows of rowWidth bytes into plane idx,
// advancing the source by rowPitch after each row and carrying any row
// remainder across slice boundaries. Rows at index >= rowHeight read from
// secondary instead of primary (the chroma region of a semi-planar frame).
// Fails with ErrBufferInsufficient when fewer than totalBytes bytes land.
func (e *Engine) WriteStrided(res *resource.Resource, idx int,
	primary, secondary []byte,
	rowWidth, rowHeight, rowPitch, totalBytes, totalRows uint32) error {

	if res == nil || idx < 0 || idx >= res.NumPlanes() {
		return api.ErrMalformedGeometry
	}
	if rowWidth == 0 || rowPitch < rowWidth {
		return api.ErrMalformedGeometry
	}
	if primary == nil || (totalRows > rowHeight && secondary == nil) {
		return api.ErrMalformedGeometry
	}
	if totalBytes == 0 || totalRows == 0 {
		return nil
	}

	cur := res.PlaneCursor(idx)
	src := primary
	rowOff := uint32(0)
	copied := uint32(0)

	for row := uint32(0); row < totalRows; row++ {
		if row == rowHeight {
			src = secondary
			rowOff = 0
		}
		if uint64(rowOff)+uint64(rowWidth) > uint64(len(src)) {
			return api.ErrMalformedGeometry
		}
		n := cur.Write(src[rowOff : rowOff+rowWidth])
		copied += uint32(n)
		if uint32(n) < rowWidth {
			// slice run exhausted mid-row
			break
		}
		rowOff += rowPitch
	}

	e.count("copyengine.bytes_written", int64(copied))
	if copied < totalBytes {
		return e.short(res, idx, totalBytes-copied)
	}
	return nil
}

// WriteNV12Strided writes one NV12 frame from a pitched capture: the luma
// region y holds height rows, the chroma region uv the following height/2.
func (e *Engine) WriteNV12Strided(res *resource.Resource, y, uv []byte,
	width, height, pitch uint32) error {

	total := width * height * 3 / 2
	rows := height * 3 / 2
	return e.WriteStrided(res, 0, y, uv, width, height, pitch, total, rows)
}

// WriteARGBStrided writes one packed 32-bit ARGB frame from a pitched
// capture. pitch is in bytes, like the row width of width*4.
func (e *Engine) WriteARGBStrided(res *resource.Resource, src []byte,
	width, height, pitch uint32) error {

	total := width * height * 4
	return e.WriteStrided(res, 0, src, src, width*4, height, pitch, total, height)
}

// WriteNV12 writes one NV12 frame whose luma and chroma regions are each
// already packed contiguously but may not adjoin each other in host memory:
// y then uv land back to back in the destination plane.
func (e *Engine) WriteNV12(res *resource.Resource, y, uv []byte) error {
	if res == nil || res.NumPlanes() == 0 || y == nil || uv == nil {
		return api.ErrMalformedGeometry
	}

	cur := res.PlaneCursor(0)
	copied := cur.Write(y)
	if copied == len(y) {
		copied += cur.Write(uv)
	}
	e.count("copyengine.bytes_written", int64(copied))
	if copied < len(y)+len(uv) {
		return e.short(res, 0, uint32(len(y)+len(uv)-copied))
	}
	return nil
}
