// File: core/resource/cursor.go
// Package resource
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cursor is the shared traversal primitive for scatter-gather copies: a
// linear scan over a slice run with a running cumulative offset. Slices are
// fixed at mapping time and never relocated, so no position is cached
// across calls; re-scanning is cheap relative to transfer sizes.

package resource

// Cursor walks a slice run sequentially, copying into or out of it in
// chunks bounded by each fragment's remaining length.
type Cursor struct {
	run []Slice
	idx int
	pos int // byte offset within run[idx]
}

// NewCursor positions a cursor start bytes into the run. Slices whose
// cumulative range lies entirely before start are skipped whole.
func NewCursor(run []Slice, start uint64) Cursor {
	c := Cursor{run: run}
	base := uint64(0)
	for c.idx < len(c.run) {
		l := uint64(c.run[c.idx].Len())
		if start < base+l {
			c.pos = int(start - base)
			return c
		}
		base += l
		c.idx++
	}
	return c
}

// Remaining reports how many bytes the cursor can still traverse.
func (c *Cursor) Remaining() uint64 {
	if c.idx >= len(c.run) {
		return 0
	}
	total := uint64(c.run[c.idx].Len() - c.pos)
	for i := c.idx + 1; i < len(c.run); i++ {
		total += uint64(c.run[i].Len())
	}
	return total
}

// Write copies p into the run at the cursor, splitting across fragment
// boundaries, and returns the number of bytes written. A short count means
// the run is exhausted.
func (c *Cursor) Write(p []byte) int {
	total := 0
	for len(p) > 0 && c.idx < len(c.run) {
		window := c.run[c.idx].Bytes()[c.pos:]
		if len(window) == 0 {
			c.idx++
			c.pos = 0
			continue
		}
		n := copy(window, p)
		p = p[n:]
		c.pos += n
		total += n
		if c.pos == c.run[c.idx].Len() {
			c.idx++
			c.pos = 0
		}
	}
	return total
}

// Read copies out of the run at the cursor into p, symmetric to Write.
func (c *Cursor) Read(p []byte) int {
	total := 0
	for len(p) > 0 && c.idx < len(c.run) {
		window := c.run[c.idx].Bytes()[c.pos:]
		if len(window) == 0 {
			c.idx++
			c.pos = 0
			continue
		}
		n := copy(p, window)
		p = p[n:]
		c.pos += n
		total += n
		if c.pos == c.run[c.idx].Len() {
			c.idx++
			c.pos = 0
		}
	}
	return total
}
