// File: api/types.go
// Package api defines shared value types for hioload-video.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// PlanesLayout selects how a resource's planes map onto slice runs.
type PlanesLayout uint32

const (
	// LayoutSingleBuffer: all planes share one concatenated slice run,
	// located via per-plane byte offsets.
	LayoutSingleBuffer PlanesLayout = 1 << 0

	// LayoutPerPlane: each plane owns an independent slice run starting
	// at offset zero.
	LayoutPerPlane PlanesLayout = 1 << 1
)

// QueueDir identifies the direction a resource or work item belongs to.
type QueueDir int

const (
	DirInput QueueDir = iota
	DirOutput

	NumDirs
)

// String returns the direction name used in log lines.
func (d QueueDir) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	default:
		return "unknown"
	}
}

// BufferFlag bits carried on a dequeued frame.
type BufferFlag uint32

const (
	BufferFlagErr    BufferFlag = 0x0001
	BufferFlagEOS    BufferFlag = 0x0002
	BufferFlagIFrame BufferFlag = 0x0004
	BufferFlagPFrame BufferFlag = 0x0008
	BufferFlagBFrame BufferFlag = 0x0010
)
