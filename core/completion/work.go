// File: core/completion/work.go
// Package completion
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package completion

import (
	"github.com/google/uuid"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/core/resource"
)

// Work represents one in-flight frame transfer awaiting its completion
// response. Created when a resource is queued for transfer; freed together
// with its reply slot once the response has been transmitted (or the slot
// detached on fault); never reused.
type Work struct {
	Stream   *Stream
	Resource *resource.Resource
	Dir      api.QueueDir

	Timestamp uint64
	Flags     api.BufferFlag
	Size      uint32

	Slot    api.ReplySlot
	TraceID string
}

// NewWork builds a work item for a queued resource with its reply slot.
func NewWork(s *Stream, res *resource.Resource, dir api.QueueDir, slot api.ReplySlot) *Work {
	return &Work{
		Stream:   s,
		Resource: res,
		Dir:      dir,
		Slot:     slot,
		TraceID:  uuid.NewString(),
	}
}
