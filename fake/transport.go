// Package fake
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fake implementations for testing and development.
// Provides predictable, controllable reply transports for the completion
// pipeline.

package fake

import (
	"sync"

	"github.com/momentics/hioload-video/api"
)

// ReplySlot is a fake api.ReplySlot recording everything written to it.
type ReplySlot struct {
	mu        sync.Mutex
	capacity  int
	written   []byte
	completed int
	detached  bool
	failWrite error
}

// NewReplySlot creates a slot able to hold capacity response bytes.
func NewReplySlot(capacity int) *ReplySlot {
	return &ReplySlot{capacity: capacity}
}

// FailWrites makes every WriteResponse return err.
func (s *ReplySlot) FailWrites(err error) { s.failWrite = err }

// WriteResponse records p, or fails when the slot is undersized or armed
// to fail.
func (s *ReplySlot) WriteResponse(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return s.failWrite
	}
	if len(p) > s.capacity {
		return api.ErrTransportFault
	}
	s.written = append([]byte(nil), p...)
	return nil
}

// Complete marks the slot transmitted.
func (s *ReplySlot) Complete(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = n
}

// Detach marks the slot released without a response.
func (s *ReplySlot) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}

// Written returns the recorded response bytes.
func (s *ReplySlot) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// Completed returns the transmitted byte count, zero if never completed.
func (s *ReplySlot) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Detached reports whether the slot was dropped on fault.
func (s *ReplySlot) Detached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached
}

// ReplySource is a fake api.ReplySource backed by a slot queue.
type ReplySource struct {
	mu    sync.Mutex
	slots []*ReplySlot
}

// NewReplySource creates an empty source.
func NewReplySource() *ReplySource {
	return &ReplySource{}
}

// AddSlot appends a slot for PopSlot to hand out.
func (src *ReplySource) AddSlot(s *ReplySlot) {
	src.mu.Lock()
	defer src.mu.Unlock()
	src.slots = append(src.slots, s)
}

// PopSlot hands out the oldest slot with capacity >= min. Undersized slots
// are detached and discarded, as a real transport would.
func (src *ReplySource) PopSlot(min int) (api.ReplySlot, bool) {
	src.mu.Lock()
	defer src.mu.Unlock()
	for len(src.slots) > 0 {
		s := src.slots[0]
		src.slots = src.slots[1:]
		if s.capacity < min {
			s.Detach()
			continue
		}
		return s, true
	}
	return nil, false
}

var (
	_ api.ReplySlot   = (*ReplySlot)(nil)
	_ api.ReplySource = (*ReplySource)(nil)
)
