// File: core/completion/stream.go
// Package completion
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package completion

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/core/resource"
)

// Inflight is the single pending non-data command a stream may hold: the
// command tag and the reply region its response goes to.
type Inflight struct {
	Cmd  uint32
	Slot api.ReplySlot
}

// Stream is one device stream: per-direction pending work queues, the
// per-direction resource lists, and at most one inflight command.
type Stream struct {
	ID     uint32
	device *Device

	inflight  *Inflight
	pending   [api.NumDirs]*queue.Queue // *Work, FIFO
	resources [api.NumDirs]*resource.List
}

// NewStream registers a stream on the device. Duplicate ids are rejected.
func (d *Device) NewStream(id uint32) (*Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.streams[id]; ok {
		return nil, api.ErrInvariantViolation
	}
	s := &Stream{ID: id, device: d}
	for dir := api.QueueDir(0); dir < api.NumDirs; dir++ {
		s.pending[dir] = queue.New()
		s.resources[dir] = resource.NewList(dir)
	}
	d.streams[id] = s
	return s, nil
}

// Resources returns the resource list for dir.
func (s *Stream) Resources(dir api.QueueDir) *resource.List {
	return s.resources[dir]
}

// PushWork appends a work item to the direction's pending queue.
func (s *Stream) PushWork(w *Work) {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	s.pending[w.Dir].Add(w)
}

// PopWork detaches the oldest pending work item for dir. Work must be
// popped before its completion response is built.
func (s *Stream) PopWork(dir api.QueueDir) (*Work, bool) {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	if s.pending[dir].Length() == 0 {
		return nil, false
	}
	return s.pending[dir].Remove().(*Work), true
}

// PendingWork reports the pending queue depth for dir.
func (s *Stream) PendingWork(dir api.QueueDir) int {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	return s.pending[dir].Length()
}

// SetInflight occupies the inflight command slot. A second command may not
// occupy the slot until the first is finished or cancelled.
func (s *Stream) SetInflight(cmd uint32, slot api.ReplySlot) error {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	if s.inflight != nil {
		return api.ErrInvariantViolation
	}
	s.inflight = &Inflight{Cmd: cmd, Slot: slot}
	return nil
}

// HasInflight reports whether a command is pending.
func (s *Stream) HasInflight() bool {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	return s.inflight != nil
}

// takeInflight drains the slot. Caller holds the device lock.
func (s *Stream) takeInflight() *Inflight {
	inf := s.inflight
	s.inflight = nil
	return inf
}

// teardown drops the stream's queues and resources. Every reply slot the
// stream still owns is detached: dropped works and an unresolved inflight
// command never get a response, but their transport elements must not
// leak. Caller holds the device lock.
func (s *Stream) teardown() error {
	if inf := s.takeInflight(); inf != nil {
		inf.Slot.Detach()
	}
	for dir := api.QueueDir(0); dir < api.NumDirs; dir++ {
		for s.pending[dir].Length() > 0 {
			w := s.pending[dir].Remove().(*Work)
			w.Slot.Detach()
		}
		if err := s.resources[dir].DestroyAll(); err != nil {
			return err
		}
	}
	return nil
}
