// File: core/completion/device.go
// Package completion
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package completion

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/control"
	"github.com/momentics/hioload-video/core/protocol"
	"github.com/momentics/hioload-video/internal/sched"
	"github.com/momentics/hioload-video/pool"
)

// Device owns the stream collection, the pending-event backlog and the
// single scheduling goroutine all deferred completions run on. The device
// outlives every deferred task scheduled against it: a reference is taken
// before each deferral and released exactly once when the task finishes.
type Device struct {
	mu sync.Mutex // guards streams, backlog, inflight slots

	loop    api.Scheduler
	events  api.ReplySource
	streams map[uint32]*Stream
	backlog *queue.Queue // *Event, FIFO arrival order

	metrics     *control.MetricsRegistry
	respPool    *pool.BytePool
	backlogWarn int

	refs   atomic.Int64
	closed atomic.Bool
}

// Option configures a Device.
type Option func(*Device)

// WithMetrics attaches a metrics registry.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(d *Device) { d.metrics = mr }
}

// WithScheduler substitutes the deferred-task scheduler. Meant for tests;
// the scheduler must preserve single-threaded FIFO execution.
func WithScheduler(s api.Scheduler) Option {
	return func(d *Device) { d.loop = s }
}

// WithConfig reads tunables from a config store.
func WithConfig(cs *control.ConfigStore) Option {
	return func(d *Device) {
		depth := cs.GetInt(control.KeySchedulerDepth, control.DefaultSchedulerDepth)
		d.loop = sched.NewTaskLoop(depth)
		d.backlogWarn = cs.GetInt(control.KeyBacklogWarn, control.DefaultBacklogWarn)
	}
}

// NewDevice creates a device delivering event notifications through events.
func NewDevice(events api.ReplySource, opts ...Option) *Device {
	d := &Device{
		events:      events,
		streams:     make(map[uint32]*Stream),
		backlog:     queue.New(),
		respPool:    pool.NewBytePool(protocol.DequeueRespSize),
		backlogWarn: control.DefaultBacklogWarn,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.loop == nil {
		d.loop = sched.NewTaskLoop(control.DefaultSchedulerDepth)
	}
	d.refs.Store(1)
	return d
}

// Retain pins the device for a deferred task.
func (d *Device) Retain() {
	d.refs.Add(1)
}

// Release drops one device reference.
func (d *Device) Release() {
	if d.refs.Add(-1) < 0 {
		log.Printf("completion: device reference released twice")
	}
}

// Refs returns the current reference count, including the creator's.
func (d *Device) Refs() int64 {
	return d.refs.Load()
}

// submit defers task to the scheduling goroutine with the device pinned.
// The reference is released exactly once, on task completion or on a
// failed submission.
func (d *Device) submit(task func()) error {
	if d.closed.Load() {
		return api.ErrDeviceClosed
	}
	d.Retain()
	err := d.loop.Submit(func() {
		defer d.Release()
		task()
	})
	if err != nil {
		d.Release()
	}
	return err
}

// Close stops accepting deferrals, cancels the commands still inflight,
// flushes tasks already scheduled, tears down the streams and drops the
// creator's reference. A nonzero residual count afterwards means a task
// leaked its reference.
func (d *Device) Close() {
	if !d.closed.CompareAndSwap(false, true) {
		return
	}

	// Inflight commands are cancel-responded while the scheduler still
	// runs; the cancellations flush during Stop's drain.
	type cancelled struct {
		id  uint32
		inf *Inflight
	}
	d.mu.Lock()
	var cancels []cancelled
	for id, s := range d.streams {
		if inf := s.takeInflight(); inf != nil {
			cancels = append(cancels, cancelled{id: id, inf: inf})
		}
	}
	d.mu.Unlock()
	for _, c := range cancels {
		c := c
		d.Retain()
		err := d.loop.Submit(func() {
			defer d.Release()
			d.completeInflight(c.id, c.inf, false)
		})
		if err != nil {
			d.Release()
			c.inf.Slot.Detach()
		}
	}
	d.loop.Stop()

	d.mu.Lock()
	for id, s := range d.streams {
		if err := s.teardown(); err != nil {
			log.Printf("completion: stream %d teardown: %v", id, err)
		}
		delete(d.streams, id)
	}
	d.mu.Unlock()

	d.Release()
	if left := d.refs.Load(); left != 0 {
		log.Printf("completion: device closed with %d leaked references", left)
	}
}

// Stream looks up a registered stream by id.
func (d *Device) Stream(id uint32) (*Stream, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.streams[id]
	return s, ok
}

// RemoveStream unregisters a stream and destroys its resources.
func (d *Device) RemoveStream(id uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.streams[id]
	if !ok {
		return api.ErrInvariantViolation
	}
	delete(d.streams, id)
	return s.teardown()
}

func (d *Device) count(key string, delta int64) {
	if d.metrics != nil {
		d.metrics.Add(key, delta)
	}
}
