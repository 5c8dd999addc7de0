// File: core/copyengine/engine.go
// Package copyengine
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package copyengine

import (
	"log"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/control"
	"github.com/momentics/hioload-video/core/resource"
)

// Engine performs scatter-gather copies against a resource's slice store.
// Stateless apart from optional metrics; one Engine may serve any number of
// resources, provided each resource is exclusively owned by its in-progress
// transfer.
type Engine struct {
	metrics *control.MetricsRegistry

	// dumpTolerant is the engine-wide Dump tolerance default; per-call
	// DumpOptions can only widen it.
	dumpTolerant bool
}

// New creates an engine. metrics may be nil.
func New(metrics *control.MetricsRegistry) *Engine {
	return &Engine{metrics: metrics}
}

// NewFromConfig creates an engine with tunables read from cs: the Dump
// tolerance default comes from KeyDumpTolerant.
func NewFromConfig(metrics *control.MetricsRegistry, cs *control.ConfigStore) *Engine {
	return &Engine{
		metrics:      metrics,
		dumpTolerant: cs.GetBool(control.KeyDumpTolerant, false),
	}
}

// DumpOptions controls Dump behavior.
type DumpOptions struct {
	// Tolerant treats buffer exhaustion as non-fatal: the shortfall is
	// logged and Dump returns success. Meant for best-effort diagnostic
	// snapshots, never for protocol response payloads.
	Tolerant bool
}

// Write copies size bytes from src into plane idx of res, splitting the
// input across as many slices as needed. Bytes already copied when the run
// is exhausted stay written; the failure is ErrBufferInsufficient.
func (e *Engine) Write(res *resource.Resource, idx int, src []byte, size uint32) error {
	if err := checkArgs(res, idx, src, size); err != nil {
		return err
	}
	if size == 0 {
		return nil
	}

	// Contiguous fast path: skips per-slice arithmetic entirely.
	if res.Layout == api.LayoutSingleBuffer {
		if rem := res.Remapped(); rem != nil {
			n := copy(rem, src[:size])
			e.count("copyengine.bytes_written", int64(n))
			if uint32(n) < size {
				return e.short(res, idx, size-uint32(n))
			}
			return nil
		}
	}

	cur := res.PlaneCursor(idx)
	n := cur.Write(src[:size])
	e.count("copyengine.bytes_written", int64(n))
	if uint32(n) < size {
		return e.short(res, idx, size-uint32(n))
	}
	return nil
}

// Read copies size bytes out of plane idx of res into dst, symmetric to
// Write.
func (e *Engine) Read(res *resource.Resource, idx int, dst []byte, size uint32) error {
	if err := checkArgs(res, idx, dst, size); err != nil {
		return err
	}
	if size == 0 {
		return nil
	}

	cur := res.PlaneCursor(idx)
	n := cur.Read(dst[:size])
	e.count("copyengine.bytes_read", int64(n))
	if uint32(n) < size {
		return e.short(res, idx, size-uint32(n))
	}
	return nil
}

// Dump copies size bytes out of plane idx into dst like Read, but when
// tolerant (per call or per the engine's configured default) a shortfall
// is logged and tolerated.
func (e *Engine) Dump(res *resource.Resource, idx int, dst []byte, size uint32, opts DumpOptions) error {
	err := e.Read(res, idx, dst, size)
	if err == api.ErrBufferInsufficient && (opts.Tolerant || e.dumpTolerant) {
		return nil
	}
	return err
}

// short logs and accounts a buffer exhaustion of left bytes.
func (e *Engine) short(res *resource.Resource, idx int, left uint32) error {
	log.Printf("copyengine: resource %d plane %d: buffer insufficient to contain the frame, left %d bytes",
		res.ID, idx, left)
	e.count("copyengine.shortfalls", 1)
	return api.ErrBufferInsufficient
}

func (e *Engine) count(key string, delta int64) {
	if e.metrics != nil {
		e.metrics.Add(key, delta)
	}
}

// checkArgs rejects malformed transfer arguments before any slice is
// touched.
func checkArgs(res *resource.Resource, idx int, buf []byte, size uint32) error {
	if res == nil {
		return api.ErrMalformedGeometry
	}
	if idx < 0 || idx >= res.NumPlanes() {
		return api.ErrMalformedGeometry
	}
	if size > 0 && (buf == nil || uint32(len(buf)) < size) {
		return api.ErrMalformedGeometry
	}
	return nil
}
