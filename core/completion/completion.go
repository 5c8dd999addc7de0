// File: core/completion/completion.go
// Package completion
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Work and inflight-command completion. Response construction and
// transmission happen later, on the scheduling goroutine; the originating
// call returns as soon as the task is enqueued.

package completion

import (
	"log"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/core/protocol"
)

// CompleteWork defers the dequeue response for a finished transfer. The
// work must already be detached from its pending queue and its resource
// settled; after this call the work item and its slot belong to the
// pipeline.
func (d *Device) CompleteWork(w *Work) error {
	return d.submit(func() { d.completeWork(w) })
}

func (d *Device) completeWork(w *Work) {
	resp := protocol.DequeueResp{
		Hdr: protocol.CmdHdr{
			Status:   protocol.StatusOKNoData,
			StreamID: w.Stream.ID,
		},
		Timestamp: w.Timestamp,
		Flags:     uint32(w.Flags),
		Size:      w.Size,
	}

	buf := d.respPool.GetBuffer()[:protocol.DequeueRespSize]
	defer d.respPool.PutBuffer(buf)
	resp.EncodeTo(buf)

	if err := w.Slot.WriteResponse(buf); err != nil {
		log.Printf("completion: stream %d work %s: response rejected: %v",
			w.Stream.ID, w.TraceID, err)
		w.Slot.Detach()
		d.count("completion.transport_faults", 1)
		return
	}
	w.Slot.Complete(protocol.DequeueRespSize)
	d.count("completion.works_done", 1)
}

// FinishInflight drains the stream's inflight command slot and defers an
// OK response. The only paths clearing the slot are FinishInflight and
// CancelInflight; resolving an already-empty slot is rejected.
func (d *Device) FinishInflight(s *Stream) error {
	return d.resolveInflight(s, true)
}

// CancelInflight drains the inflight slot and defers an invalid-operation
// response, for commands interrupted by teardown or queue-clear.
func (d *Device) CancelInflight(s *Stream) error {
	return d.resolveInflight(s, false)
}

func (d *Device) resolveInflight(s *Stream, success bool) error {
	d.mu.Lock()
	inf := s.takeInflight()
	d.mu.Unlock()
	if inf == nil {
		log.Printf("completion: stream %d: no inflight command to resolve", s.ID)
		return api.ErrInvariantViolation
	}

	err := d.submit(func() { d.completeInflight(s.ID, inf, success) })
	if err != nil {
		inf.Slot.Detach()
	}
	return err
}

func (d *Device) completeInflight(streamID uint32, inf *Inflight, success bool) {
	status := protocol.StatusOKNoData
	if !success {
		status = protocol.StatusErrInvalidOp
	}
	hdr := protocol.CmdHdr{Status: status, StreamID: streamID}

	buf := d.respPool.GetBuffer()[:protocol.CmdHdrSize]
	defer d.respPool.PutBuffer(buf)
	hdr.EncodeTo(buf)

	if err := inf.Slot.WriteResponse(buf); err != nil {
		log.Printf("completion: stream %d cmd %s: response rejected: %v",
			streamID, protocol.CmdName(inf.Cmd), err)
		inf.Slot.Detach()
		d.count("completion.transport_faults", 1)
		return
	}
	inf.Slot.Complete(protocol.CmdHdrSize)

	verb := "done"
	if !success {
		verb = "cancelled"
	}
	log.Printf("completion: %s (async) for stream %d %s",
		protocol.CmdName(inf.Cmd), streamID, verb)
	d.count("completion.cmds_done", 1)
}
