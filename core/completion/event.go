// File: core/completion/event.go
// Package completion
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Out-of-band event delivery. An event is matched immediately to an
// available reply slot, or queued on the device's pending backlog in FIFO
// arrival order until the transport gains one.

package completion

import (
	"log"

	"github.com/momentics/hioload-video/core/protocol"
)

// Event is one pending out-of-band notification.
type Event struct {
	Type     uint32
	StreamID uint32
}

// ReportEvent defers delivery of an event notification for a stream.
func (d *Device) ReportEvent(eventType, streamID uint32) error {
	return d.submit(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.deliverEvent(&Event{Type: eventType, StreamID: streamID})
	})
}

// EventSlotReady defers a backlog drain, for when the transport announces
// fresh reply slots. Backlogged events go out in arrival order.
func (d *Device) EventSlotReady() error {
	return d.submit(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for d.backlog.Length() > 0 {
			ev := d.backlog.Peek().(*Event)
			if !d.transmitEvent(ev) {
				return
			}
			d.backlog.Remove()
		}
	})
}

// BacklogDepth reports the number of events awaiting a reply slot.
func (d *Device) BacklogDepth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backlog.Length()
}

// deliverEvent transmits ev now or backlogs it. Caller holds the device
// lock.
func (d *Device) deliverEvent(ev *Event) {
	if d.transmitEvent(ev) {
		return
	}
	d.backlog.Add(ev)
	if d.backlog.Length() >= d.backlogWarn {
		log.Printf("completion: event backlog depth %d (no reply slots)",
			d.backlog.Length())
	}
	d.count("completion.events_backlogged", 1)
	d.bumpBacklogHighWater()
}

// transmitEvent pops a slot and sends ev through it; false means no slot
// is currently available. Caller holds the device lock.
func (d *Device) transmitEvent(ev *Event) bool {
	slot, ok := d.events.PopSlot(protocol.EventRespSize)
	if !ok {
		return false
	}

	resp := protocol.EventResp{EventType: ev.Type, StreamID: ev.StreamID}
	if err := slot.WriteResponse(resp.Encode()); err != nil {
		log.Printf("completion: stream %d event %s: response rejected: %v",
			ev.StreamID, protocol.EventName(ev.Type), err)
		slot.Detach()
		d.count("completion.transport_faults", 1)
		// event considered consumed; the slot was the faulty party
		return true
	}
	slot.Complete(protocol.EventRespSize)
	log.Printf("completion: stream %d event %s triggered",
		ev.StreamID, protocol.EventName(ev.Type))
	d.count("completion.events_sent", 1)
	return true
}

func (d *Device) bumpBacklogHighWater() {
	if d.metrics == nil {
		return
	}
	depth := int64(d.backlog.Length())
	if depth > d.metrics.Get("completion.backlog_high_water") {
		d.metrics.Set("completion.backlog_high_water", depth)
	}
}
