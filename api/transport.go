// File: api/transport.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reply transport contracts. The surrounding queue/transport layer owns the
// reply regions; the completion pipeline only writes fixed-layout responses
// into them, submits them for transmission, or detaches them on fault.

package api

// ReplySlot is one caller-owned reply region attached to a pending request
// or notification. Exactly one of Complete or Detach must be called; the
// slot must not be used afterwards.
type ReplySlot interface {
	// WriteResponse copies the encoded response into the reply region.
	// Returns ErrTransportFault if the region cannot hold p.
	WriteResponse(p []byte) error

	// Complete submits the written response of n bytes for transmission
	// and signals the owning queue.
	Complete(n int)

	// Detach releases the reply region without sending a response.
	// Used when the response could not be written back: a protocol-level
	// fault on the transport, not a retryable condition.
	Detach()
}

// ReplySource hands out reply slots for out-of-band notifications.
type ReplySource interface {
	// PopSlot returns the next available reply slot able to hold at least
	// min bytes, or ok=false when none is currently available. A source
	// may internally detach and discard slots too small to ever be usable.
	PopSlot(min int) (slot ReplySlot, ok bool)
}
