// File: core/protocol/constants.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wire constants of the device protocol: status codes carried in response
// headers, out-of-band event types, and the command tags a stream may hold
// in flight.

package protocol

// Response status codes.
const (
	StatusOKNoData         uint32 = 0x0200
	StatusErrInvalidOp     uint32 = 0x0100
	StatusErrOutOfMemory   uint32 = 0x0101
	StatusErrInvalidStream uint32 = 0x0102
)

// Out-of-band event types.
const (
	EventError             uint32 = 0x0100
	EventResolutionChanged uint32 = 0x0200
)

// Command tags. Only the async ones ever occupy a stream's inflight slot.
const (
	CmdQueryCapability    uint32 = 0x0100
	CmdStreamCreate       uint32 = 0x0102
	CmdStreamDestroy      uint32 = 0x0103
	CmdStreamDrain        uint32 = 0x0104
	CmdResourceCreate     uint32 = 0x0105
	CmdResourceQueue      uint32 = 0x0106
	CmdResourceDestroyAll uint32 = 0x0107
	CmdQueueClear         uint32 = 0x0108
	CmdGetParams          uint32 = 0x0109
	CmdSetParams          uint32 = 0x010a
	CmdQueryControl       uint32 = 0x010b
	CmdGetControl         uint32 = 0x010c
	CmdSetControl         uint32 = 0x010d
)

// Encoded record sizes in bytes.
const (
	CmdHdrSize      = 8
	DequeueRespSize = 24
	EventRespSize   = 8
)
