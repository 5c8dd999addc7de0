// File: core/protocol/response.go
// Package protocol implements the fixed-layout response records the
// completion pipeline emits. Field order and sizes match the transport
// byte-for-byte; all fields are little-endian.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import (
	"encoding/binary"
	"errors"
)

// CmdHdr is the fixed header of every command response: status code and
// originating stream id.
type CmdHdr struct {
	Status   uint32
	StreamID uint32
}

// Encode serializes the header into an 8-byte record.
func (h CmdHdr) Encode() []byte {
	buf := make([]byte, CmdHdrSize)
	h.EncodeTo(buf)
	return buf
}

// EncodeTo serializes the header into buf, which must hold CmdHdrSize
// bytes.
func (h CmdHdr) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:], h.Status)
	binary.LittleEndian.PutUint32(buf[4:], h.StreamID)
}

// DecodeCmdHdr parses an 8-byte header record.
func DecodeCmdHdr(raw []byte) (CmdHdr, error) {
	if len(raw) < CmdHdrSize {
		return CmdHdr{}, errors.New("response header too short")
	}
	return CmdHdr{
		Status:   binary.LittleEndian.Uint32(raw[0:]),
		StreamID: binary.LittleEndian.Uint32(raw[4:]),
	}, nil
}

// DequeueResp is the response to a completed frame transfer: header plus
// timestamp, buffer flags and produced byte count.
type DequeueResp struct {
	Hdr       CmdHdr
	Timestamp uint64
	Flags     uint32
	Size      uint32
}

// Encode serializes the response into a 24-byte record.
func (r DequeueResp) Encode() []byte {
	buf := make([]byte, DequeueRespSize)
	r.EncodeTo(buf)
	return buf
}

// EncodeTo serializes the response into buf, which must hold
// DequeueRespSize bytes.
func (r DequeueResp) EncodeTo(buf []byte) {
	r.Hdr.EncodeTo(buf[0:])
	binary.LittleEndian.PutUint64(buf[8:], r.Timestamp)
	binary.LittleEndian.PutUint32(buf[16:], r.Flags)
	binary.LittleEndian.PutUint32(buf[20:], r.Size)
}

// DecodeDequeueResp parses a 24-byte dequeue response record.
func DecodeDequeueResp(raw []byte) (DequeueResp, error) {
	if len(raw) < DequeueRespSize {
		return DequeueResp{}, errors.New("dequeue response too short")
	}
	hdr, _ := DecodeCmdHdr(raw)
	return DequeueResp{
		Hdr:       hdr,
		Timestamp: binary.LittleEndian.Uint64(raw[8:]),
		Flags:     binary.LittleEndian.Uint32(raw[16:]),
		Size:      binary.LittleEndian.Uint32(raw[20:]),
	}, nil
}

// EventResp is the out-of-band event notification record.
type EventResp struct {
	EventType uint32
	StreamID  uint32
}

// Encode serializes the event into an 8-byte record.
func (ev EventResp) Encode() []byte {
	buf := make([]byte, EventRespSize)
	binary.LittleEndian.PutUint32(buf[0:], ev.EventType)
	binary.LittleEndian.PutUint32(buf[4:], ev.StreamID)
	return buf
}

// DecodeEventResp parses an 8-byte event record.
func DecodeEventResp(raw []byte) (EventResp, error) {
	if len(raw) < EventRespSize {
		return EventResp{}, errors.New("event record too short")
	}
	return EventResp{
		EventType: binary.LittleEndian.Uint32(raw[0:]),
		StreamID:  binary.LittleEndian.Uint32(raw[4:]),
	}, nil
}
