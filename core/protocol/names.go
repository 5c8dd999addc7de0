// File: core/protocol/names.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Name lookup tables used in log lines.

package protocol

import "github.com/momentics/hioload-video/api"

var cmdNames = []struct {
	cmd  uint32
	name string
}{
	{CmdQueryCapability, "QUERY_CAPABILITY"},
	{CmdStreamCreate, "STREAM_CREATE"},
	{CmdStreamDestroy, "STREAM_DESTROY"},
	{CmdStreamDrain, "STREAM_DRAIN"},
	{CmdResourceCreate, "RESOURCE_CREATE"},
	{CmdResourceDestroyAll, "RESOURCE_DESTROY_ALL"},
	{CmdResourceQueue, "RESOURCE_QUEUE"},
	{CmdQueueClear, "QUEUE_CLEAR"},
	{CmdGetParams, "GET_PARAMS"},
	{CmdSetParams, "SET_PARAMS"},
	{CmdQueryControl, "QUERY_CONTROL"},
	{CmdGetControl, "GET_CONTROL"},
	{CmdSetControl, "SET_CONTROL"},
}

var frameTypeNames = []struct {
	flag api.BufferFlag
	name string
}{
	{api.BufferFlagIFrame, "I-Frame"},
	{api.BufferFlagPFrame, "P-Frame"},
	{api.BufferFlagBFrame, "B-Frame"},
}

// CmdName returns the printable name of a command tag.
func CmdName(cmd uint32) string {
	for _, e := range cmdNames {
		if e.cmd == cmd {
			return e.name
		}
	}
	return "UNKNOWN_CMD"
}

// EventName returns the printable name of an event type.
func EventName(event uint32) string {
	switch event {
	case EventError:
		return "ERROR"
	case EventResolutionChanged:
		return "DECODER_RESOLUTION_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// FrameTypeName returns the printable name of a frame-type buffer flag.
func FrameTypeName(flag api.BufferFlag) string {
	for _, e := range frameTypeNames {
		if e.flag == flag {
			return e.name
		}
	}
	return "UNKNOWN_FRAME_TYPE"
}
