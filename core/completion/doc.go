// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package completion implements the asynchronous completion/notification
// pipeline: frame-transfer work completions, the single inflight command a
// stream may hold, and out-of-band event delivery with a pending backlog.
// All responses are serialized and transmitted on one deferred-task
// goroutine; the device is reference-pinned across every deferral.
package completion
