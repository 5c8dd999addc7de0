// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package copyengine implements the scatter-gather transfer primitives that
// move frame data between host-contiguous working buffers and a resource's
// discontiguous slice runs, under the single-buffer and per-plane layouts.
// Includes line-strided variants for sources whose row pitch exceeds the
// packed row width, with the luma/chroma source switch semi-planar formats
// need. See engine.go and strided.go for implementation details.
package copyengine
