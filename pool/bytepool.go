// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool provides small fixed-size byte buffer pooling for response
// records built on the completion path.
package pool

import "sync"

// BytePool recycles fixed-size byte buffers.
type BytePool struct {
	p    sync.Pool
	size int
}

// NewBytePool creates a pool handing out buffers of size bytes.
func NewBytePool(size int) *BytePool {
	b := &BytePool{size: size}
	b.p.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return b
}

// GetBuffer returns a zero-length-agnostic buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	return *(b.p.Get().(*[]byte))
}

// PutBuffer returns a buffer to the pool. Buffers of foreign sizes are
// dropped for the GC.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) < b.size {
		return
	}
	buf = buf[:b.size]
	b.p.Put(&buf)
}

// Size reports the pooled buffer size.
func (b *BytePool) Size() int { return b.size }
