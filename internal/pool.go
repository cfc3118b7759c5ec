package internal

import (
	"bytes"
	"sync"
)

// bufferPool holds the buffers command lines are encoded into. Building a single shape sends hundreds of
// commands, so the buffers are reused.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 64))
	},
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// PutBuffer resets the buffer and returns it to the pool. The buffer must not be used afterwards.
func PutBuffer(b *bytes.Buffer) {
	b.Reset()
	bufferPool.Put(b)
}
