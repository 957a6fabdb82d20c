package command

import (
	"bytes"
	"sync"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 1 << 20
	poolInitCap = 4 << 10
)

// bufPool pools encode buffers to reduce allocations
var bufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, poolInitCap))
	},
}

func getBuf() *bytes.Buffer {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuf(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > poolMaxCap {
		return // reject oversized
	}
	bufPool.Put(buf)
}
