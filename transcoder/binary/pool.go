package binary

import (
	"sync"

	"github.com/wippyai/tide/wire"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 * 1024
	poolInitCap = 64
)

// read cursors for Unmarshal
var cursorPool = sync.Pool{
	New: func() any {
		return &wire.Buffer{}
	},
}

func getCursor(data []byte) *wire.Buffer {
	buf := cursorPool.Get().(*wire.Buffer)
	buf.Load(data)
	return buf
}

func putCursor(buf *wire.Buffer) {
	if buf == nil {
		return
	}
	buf.Load(nil) // drop the caller's data
	cursorPool.Put(buf)
}

// scratch byte slices for fixed width fragments
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

func getScratch() *[]byte {
	return scratchPool.Get().(*[]byte)
}

func putScratch(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}
