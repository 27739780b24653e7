package util

import "sync"

// DefaultBufSize is the standard buffer size for network reads
// (32 KiB).  Large enough that one read always holds a whole frame.
const DefaultBufSize = 32 * 1024

// BufPool provides reusable byte buffers for transport read loops,
// reducing GC pressure on hot paths.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, DefaultBufSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}
