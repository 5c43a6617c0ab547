package window

import (
	"math/bits"
	"sync"
)

func init() {
	for i := 1; i < 32; i++ {
		index := i
		buffers[i].New = func() interface{} {
			return make([]byte, 1<<(index-1))
		}
	}
}

var buffers [32]sync.Pool

// GetBuffer returns a zero-length buffer with capacity at least n, drawn
// from a size-classed sync.Pool (one pool per power-of-two size class,
// grounded on gram.GetBuffer).
func GetBuffer(n int) []byte {
	i := uint(bits.Len(uint(n)))
	if n != 1<<i {
		i++
	}
	return buffers[i].Get().([]byte)[:0]
}

// PutBuffer returns buff to its size class's pool for reuse.
func PutBuffer(buff []byte) {
	i := bits.Len(uint(cap(buff)))
	buffers[i].Put(buff)
}
