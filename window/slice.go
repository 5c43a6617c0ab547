package window

import "unsafe"

// Sliced reports whether reslice's backing array is buff's, returning the
// byte offset if so. Window.ReadFrom uses this to recognise when its own
// buffer already lives inside a source Window's backing array, so the
// bytes can be adopted by reference instead of copied (gram.Sliced).
func Sliced(buff, reslice []byte) (off int, sliced bool) {
	index := *(*uintptr)(unsafe.Pointer(&reslice))
	begin := *(*uintptr)(unsafe.Pointer(&buff))

	off = int(index - begin)
	c := cap(buff)
	if off < 0 || off >= c {
		return c, false
	}
	return off, true
}

// SetCap returns buff with its capacity set to n, shrinking the length if
// n is smaller. Used to build a bounded child view without copying
// (gram.SetCap).
func SetCap(buff []byte, n int) []byte {
	if len(buff) > n {
		buff = buff[:n]
	}
	cptr := (uintptr)(unsafe.Pointer(&buff)) + (wordSize * 2)
	*(*int)(unsafe.Pointer(cptr)) = n
	return buff
}
