package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Clone returns a copy of src that shares no memory with it.
// A nil input yields nil so that optional columns stay absent.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Fill sets every element of buf to value.
func Fill(buf []float64, value float64) {
	for i := range buf {
		buf[i] = value
	}
}

// OneMinus writes 1-src[i] into dst. dst and src may alias.
func OneMinus(dst, src []float64) {
	for i, v := range src[:len(dst)] {
		dst[i] = 1 - v
	}
}
