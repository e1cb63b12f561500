// Package pool recycles scratch memory for the solver and the table encoder.
package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice returns a scratch slice of exactly size elements together
// with a release function that must be called (usually deferred) once the
// slice is no longer referenced. The contents are not zeroed.
//
// Example:
//
//	resid, release := pool.GetFloat64Slice(len(obs))
//	defer release()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)

	s := *ptr
	if cap(s) < size {
		s = make([]float64, size)
	} else {
		s = s[:size]
	}
	*ptr = s

	return s, func() { float64SlicePool.Put(ptr) }
}
