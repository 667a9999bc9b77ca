package pool

import (
	"sync"
)

// Float64SlicePool implements a pool of float64 slices for efficient reuse
// inside the threshold-search inner loop.
type Float64SlicePool struct {
	pool sync.Pool
	size int
}

// NewFloat64SlicePool creates a new pool of float64 slices with the
// specified initial capacity.
func NewFloat64SlicePool(size int) *Float64SlicePool {
	return &Float64SlicePool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]float64, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a slice from the pool or creates a new one if none are available.
func (fp *Float64SlicePool) Get() *[]float64 {
	return fp.pool.Get().(*[]float64)
}

// Put returns a slice to the pool for reuse.
func (fp *Float64SlicePool) Put(buffer *[]float64) {
	// Reset length but keep capacity.
	*buffer = (*buffer)[:0]
	fp.pool.Put(buffer)
}

// StringSlicePool implements a pool of string slices used by the tabular
// adapters when staging rows.
type StringSlicePool struct {
	pool sync.Pool
	size int
}

// NewStringSlicePool creates a new pool of string slices with the
// specified initial capacity.
func NewStringSlicePool(size int) *StringSlicePool {
	return &StringSlicePool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]string, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a slice from the pool or creates a new one if none are available.
func (sp *StringSlicePool) Get() *[]string {
	return sp.pool.Get().(*[]string)
}

// Put returns a slice to the pool for reuse.
func (sp *StringSlicePool) Put(buffer *[]string) {
	*buffer = (*buffer)[:0]
	sp.pool.Put(buffer)
}
