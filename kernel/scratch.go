package kernel

import "sync"

// scratchPool hands out per-call work buffers of fixed sizes so that a
// compiled Plan stays immutable while concurrent runs share it.
type scratchPool struct {
	sizes []int
	pool  sync.Pool
}

func newScratchPool(sizes ...int) *scratchPool {
	sp := &scratchPool{sizes: sizes}
	sp.pool.New = func() any {
		bufs := make([][]float64, len(sp.sizes))
		for i, n := range sp.sizes {
			bufs[i] = make([]float64, n)
		}

		return &bufs
	}

	return sp
}

func (sp *scratchPool) get() *[][]float64 { return sp.pool.Get().(*[][]float64) }

func (sp *scratchPool) put(b *[][]float64) { sp.pool.Put(b) }
