package cfr

// floatSlicePool recycles the per-node action utility buffers used during
// a traversal. Every buffer has capacity MaxActions.
type floatSlicePool struct {
	pool [][]float64
}

func (p *floatSlicePool) alloc(n int) []float64 {
	if p == nil || len(p.pool) == 0 {
		return make([]float64, n, MaxActions)
	}

	m := len(p.pool)
	next := p.pool[m-1][:n]
	p.pool = p.pool[:m-1]
	for i := range next {
		next[i] = 0
	}

	return next
}

func (p *floatSlicePool) free(s []float64) {
	if p != nil && cap(s) >= MaxActions {
		p.pool = append(p.pool, s[:0])
	}
}
