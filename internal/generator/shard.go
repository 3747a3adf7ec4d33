package generator

import (
	"context"
	"sync"
)

// SampleSharded draws n samples using workers goroutines. Worker w uses PCG
// stream w under seed and fills a contiguous block, so the output depends only
// on (seed, workers, n).
func SampleSharded(ctx context.Context, seed uint64, workers, n int, radius float64) ([]Sample, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > n && n > 0 {
		workers = n
	}
	out := make([]Sample, n)
	per, rem := n/workers, n%workers

	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		count := per
		if w < rem {
			count++
		}
		wg.Add(1)
		go func(wid, from, count int) {
			defer wg.Done()
			rng := NewUniformSource(seed, uint64(wid))
			for i := from; i < from+count; i++ {
				if ctx.Err() != nil {
					return
				}
				out[i] = Draw(rng, radius)
			}
		}(w, start, count)
		start += count
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
