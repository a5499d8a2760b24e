package rank

import "sync"

// sweep runs fn over the index range [0, n) split into contiguous chunks,
// one per worker. With workers <= 1 the call is a plain loop. The caller
// guarantees fn writes only to disjoint positions of the write buffer, so
// no locking is needed; sweep returns after every chunk has committed.
func sweep(n, workers int, fn func(lo, hi int)) {
	if workers <= 1 || n < workers {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
