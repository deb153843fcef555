package linearblock

import (
	"context"
	"sync"

	"github.com/nathanhack/threadpool"
)

// CalculateGirth calculates the girth of the tanner graph induced by inc.
// It returns -1 when the graph has no cycles.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func CalculateGirth(ctx context.Context, inc *Incidence, threads int) int {
	return CalculateGirthLowerBound(ctx, inc, -1, threads)
}

// CalculateGirthLowerBound returns the length of the smallest cycle.
// It searches for cycles with a length <= maxGirth. If no cycles are found
// that are smaller or equal to maxGirth then it returns -1.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func CalculateGirthLowerBound(ctx context.Context, inc *Incidence, maxGirth, threads int) int {
	if maxGirth != -1 && (maxGirth < 4 || maxGirth%2 != 0) {
		panic("maxGirth == -1 or maxGirth must be a even number >=4")
	}

	pool := threadpool.NewFixedSize(ctx, threads, len(inc.Parities))
	calculated := -1
	mux := sync.Mutex{}
	for i := range inc.Parities {
		parity := i
		pool.Add(func() {
			mux.Lock()
			limit := maxGirth
			if calculated != -1 {
				limit = calculated
			}
			mux.Unlock()

			g := CalculateCycleLowerBound(inc, parity, limit)

			mux.Lock()
			if g > 0 && (calculated == -1 || g < calculated) {
				calculated = g
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return calculated
}

// CalculateCycleLowerBound runs a BFS starting at the given parity node.
// It returns the length of the shortest cycle it closes that is <= maxGirth, or -1.
// When maxGirth == -1 the search is unbounded.
func CalculateCycleLowerBound(inc *Incidence, parity, maxGirth int) int {
	// symbols keep their index, parities are shifted past the symbols
	n := len(inc.Symbols)
	neighbors := func(node int) []int {
		if node < n {
			result := make([]int, len(inc.Symbols[node]))
			for i, p := range inc.Symbols[node] {
				result[i] = p + n
			}
			return result
		}
		return inc.Parities[node-n]
	}

	start := parity + n
	dist := map[int]int{start: 0}
	parent := map[int]int{start: -1}
	queue := []int{start}
	best := -1

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		d := dist[node]
		if best != -1 && best <= 2*d {
			break
		}
		if maxGirth != -1 && 2*d > maxGirth {
			break
		}

		for _, next := range neighbors(node) {
			if next == parent[node] {
				continue
			}
			if dn, has := dist[next]; has {
				length := d + dn + 1
				if best == -1 || length < best {
					best = length
				}
				continue
			}
			dist[next] = d + 1
			parent[next] = node
			queue = append(queue, next)
		}
	}

	if best != -1 && maxGirth != -1 && best > maxGirth {
		return -1
	}
	return best
}
