package dijkstra

import (
	"fmt"
	"math"
)

// PathTo walks the predecessor map from target back to source and returns the
// vertex sequence source → … → target.
//
// Returns ErrNoPath when target was never reached (infinite distance or a
// broken predecessor chain). A target equal to source yields a one-vertex path.
//
// Complexity: O(path length).
func PathTo(dist map[string]float64, prev map[string]string, source, target string) ([]string, error) {
	if prev == nil {
		return nil, fmt.Errorf("%w: predecessor map not requested", ErrNoPath)
	}
	d, ok := dist[target]
	if !ok || math.IsInf(d, 1) {
		return nil, fmt.Errorf("%w: %q unreachable", ErrNoPath, target)
	}

	var rev []string
	cur := target
	// A valid chain never revisits a vertex, so len(prev)+1 steps bound the walk.
	for steps := 0; steps <= len(prev); steps++ {
		rev = append(rev, cur)
		if cur == source {
			out := make([]string, len(rev))
			for i := range rev {
				out[i] = rev[len(rev)-1-i]
			}
			return out, nil
		}
		cur = prev[cur]
		if cur == "" {
			break
		}
	}

	return nil, fmt.Errorf("%w: predecessor chain of %q is broken", ErrNoPath, target)
}
