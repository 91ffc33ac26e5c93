// SPDX-License-Identifier: MIT
package network

import (
	"fmt"
)

// BuildGraph builds the coarse graph of idx: every line contributes one link
// between its first and last coordinate weighted by its length.
// The returned Graph is fresh and owned by the caller.
func BuildGraph(idx *Index) (*Graph, error) {
	g := NewGraph(idx.Keyer())
	for i, ep := range idx.EndPoints() {
		if err := g.AddLink(ep.First, ep.Last, ep.Length); err != nil {
			return nil, fmt.Errorf("network: line %d: %w", i, err)
		}
	}

	return g, nil
}
