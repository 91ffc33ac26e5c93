// SPDX-License-Identifier: MIT
package network

import (
	"context"
)

// Stats summarises a network.
type Stats struct {
	Lines       int     `json:"lines"`
	Vertices    int     `json:"vertices"`
	Edges       int     `json:"edges"`
	Components  int     `json:"components"`
	TotalLength float64 `json:"total_length"`
}

// Summarize builds the coarse graph of idx and reports its size.
func Summarize(ctx context.Context, idx *Index) (Stats, error) {
	g, err := BuildGraph(idx)
	if err != nil {
		return Stats{}, err
	}
	_, n, err := g.Components(ctx)
	if err != nil {
		return Stats{}, err
	}
	total := 0.0
	for _, ep := range idx.EndPoints() {
		total += ep.Length
	}

	return Stats{
		Lines:       idx.Len(),
		Vertices:    g.VertexCount(),
		Edges:       g.EdgeCount(),
		Components:  n,
		TotalLength: total,
	}, nil
}
