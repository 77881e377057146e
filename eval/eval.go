//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package eval implements local node evaluation and the graph-walking
// driver.
package eval

import (
	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/types"
	"golang.org/x/xerrors"
)

// Evaluator evaluates graph nodes. The deps contain the values of the
// node dependencies in the order of node.Deps. For input nodes, deps
// contains the input value.
type Evaluator interface {
	EvaluateNode(node *graph.Node, deps []types.Value) (types.Value, error)
}

// Run evaluates the graph g with the inputs. The nodes are evaluated
// in graph order and the function returns the value of the graph
// output node.
func Run(g *graph.Graph, inputs []types.Value, ev Evaluator) (
	types.Value, error) {

	if err := g.Validate(); err != nil {
		return types.Value{}, err
	}
	if len(inputs) < g.NumInputs() {
		return types.Value{}, xerrors.Errorf("graph needs %d inputs, got %d",
			g.NumInputs(), len(inputs))
	}

	values := make([]types.Value, len(g.Nodes))
	var deps []types.Value

	for id, n := range g.Nodes {
		deps = deps[:0]
		if n.Op == graph.Input {
			input := inputs[n.Index]
			if !input.Type.Equal(n.Type) {
				return types.Value{}, xerrors.Errorf(
					"node %d: input %d: got %v, expected %v",
					id, n.Index, input.Type, n.Type)
			}
			deps = append(deps, input)
		}
		for _, dep := range n.Deps {
			deps = append(deps, values[dep])
		}
		v, err := ev.EvaluateNode(n, deps)
		if err != nil {
			return types.Value{}, xerrors.Errorf("node %d: %w", id, err)
		}
		values[id] = v
	}

	return values[g.Output], nil
}
