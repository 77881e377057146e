//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
)

// Builder constructs graphs node by node. All methods return the ID
// of the created node.
type Builder struct {
	nodes []*Node
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return new(Builder)
}

func (b *Builder) add(n *Node) int {
	n.ID = len(b.nodes)
	b.nodes = append(b.nodes, n)
	return n.ID
}

// Input adds an input node reading input index of type t.
func (b *Builder) Input(index int, t types.Info) int {
	return b.add(&Node{
		Op:    Input,
		Index: index,
		Type:  t,
	})
}

// Constant adds a constant node.
func (b *Builder) Constant(v types.Value) int {
	return b.add(&Node{
		Op:    Constant,
		Value: v,
	})
}

// Random adds a node drawing a random value of type t from the
// evaluating party's private randomness.
func (b *Builder) Random(t types.Info) int {
	return b.add(&Node{
		Op:   Random,
		Type: t,
	})
}

// Add adds an addition node.
func (b *Builder) Add(x, y int) int {
	return b.add(&Node{
		Op:   Add,
		Deps: []int{x, y},
	})
}

// Subtract adds a subtraction node x-y.
func (b *Builder) Subtract(x, y int) int {
	return b.add(&Node{
		Op:   Subtract,
		Deps: []int{x, y},
	})
}

// Multiply adds an element-wise multiplication node.
func (b *Builder) Multiply(x, y int) int {
	return b.add(&Node{
		Op:   Multiply,
		Deps: []int{x, y},
	})
}

// Negate adds a negation node.
func (b *Builder) Negate(x int) int {
	return b.add(&Node{
		Op:   Negate,
		Deps: []int{x},
	})
}

// MatMul adds a matrix multiplication node.
func (b *Builder) MatMul(x, y int) int {
	return b.add(&Node{
		Op:   MatMul,
		Deps: []int{x, y},
	})
}

// Sum adds a node summing all elements of x.
func (b *Builder) Sum(x int) int {
	return b.add(&Node{
		Op:   Sum,
		Deps: []int{x},
	})
}

// NOP adds a synchronization node for x with the annotations.
func (b *Builder) NOP(x int, annotations ...Annotation) int {
	return b.add(&Node{
		Op:          NOP,
		Deps:        []int{x},
		Annotations: annotations,
	})
}

// Send adds a synchronization node where sender sends its value of x
// to receiver.
func (b *Builder) Send(x int, sender, receiver ring.PartyID) int {
	return b.NOP(x, SendAnnotation(sender, receiver))
}

// Name sets the name of the node id.
func (b *Builder) Name(id int, name string) {
	b.nodes[id].Name = name
}

// Graph returns the graph with the output node. The graph is
// validated.
func (b *Builder) Graph(output int) (*Graph, error) {
	g := &Graph{
		Nodes:  b.nodes,
		Output: output,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
