//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package protocols implements example three-party protocols as
// computation graphs.
package protocols

import (
	"fmt"

	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"golang.org/x/xerrors"
)

// Sum creates a graph computing the sum of n inputs of type t. The
// input i is owned by the party i mod 3. Party 0 masks the first input
// with a random value and the masked sum is passed around the ring,
// each owner adding its inputs. Party 0 removes the mask and reveals
// the sum to all parties.
func Sum(t types.Info, n int) (*graph.Graph, error) {
	if n <= 0 {
		return nil, xerrors.Errorf("invalid number of inputs: %d", n)
	}
	if !t.IsScalar() {
		return nil, xerrors.Errorf("sum: scalar type expected: %v", t)
	}
	b := graph.NewBuilder()

	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = b.Input(i, t)
		b.Name(inputs[i], inputName(i))
	}

	mask := b.Random(t)
	b.Name(mask, "r")
	acc := b.Add(inputs[0], mask)

	holder := owner(0)
	for i := 1; i < n; i++ {
		if owner(i) != holder {
			acc = b.Send(acc, holder, owner(i))
			holder = owner(i)
		}
		acc = b.Add(acc, inputs[i])
	}
	if holder != 0 {
		acc = b.Send(acc, holder, 0)
	}
	sum := b.Subtract(acc, mask)
	b.Name(sum, "sum")

	out := b.NOP(sum, graph.SendAnnotation(0, 1), graph.SendAnnotation(0, 2))

	return b.Graph(out)
}

// MatMul creates a graph multiplying the matrix A of type a, owned by
// party 0, with the matrix B of type b, owned by party 1. Party 2
// acts as a commodity server: it deals correlated randomness to the
// input parties and reconstructs the product from their additive
// shares. The output of parties 0 and 1 is not meaningful.
func MatMul(a, b types.Info) (*graph.Graph, error) {
	as := a.Shape()
	bs := b.Shape()
	if len(as) != 2 || len(bs) != 2 || as[1] != bs[0] {
		return nil, xerrors.Errorf("invalid matrix dimensions: %v, %v", a, b)
	}
	el := a.Scalar()
	if !el.Equal(b.Scalar()) {
		return nil, xerrors.Errorf("element type mismatch: %v, %v", a, b)
	}
	ct := types.MatrixOf(el, as[0], bs[1])

	g := graph.NewBuilder()
	x := g.Input(0, a)
	g.Name(x, "A")
	y := g.Input(1, b)
	g.Name(y, "B")

	// Party 2 deals Ra, ra to party 0 and Rb, rb=Ra·Rb-ra to party 1.
	ra := g.Random(a)
	rb := g.Random(b)
	rc := g.Random(ct)
	rd := g.Subtract(g.MatMul(ra, rb), rc)

	ra = g.Send(ra, 2, 0)
	rc = g.Send(rc, 2, 0)
	rb = g.Send(rb, 2, 1)
	rd = g.Send(rd, 2, 1)

	// Masked inputs.
	xm := g.Send(g.Add(x, ra), 0, 1)
	ym := g.Send(g.Add(y, rb), 1, 0)

	// Party 1: T = (A+Ra)·B + rb - V2.
	v2 := g.Random(ct)
	g.Name(v2, "V2")
	tm := g.Subtract(g.Add(g.MatMul(xm, y), rd), v2)
	tm = g.Send(tm, 1, 0)

	// Party 0: V1 = T + ra - Ra·(B+Rb) = A·B - V2.
	v1 := g.Subtract(g.Add(tm, rc), g.MatMul(ra, ym))
	g.Name(v1, "V1")

	s1 := g.Send(v1, 0, 2)
	s2 := g.Send(v2, 1, 2)
	out := g.Add(s1, s2)
	g.Name(out, "C")

	return g.Graph(out)
}

// Swap creates a graph where parties 0 and 1 exchange their inputs of
// type t. Input 0 is owned by party 0 and input 1 by party 1. Party 0
// outputs input 1 and party 1 outputs input 0.
func Swap(t types.Info) (*graph.Graph, error) {
	b := graph.NewBuilder()
	x := b.Input(0, t)
	y := b.Input(1, t)

	// Non-owners hold zero inputs so own is the party's own input.
	own := b.Add(x, y)
	sx := b.Send(x, 0, 1)
	sy := b.Send(y, 1, 0)
	out := b.Subtract(b.Add(sx, sy), own)

	return b.Graph(out)
}

func owner(input int) ring.PartyID {
	return ring.PartyID(input % ring.NumParties)
}

func inputName(i int) string {
	return fmt.Sprintf("n%d", i)
}
