//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package eval

import (
	"crypto/rand"
	"io"

	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/types"
	"golang.org/x/xerrors"
)

var (
	_ Evaluator = &Simple{}
)

// Simple evaluates nodes locally with arithmetic modulo 2^bits of the
// value element type. Random nodes draw from the instance's private
// PRNG.
type Simple struct {
	prng *PRNG
}

// NewSimple creates a new local evaluator. If seed is nil, a random
// seed is read from crypto/rand.
func NewSimple(seed []byte) (*Simple, error) {
	return NewSimpleRand(seed, rand.Reader)
}

// NewSimpleRand creates a new local evaluator. If seed is nil, the
// seed is read from r.
func NewSimpleRand(seed []byte, r io.Reader) (*Simple, error) {
	if seed == nil {
		seed = make([]byte, SeedSize)
		if _, err := io.ReadFull(r, seed); err != nil {
			return nil, err
		}
	}
	prng, err := NewPRNG(seed)
	if err != nil {
		return nil, err
	}
	return &Simple{
		prng: prng,
	}, nil
}

// EvaluateNode implements Evaluator.EvaluateNode.
func (s *Simple) EvaluateNode(n *graph.Node, deps []types.Value) (
	types.Value, error) {

	switch n.Op {
	case graph.Input:
		if len(deps) != 1 {
			return types.Value{}, xerrors.Errorf("input %d missing", n.Index)
		}
		return deps[0].Clone(), nil

	case graph.Constant:
		return n.Value.Clone(), nil

	case graph.Random:
		result := types.Zero(n.Type)
		for idx := range result.Data {
			result.Data[idx] = s.prng.Uint64()
		}
		return result.Normalize(), nil
	}

	if len(deps) != n.Op.Arity() {
		return types.Value{}, xerrors.Errorf("%v: got %d arguments, "+
			"expected %d", n.Op, len(deps), n.Op.Arity())
	}

	switch n.Op {
	case graph.Add:
		return elementwise(deps[0], deps[1], func(a, b uint64) uint64 {
			return a + b
		})

	case graph.Subtract:
		return elementwise(deps[0], deps[1], func(a, b uint64) uint64 {
			return a - b
		})

	case graph.Multiply:
		return elementwise(deps[0], deps[1], func(a, b uint64) uint64 {
			return a * b
		})

	case graph.Negate:
		result := deps[0].Clone()
		for idx, el := range result.Data {
			result.Data[idx] = -el
		}
		return result.Normalize(), nil

	case graph.MatMul:
		return matmul(deps[0], deps[1])

	case graph.Sum:
		var sum uint64
		for _, el := range deps[0].Data {
			sum += el
		}
		result := types.Value{
			Type: deps[0].Type.Scalar(),
			Data: []uint64{sum},
		}
		return result.Normalize(), nil

	case graph.NOP:
		return deps[0].Clone(), nil

	default:
		return types.Value{}, xerrors.Errorf("unsupported operation %v", n.Op)
	}
}

// elementwise applies the element-wise operation op. If one of the
// arguments is a scalar, it is applied with each element of the other
// argument.
func elementwise(a, b types.Value, op func(a, b uint64) uint64) (
	types.Value, error) {

	if !a.Type.Scalar().Equal(b.Type.Scalar()) {
		return types.Value{}, xerrors.Errorf("element type mismatch: %v, %v",
			a.Type, b.Type)
	}

	var result types.Value
	switch {
	case a.Type.Equal(b.Type):
		result = a.Clone()
		for idx := range result.Data {
			result.Data[idx] = op(a.Data[idx], b.Data[idx])
		}

	case b.IsScalar():
		result = a.Clone()
		for idx := range result.Data {
			result.Data[idx] = op(a.Data[idx], b.Data[0])
		}

	case a.IsScalar():
		result = b.Clone()
		for idx := range result.Data {
			result.Data[idx] = op(a.Data[0], b.Data[idx])
		}

	default:
		return types.Value{}, xerrors.Errorf("shape mismatch: %v, %v",
			a.Type, b.Type)
	}
	return result.Normalize(), nil
}

func matmul(a, b types.Value) (types.Value, error) {
	as := a.Shape()
	bs := b.Shape()
	if len(as) != 2 || len(bs) != 2 || as[1] != bs[0] {
		return types.Value{}, xerrors.Errorf("invalid matmul shapes: %v, %v",
			a.Type, b.Type)
	}
	el := a.Type.Scalar()
	if !el.Equal(b.Type.Scalar()) {
		return types.Value{}, xerrors.Errorf("element type mismatch: %v, %v",
			a.Type, b.Type)
	}
	rows, inner, cols := as[0], as[1], bs[1]

	result := types.Zero(types.MatrixOf(el, rows, cols))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum uint64
			for k := 0; k < inner; k++ {
				sum += a.Data[i*inner+k] * b.Data[k*cols+j]
			}
			result.Data[i*cols+j] = sum
		}
	}
	return result.Normalize(), nil
}
