//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package eval

import (
	"bytes"
	"testing"

	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/types"
	"github.com/stretchr/testify/require"
)

func testSeed(b byte) []byte {
	return bytes.Repeat([]byte{b}, SeedSize)
}

func matrix(t *testing.T, rows, cols int, elements ...int64) types.Value {
	v, err := types.Array(types.MatrixOf(types.Int64, rows, cols), elements)
	require.NoError(t, err)
	return v
}

func evalNode(t *testing.T, op graph.Operation, deps ...types.Value) (
	types.Value, error) {

	ev, err := NewSimple(testSeed(1))
	require.NoError(t, err)
	n := &graph.Node{
		Op:   op,
		Deps: make([]int, len(deps)),
	}
	return ev.EvaluateNode(n, deps)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op       graph.Operation
		deps     []types.Value
		expected types.Value
	}{
		{
			op: graph.Add,
			deps: []types.Value{
				types.Scalar(types.Int32, 10),
				types.Scalar(types.Int32, 20),
			},
			expected: types.Scalar(types.Int32, 30),
		},
		{
			op: graph.Add,
			deps: []types.Value{
				types.Scalar(types.Uint8, 250),
				types.Scalar(types.Uint8, 10),
			},
			expected: types.Scalar(types.Uint8, 4),
		},
		{
			op: graph.Subtract,
			deps: []types.Value{
				types.Scalar(types.Int8, -128),
				types.Scalar(types.Int8, 1),
			},
			expected: types.Scalar(types.Int8, 127),
		},
		{
			op: graph.Multiply,
			deps: []types.Value{
				types.Scalar(types.Int64, 3),
				matrix(t, 2, 2, 1, 2, 3, 4),
			},
			expected: matrix(t, 2, 2, 3, 6, 9, 12),
		},
		{
			op: graph.Negate,
			deps: []types.Value{
				types.Scalar(types.Int16, 5),
			},
			expected: types.Scalar(types.Int16, -5),
		},
		{
			op: graph.MatMul,
			deps: []types.Value{
				matrix(t, 2, 3, 1, 2, 3, 4, 5, 6),
				matrix(t, 3, 2, 7, 8, 9, 10, 11, 12),
			},
			expected: matrix(t, 2, 2, 58, 64, 139, 154),
		},
		{
			op: graph.Sum,
			deps: []types.Value{
				matrix(t, 2, 2, 1, 2, 3, -4),
			},
			expected: types.Scalar(types.Int64, 2),
		},
		{
			op: graph.NOP,
			deps: []types.Value{
				types.Scalar(types.Int32, 60),
			},
			expected: types.Scalar(types.Int32, 60),
		},
	}
	for _, test := range tests {
		result, err := evalNode(t, test.op, test.deps...)
		require.NoError(t, err, test.op.String())
		require.True(t, test.expected.Equal(result),
			"%v: got %v, expected %v", test.op, result, test.expected)
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := evalNode(t, graph.Add, types.Scalar(types.Int32, 1),
		types.Scalar(types.Int64, 1))
	require.Error(t, err)

	_, err = evalNode(t, graph.Add, matrix(t, 2, 2, 1, 2, 3, 4),
		matrix(t, 1, 4, 1, 2, 3, 4))
	require.Error(t, err)

	_, err = evalNode(t, graph.MatMul, matrix(t, 2, 3, 1, 2, 3, 4, 5, 6),
		matrix(t, 2, 3, 1, 2, 3, 4, 5, 6))
	require.Error(t, err)

	_, err = evalNode(t, graph.Negate)
	require.Error(t, err)
}

func TestNOPDoesNotAlias(t *testing.T) {
	v := types.Scalar(types.Int32, 7)
	result, err := evalNode(t, graph.NOP, v)
	require.NoError(t, err)
	result.Data[0] = 8
	require.Equal(t, uint64(7), v.Data[0])
}

func TestRandomDeterminism(t *testing.T) {
	n := &graph.Node{
		Op:   graph.Random,
		Type: types.MatrixOf(types.Uint32, 4, 4),
	}
	draw := func(seed []byte) []types.Value {
		ev, err := NewSimple(seed)
		require.NoError(t, err)
		var result []types.Value
		for i := 0; i < 3; i++ {
			v, err := ev.EvaluateNode(n, nil)
			require.NoError(t, err)
			require.NoError(t, v.Check())
			result = append(result, v)
		}
		return result
	}
	a := draw(testSeed(1))
	b := draw(testSeed(1))
	c := draw(testSeed(2))
	for i := range a {
		require.True(t, a[i].Equal(b[i]))
		require.False(t, a[i].Equal(c[i]))
	}
	require.False(t, a[0].Equal(a[1]))
}

func TestNewSimple(t *testing.T) {
	_, err := NewSimple([]byte{1, 2, 3})
	require.Error(t, err)

	ev, err := NewSimple(nil)
	require.NoError(t, err)
	require.NotNil(t, ev)

	_, err = NewSimpleRand(nil, bytes.NewReader([]byte{1}))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input(0, types.Int32)
	y := b.Input(1, types.Int32)
	c := b.Constant(types.Scalar(types.Int32, 2))
	out := b.Multiply(b.Add(x, y), c)
	g, err := b.Graph(out)
	require.NoError(t, err)

	ev, err := NewSimple(testSeed(0))
	require.NoError(t, err)

	result, err := Run(g, []types.Value{
		types.Scalar(types.Int32, 10),
		types.Scalar(types.Int32, 11),
	}, ev)
	require.NoError(t, err)
	require.True(t, types.Scalar(types.Int32, 42).Equal(result))

	_, err = Run(g, []types.Value{types.Scalar(types.Int32, 10)}, ev)
	require.Error(t, err)

	_, err = Run(g, []types.Value{
		types.Scalar(types.Int32, 10),
		types.Scalar(types.Int64, 11),
	}, ev)
	require.Error(t, err)
}
