//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/markkurossi/ringeval/env"
	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/protocols"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"github.com/stretchr/testify/require"
)

func testConfig(transport, codec string) *env.Config {
	config := env.Default()
	config.Transport = transport
	config.Codec = codec
	config.LogLevel = "no"
	return config
}

func seededConfig() *env.Config {
	config := testConfig(env.TransportChan, "json")
	config.Seeds = []string{
		strings.Repeat("01", 32),
		strings.Repeat("02", 32),
		strings.Repeat("03", 32),
	}
	return config
}

func TestRunSum(t *testing.T) {
	g, err := protocols.Sum(types.Int32, 3)
	require.NoError(t, err)

	inputs := []types.Value{
		types.Scalar(types.Int32, 10),
		types.Scalar(types.Int32, 20),
		types.Scalar(types.Int32, 30),
	}

	for _, tags := range []string{"0,1,2", "public,public,public"} {
		ownerships, err := ParseOwnerships(tags)
		require.NoError(t, err)

		for _, transport := range []string{env.TransportChan,
			env.TransportPipe} {
			for _, codec := range []string{"json", "proto"} {
				result, err := Run(g, inputs, ownerships,
					testConfig(transport, codec))
				require.NoError(t, err)
				require.NotEmpty(t, result.ID)

				for _, id := range ring.Parties() {
					data, err := json.Marshal(result.Outputs[id])
					require.NoError(t, err)
					require.Equal(t,
						`{"kind":"scalar","type":"i32","value":60}`,
						string(data))
					require.NotZero(t, result.Stats[id].Sent.Load())
				}
			}
		}
	}
}

func plainMatMul(a, b types.Value) types.Value {
	as := a.Shape()
	bs := b.Shape()
	result := types.Zero(types.MatrixOf(types.Int64, as[0], bs[1]))
	for i := 0; i < as[0]; i++ {
		for j := 0; j < bs[1]; j++ {
			var sum int64
			for k := 0; k < as[1]; k++ {
				sum += a.Int(i*as[1]+k) * b.Int(k*bs[1]+j)
			}
			result.Data[i*bs[1]+j] = uint64(sum)
		}
	}
	return result
}

func matmulInputs(t *testing.T) []types.Value {
	at := types.MatrixOf(types.Int64, 5, 3)
	bt := types.MatrixOf(types.Int64, 3, 5)

	var ae, be []int64
	for i := 0; i < 15; i++ {
		ae = append(ae, int64(i))
		be = append(be, int64(i+15))
	}
	a, err := types.Array(at, ae)
	require.NoError(t, err)
	b, err := types.Array(bt, be)
	require.NoError(t, err)

	return []types.Value{a, b}
}

func TestRunMatMul(t *testing.T) {
	inputs := matmulInputs(t)
	g, err := protocols.MatMul(inputs[0].Type, inputs[1].Type)
	require.NoError(t, err)

	expected := plainMatMul(inputs[0], inputs[1])
	require.Equal(t, int64(0*15+1*20+2*25), expected.Int(0))

	tags := []Ownership{0, 1}
	for _, transport := range []string{env.TransportChan,
		env.TransportPipe} {

		result, err := Run(g, inputs, tags, testConfig(transport, "proto"))
		require.NoError(t, err)

		require.True(t, expected.Equal(result.Outputs[2]),
			"got %v, expected %v", result.Outputs[2], expected)
		require.False(t, expected.Equal(result.Outputs[0]))
		require.False(t, expected.Equal(result.Outputs[1]))
		require.False(t, result.Outputs[0].Equal(result.Outputs[1]))
	}
}

func TestRunDeterministic(t *testing.T) {
	inputs := matmulInputs(t)
	g, err := protocols.MatMul(inputs[0].Type, inputs[1].Type)
	require.NoError(t, err)

	tags := []Ownership{0, 1}
	r1, err := Run(g, inputs, tags, seededConfig())
	require.NoError(t, err)
	r2, err := Run(g, inputs, tags, seededConfig())
	require.NoError(t, err)

	require.NotEqual(t, r1.ID, r2.ID)
	for _, id := range ring.Parties() {
		require.True(t, r1.Outputs[id].Equal(r2.Outputs[id]))
	}
}

func TestRunSwap(t *testing.T) {
	g, err := protocols.Swap(types.Int16)
	require.NoError(t, err)

	inputs := []types.Value{
		types.Scalar(types.Int16, -7),
		types.Scalar(types.Int16, 1234),
	}
	result, err := Run(g, inputs, []Ownership{0, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1234), result.Outputs[0].Int(0))
	require.Equal(t, int64(-7), result.Outputs[1].Int(0))
	require.Equal(t, int64(0), result.Outputs[2].Int(0))
}

func TestRunInputCount(t *testing.T) {
	g, err := protocols.Sum(types.Int32, 3)
	require.NoError(t, err)

	_, err = Run(g, []types.Value{types.Scalar(types.Int32, 1)},
		[]Ownership{0, 1, 2}, nil)
	require.True(t, errors.Is(err, ErrInputCount), "got %v", err)
}

func TestRunFailure(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Send(b.Input(0, types.Int32), 0, 1)
	c := b.Constant(types.Scalar(types.Int64, 1))
	g, err := b.Graph(b.Add(x, c))
	require.NoError(t, err)

	for _, transport := range []string{env.TransportChan,
		env.TransportPipe} {
		_, err = Run(g, []types.Value{types.Scalar(types.Int32, 1)},
			[]Ownership{Public}, testConfig(transport, "json"))
		require.Error(t, err)
		require.False(t, errors.Is(err, ring.ErrClosed))
	}
}

func TestPartySeeds(t *testing.T) {
	config := seededConfig()
	seeds, err := partySeeds(config)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{2}, 32), seeds[1])

	config.Seeds[2] = config.Seeds[0]
	_, err = partySeeds(config)
	require.Error(t, err)

	config.Seeds = nil
	config.Rand = bytes.NewReader(make([]byte, 16))
	_, err = partySeeds(config)
	require.Error(t, err)
}

func TestTiming(t *testing.T) {
	g, err := protocols.Sum(types.Int64, 3)
	require.NoError(t, err)

	inputs := []types.Value{
		types.Scalar(types.Int64, 1),
		types.Scalar(types.Int64, 2),
		types.Scalar(types.Int64, 3),
	}
	result, err := Run(g, inputs, []Ownership{0, 1, 2},
		testConfig(env.TransportChan, "json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	result.Timing.Print(&buf, result.Stats)
	out := buf.String()
	require.Contains(t, out, "Eval")
	require.Contains(t, out, "Total")
	require.Contains(t, out, "P²")
}

func TestFileSize(t *testing.T) {
	require.Equal(t, "999B", FileSize(999).String())
	require.Equal(t, "2kB", FileSize(2500).String())
	require.Equal(t, "3MB", FileSize(3000001).String())
}
