//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markkurossi/ringeval/types"
)

func sumGraph(t *testing.T) *Graph {
	b := NewBuilder()
	x0 := b.Input(0, types.Int32)
	x1 := b.Input(1, types.Int32)
	s := b.Add(x0, x1)
	out := b.NOP(s, SendAnnotation(0, 1), SendAnnotation(0, 2))
	g, err := b.Graph(out)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	return g
}

func TestBuilder(t *testing.T) {
	g := sumGraph(t)
	if len(g.Nodes) != 4 || g.Output != 3 || g.NumInputs() != 2 {
		t.Fatalf("got %d nodes, output %d, %d inputs",
			len(g.Nodes), g.Output, g.NumInputs())
	}
	if !g.Nodes[3].IsSync() || g.Nodes[2].IsSync() {
		t.Errorf("IsSync: node 2=%v, node 3=%v",
			g.Nodes[2].IsSync(), g.Nodes[3].IsSync())
	}
	expected := "#nodes=4 (input=2 add=1 nop=1) #sends=2"
	if g.String() != expected {
		t.Errorf("String: got %q, expected %q", g.String(), expected)
	}
	expected = "nop [2] Send(0→1) Send(0→2)"
	if g.Nodes[3].String() != expected {
		t.Errorf("Node.String: got %q, expected %q",
			g.Nodes[3].String(), expected)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) int
	}{
		{
			name: "forward dependency",
			build: func(b *Builder) int {
				x := b.Input(0, types.Int32)
				return b.Add(x, x+5)
			},
		},
		{
			name: "send on non-nop",
			build: func(b *Builder) int {
				x := b.Input(0, types.Int32)
				b.nodes[x].Annotations = []Annotation{SendAnnotation(0, 1)}
				return x
			},
		},
		{
			name: "send to self",
			build: func(b *Builder) int {
				return b.Send(b.Input(0, types.Int32), 1, 1)
			},
		},
		{
			name: "invalid party",
			build: func(b *Builder) int {
				return b.Send(b.Input(0, types.Int32), 0, 3)
			},
		},
		{
			name: "undefined input type",
			build: func(b *Builder) int {
				return b.Input(0, types.Info{})
			},
		},
		{
			name: "invalid output",
			build: func(b *Builder) int {
				b.Input(0, types.Int32)
				return 7
			},
		},
		{
			name: "invalid constant",
			build: func(b *Builder) int {
				return b.Constant(types.Value{Type: types.Int8,
					Data: []uint64{0x1ff}})
			},
		},
	}
	for _, test := range tests {
		b := NewBuilder()
		out := test.build(b)
		if _, err := b.Graph(out); err == nil {
			t.Errorf("%s: Graph succeeded", test.name)
		}
	}

	if _, err := NewBuilder().Graph(0); err == nil {
		t.Errorf("empty graph: Graph succeeded")
	}
}

func TestArity(t *testing.T) {
	tests := []struct {
		op    Operation
		arity int
	}{
		{Input, 0},
		{NOP, 1},
		{MatMul, 2},
		{Operation(200), -1},
	}
	for _, test := range tests {
		if test.op.Arity() != test.arity {
			t.Errorf("%v.Arity: got %d, expected %d",
				test.op, test.op.Arity(), test.arity)
		}
	}

	for op := Operation(0); int(op) < NumOperations; op++ {
		parsed, err := ParseOperation(op.String())
		if err != nil {
			t.Errorf("ParseOperation(%v): %v", op, err)
			continue
		}
		if parsed != op {
			t.Errorf("ParseOperation(%v): got %v", op, parsed)
		}
	}
	if _, err := ParseOperation("div"); err == nil {
		t.Errorf("ParseOperation(div) succeeded")
	}
}

func TestDot(t *testing.T) {
	var buf bytes.Buffer
	sumGraph(t).Dot(&buf)
	out := buf.String()

	if !strings.HasPrefix(out, "digraph G\n{\n") {
		t.Errorf("invalid dot header: %q", out)
	}
	for _, line := range []string{
		"n3\t[label=\"Send(0→1)\\nSend(0→2)\"];",
		"n2 -> n3;",
		"n3 -> output;",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("dot output missing %q", line)
		}
	}
}

func TestPrintStats(t *testing.T) {
	g := sumGraph(t)
	sched, err := g.VerifySchedule()
	if err != nil {
		t.Fatalf("VerifySchedule: %v", err)
	}

	var buf bytes.Buffer
	g.PrintStats(&buf, sched)
	for _, s := range []string{"Total", "P⁰→P¹"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("stats missing %q", s)
		}
	}
}
