//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/markkurossi/ringeval/types"
)

const sumJSON = `{
  "nodes": [
    {"op": "input", "type": "i32", "index": 0},
    {"op": "input", "type": "i32", "index": 1},
    {"op": "constant", "value": {"kind": "scalar", "type": "i32", "value": 5}},
    {"op": "add", "deps": [0, 1]},
    {"op": "add", "deps": [3, 2], "name": "total"},
    {"op": "nop", "deps": [4], "annotations": [
      {"kind": "send", "sender": 0, "receiver": 1},
      {"kind": "send", "sender": 0, "receiver": 2}
    ]}
  ],
  "output": 5
}`

func TestUnmarshal(t *testing.T) {
	g, err := Unmarshal([]byte(sumJSON))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(g.Nodes) != 6 {
		t.Fatalf("got %d nodes, expected 6", len(g.Nodes))
	}
	if g.Nodes[2].Op != Constant ||
		!g.Nodes[2].Value.Equal(types.Scalar(types.Int32, 5)) {
		t.Errorf("node 2: got %v", g.Nodes[2])
	}
	if g.Nodes[4].Name != "total" {
		t.Errorf("node 4 name: got %q", g.Nodes[4].Name)
	}
	expected := []Annotation{
		SendAnnotation(0, 1),
		SendAnnotation(0, 2),
	}
	if !reflect.DeepEqual(g.Nodes[5].Annotations, expected) {
		t.Errorf("node 5 annotations: got %v, expected %v",
			g.Nodes[5].Annotations, expected)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	g, err := Unmarshal([]byte(sumJSON))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	var buf bytes.Buffer
	if err := g.Marshal(&buf); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	g2, err := Unmarshal(buf.Bytes())
	if err != nil {
		t.Fatalf("Unmarshal %s: %v", buf.String(), err)
	}
	if g.String() != g2.String() {
		t.Errorf("got %v, expected %v", g2, g)
	}
	for id, n := range g.Nodes {
		if n.String() != g2.Nodes[id].String() {
			t.Errorf("node %d: got %v, expected %v", id, g2.Nodes[id], n)
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	for _, input := range []string{
		`{"nodes":[{"op":"div"}],"output":0}`,
		`{"nodes":[{"op":"input","type":"i32"}],"output":0}`,
		`{"nodes":[{"op":"input","type":"f32","index":0}],"output":0}`,
		`{"nodes":[{"op":"constant"}],"output":0}`,
		`{"nodes":[{"op":"random","type":"i8"},{"op":"nop","deps":[0],` +
			`"annotations":[{"kind":"recv","sender":0,"receiver":1}]}],` +
			`"output":1}`,
		`{"nodes":[null],"output":0}`,
		`{"nodes":[],"output":0}`,
		`not json`,
	} {
		if _, err := Unmarshal([]byte(input)); err == nil {
			t.Errorf("Unmarshal %s succeeded", input)
		}
	}
}
