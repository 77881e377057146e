//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"encoding/json"
	"io"
	"os"

	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"golang.org/x/xerrors"
)

type jsonGraph struct {
	Nodes  []*jsonNode `json:"nodes"`
	Output int         `json:"output"`
}

type jsonNode struct {
	Name        string           `json:"name,omitempty"`
	Op          string           `json:"op"`
	Deps        []int            `json:"deps,omitempty"`
	Type        string           `json:"type,omitempty"`
	Index       *int             `json:"index,omitempty"`
	Value       *types.Value     `json:"value,omitempty"`
	Annotations []jsonAnnotation `json:"annotations,omitempty"`
}

type jsonAnnotation struct {
	Kind     string       `json:"kind"`
	Sender   ring.PartyID `json:"sender"`
	Receiver ring.PartyID `json:"receiver"`
}

// Marshal marshals the graph in the JSON graph format.
func (g *Graph) Marshal(out io.Writer) error {
	jg := &jsonGraph{
		Output: g.Output,
	}
	for _, n := range g.Nodes {
		jn := &jsonNode{
			Name: n.Name,
			Op:   n.Op.String(),
			Deps: n.Deps,
		}
		switch n.Op {
		case Input:
			index := n.Index
			jn.Index = &index
			jn.Type = n.Type.ShortString()
		case Random:
			jn.Type = n.Type.ShortString()
		case Constant:
			value := n.Value
			jn.Value = &value
		}
		for _, a := range n.Annotations {
			jn.Annotations = append(jn.Annotations, jsonAnnotation{
				Kind:     a.Kind.String(),
				Sender:   a.Sender,
				Receiver: a.Receiver,
			})
		}
		jg.Nodes = append(jg.Nodes, jn)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(jg)
}

// Unmarshal parses the JSON graph format. The returned graph is
// validated.
func Unmarshal(data []byte) (*Graph, error) {
	var jg jsonGraph
	if err := json.Unmarshal(data, &jg); err != nil {
		return nil, err
	}
	g := &Graph{
		Output: jg.Output,
	}
	for id, jn := range jg.Nodes {
		if jn == nil {
			return nil, xerrors.Errorf("node %d: missing", id)
		}
		op, err := ParseOperation(jn.Op)
		if err != nil {
			return nil, xerrors.Errorf("node %d: %w", id, err)
		}
		n := &Node{
			ID:   id,
			Name: jn.Name,
			Op:   op,
			Deps: jn.Deps,
		}
		switch op {
		case Input:
			if jn.Index == nil {
				return nil, xerrors.Errorf("node %d: input index missing", id)
			}
			n.Index = *jn.Index
			fallthrough

		case Random:
			n.Type, err = types.Parse(jn.Type)
			if err != nil {
				return nil, xerrors.Errorf("node %d: %w", id, err)
			}

		case Constant:
			if jn.Value == nil {
				return nil, xerrors.Errorf("node %d: constant value missing", id)
			}
			n.Value = *jn.Value
		}
		for _, ja := range jn.Annotations {
			if ja.Kind != Send.String() {
				return nil, xerrors.Errorf("node %d: unknown annotation '%s'",
					id, ja.Kind)
			}
			n.Annotations = append(n.Annotations,
				SendAnnotation(ja.Sender, ja.Receiver))
		}
		g.Nodes = append(g.Nodes, n)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Load loads the graph from the JSON graph file.
func Load(file string) (*Graph, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	g, err := Unmarshal(data)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", file, err)
	}
	return g, nil
}
