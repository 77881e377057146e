//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"fmt"
	"io"
)

// Dot creates graphviz dot output of the graph. Synchronization nodes
// are drawn as ellipses labeled with their Send annotations.
func (g *Graph) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph G\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for id, n := range g.Nodes {
		if n.IsSync() {
			continue
		}
		label := n.Op.String()
		if len(n.Name) > 0 {
			label = n.Name + "\\n" + label
		}
		fmt.Fprintf(out, "    n%d\t[label=\"%s\"];\n", id, label)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=ellipse];\n")
	for id, n := range g.Nodes {
		if !n.IsSync() {
			continue
		}
		var label string
		for idx, a := range n.Annotations {
			if idx > 0 {
				label += "\\n"
			}
			label += a.String()
		}
		fmt.Fprintf(out, "    n%d\t[label=\"%s\"];\n", id, label)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {  rank=same")
	for id, n := range g.Nodes {
		if n.Op == Input {
			fmt.Fprintf(out, "; n%d", id)
		}
	}
	fmt.Fprintf(out, ";}\n")

	for id, n := range g.Nodes {
		for _, dep := range n.Deps {
			fmt.Fprintf(out, "  n%d -> n%d;\n", dep, id)
		}
	}
	fmt.Fprintf(out, "  n%d -> output;\n", g.Output)
	fmt.Fprintf(out, "}\n")
}
