//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"fmt"
	"io"

	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/tabulate"
)

// Stats holds statistics about graph operations.
type Stats struct {
	Ops   [NumOperations]int
	Sends int
}

// Stats computes the graph statistics.
func (g *Graph) Stats() Stats {
	var stats Stats
	for _, n := range g.Nodes {
		if int(n.Op) < NumOperations {
			stats.Ops[n.Op]++
		}
		for _, a := range n.Annotations {
			if a.Kind == Send {
				stats.Sends++
			}
		}
	}
	return stats
}

// PrintStats prints the operation statistics and, if sched is not
// nil, the per-edge message counts.
func (g *Graph) PrintStats(out io.Writer, sched *Schedule) {
	stats := g.Stats()

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)

	for op := Operation(0); int(op) < NumOperations; op++ {
		if stats.Ops[op] == 0 {
			continue
		}
		row := tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", stats.Ops[op]))
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", len(g.Nodes))).SetFormat(tabulate.FmtBold)

	tab.Print(out)

	if sched == nil {
		return
	}

	tab = tabulate.New(tabulate.UnicodeLight)
	tab.Header("Edge").SetAlign(tabulate.ML)
	tab.Header("Messages").SetAlign(tabulate.MR)
	for _, from := range ring.Parties() {
		for _, to := range []ring.PartyID{from.Next(), from.Prev()} {
			row := tab.Row()
			row.Column(fmt.Sprintf("%v→%v", from, to))
			row.Column(fmt.Sprintf("%d", sched.Messages[from][to]))
		}
	}
	row = tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", sched.Total())).SetFormat(tabulate.FmtBold)

	tab.Print(out)
}
