//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package ringeval evaluates compiled computation graphs between
// three parties connected in a ring.
package ringeval

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/markkurossi/ringeval/env"
	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/session"
	"github.com/markkurossi/ringeval/types"
	"github.com/markkurossi/tabulate"
)

// RunFiles loads the graph and inputs from their JSON files and runs
// an evaluation session. The tags are the comma-separated ownership
// tags of the inputs.
func RunFiles(graphFile, inputsFile, tags string, config *env.Config) (
	*session.Result, error) {

	g, err := graph.Load(graphFile)
	if err != nil {
		return nil, err
	}
	inputs, err := types.LoadValues(inputsFile)
	if err != nil {
		return nil, err
	}
	ownerships, err := session.ParseOwnerships(tags)
	if err != nil {
		return nil, err
	}
	return session.Run(g, inputs, ownerships, config)
}

// PrintOutputs prints the output of each party in the value JSON
// format.
func PrintOutputs(out io.Writer, outputs [ring.NumParties]types.Value) error {
	for id, output := range outputs {
		data, err := json.Marshal(output)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Party %d: got output %s\n", id, data)
	}
	return nil
}

// PrintOutputTable prints the party outputs as a table.
func PrintOutputTable(out io.Writer, outputs [ring.NumParties]types.Value) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Party").SetAlign(tabulate.ML)
	tab.Header("Type").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.ML)

	for _, id := range ring.Parties() {
		row := tab.Row()
		row.Column(id.String())
		row.Column(outputs[id].Type.ShortString())
		row.Column(outputs[id].String())
	}
	tab.Print(out)
}
