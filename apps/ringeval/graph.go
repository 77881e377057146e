//
// graph.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/protocols"
	"github.com/markkurossi/ringeval/types"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func addCheckCmd(command *cobra.Command) {
	var dump bool

	checkCmd := &cobra.Command{
		Use:   "check <graph.json>",
		Short: "Validate a graph and verify its message schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.Load(args[0])
			if err != nil {
				return err
			}
			sched, err := g.VerifySchedule()
			if err != nil {
				return xerrors.Errorf("%s: %w", args[0], err)
			}
			fmt.Printf("graph %s\n", g)
			if dump {
				g.Dump()
			}
			g.PrintStats(os.Stdout, sched)
			return nil
		},
	}
	checkCmd.Flags().BoolVarP(&dump, "dump", "d", false, "dump graph nodes")

	command.AddCommand(checkCmd)
}

func addDotCmd(command *cobra.Command) {
	dotCmd := &cobra.Command{
		Use:   "dot <graph.json>",
		Short: "Print the graph in graphviz dot format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.Load(args[0])
			if err != nil {
				return err
			}
			g.Dot(os.Stdout)
			return nil
		},
	}
	command.AddCommand(dotCmd)
}

func addGenCmd(command *cobra.Command) {
	var typeName string
	var count int
	var dims string
	var output string

	genCmd := &cobra.Command{
		Use:       "gen sum|matmul|swap",
		Short:     "Generate an example protocol graph",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"sum", "matmul", "swap"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := types.Parse(typeName)
			if err != nil {
				return err
			}
			var g *graph.Graph
			switch args[0] {
			case "sum":
				g, err = protocols.Sum(t, count)
			case "matmul":
				var d []int
				d, err = parseDims(dims)
				if err != nil {
					return err
				}
				g, err = protocols.MatMul(types.MatrixOf(t, d[0], d[1]),
					types.MatrixOf(t, d[1], d[2]))
			case "swap":
				g, err = protocols.Swap(t)
			}
			if err != nil {
				return err
			}
			out := os.Stdout
			if len(output) > 0 {
				out, err = os.Create(output)
				if err != nil {
					return err
				}
				defer out.Close()
			}
			return g.Marshal(out)
		},
	}

	flags := genCmd.Flags()
	flags.StringVar(&typeName, "type", "i32", "value type")
	flags.IntVarP(&count, "n", "n", 3, "number of sum inputs")
	flags.StringVar(&dims, "dims", "5x5x5",
		"matmul dimensions: rows of A x cols of A x cols of B")
	flags.StringVarP(&output, "output", "o", "", "output file")

	command.AddCommand(genCmd)
}

func parseDims(dims string) ([]int, error) {
	parts := strings.Split(dims, "x")
	if len(parts) != 3 {
		return nil, xerrors.Errorf("invalid dimensions '%s'", dims)
	}
	var result []int
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v <= 0 {
			return nil, xerrors.Errorf("invalid dimension '%s'", part)
		}
		result = append(result, v)
	}
	return result, nil
}
