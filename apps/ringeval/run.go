//
// run.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"os"
	"time"

	"github.com/markkurossi/ringeval"
	"github.com/markkurossi/ringeval/env"
	"github.com/spf13/cobra"
)

func addRunCmd(command *cobra.Command) {
	var configFile string
	var transport string
	var codec string
	var timeout time.Duration
	var noVerify bool
	var stats bool
	var table bool
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run <graph.json> <inputs.json> <parties>",
		Short: "Evaluate a graph in three ring parties",
		Long: "Evaluate a graph in three ring parties. The parties argument " +
			"lists the ownership of each input: a party ID 0, 1, 2, " +
			"public, or secret-shared.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := env.Default()
			if len(configFile) > 0 {
				var err error
				config, err = env.Load(configFile)
				if err != nil {
					return err
				}
			}
			flags := cmd.Flags()
			if flags.Changed("transport") {
				config.Transport = transport
			}
			if flags.Changed("codec") {
				config.Codec = codec
			}
			if flags.Changed("timeout") {
				config.ReceiveTimeout = timeout
			}
			if noVerify {
				config.VerifySchedule = false
			}
			if verbose {
				config.LogLevel = "debug"
			}

			result, err := ringeval.RunFiles(args[0], args[1], args[2],
				config)
			if err != nil {
				return err
			}
			if table {
				ringeval.PrintOutputTable(os.Stdout, result.Outputs)
			} else if err := ringeval.PrintOutputs(os.Stdout,
				result.Outputs); err != nil {
				return err
			}
			if stats {
				result.Timing.Print(os.Stdout, result.Stats)
			}
			return nil
		},
	}

	flags := runCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "configuration file")
	flags.StringVar(&transport, "transport", env.TransportChan,
		"ring transport: chan or pipe")
	flags.StringVar(&codec, "codec", "json", "wire codec: json or proto")
	flags.DurationVar(&timeout, "timeout", 0, "receive timeout")
	flags.BoolVar(&noVerify, "no-verify", false,
		"do not verify the message schedule")
	flags.BoolVarP(&stats, "stats", "s", false, "print timing statistics")
	flags.BoolVarP(&table, "table", "t", false, "print outputs as a table")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	command.AddCommand(runCmd)
}
