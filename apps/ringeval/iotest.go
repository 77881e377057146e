//
// iotest.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/markkurossi/ringeval/env"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/session"
	"github.com/markkurossi/tabulate"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func addIOTestCmd(command *cobra.Command) {
	var size int64
	var blockSize int
	var transport string
	var cpuprofile string

	ioCmd := &cobra.Command{
		Use:   "iotest",
		Short: "Test ring transport throughput",
		Long: "Test ring transport throughput. Each party sends size bytes " +
			"to its next neighbor while receiving from its previous one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cpuprofile) > 0 {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer pprof.StopCPUProfile()
			}
			return testIO(transport, size, blockSize)
		},
	}

	flags := ioCmd.Flags()
	flags.Int64Var(&size, "size", 64*1024*1024, "bytes to send per party")
	flags.IntVar(&blockSize, "block", 64*1024, "message size")
	flags.StringVar(&transport, "transport", env.TransportPipe,
		"ring transport: chan or pipe")
	flags.StringVar(&cpuprofile, "cpuprofile", "",
		"write cpu profile to `file`")

	command.AddCommand(ioCmd)
}

func testIO(transport string, size int64, blockSize int) error {
	if blockSize <= 0 {
		return xerrors.Errorf("invalid block size %d", blockSize)
	}
	var set *ring.Set
	switch transport {
	case env.TransportChan:
		set = ring.NewChannelSet()
	case env.TransportPipe:
		set = ring.NewPipeSet()
	default:
		return xerrors.Errorf("unknown transport '%s'", transport)
	}

	start := time.Now()
	errs := make([]error, ring.NumParties)
	var wg sync.WaitGroup

	for _, id := range ring.Parties() {
		wg.Add(2)
		ch := set.Parties[id]
		go func(id ring.PartyID) {
			defer wg.Done()
			block := make([]byte, blockSize)
			for sent := int64(0); sent < size; sent += int64(blockSize) {
				if err := ch.TxNext.Send(block); err != nil {
					errs[id] = err
					set.Abort()
					return
				}
			}
		}(id)
		go func(id ring.PartyID) {
			defer wg.Done()
			for recvd := int64(0); recvd < size; {
				data, err := ch.RxPrev.Receive()
				if err != nil {
					errs[id] = err
					set.Abort()
					return
				}
				recvd += int64(len(data))
			}
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Party").SetAlign(tabulate.ML)
	tab.Header("Sent").SetAlign(tabulate.MR)
	tab.Header("Rcvd").SetAlign(tabulate.MR)
	tab.Header("Sent/s").SetAlign(tabulate.MR)

	for _, id := range ring.Parties() {
		stats := set.Parties[id].Stats()
		row := tab.Row()
		row.Column(id.String())
		row.Column(session.FileSize(stats.Sent.Load()).String())
		row.Column(session.FileSize(stats.Recvd.Load()).String())
		row.Column(session.FileSize(
			float64(stats.Sent.Load()) / elapsed.Seconds()).String())
	}
	row := tab.Row()
	row.Column("Time").SetFormat(tabulate.FmtBold)
	row.Column(elapsed.String()).SetFormat(tabulate.FmtBold)
	tab.Print(os.Stdout)

	if err := set.Close(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
