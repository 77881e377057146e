//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	command := &cobra.Command{
		Use:          "ringeval",
		Short:        "Three-party ring evaluation of computation graphs",
		SilenceUsage: true,
	}
	addRunCmd(command)
	addCheckCmd(command)
	addDotCmd(command)
	addGenCmd(command)
	addIOTestCmd(command)

	if err := command.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ringeval: %s\n", err)
		os.Exit(1)
	}
}
