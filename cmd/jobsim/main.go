// Command jobsim is the CLI front-end for the discrete-event worker-pool
// simulator. The CLI, argument parsing, and report printing are external
// collaborators of the simulation core; this package wires them together.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobsim",
		Short: "Discrete-event simulator for a tiered serverless worker pool",
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}
