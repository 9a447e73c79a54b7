package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gbmsim",
		Short: "Geometric Brownian Motion path simulation service",
		Long: `gbmsim simulates sample paths of a Geometric Brownian Motion process.

It serves simulations over an HTTP API (gbmsim serve) or runs a single
path from the command line (gbmsim simulate).`,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newSimulateCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gbmsim version %s\n", version)
		},
	}
}
