// Package main is the entry point for the gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dx3rd-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dx3rd-api",
	Short: "DX3rd rules gRPC server",
	Long:  `dx3rd-api serves Double Cross 3rd Edition rule automation: timed effect sweeps, weapon bonuses and overflow dice selection.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
