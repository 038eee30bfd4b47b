// Package main is the entry point for the dungeon orchestrator server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dungeon-api",
	Short: "Dungeon instance orchestrator",
	Long:  `dungeon-api runs the dungeon instance orchestrator: instanced session matchmaking, difficulty-scaled encounters, boss state machines, and participant progression.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
