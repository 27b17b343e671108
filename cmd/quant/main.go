// Package main provides an offline calculator over the Dixon-Coles engine.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:          "quant",
	Short:        "Offline match probability and pricing calculator",
	Long:         `Computes Dixon-Coles match probabilities, value bet edges and arbitrage margins without a database.`,
	Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.AddCommand(newPredictCmd(), newRatesCmd(), newValueCmd(), newArbCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
