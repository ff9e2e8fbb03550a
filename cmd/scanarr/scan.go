package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Trigger a library scan",
	Long: `Trigger a library scan.

The scan runs in the background on the server. If a scan is already
running the server rejects the trigger.

Examples:
  scanarr scan          # Start a scan
  scanarr status        # Check whether it is still running`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.Scan(); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	fmt.Println("Scan started")
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
