package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validTranscodeStatuses = []string{"pending", "queued", "in_progress", "completed", "failed"}

var transcodeCmd = &cobra.Command{
	Use:   "transcode",
	Short: "Track and update transcode status",
	Long: `Track and update transcode status.

Examples:
  scanarr transcode set movie 12 queued       # Mark movie #12 as queued
  scanarr transcode set episode 7 completed
  scanarr transcode set series 3 queued       # Series and all its episodes
  scanarr transcode list pending              # Everything awaiting transcode`,
}

var transcodeSetCmd = &cobra.Command{
	Use:   "set <movie|episode|series> <id> <status>",
	Short: "Set transcode status for an entry",
	Long:  "Setting a series status cascades to all of its episodes atomically.",
	Args:  cobra.ExactArgs(3),
	RunE:  runTranscodeSet,
}

var transcodeListCmd = &cobra.Command{
	Use:   "list <status>",
	Short: "List entries with the given transcode status",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscodeList,
}

func init() {
	rootCmd.AddCommand(transcodeCmd)
	transcodeCmd.AddCommand(transcodeSetCmd)
	transcodeCmd.AddCommand(transcodeListCmd)
}

func runTranscodeSet(cmd *cobra.Command, args []string) error {
	target := strings.ToLower(args[0])
	switch target {
	case "movie", "episode", "series":
	default:
		return fmt.Errorf("invalid target %q, must be movie, episode or series", args[0])
	}

	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	status := strings.ToLower(args[2])
	valid := false
	for _, s := range validTranscodeStatuses {
		if status == s {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid status %q, valid statuses: %s", args[2], strings.Join(validTranscodeStatuses, ", "))
	}

	client := NewClient(serverURL)
	resp, err := client.SetTranscodeStatus(target, id, status)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if target == "series" {
		fmt.Printf("Series %d and its episodes set to %s\n", resp.ID, resp.Status)
	} else {
		fmt.Printf("%s %d set to %s\n", strings.ToUpper(target[:1])+target[1:], resp.ID, resp.Status)
	}
	return nil
}

func runTranscodeList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.ListByStatus(strings.ToLower(args[0]))
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Movies) == 0 && len(resp.Episodes) == 0 {
		fmt.Printf("Nothing with status %q\n", resp.Status)
		return nil
	}

	if len(resp.Movies) > 0 {
		fmt.Printf("Movies (%d):\n", len(resp.Movies))
		fmt.Printf("  %-4s %-40s %s\n", "ID", "TITLE", "FILE")
		for _, m := range resp.Movies {
			fmt.Printf("  %-4d %-40s %s\n", m.ID, m.Title, m.File.Path)
		}
	}
	if len(resp.Episodes) > 0 {
		if len(resp.Movies) > 0 {
			fmt.Println()
		}
		fmt.Printf("Episodes (%d):\n", len(resp.Episodes))
		fmt.Printf("  %-4s %-8s %-40s %s\n", "ID", "S/E", "TITLE", "FILE")
		for _, e := range resp.Episodes {
			fmt.Printf("  %-4d S%02dE%02d   %-40s %s\n", e.ID, e.Season, e.Episode, e.Title, e.File.Path)
		}
	}
	return nil
}
