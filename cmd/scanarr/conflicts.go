package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Show and resolve match conflicts",
	Long: `Show and resolve match conflicts.

A conflict is a scanned file the server could not match to exactly one
catalog entry. Resolve it by picking one of its candidates.

Examples:
  scanarr conflicts                   # List unresolved conflicts
  scanarr conflicts --all             # Include resolved conflicts
  scanarr conflicts show 3            # Show candidates for conflict #3
  scanarr conflicts resolve 3 438631  # Pick candidate 438631
  scanarr conflicts delete 3          # Discard conflict #3
  scanarr conflicts clear             # Discard all conflicts`,
	RunE: runConflictsList,
}

var conflictsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a conflict's candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runConflictsShow,
}

var conflictsResolveCmd = &cobra.Command{
	Use:   "resolve <id> <candidate-id>",
	Short: "Resolve a conflict with the chosen candidate",
	Args:  cobra.ExactArgs(2),
	RunE:  runConflictsResolve,
}

var conflictsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Discard a conflict",
	Args:  cobra.ExactArgs(1),
	RunE:  runConflictsDelete,
}

var conflictsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard all conflicts",
	RunE:  runConflictsClear,
}

func init() {
	rootCmd.AddCommand(conflictsCmd)
	conflictsCmd.Flags().BoolP("all", "a", false, "Include resolved conflicts")
	conflictsCmd.AddCommand(conflictsShowCmd)
	conflictsCmd.AddCommand(conflictsResolveCmd)
	conflictsCmd.AddCommand(conflictsDeleteCmd)
	conflictsCmd.AddCommand(conflictsClearCmd)
}

func runConflictsList(cmd *cobra.Command, args []string) error {
	showAll, _ := cmd.Flags().GetBool("all")

	client := NewClient(serverURL)
	conflicts, err := client.Conflicts(!showAll)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(conflicts)
		return nil
	}

	if len(conflicts) == 0 {
		fmt.Println("No conflicts")
		return nil
	}

	fmt.Printf("  %-4s %-8s %-10s %-10s %s\n", "ID", "TYPE", "CANDIDATES", "RESOLVED", "FILE")
	for _, c := range conflicts {
		resolved := "no"
		if c.Resolved {
			resolved = "yes"
		}
		fmt.Printf("  %-4d %-8s %-10d %-10s %s\n", c.ID, c.MediaType, len(c.Candidates), resolved, c.FileName)
	}
	return nil
}

func runConflictsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	conflicts, err := client.Conflicts(false)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	for _, c := range conflicts {
		if c.ID != id {
			continue
		}
		if jsonOutput {
			printJSON(c)
			return nil
		}

		fmt.Printf("Conflict %d (%s)\n", c.ID, c.MediaType)
		fmt.Printf("File: %s\n\n", c.FilePath)
		if len(c.Candidates) == 0 {
			fmt.Println("No candidates (no catalog match found)")
			return nil
		}
		fmt.Printf("  %-10s %-40s %-12s %s\n", "ID", "TITLE", "RELEASED", "SCORE")
		for _, cand := range c.Candidates {
			fmt.Printf("  %-10d %-40s %-12s %.2f\n", cand.ExternalID, cand.Title, cand.ReleaseDate, cand.Score)
		}
		return nil
	}
	return fmt.Errorf("conflict %d not found", id)
}

func runConflictsResolve(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	selectedID, err := parseID(args[1])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	c, err := client.ResolveConflict(id, selectedID)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if jsonOutput {
		printJSON(c)
		return nil
	}
	fmt.Printf("Conflict %d resolved with candidate %d\n", c.ID, selectedID)
	return nil
}

func runConflictsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	if err := client.DeleteConflict(id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	fmt.Printf("Conflict %d deleted\n", id)
	return nil
}

func runConflictsClear(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	n, err := client.DeleteAllConflicts()
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	fmt.Printf("%d conflicts deleted\n", n)
	return nil
}
