package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Show and manage scan folders",
	Long: `Show and manage scan folders.

Examples:
  scanarr folders                         # List folders
  scanarr folders add /media/movies movies
  scanarr folders add /media/tv series
  scanarr folders disable 2               # Skip folder #2 on future scans
  scanarr folders enable 2
  scanarr folders remove 2`,
	RunE: runFoldersList,
}

var foldersAddCmd = &cobra.Command{
	Use:   "add <path> <movies|series>",
	Short: "Add a scan folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runFoldersAdd,
}

var foldersEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Include a folder in scans",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setFolderActive(args[0], true) },
}

var foldersDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Exclude a folder from scans",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setFolderActive(args[0], false) },
}

var foldersRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a scan folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoldersRemove,
}

func init() {
	rootCmd.AddCommand(foldersCmd)
	foldersCmd.AddCommand(foldersAddCmd)
	foldersCmd.AddCommand(foldersEnableCmd)
	foldersCmd.AddCommand(foldersDisableCmd)
	foldersCmd.AddCommand(foldersRemoveCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}

func runFoldersList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	folders, err := client.Folders()
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(folders)
		return nil
	}

	if len(folders) == 0 {
		fmt.Println("No folders configured")
		return nil
	}

	fmt.Printf("  %-4s %-8s %-8s %s\n", "ID", "TYPE", "ACTIVE", "PATH")
	for _, f := range folders {
		active := "yes"
		if !f.Active {
			active = "no"
		}
		fmt.Printf("  %-4d %-8s %-8s %s\n", f.ID, f.Type, active, f.Path)
	}
	return nil
}

func runFoldersAdd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	f, err := client.AddFolder(args[0], args[1])
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	if jsonOutput {
		printJSON(f)
		return nil
	}
	fmt.Printf("Folder %d added: %s (%s)\n", f.ID, f.Path, f.Type)
	return nil
}

func setFolderActive(idArg string, active bool) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	f, err := client.SetFolderActive(id, active)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if jsonOutput {
		printJSON(f)
		return nil
	}
	state := "enabled"
	if !active {
		state = "disabled"
	}
	fmt.Printf("Folder %d %s\n", f.ID, state)
	return nil
}

func runFoldersRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	if err := client.DeleteFolder(id); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	fmt.Printf("Folder %d removed\n", id)
	return nil
}
