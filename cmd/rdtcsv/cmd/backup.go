package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/rdtcsv/pkg/backup"
)

// backupCmd groups the backup store commands
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "List, restore and delete image backups",
	Long: `Every "rdtcsv update" keeps the previous image in the backup store,
unless --no-backup is given or backups are disabled in the configuration.

Examples:
  rdtcsv backup list
  rdtcsv backup restore 2Fq3... radio.rdt
  rdtcsv backup delete 2Fq3...`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored backups, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listBackups(settingsFrom(cmd), cmd.OutOrStdout())
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id> [file]",
	Short: "Write a backup back to its original path or to file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 2 {
			target = args[1]
		}
		return restoreBackup(settingsFrom(cmd), args[0], target)
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteBackup(settingsFrom(cmd), args[0])
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd, backupRestoreCmd, backupDeleteCmd)
}

func openBackups(dir string) (*backup.Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return backup.Open(dir)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func listBackups(s *settings, w io.Writer) error {
	store, err := openBackups(s.cfg.Backup.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	infos, err := store.List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSIZE\tPATH")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", info.ID, info.Created.Local().Format("2006-01-02 15:04:05"), info.Size, info.Path)
	}
	return tw.Flush()
}

func restoreBackup(s *settings, rawID, target string) error {
	id, err := backup.ParseID(rawID)
	if err != nil {
		return err
	}
	store, err := openBackups(s.cfg.Backup.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Read(id)
	if err != nil {
		return err
	}
	if target == "" {
		target = snap.Path
	}
	if err := os.WriteFile(target, snap.Data, 0644); err != nil {
		return fmt.Errorf("failed to restore %s: %w", target, err)
	}
	s.logger.Info("backup restored", "id", id.String(), "file", target, "size", len(snap.Data))
	return nil
}

func deleteBackup(s *settings, rawID string) error {
	id, err := backup.ParseID(rawID)
	if err != nil {
		return err
	}
	store, err := openBackups(s.cfg.Backup.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(id); err != nil {
		return err
	}
	s.logger.Info("backup deleted", "id", id.String())
	return nil
}
