package cmd

import (
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <image> [flag=file.csv]...",
	Short: "Replace record types of a codeplug image from CSV files",
	Long: `Replace one or more record types of a codeplug image with the rows of
CSV files and save the image in place.

References from all record types, including the ones not replaced, are
resolved again by name, so they follow records that moved. If any name
cannot be resolved the image is left untouched.

Before the image is overwritten a copy is kept in the backup store; see
"rdtcsv backup".

Examples:
  rdtcsv update radio.rdt cont=contacts.csv
  rdtcsv update --no-backup radio.rdt ch=channels.csv tg=talkgroups.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("csv")
		reqs, err := parseRequests(append(pairs, args[1:]...))
		if err != nil {
			return err
		}
		noBackup, _ := cmd.Flags().GetBool("no-backup")
		return runUpdate(settingsFrom(cmd), args[0], reqs, noBackup, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringArray("csv", nil, "Record type and CSV file as flag=file.csv (repeatable)")
	updateCmd.Flags().Bool("no-backup", false, "Do not keep a copy of the previous image")
}
