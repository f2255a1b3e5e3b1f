package cmd

import (
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <image> [flag=file.csv]...",
	Short: "Export record types from a codeplug image to CSV files",
	Long: `Export one or more record types of a codeplug image to CSV files.
Each record type is selected by the flag defined in the schema.

References are written as the name of the referenced record. When a
reference cannot be named, every problem is reported and no file is
written.

Examples:
  rdtcsv export radio.rdt ch=channels.csv cont=contacts.csv
  rdtcsv export radio.rdt --csv ch=channels.csv --csv cont=contacts.csv
  rdtcsv export --sc radio.bin tg=talkgroups.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("csv")
		reqs, err := parseRequests(append(pairs, args[1:]...))
		if err != nil {
			return err
		}
		return runExport(settingsFrom(cmd), args[0], reqs, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringArray("csv", nil, "Record type and CSV file as flag=file.csv (repeatable)")
}
