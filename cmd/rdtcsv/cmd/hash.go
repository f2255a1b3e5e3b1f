package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/rdtcsv/pkg/crc"
)

// hashCmd prints name hashes, which is how enumerators and record type
// flags are looked up.
var hashCmd = &cobra.Command{
	Use:   "hash <text>...",
	Short: "Print the case-insensitive hash of names",
	Long: `Print the case-insensitive CRC-32 of each argument, as used to look up
names, enumerators and record type flags.

Examples:
  rdtcsv hash Alice alice ALICE`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		printHashes(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func printHashes(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintf(w, "0x%08x  %s\n", crc.StringLower(name), name)
	}
}
