package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// blankCmd represents the blank command
var blankCmd = &cobra.Command{
	Use:   "blank <image>",
	Short: "Create an erased codeplug image",
	Long: `Create a codeplug image with every byte erased, ready to be filled
with "rdtcsv update". The format is one of the image formats of the schema.

Examples:
  rdtcsv blank --format rdt new.rdt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		force, _ := cmd.Flags().GetBool("force")
		return runBlank(settingsFrom(cmd), args[0], format, force)
	},
}

func init() {
	rootCmd.AddCommand(blankCmd)
	blankCmd.Flags().String("format", "rdt", "Image format")
	blankCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runBlank(s *settings, path, format string, force bool) error {
	layout, err := s.layout()
	if err != nil {
		return err
	}
	if fileExists(path) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	img, err := layout.BlankImage(path, format)
	if err != nil {
		return err
	}
	if err := img.Save(); err != nil {
		return err
	}
	s.logger.Info("blank image created", "file", path, "format", format, "size", len(img.Raw))
	return nil
}
