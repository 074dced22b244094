package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/requirekit/asset"
)

// packExtensions are the asset types a bundle serves. Everything else in the
// resources tree (images, fonts) is shipped by other means.
var packExtensions = map[string]bool{
	".js":   true,
	".json": true,
}

func init() {
	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack [resources] [output.db]",
	Short: "Pack a resources directory into a SQLite asset bundle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		output := args[1]

		w, err := asset.NewDBWriter(output)
		if err != nil {
			return err
		}

		count := 0
		walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !packExtensions[filepath.Ext(path)] {
				return nil
			}
			body, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(source, path)
			if err != nil {
				return err
			}
			virtual := "/" + strings.ReplaceAll(rel, string(filepath.Separator), "/")
			if err := w.Add(virtual, string(body)); err != nil {
				return err
			}
			count++
			return nil
		})
		if walkErr != nil {
			_ = w.Close()
			return fmt.Errorf("walk resources: %w", walkErr)
		}
		if err := w.Close(); err != nil {
			return err
		}

		fmt.Printf("Packed %d assets into %s\n", count, output)
		return nil
	},
}
