package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/requirekit/asset"
)

var indexOutput string

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "Write the index to a file instead of stdout")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [resources]",
	Short: "Generate the bundle file index for a resources directory",
	Long: `Writes the JSON file index a directory bundle answers existence checks
from. Keys are root-marker-prefixed virtual paths; values are the asset sizes
in bytes. Ship the output as index.json at the bundle root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		index := map[string]any{}
		walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !packExtensions[filepath.Ext(path)] {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(source, path)
			if err != nil {
				return err
			}
			virtual := strings.ReplaceAll(rel, string(filepath.Separator), "/")
			index[asset.DefaultRootMarker+"/"+virtual] = info.Size()
			return nil
		})
		if walkErr != nil {
			return fmt.Errorf("walk resources: %w", walkErr)
		}

		out := oj.JSON(index, &oj.Options{Indent: 2, Sort: true})
		if indexOutput == "" {
			fmt.Println(out)
			return nil
		}
		if err := os.WriteFile(indexOutput, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write index: %w", err)
		}
		fmt.Printf("Indexed %d assets into %s\n", len(index), indexOutput)
		return nil
	},
}
