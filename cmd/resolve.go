package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/requirekit/loader"
)

var (
	resolveFrom string
	resolveJSON bool
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveFrom, "from", "f", "/", "Directory the require is issued from")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Emit the resolution as JSON")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [specifier...]",
	Short: "Resolve specifiers against the bundle without executing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		l := loader.New(store, nil, loader.DefaultConfig())
		l.SetLogger(newLogger())

		results := make([]map[string]any, 0, len(args))
		for _, spec := range args {
			res, err := l.Resolve(spec, resolveFrom)
			if err != nil {
				return fmt.Errorf("%s: %w", spec, err)
			}
			if resolveJSON {
				results = append(results, map[string]any{
					"specifier": spec,
					"kind":      res.Kind.String(),
					"path":      res.Path,
				})
				continue
			}
			fmt.Printf("%s\t%s\t%s\n", spec, res.Kind, res.Path)
		}
		if resolveJSON {
			fmt.Println(oj.JSON(results, &oj.Options{Indent: 2, Sort: true}))
		}
		return nil
	},
}
