package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/requirekit/api"
	"github.com/agentic-research/requirekit/internal/depscan"
	"github.com/agentic-research/requirekit/jspath"
	"github.com/agentic-research/requirekit/loader"
)

var (
	depsClosure bool
	depsJSON    bool
)

func init() {
	depsCmd.Flags().BoolVar(&depsClosure, "closure", false, "Follow resolved files transitively")
	depsCmd.Flags().BoolVar(&depsJSON, "json", false, "Emit the dependency list as JSON")
	rootCmd.AddCommand(depsCmd)
}

var depsCmd = &cobra.Command{
	Use:   "deps [module path]",
	Short: "List the require() specifiers a bundled module names statically",
	Long: `Parses the named module (a virtual path inside the bundle, e.g. /app.js)
and lists every require() call whose argument is a plain string literal.
With --closure, each file-resolved dependency is scanned in turn and the
transitive set of resolved asset paths is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		entry := args[0]
		if !strings.HasPrefix(entry, "/") {
			entry = "/" + entry
		}

		var out []string
		if depsClosure {
			l := loader.New(store, nil, loader.DefaultConfig())
			l.SetLogger(newLogger())
			seen := map[string]struct{}{}
			if err := scanClosure(l, store, entry, seen); err != nil {
				return err
			}
			delete(seen, entry)
			for path := range seen {
				out = append(out, path)
			}
			sort.Strings(out)
		} else {
			source, err := store.ReadText(entry)
			if err != nil {
				return err
			}
			out, err = depscan.Requires([]byte(source))
			if err != nil {
				return err
			}
		}

		if depsJSON {
			fmt.Println(oj.JSON(out, &oj.Options{Indent: 2}))
			return nil
		}
		for _, line := range out {
			fmt.Println(line)
		}
		return nil
	},
}

// scanClosure walks the static require graph from path, recording every
// file-resolved asset. Native and external specifiers terminate a branch;
// unresolvable specifiers are reported and skipped, since dynamic feature
// detection via try/require is a common pattern.
func scanClosure(l *loader.Loader, store api.AssetStore, path string, seen map[string]struct{}) error {
	if _, ok := seen[path]; ok {
		return nil
	}
	seen[path] = struct{}{}
	if strings.HasSuffix(path, ".json") {
		return nil
	}

	source, err := store.ReadText(path)
	if err != nil {
		return err
	}
	specs, err := depscan.Requires([]byte(source))
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	dir := jspath.Dirname(path)
	for _, spec := range specs {
		res, err := l.Resolve(spec, dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unresolved: %s (from %s)\n", spec, path)
			continue
		}
		if res.Kind != loader.KindFile {
			continue
		}
		if err := scanClosure(l, store, res.Path, seen); err != nil {
			return err
		}
	}
	return nil
}
