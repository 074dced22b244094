// Package depscan statically extracts require() specifiers from JavaScript
// source. It drives the deps CLI command and lets bundle tooling precompute a
// module's dependency closure without executing anything.
package depscan

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// requireQuery captures require calls whose single argument is a plain string
// literal. Computed or concatenated specifiers are invisible to static
// analysis and are deliberately not matched.
const requireQuery = `
(call_expression
  function: (identifier) @callee
  arguments: (arguments . (string) @specifier .)
  (#eq? @callee "require"))
`

// Requires parses source as JavaScript and returns every statically visible
// require specifier, deduplicated and sorted.
func Requires(source []byte) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse javascript: %w", err)
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(requireQuery), javascript.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("compile require query: %w", err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	seen := make(map[string]struct{})
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			if q.CaptureNameForId(c.Index) != "specifier" {
				continue
			}
			spec := unquote(c.Node.Content(source))
			if spec != "" {
				seen[spec] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for spec := range seen {
		out = append(out, spec)
	}
	sort.Strings(out)
	return out, nil
}

// unquote strips the surrounding quote pair from a string literal node.
// Escape sequences are kept verbatim; specifiers containing them are not
// resolvable anyway.
func unquote(lit string) string {
	if len(lit) < 2 {
		return ""
	}
	open := lit[0]
	if (open != '"' && open != '\'') || lit[len(lit)-1] != open {
		return lit
	}
	return lit[1 : len(lit)-1]
}
