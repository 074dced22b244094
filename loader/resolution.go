package loader

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"

	"github.com/agentic-research/requirekit/jspath"
)

// Kind tags the outcome of a resolution step.
type Kind int

const (
	// KindNotFound means the step had no match; the pipeline tries the next
	// strategy. Only the final exhaustion surfaces as ErrModuleNotFound.
	KindNotFound Kind = iota
	// KindFile is a concrete asset path ready to load.
	KindFile
	// KindNative is a registered host binding, addressed by its name.
	KindNative
	// KindExternalCommonJS is the companion bundle of a native binding,
	// addressed by the full specifier.
	KindExternalCommonJS
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindNative:
		return "native"
	case KindExternalCommonJS:
		return "external-commonjs"
	default:
		return "not-found"
	}
}

// Resolution is the tagged result of resolving a specifier. Path holds the
// asset path for files and the specifier for native/external matches.
type Resolution struct {
	Kind Kind
	Path string
}

var notFound = Resolution{Kind: KindNotFound}

// strategy is one step of the bare-specifier pipeline. Strategies report
// no-match through KindNotFound; errors are real failures that abort the
// whole resolution.
type strategy func(l *Loader, spec string, paths []string) (Resolution, error)

// bareStrategies is the ordered pipeline for specifiers that are neither
// relative nor absolute: host capability, CommonJS sibling convention,
// node_modules walk-up, then the legacy treat-as-absolute fallback.
var bareStrategies = []strategy{
	(*Loader).resolveNative,
	(*Loader).resolveSibling,
	(*Loader).resolveNodeModules,
	(*Loader).resolveLegacyAbsolute,
}

// resolveSpec classifies the specifier and runs the matching resolution
// path. dir is the requesting module's directory; paths its node_modules
// search list.
func (l *Loader) resolveSpec(spec, dir string, paths []string) (Resolution, error) {
	switch {
	case strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"):
		id := jspath.Normalize(dir + "/" + spec)
		return l.resolveFileOrDirectory(id)
	case strings.HasPrefix(spec, "/"):
		return l.resolveFileOrDirectory(jspath.Normalize(spec))
	default:
		for _, step := range bareStrategies {
			res, err := step(l, spec, paths)
			if err != nil {
				return notFound, err
			}
			if res.Kind != KindNotFound {
				return res, nil
			}
		}
		return notFound, nil
	}
}

// resolveFileOrDirectory tries the id as a file first, then as a directory.
func (l *Loader) resolveFileOrDirectory(id string) (Resolution, error) {
	if res := l.resolveFile(id); res.Kind != KindNotFound {
		return res, nil
	}
	return l.resolveDirectory(id)
}

// resolveFile probes the exact id, then id+".js", then id+".json". First hit
// wins; no further probing.
func (l *Loader) resolveFile(id string) Resolution {
	for _, candidate := range []string{id, id + ".js", id + ".json"} {
		if l.store.Exists(candidate) {
			l.log.Debug("resolved as file", zap.String("id", id), zap.String("path", candidate))
			return Resolution{Kind: KindFile, Path: candidate}
		}
	}
	return notFound
}

// resolveDirectory applies package.json main-field resolution, then index.js,
// then index.json.
func (l *Loader) resolveDirectory(id string) (Resolution, error) {
	pkgPath := id + "/package.json"
	if l.store.Exists(pkgPath) {
		main, err := l.packageMain(pkgPath)
		if err != nil {
			return notFound, err
		}
		if main != "" {
			return l.resolveFileOrDirectory(jspath.Normalize(id + "/" + main))
		}
	}
	if res := l.resolveFile(id + "/index.js"); res.Kind != KindNotFound {
		return res, nil
	}
	if l.store.Exists(id + "/index.json") {
		return Resolution{Kind: KindFile, Path: id + "/index.json"}, nil
	}
	return notFound, nil
}

// resolveNative maps a bare id to a host capability by its first segment.
// An id that names a registered binding exactly resolves to the binding; a
// sub-path resolves to the binding's companion CommonJS bundle when one is
// declared. Anything else is a no-match, never an error; the caller falls
// through to the remaining strategies.
func (l *Loader) resolveNative(spec string, _ []string) (Resolution, error) {
	if l.natives == nil {
		return notFound, nil
	}
	segment := spec
	if i := strings.IndexByte(spec, '/'); i >= 0 {
		segment = spec[:i]
	}
	_, bound := l.natives.Lookup(segment)
	external := l.natives.IsExternalCommonJS(segment)
	if !bound && !external {
		return notFound, nil
	}
	if spec == segment && bound {
		return Resolution{Kind: KindNative, Path: segment}, nil
	}
	if external {
		if _, ok := l.natives.ExternalCommonJSSource(spec); ok {
			return Resolution{Kind: KindExternalCommonJS, Path: spec}, nil
		}
	}
	return notFound, nil
}

// resolveSibling applies the CommonJS packaging convention for single-segment
// ids: the exact asset /<name>/<name>.js (no extension probing), then
// /<name> as a directory.
func (l *Loader) resolveSibling(spec string, _ []string) (Resolution, error) {
	if strings.Contains(spec, "/") {
		return notFound, nil
	}
	sibling := "/" + spec + "/" + spec + ".js"
	if l.store.Exists(sibling) {
		return Resolution{Kind: KindFile, Path: sibling}, nil
	}
	return l.resolveDirectory("/" + spec)
}

// resolveNodeModules walks the requesting module's ancestor node_modules
// directories, nearest first.
func (l *Loader) resolveNodeModules(spec string, paths []string) (Resolution, error) {
	for _, dir := range paths {
		res, err := l.resolveFileOrDirectory(jspath.Join(dir, spec))
		if err != nil {
			return notFound, err
		}
		if res.Kind != KindNotFound {
			return res, nil
		}
	}
	return notFound, nil
}

// resolveLegacyAbsolute treats the bare specifier as if it were rooted.
func (l *Loader) resolveLegacyAbsolute(spec string, _ []string) (Resolution, error) {
	return l.resolveFileOrDirectory(jspath.Normalize("/" + spec))
}

// packageMain reads a package.json and returns its main field, or "".
func (l *Loader) packageMain(path string) (string, error) {
	text, err := l.store.ReadText(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	parsed, err := oj.ParseString(text)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedJSON, path, err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return "", nil
	}
	main, _ := obj["main"].(string)
	return main, nil
}

// nodeModulesPaths computes the ordered node_modules search list for an
// absolute directory: one entry per ancestor whose own name is not
// node_modules, nearest first, always ending with the root /node_modules.
func nodeModulesPaths(dir string) []string {
	dir = jspath.Resolve(dir)
	if dir == "/" {
		return []string{"/node_modules"}
	}
	parts := strings.Split(dir, "/")
	paths := make([]string, 0, len(parts))
	for i := len(parts) - 1; i > 0; i-- {
		if parts[i] == "node_modules" || parts[i] == "" {
			continue
		}
		paths = append(paths, strings.Join(parts[:i+1], "/")+"/node_modules")
	}
	return append(paths, "/node_modules")
}
