// Package loader implements CommonJS resolve-and-load over an abstract asset
// store: specifier classification, extension and package.json probing,
// node_modules walk-up, native-binding dispatch, and an identity-stable
// module cache with the cache-before-execute discipline circular requires
// depend on.
package loader

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"

	"github.com/agentic-research/requirekit/api"
	"github.com/agentic-research/requirekit/jspath"
)

// Config carries loader tuning. All state lives on the Loader instance, so
// multiple isolated loaders can coexist in one process.
type Config struct {
	// ResolveCacheSize bounds the (directory, specifier) resolution memo.
	// Zero or negative disables memoization. The module cache itself is
	// unbounded; exports identity must survive for the loader's lifetime.
	ResolveCacheSize int
	// Globals are host values handed to every sandbox.
	Globals map[string]any
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{ResolveCacheSize: 512}
}

// Loader owns the module cache and runs the resolution pipeline. It is
// single-threaded by contract: resolution, existence checks, and body
// execution all happen on the caller's stack.
type Loader struct {
	store   api.AssetStore
	engine  api.Engine
	natives api.NativeProvider
	cfg     Config
	log     *zap.Logger

	modules map[string]*Module
	memo    *lru.Cache[string, Resolution]
}

// New creates a loader over the given store. engine may be nil for
// resolution-only use; loading a JavaScript module then fails with
// ErrNoEngine.
func New(store api.AssetStore, engine api.Engine, cfg Config) *Loader {
	l := &Loader{
		store:   store,
		engine:  engine,
		cfg:     cfg,
		log:     zap.NewNop(),
		modules: make(map[string]*Module),
	}
	if cfg.ResolveCacheSize > 0 {
		// lru.New only fails for a non-positive size
		l.memo, _ = lru.New[string, Resolution](cfg.ResolveCacheSize)
	}
	return l
}

// SetNativeProvider wires the host's capability registry.
func (l *Loader) SetNativeProvider(p api.NativeProvider) { l.natives = p }

// SetLogger replaces the no-op logger.
func (l *Loader) SetLogger(lg *zap.Logger) { l.log = lg }

// RunEntry loads and executes the program's first module under the id ".".
// The entry module runs in ambient mode: its bindings go into the global
// scope rather than an isolated closure, so it sees the host's globals the
// way an application bootstrap expects.
func (l *Loader) RunEntry(source, filename string) (*Module, error) {
	m := l.newModule(".", filename, nil)
	l.modules[m.id] = m
	err := l.execute(m, source, true)
	m.loaded = true
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve runs the resolution pipeline for a specifier as if required from a
// module located in fromDir, without loading anything that executes.
func (l *Loader) Resolve(spec, fromDir string) (Resolution, error) {
	res, err := l.resolveFrom(spec, fromDir, nodeModulesPaths(fromDir))
	if err != nil {
		return notFound, err
	}
	if res.Kind == KindNotFound {
		return notFound, fmt.Errorf("%w: %s", ErrModuleNotFound, spec)
	}
	return res, nil
}

// Module returns the cached module record for an id, when present.
func (l *Loader) Module(id string) (*Module, bool) {
	m, ok := l.cachedModule(id)
	return m, ok
}

// ClearCache drops every cached module and memoized resolution. The host's
// live-reload path calls this; in-flight exports references stay valid, new
// requires re-resolve from scratch.
func (l *Loader) ClearCache() {
	l.modules = make(map[string]*Module)
	if l.memo != nil {
		l.memo.Purge()
	}
}

// resolveFrom memoizes resolveSpec per (directory, specifier). Only found
// results are memoized: the store's index is immutable, but native bindings
// may be registered after a miss.
func (l *Loader) resolveFrom(spec, dir string, paths []string) (Resolution, error) {
	key := dir + "\x00" + spec
	if l.memo != nil {
		if res, ok := l.memo.Get(key); ok {
			return res, nil
		}
	}
	res, err := l.resolveSpec(spec, dir, paths)
	if err != nil {
		return notFound, err
	}
	if l.memo != nil && res.Kind != KindNotFound {
		l.memo.Add(key, res)
	}
	return res, nil
}

// cachedModule looks an id up under its three aliases: exact, trailing
// "/index" stripped, and "/index" appended. A directory-resolved module and
// its file-resolved alias collapse to one cache entry this way.
func (l *Loader) cachedModule(id string) (*Module, bool) {
	if m, ok := l.modules[id]; ok {
		return m, true
	}
	if stripped := strings.TrimSuffix(id, "/index"); stripped != id {
		if m, ok := l.modules[stripped]; ok {
			return m, true
		}
	}
	if m, ok := l.modules[id+"/index"]; ok {
		return m, true
	}
	return nil, false
}

// moduleID canonicalizes a resolved path into a cache id by dropping a
// trailing ".js". JSON modules keep their extension.
func moduleID(path string) string {
	return strings.TrimSuffix(path, ".js")
}

// loadFile loads a resolved asset path, dispatching on its extension.
func (l *Loader) loadFile(path string, parent *Module) (any, error) {
	if strings.HasSuffix(path, ".json") {
		return l.loadJSON(path, parent)
	}
	text, err := l.store.ReadText(path)
	if err != nil {
		return nil, err
	}
	return l.loadJavaScript(moduleID(path), path, text, parent)
}

// loadJavaScript loads-and-caches a JavaScript module. The record enters the
// cache before the body runs; a body that throws stays cached (loaded, with
// whatever exports it produced) and the error propagates to the caller.
func (l *Loader) loadJavaScript(id, filename, source string, parent *Module) (any, error) {
	if m, ok := l.cachedModule(id); ok {
		return m.exports, nil
	}
	m := l.newModule(id, filename, parent)
	l.modules[id] = m // before execution: circular requires must see this record

	err := l.execute(m, source, false)
	m.loaded = true
	if err != nil {
		return nil, err
	}
	l.log.Debug("module loaded", zap.String("id", id), zap.String("filename", filename))
	return m.exports, nil
}

// loadJSON loads-and-caches a JSON module; its parsed value becomes the
// exports as-is.
func (l *Loader) loadJSON(path string, parent *Module) (any, error) {
	if m, ok := l.cachedModule(path); ok {
		return m.exports, nil
	}
	text, err := l.store.ReadText(path)
	if err != nil {
		return nil, err
	}
	value, err := oj.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedJSON, path, err)
	}
	m := l.newModule(path, path, parent)
	m.exports = value
	m.loaded = true
	l.modules[path] = m
	return m.exports, nil
}

// execute compiles and runs a module body in its sandbox.
func (l *Loader) execute(m *Module, source string, ambient bool) error {
	if l.engine == nil {
		return fmt.Errorf("%w: cannot load %s", ErrNoEngine, m.filename)
	}
	prog, err := l.engine.Compile(source, m.filename)
	if err != nil {
		return fmt.Errorf("compile %s: %w", m.filename, err)
	}
	sb := &api.Sandbox{
		Exports:  m.exports,
		Require:  m.Require,
		Module:   m,
		Filename: m.filename,
		Dirname:  jspath.Dirname(m.filename),
		Globals:  l.cfg.Globals,
		Ambient:  ambient,
	}
	return prog.Run(sb)
}
