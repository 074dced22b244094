package loader

import "errors"

var (
	// ErrModuleNotFound is returned when every resolution strategy for a
	// specifier has been exhausted.
	ErrModuleNotFound = errors.New("requested module not found")

	// ErrMalformedJSON is returned when a JSON-resolved module (or a
	// package.json probed during directory resolution) fails to parse.
	ErrMalformedJSON = errors.New("malformed json module")

	// ErrNoEngine is returned when a JavaScript module body must execute but
	// the loader was built without an engine.
	ErrNoEngine = errors.New("no script engine configured")
)
