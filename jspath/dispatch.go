package jspath

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a dynamically dispatched call receives
// a non-string where a path string is required. This is the boundary contract
// for script-facing callers; the typed Go API cannot trip it.
var ErrInvalidArgument = errors.New("invalid argument")

func badArg(name string, v any) error {
	return fmt.Errorf("%w: the %q argument must be of type string, received type %T", ErrInvalidArgument, name, v)
}

func wantString(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", badArg(name, v)
	}
	return s, nil
}

// wantStrings validates a variadic argument list for join/resolve, where
// every segment must be a string.
func wantStrings(args []any) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, badArg(fmt.Sprintf("paths[%d]", i), a)
		}
		out[i] = s
	}
	return out, nil
}

// Call dispatches a path operation by name with dynamically typed arguments,
// validating argument types the way the script boundary requires. Parse
// results and Format inputs cross the boundary as plain maps.
func (s *Style) Call(fn string, args ...any) (any, error) {
	switch fn {
	case "isAbsolute":
		p, err := s.oneString(args)
		if err != nil {
			return nil, err
		}
		return s.IsAbsolute(p), nil
	case "dirname":
		p, err := s.oneString(args)
		if err != nil {
			return nil, err
		}
		return s.Dirname(p), nil
	case "basename":
		if len(args) == 0 {
			return nil, badArg("path", nil)
		}
		p, err := wantString("path", args[0])
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return s.Basename(p), nil
		}
		ext, err := wantString("ext", args[1])
		if err != nil {
			return nil, err
		}
		return s.BasenameExt(p, ext), nil
	case "extname":
		p, err := s.oneString(args)
		if err != nil {
			return nil, err
		}
		return s.Extname(p), nil
	case "normalize":
		p, err := s.oneString(args)
		if err != nil {
			return nil, err
		}
		return s.Normalize(p), nil
	case "join":
		parts, err := wantStrings(args)
		if err != nil {
			return nil, err
		}
		return s.Join(parts...), nil
	case "resolve":
		parts, err := wantStrings(args)
		if err != nil {
			return nil, err
		}
		return s.Resolve(parts...), nil
	case "relative":
		if len(args) < 2 {
			return nil, badArg("to", nil)
		}
		from, err := wantString("from", args[0])
		if err != nil {
			return nil, err
		}
		to, err := wantString("to", args[1])
		if err != nil {
			return nil, err
		}
		return s.Relative(from, to), nil
	case "parse":
		p, err := s.oneString(args)
		if err != nil {
			return nil, err
		}
		parsed := s.Parse(p)
		return map[string]any{
			"root": parsed.Root,
			"dir":  parsed.Dir,
			"base": parsed.Base,
			"ext":  parsed.Ext,
			"name": parsed.Name,
		}, nil
	case "format":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: the %q argument must be of type object, received type %T", ErrInvalidArgument, "pathObject", nil)
		}
		obj, ok := args[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: the %q argument must be of type object, received type %T", ErrInvalidArgument, "pathObject", args[0])
		}
		parsed := Parsed{
			Root: stringField(obj, "root"),
			Dir:  stringField(obj, "dir"),
			Base: stringField(obj, "base"),
			Ext:  stringField(obj, "ext"),
			Name: stringField(obj, "name"),
		}
		return s.Format(parsed), nil
	case "toNamespacedPath":
		p, err := s.oneString(args)
		if err != nil {
			return nil, err
		}
		return s.ToNamespacedPath(p), nil
	case "sep":
		return s.Separator(), nil
	default:
		return nil, fmt.Errorf("%w: unknown path function %q", ErrInvalidArgument, fn)
	}
}

func (s *Style) oneString(args []any) (string, error) {
	if len(args) == 0 {
		return "", badArg("path", nil)
	}
	return wantString("path", args[0])
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}
