package lang

import (
	"log/slog"
	"sort"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// valueAttr renders v for structured logging as its type and source text.
func valueAttr(key string, v Value) slog.Attr {
	if v == nil {
		return slog.String(key, "<none>")
	}

	return slog.Group(key,
		slog.String("type", v.Type()),
		slog.String("repr", Repr(v)),
	)
}

// argsAttr renders a call's arguments for structured logging.
func argsAttr(params []string, args []Value) slog.Attr {
	attrs := make([]any, 0, len(args))
	for i, a := range args {
		attrs = append(attrs, valueAttr(params[i], a))
	}

	return slog.Group("args", attrs...)
}
