package loader

import "strings"

// DeepMerge layers src over dst and returns dst. Nested sections merge
// key by key; any other src value replaces what dst held.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}

// Clone deep-copies a configuration tree, including lists.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// GetByPath returns the value at a dotted path such as "layout.width".
func GetByPath(data map[string]any, path string) (any, bool) {
	head, rest, nested := strings.Cut(path, ".")
	val, ok := data[head]
	if !ok || !nested {
		return val, ok
	}
	sub, ok := val.(map[string]any)
	if !ok {
		return nil, false
	}
	return GetByPath(sub, rest)
}

// SetByPath stores value at a dotted path. Missing or scalar intermediate
// entries are replaced by maps.
func SetByPath(data map[string]any, path string, value any) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		data[head] = value
		return
	}
	sub, ok := data[head].(map[string]any)
	if !ok {
		sub = make(map[string]any)
		data[head] = sub
	}
	SetByPath(sub, rest, value)
}
