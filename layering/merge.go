// Package layering merges decoded configuration documents so later layers
// override earlier ones key by key.
package layering

// MergeDocuments composes documents ordered from weakest to strongest. Nested
// maps are merged recursively; any other value (including slices) from a
// stronger layer replaces the weaker one. Inputs are never mutated.
func MergeDocuments(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for _, layer := range layers {
		merged = mergeMap(merged, layer)
	}
	return merged
}

func mergeMap(weak, strong map[string]any) map[string]any {
	result := make(map[string]any, len(weak)+len(strong))
	for key, value := range weak {
		result[key] = cloneValue(value)
	}
	for key, value := range strong {
		strongMap, strongIsMap := asMap(value)
		weakMap, weakIsMap := asMap(result[key])
		if strongIsMap && weakIsMap {
			result[key] = mergeMap(weakMap, strongMap)
			continue
		}
		result[key] = cloneValue(value)
	}
	return result
}

// asMap normalises the map shapes produced by the YAML and TOML decoders.
func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}
			out[name] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func cloneValue(value any) any {
	if m, ok := asMap(value); ok {
		out := make(map[string]any, len(m))
		for key, item := range m {
			out[key] = cloneValue(item)
		}
		return out
	}
	if list, ok := value.([]any); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}
		return out
	}
	return value
}
