package tooldoc

import (
	"slices"
)

// ArgsStats describes the shape of example arguments.
type ArgsStats struct {
	Depth int
	Keys  int
}

// ValidateArgs measures args and reports whether they fit MaxArgsDepth and
// MaxArgsKeys. Keys counts map keys and slice items at every level.
func ValidateArgs(args map[string]any) (ArgsStats, bool) {
	var stats ArgsStats
	measure(args, 1, &stats)
	if len(args) == 0 {
		stats.Depth = 0
	}
	return stats, stats.Depth <= MaxArgsDepth && stats.Keys <= MaxArgsKeys
}

func measure(v any, depth int, stats *ArgsStats) {
	switch t := v.(type) {
	case map[string]any:
		stats.Depth = max(stats.Depth, depth)
		stats.Keys += len(t)
		for _, item := range t {
			measure(item, depth+1, stats)
		}
	case []any:
		stats.Depth = max(stats.Depth, depth)
		stats.Keys += len(t)
		for _, item := range t {
			measure(item, depth+1, stats)
		}
	}
}

func copyExamples(examples []ToolExample) []ToolExample {
	if examples == nil {
		return nil
	}
	out := make([]ToolExample, len(examples))
	for i, ex := range examples {
		ex.Args, _ = deepCopy(ex.Args).(map[string]any)
		out[i] = ex
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return map[string]any(nil)
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

// deriveSchemaInfo digests a JSON-schema object. Unknown shapes yield an
// empty digest.
func deriveSchemaInfo(schema any) *SchemaInfo {
	info := &SchemaInfo{}
	m, ok := schema.(map[string]any)
	if !ok {
		return info
	}
	info.Required = stringSlice(m["required"])
	slices.Sort(info.Required)

	props, _ := m["properties"].(map[string]any)
	for name, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if def, ok := prop["default"]; ok {
			if info.Defaults == nil {
				info.Defaults = make(map[string]any)
			}
			info.Defaults[name] = def
		}
		if types := schemaTypes(prop["type"]); len(types) > 0 {
			if info.Types == nil {
				info.Types = make(map[string][]string)
			}
			info.Types[name] = types
		}
	}
	return info
}

func schemaTypes(v any) []string {
	if s, ok := v.(string); ok {
		return []string{s}
	}
	return stringSlice(v)
}

func stringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
