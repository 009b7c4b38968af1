package utils

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DeepClone copies maps, ordered maps and slices recursively. Scalars and
// unknown types are returned as-is.
func DeepClone(v any) any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		return deepCloneOrdered(val)
	case map[string]any:
		return deepCloneMap(val)
	case []any:
		return deepCloneSlice(val)
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool, time.Time:
		// Primitive types are copied by value
		return val
	default:
		return val
	}
}

func deepCloneOrdered(m *orderedmap.OrderedMap[string, any]) *orderedmap.OrderedMap[string, any] {
	if m == nil {
		return nil
	}

	result := orderedmap.New[string, any]()

	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, DeepClone(pair.Value))
	}

	return result
}

func deepCloneMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))

	for k, v := range m {
		result[k] = DeepClone(v)
	}

	return result
}

func deepCloneSlice(s []any) []any {
	if s == nil {
		return nil
	}

	result := make([]any, len(s))
	for i, v := range s {
		result[i] = DeepClone(v)
	}
	return result
}
