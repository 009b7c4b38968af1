package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"github.com/gopatchy/stakx/internal/utils"
)

func propertiesMarshalStream(stream []any) ([]byte, error) {
	if len(stream) != 1 {
		return nil, fmt.Errorf("properties format only supports single document")
	}

	obj, ok := stream[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("properties format requires top-level map, got %T", stream[0])
	}

	p := properties.NewProperties()
	p.WriteSeparator = "="

	flattenInto(p, "", obj)

	var buf bytes.Buffer

	_, err := p.Write(&buf, properties.UTF8)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// flattenInto writes nested maps as dotted keys and lists as indexed keys,
// so route lists survive a round trip as routes.0, routes.1, ...
func flattenInto(p *properties.Properties, prefix string, v any) {
	switch v2 := v.(type) {
	case map[string]any:
		for k, e := range utils.SortedMap(v2) {
			flattenInto(p, joinProperty(prefix, k), e)
		}

	case []any:
		for i, e := range v2 {
			flattenInto(p, joinProperty(prefix, fmt.Sprint(i)), e)
		}

	case []string:
		for i, e := range v2 {
			flattenInto(p, joinProperty(prefix, fmt.Sprint(i)), e)
		}

	case nil:
		_, _, _ = p.Set(prefix, "")

	default:
		_, _, _ = p.Set(prefix, fmt.Sprint(v2))
	}
}

func joinProperty(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

func propertiesUnmarshalStream(data []byte) ([]any, error) {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, err
	}

	result := map[string]any{}

	for _, key := range p.Keys() {
		utils.SetPath(result, strings.Split(key, "."), p.GetString(key, ""))
	}

	return []any{result}, nil
}
