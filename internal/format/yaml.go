package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	stakxerrors "github.com/gopatchy/stakx/pkg/errors"
)

// OrderedMap is the mapping type produced by the YAML decoder.
type OrderedMap = orderedmap.OrderedMap[string, any]

// zonelessTimestampRE matches timestamps that carry no time zone. yaml.v3
// reads those as UTC.
var zonelessTimestampRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([Tt ]\d{2}:\d{2}:\d{2}(\.\d+)?)?$`)

func yamlMarshalStream(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	for _, v := range vs {
		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}
	}

	err := enc.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func yamlUnmarshalStream(in []byte) ([]any, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(in))
	ret := []any{}

	for {
		var node yaml.Node

		err := decoder.Decode(&node)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		obj, err := yamlTranslateNode(&node)
		if err != nil {
			return nil, err
		}

		ret = append(ret, obj)
	}

	return ret, nil
}

// ParseYAMLTree decodes a front matter block into an ordered mapping. An
// empty block yields an empty mapping; any other non-mapping root fails.
func ParseYAMLTree(in []byte) (*OrderedMap, error) {
	if len(bytes.TrimSpace(in)) == 0 {
		return orderedmap.New[string, any](), nil
	}

	var node yaml.Node

	err := yaml.Unmarshal(in, &node)
	if err != nil {
		return nil, fmt.Errorf("%w (%w)", err, stakxerrors.ErrDecode)
	}

	obj, err := yamlTranslateNode(&node)
	if err != nil {
		return nil, err
	}

	switch obj2 := obj.(type) {
	case *OrderedMap:
		return obj2, nil

	case nil:
		return orderedmap.New[string, any](), nil

	default:
		return nil, fmt.Errorf("%T: %w", obj, stakxerrors.ErrInvalidFrontMatterStructure)
	}
}

func yamlTranslateNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlTranslateNode(node.Content[0])

	case yaml.SequenceNode:
		ret := []any{}

		for _, v := range node.Content {
			v2, err := yamlTranslateNode(v)
			if err != nil {
				return nil, err
			}

			ret = append(ret, v2)
		}

		return ret, nil

	case yaml.MappingNode:
		ret := orderedmap.New[string, any]()

		// Merge keys first so local values override them.
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "<<" {
				v2, err := yamlTranslateNode(node.Content[i+1])
				if err != nil {
					return nil, err
				}

				err = yamlMerge(ret, v2, node.Content[i+1])
				if err != nil {
					return nil, err
				}
			}
		}

		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "<<" {
				continue
			}

			v2, err := yamlTranslateNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			ret.Set(node.Content[i].Value, v2)
		}

		return ret, nil

	case yaml.ScalarNode:
		return yamlTranslateScalar(node)

	case yaml.AliasNode:
		return yamlTranslateNode(node.Alias)

	case 0:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown yaml type: %d (%w)", node.Kind, stakxerrors.ErrInvalidType)
	}
}

func yamlTranslateScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!bool":
		var v bool
		err := node.Decode(&v)
		return v, err

	case "!!int":
		var v int64

		err := node.Decode(&v)
		if err != nil {
			return nil, err
		}

		if int64(int(v)) == v {
			return int(v), nil
		}

		return v, nil

	case "!!float":
		var v float64
		err := node.Decode(&v)
		return v, err

	case "!!null":
		return nil, nil

	case "!!timestamp":
		// Zoneless timestamps are wall-clock values; keep the text so the
		// date cascade reads them in the site time zone.
		if zonelessTimestampRE.MatchString(node.Value) {
			return node.Value, nil
		}

		var v time.Time

		err := node.Decode(&v)
		if err != nil {
			// Leave unparseable timestamps for the date cascade.
			return node.Value, nil
		}

		return v, nil

	case "!!str", "!!binary":
		return node.Value, nil

	default:
		return nil, fmt.Errorf("unknown yaml short tag: %s (%w)", node.ShortTag(), stakxerrors.ErrInvalidType)
	}
}

// Merge mapping or list of mappings into a destination mapping, as per https://yaml.org/type/merge.html
func yamlMerge(dst *OrderedMap, src any, node *yaml.Node) error {
	switch src2 := src.(type) {
	case *OrderedMap:
		for pair := src2.Oldest(); pair != nil; pair = pair.Next() {
			dst.Set(pair.Key, pair.Value)
		}

	case []any:
		for i := len(src2) - 1; i >= 0; i-- {
			inner, ok := src2[i].(*OrderedMap)
			if !ok {
				return fmt.Errorf("unknown type for merge target: %d (%w)", node.Kind, stakxerrors.ErrInvalidType)
			}

			for pair := inner.Oldest(); pair != nil; pair = pair.Next() {
				dst.Set(pair.Key, pair.Value)
			}
		}

	default:
		return fmt.Errorf("unknown type for merge target: %d (%w)", node.Kind, stakxerrors.ErrInvalidType)
	}

	return nil
}
