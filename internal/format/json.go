package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

func jsonMarshalStream(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	for _, v := range vs {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func jsonMarshalStreamPretty(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	for _, v := range vs {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func jsonUnmarshalStream(in []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(in))
	dec.UseNumber()

	ret := []any{}

	for {
		var obj any

		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		ret = append(ret, jsonNormalize(obj))
	}

	return ret, nil
}

// jsonNormalize turns json.Number into int where possible so JSON data
// matches what the YAML and TOML decoders produce.
func jsonNormalize(v any) any {
	switch v2 := v.(type) {
	case map[string]any:
		for k, e := range v2 {
			v2[k] = jsonNormalize(e)
		}
		return v2

	case []any:
		for i, e := range v2 {
			v2[i] = jsonNormalize(e)
		}
		return v2

	case json.Number:
		if i, err := v2.Int64(); err == nil {
			if int64(int(i)) == i {
				return int(i)
			}
			return i
		}
		f, _ := v2.Float64()
		return f

	default:
		return v
	}
}
