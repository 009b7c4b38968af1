package format

import (
	"bytes"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

func tomlMarshalStream(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := toml.NewEncoder(buf)

	for i, v := range vs {
		if i > 0 {
			buf.WriteString("+++\n")
		}

		if v == nil {
			continue
		}

		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

var tomlRE = regexp.MustCompile(`(?m)^(\+\+\+|---)$`)

// tomlUnmarshalStream also accepts +++ delimited front matter style input.
// Empty parts are skipped.
func tomlUnmarshalStream(in []byte) ([]any, error) {
	ret := []any{}

	for _, s := range tomlRE.Split(string(in), -1) {
		if len(bytes.TrimSpace([]byte(s))) == 0 {
			continue
		}

		var obj map[string]any

		err := toml.Unmarshal([]byte(s), &obj)
		if err != nil {
			return nil, err
		}

		ret = append(ret, obj)
	}

	return ret, nil
}
