package persistence

import (
	"github.com/goccy/go-yaml"
)

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

// Encode writes JSON-style YAML. Every scalar is double-quoted, so tabs,
// carriage returns and values such as ".inf" or "1.0" reload as the
// same strings.
func (yamlCodec) Encode(doc document) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(doc, yaml.JSON())
	if err != nil {
		return nil, err
	}
	if n := len(data); n == 0 || data[n-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

func (yamlCodec) Decode(data []byte) (any, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
