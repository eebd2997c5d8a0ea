package persistence

import (
	"github.com/agentstation/pkgdb/pkg/save"
)

// codec encodes a document and decodes file content into a generic tree
// of map[string]any, []any and scalars.
type codec interface {
	Name() string
	Encode(doc document) ([]byte, error)
	Decode(data []byte) (any, error)
}

func codecFor(format save.Format) codec {
	switch format {
	case save.FormatJSON:
		return jsonCodec{}
	case save.FormatPlist:
		return plistCodec{}
	default:
		return yamlCodec{}
	}
}
