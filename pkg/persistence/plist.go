package persistence

import (
	"howett.net/plist"
)

// plistCodec reads and writes XML property lists. Decoding also accepts
// the binary and OpenStep forms.
type plistCodec struct{}

func (plistCodec) Name() string { return "plist" }

func (plistCodec) Encode(doc document) ([]byte, error) {
	data, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
	if err != nil {
		return nil, err
	}
	if n := len(data); n == 0 || data[n-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

func (plistCodec) Decode(data []byte) (any, error) {
	var tree any
	if _, err := plist.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
