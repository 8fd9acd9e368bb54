package descriptor

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatJSON = Format("json")
	FormatYAML = Format("yaml")
)

// FormatFromPath picks the format from a file extension (.json, .yaml, .yml).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("%s: unsupported descriptor file extension", path)
	}
}

// Decode parses a single descriptor object, or a list of them.
// Unknown keys are errors.
func Decode(data []byte, format Format) ([]Descriptor, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, errors.Errorf("unsupported descriptor format %q", format)
	}
}

func decodeJSON(data []byte) ([]Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	d := json.NewDecoder(bytes.NewReader(trimmed))
	d.DisallowUnknownFields()
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var result []Descriptor
		if err := d.Decode(&result); err != nil {
			return nil, errors.Wrap(err, "decoding json descriptors")
		}
		return result, nil
	}
	var one Descriptor
	if err := d.Decode(&one); err != nil {
		return nil, errors.Wrap(err, "decoding json descriptor")
	}
	return []Descriptor{one}, nil
}

func decodeYAML(data []byte) ([]Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding yaml descriptors")
	}
	if len(doc.Content) == 0 {
		return []Descriptor{}, nil
	}
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if doc.Content[0].Kind == yaml.SequenceNode {
		var result []Descriptor
		if err := d.Decode(&result); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "decoding yaml descriptors")
		}
		return result, nil
	}
	var one Descriptor
	if err := d.Decode(&one); err != nil {
		return nil, errors.Wrap(err, "decoding yaml descriptor")
	}
	return []Descriptor{one}, nil
}

// LoadFile reads and decodes the descriptors in the file at path,
// using its extension to pick the format.
func LoadFile(path string) ([]Descriptor, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading descriptor file")
	}
	result, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return result, nil
}
