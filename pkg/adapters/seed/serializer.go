package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/depot/pkg/typed"
)

// Records maps identifiers to the fields of one entity.
type Records = map[string]typed.Fields

// Serializer decodes one seed file format.
type Serializer interface {
	// Parse reads an id -> fields mapping from r.
	Parse(r io.Reader) (Records, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
	}
}

// JSONSerializer handles JSON seed files.
type JSONSerializer struct{}

func (JSONSerializer) Parse(r io.Reader) (Records, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Records{}, nil
	}

	var payload map[string]map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return toRecords(payload), nil
}

// YAMLSerializer handles YAML seed files.
type YAMLSerializer struct{}

func (YAMLSerializer) Parse(r io.Reader) (Records, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	out := toRecords(payload)
	for id, fields := range out {
		out[id] = normalize(fields).(typed.Fields)
	}
	return out, nil
}

func toRecords(payload map[string]map[string]any) Records {
	out := make(Records, len(payload))
	for id, fields := range payload {
		if fields == nil {
			fields = typed.Fields{}
		}
		out[id] = fields
	}
	return out
}

// normalize rewrites YAML-only shapes (non-string map keys) into values
// encoding/json accepts.
func normalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[k] = normalize(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, item := range v {
			l[i] = normalize(item)
		}
		return l
	default:
		return v
	}
}
