// Package typed converts between plain field mappings and typed records.
//
// Field mappings (map[string]any) are the serialization-agnostic shape used by
// seed files and other untyped sources; records are the concrete structs stored
// in collections. Conversion goes through JSON so struct tags decide field names.
package typed

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Fields is a plain field-name to value mapping.
type Fields = map[string]any

// FromFields decodes a field mapping into T.
func FromFields[T any](fields Fields) (T, error) {
	var data T

	dataBytes, err := json.Marshal(fields)
	if err != nil {
		return data, fmt.Errorf("fields marshal failed: %w", err)
	}
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return data, fmt.Errorf("unmarshal to target type %T failed: %w", data, err)
	}
	return data, nil
}

// ToFields encodes v as a field mapping.
func ToFields[T any](v T) (Fields, error) {
	dataBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}

	var fields Fields
	if err := json.Unmarshal(dataBytes, &fields); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to map: %w", err)
	}
	return fields, nil
}

// FromFieldSet decodes an id-keyed set of field mappings.
// The first failing entry (in id order) aborts the conversion.
func FromFieldSet[T any](set map[string]Fields) (map[string]T, error) {
	out := make(map[string]T, len(set))
	for _, id := range slices.Sorted(maps.Keys(set)) {
		v, err := FromFields[T](set[id])
		if err != nil {
			return nil, fmt.Errorf("failed to process entry %s: %w", id, err)
		}
		out[id] = v
	}
	return out, nil
}
