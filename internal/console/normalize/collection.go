// Package normalize reconciles the backend's heterogeneous payload shapes
// into canonical typed results. The backend emits at least three envelope
// variants for collections; every resource adapter funnels through the same
// decoder so the variance is handled in exactly one place.
package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
)

// Shape identifies which envelope variant a payload used. Exposed mainly for
// tests and debugging; domain code should not branch on it.
type Shape string

const (
	// ShapeList is a bare JSON array.
	ShapeList Shape = "list"
	// ShapeKeyed is an object with an array under the resource's own name.
	ShapeKeyed Shape = "keyed"
	// ShapePaged is the paged convention: {data: [...], meta: {...}}.
	ShapePaged Shape = "paged"
	// ShapeEmpty is anything unrecognized; absence of data is not a failure.
	ShapeEmpty Shape = "empty"
)

// Collection is the canonical result for any list operation. Pagination
// fields are populated only when the backend used the paged envelope.
type Collection[T any] struct {
	Items []T
	Meta  *api.Meta
	Shape Shape
}

// DecodeCollection unwraps a raw payload into a typed collection, trying the
// known envelope variants in fixed priority order:
//
//  1. a bare array is the resource list itself
//  2. an object property named after the resource collection (resourceKey)
//  3. a nested data array, with pagination read from a sibling meta object
//  4. anything else decodes to an empty collection, never an error
//
// Only genuinely corrupt items inside a recognized array produce an error.
func DecodeCollection[T any](raw json.RawMessage, resourceKey string) (Collection[T], error) {
	out := Collection[T]{Items: []T{}, Shape: ShapeEmpty}

	if len(raw) == 0 {
		return out, nil
	}

	// Variant 1: bare array.
	if isArray(raw) {
		items, err := decodeItems[T](raw)
		if err != nil {
			return out, err
		}
		out.Items = items
		out.Shape = ShapeList
		return out, nil
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		// Scalars, strings: not a collection in any known shape.
		return out, nil
	}

	// Variant 2: resource-keyed array, e.g. {"rooms": [...]}.
	if keyed, ok := object[resourceKey]; ok && isArray(keyed) {
		items, err := decodeItems[T](keyed)
		if err != nil {
			return out, err
		}
		out.Items = items
		out.Shape = ShapeKeyed
		return out, nil
	}

	// Variant 3: paged envelope {data: [...], meta: {...}}.
	if data, ok := object["data"]; ok && isArray(data) {
		items, err := decodeItems[T](data)
		if err != nil {
			return out, err
		}
		out.Items = items
		out.Shape = ShapePaged
		if metaRaw, ok := object["meta"]; ok {
			var meta api.Meta
			if err := json.Unmarshal(metaRaw, &meta); err == nil {
				out.Meta = &meta
			}
		}
		return out, nil
	}

	// Unknown shape: empty collection. A missing list renders as an empty
	// table, not an error page.
	return out, nil
}

// DecodeOne decodes a single-record payload, tolerating the record being
// wrapped in a data envelope. A nil payload yields a nil record.
func DecodeOne[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	// The wrapped form must be checked first: unmarshaling {"data": {...}}
	// straight into T would silently succeed with zero values.
	var record T
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		if err := json.Unmarshal(wrapped.Data, &record); err == nil {
			return &record, nil
		}
	}

	if err := json.Unmarshal(raw, &record); err == nil {
		return &record, nil
	}

	return nil, fmt.Errorf("payload does not decode into %T", record)
}

func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection items: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
