// Package wire converts between JSON fixtures and raw variants.
//
// Every TL object is a JSON object whose "_" key holds its tag. Integers
// decode to int64, other numbers to float64, and byte strings are objects
// of the form {"@bytes": "<base64>"}. Lists decode to []any.
package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

const (
	tagKey   = "_"
	bytesKey = "@bytes"
)

// Decode parses one JSON TL object.
func Decode(data []byte) (domain.RawVariant, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader parses one JSON TL object from r.
func DecodeReader(r io.Reader) (domain.RawVariant, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return domain.RawVariant{}, fmt.Errorf("wire: %w: %v", domain.ErrInvalidInput, err)
	}
	val, err := FromJSON(raw)
	if err != nil {
		return domain.RawVariant{}, err
	}
	v, ok := val.(domain.RawVariant)
	if !ok {
		return domain.RawVariant{}, fmt.Errorf("wire: %w: top level is not a TL object", domain.ErrInvalidInput)
	}
	return v, nil
}

// DecodeParams parses a JSON object of request parameters. Unlike TL
// objects it carries no tag.
func DecodeParams(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("wire: %w: %v", domain.ErrInvalidInput, err)
	}
	return convertFields(raw)
}

// FromJSON converts a value produced by encoding/json with UseNumber into
// the raw variant value model.
func FromJSON(val any) (any, error) {
	switch v := val.(type) {
	case nil, string, bool:
		return v, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("wire: %w: bad number %q", domain.ErrInvalidInput, v.String())
		}
		return f, nil
	case float64:
		if v == float64(int64(v)) {
			return int64(v), nil
		}
		return v, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			conv, err := FromJSON(item)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	case map[string]any:
		return fromObject(v)
	default:
		return nil, fmt.Errorf("wire: %w: unexpected %T", domain.ErrInvalidInput, val)
	}
}

func fromObject(obj map[string]any) (any, error) {
	if b64, ok := obj[bytesKey]; ok && len(obj) == 1 {
		s, ok := b64.(string)
		if !ok {
			return nil, fmt.Errorf("wire: %w: %s is not a string", domain.ErrInvalidInput, bytesKey)
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("wire: %w: %v", domain.ErrInvalidInput, err)
		}
		return data, nil
	}

	tag, ok := obj[tagKey].(string)
	if !ok || tag == "" {
		return nil, fmt.Errorf("wire: %w: object has no %q tag", domain.ErrInvalidInput, tagKey)
	}
	rest := make(map[string]any, len(obj)-1)
	for k, v := range obj {
		if k != tagKey {
			rest[k] = v
		}
	}
	fields, err := convertFields(rest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return domain.NewVariant(tag, fields), nil
}

func convertFields(raw map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		conv, err := FromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		fields[k] = conv
	}
	return fields, nil
}

// ToJSON converts a raw variant value into a value encoding/json can marshal
// back into the fixture format.
func ToJSON(val any) any {
	switch v := val.(type) {
	case domain.RawVariant:
		obj := make(map[string]any, len(v.Fields)+1)
		for k, f := range v.Fields {
			obj[k] = ToJSON(f)
		}
		obj[tagKey] = v.Tag
		return obj
	case []byte:
		return map[string]any{bytesKey: base64.StdEncoding.EncodeToString(v)}
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToJSON(item)
		}
		return out
	case []domain.RawVariant:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToJSON(item)
		}
		return out
	case map[string]any:
		obj := make(map[string]any, len(v))
		for k, f := range v {
			obj[k] = ToJSON(f)
		}
		return obj
	default:
		return v
	}
}

// Encode marshals a raw variant into the fixture format.
func Encode(v domain.RawVariant) ([]byte, error) {
	return json.Marshal(ToJSON(v))
}

// Canonical returns a stable string form of request parameters. Map keys
// are sorted at every level, so equal parameters give equal strings.
func Canonical(params map[string]any) (string, error) {
	if len(params) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(ToJSON(params))
	if err != nil {
		return "", fmt.Errorf("wire: canonical params: %w", err)
	}
	return string(data), nil
}
