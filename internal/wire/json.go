// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package wire

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
)

// ToPlainObject returns the dense JSON projection of m: every declared field
// is present under its JSON name, defaults included. An unset nested message
// is projected as nil.
func ToPlainObject(m Message) map[string]any {
	fields := m.Descriptor().Fields
	obj := make(map[string]any, len(fields))
	for _, f := range fields {
		v := f.Get(m)
		if f.Kind == MessageKind && v != nil {
			v = ToPlainObject(v.(Message))
		}
		obj[f.JSONName] = v
	}
	return obj
}

// FromPlainObject resets m and fills it from obj. It never fails: missing keys
// and values of the wrong type leave the field at its default. Keys may use
// either the JSON name or the proto field name.
func FromPlainObject(m Message, obj map[string]any) {
	Reset(m)
	for _, f := range m.Descriptor().Fields {
		raw, ok := obj[f.JSONName]
		if !ok {
			raw, ok = obj[f.Name]
		}
		if !ok || raw == nil {
			continue
		}
		if v, ok := coerce(f, raw); ok {
			f.Set(m, v)
		}
	}
}

func coerce(f *Field, raw any) (any, bool) {
	switch f.Kind {
	case BoolKind:
		v, ok := raw.(bool)
		return v, ok
	case StringKind:
		v, ok := raw.(string)
		return v, ok
	case Int64Kind:
		return toInt64(raw)
	case MessageKind:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, false
		}
		child := f.New()
		FromPlainObject(child, obj)
		return child, true
	}
	return nil, false
}

// toInt64 accepts JSON numbers and the quoted form protojson uses for 64-bit integers.
func toInt64(raw any) (any, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return nil, false
}

// MarshalJSON writes the dense projection of m with keys in field-number order.
func MarshalJSON(m Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, m Message) error {
	buf.WriteByte('{')
	for i, f := range m.Descriptor().Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.JSONName)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v := f.Get(m)
		if f.Kind == MessageKind {
			if v == nil {
				buf.WriteString("null")
				continue
			}
			if err := writeJSON(buf, v.(Message)); err != nil {
				return err
			}
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes a JSON object into m through FromPlainObject.
// A body that is not exactly one JSON object is an error.
func UnmarshalJSON(data []byte, m Message) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return &DecodeError{Message: m.Descriptor().FullName, Err: err}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return &DecodeError{Message: m.Descriptor().FullName, Err: ErrNotJSONObject}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &DecodeError{Message: m.Descriptor().FullName, Err: ErrTrailingData}
	}
	FromPlainObject(m, obj)
	return nil
}
