// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package wire

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal encodes m in the binary protobuf wire format.
// Fields are written in ascending field-number order and fields holding their
// default value are omitted, so an all-default message encodes to zero bytes.
func Marshal(m Message) []byte {
	if m == nil {
		return nil
	}
	return appendMessage(nil, m)
}

func appendMessage(b []byte, m Message) []byte {
	for _, f := range m.Descriptor().Fields {
		v := f.Get(m)
		if f.IsDefault(v) {
			continue
		}
		b = protowire.AppendTag(b, f.Number, f.Kind.WireType())
		switch f.Kind {
		case BoolKind:
			b = protowire.AppendVarint(b, protowire.EncodeBool(v.(bool)))
		case Int64Kind:
			b = protowire.AppendVarint(b, uint64(v.(int64)))
		case StringKind:
			b = protowire.AppendString(b, v.(string))
		case MessageKind:
			b = protowire.AppendBytes(b, appendMessage(nil, v.(Message)))
		}
	}
	return b
}

// Unmarshal resets m to its defaults and decodes b into it.
//
// Fields may appear in any order. Unknown field numbers, and known numbers
// carrying an unexpected wire type, are skipped. When a field appears more
// than once the last occurrence wins. Malformed input yields a *DecodeError.
func Unmarshal(b []byte, m Message) error {
	Reset(m)
	return unmarshal(b, m)
}

func unmarshal(b []byte, m Message) error {
	d := m.Descriptor()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return &DecodeError{Message: d.FullName, Err: consumeErr(n)}
		}
		b = b[n:]

		f, ok := d.ByNumber(num)
		if !ok || typ != f.Kind.WireType() {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return &DecodeError{Message: d.FullName, Field: num, Err: consumeErr(n)}
			}
			b = b[n:]
			continue
		}

		n, err := decodeField(f, m, b)
		if err != nil {
			return &DecodeError{Message: d.FullName, Field: num, Err: err}
		}
		b = b[n:]
	}
	return nil
}

func decodeField(f *Field, m Message, b []byte) (int, error) {
	switch f.Kind {
	case BoolKind:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, consumeErr(n)
		}
		f.Set(m, protowire.DecodeBool(v))
		return n, nil
	case Int64Kind:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, consumeErr(n)
		}
		f.Set(m, int64(v))
		return n, nil
	case StringKind:
		v, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, consumeErr(n)
		}
		if !utf8.ValidString(v) {
			return 0, ErrInvalidUTF8
		}
		f.Set(m, v)
		return n, nil
	case MessageKind:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, consumeErr(n)
		}
		child := f.New()
		if err := Unmarshal(v, child); err != nil {
			return 0, err
		}
		f.Set(m, child)
		return n, nil
	}
	return 0, fmt.Errorf("wire: unsupported field kind %s", f.Kind)
}

// Equal reports whether a and b are the same message type with equal field values.
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	d := a.Descriptor()
	if d != b.Descriptor() {
		return false
	}
	for _, f := range d.Fields {
		va, vb := f.Get(a), f.Get(b)
		if f.Kind == MessageKind {
			if va == nil || vb == nil {
				if va != vb {
					return false
				}
				continue
			}
			if !Equal(va.(Message), vb.(Message)) {
				return false
			}
			continue
		}
		if va != vb {
			return false
		}
	}
	return true
}
