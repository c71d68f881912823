// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package wire implements the message schema and codecs used to talk to the
// matrix control service.
//
// Every message is a plain Go struct that exposes a Descriptor: a table of
// fields (name, number, kind, default) with typed accessors. A single codec
// walks that table for the binary protobuf encoding and for the JSON
// plain-object projection, so message types carry no per-field codec code.
//
// The binary encoding is sparse (fields equal to their default are omitted)
// while the JSON projection is dense (every declared field is present).
package wire

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// Kind is the scalar (or nested message) kind of a field.
type Kind int

const (
	BoolKind Kind = iota
	StringKind
	Int64Kind
	MessageKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case Int64Kind:
		return "int64"
	case MessageKind:
		return "message"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// WireType returns the protobuf wire type used to encode values of kind k.
func (k Kind) WireType() protowire.Type {
	switch k {
	case BoolKind, Int64Kind:
		return protowire.VarintType
	default:
		return protowire.BytesType
	}
}

// Message is implemented by every type that can travel over the wire.
type Message interface {
	Descriptor() *Descriptor
}

// Field describes one declared field of a message.
type Field struct {
	// Name is the proto field name (e.g. "scroll_enabled").
	Name string
	// JSONName is the key used by the plain-object projection (e.g. "scrollEnabled").
	JSONName string
	Number   protowire.Number
	Kind     Kind
	// Default is the value the field takes when absent: false, "", int64(0) or nil.
	Default any

	get    func(Message) any
	set    func(Message, any)
	newMsg func() Message
}

// Get returns the current value of f on m.
func (f *Field) Get(m Message) any { return f.get(m) }

// Set assigns v to f on m. A nil v resets the field to its default.
func (f *Field) Set(m Message, v any) {
	if v == nil {
		v = f.Default
	}
	f.set(m, v)
}

// IsDefault reports whether v equals the field's default value.
func (f *Field) IsDefault(v any) bool {
	if f.Kind == MessageKind {
		return v == nil
	}
	return v == f.Default
}

// New returns a fresh, empty nested message for MessageKind fields.
func (f *Field) New() Message {
	if f.newMsg == nil {
		return nil
	}
	return f.newMsg()
}

// Descriptor is the field table of a message type.
type Descriptor struct {
	FullName string
	Fields   []*Field

	byNumber map[protowire.Number]*Field
	byName   map[string]*Field
}

// NewDescriptor builds a descriptor and orders its fields by number.
// It panics on invalid, duplicate or conflicting declarations so a broken
// table fails at package initialization rather than on the wire.
func NewDescriptor(fullName string, fields ...Field) *Descriptor {
	d := &Descriptor{
		FullName: fullName,
		byNumber: make(map[protowire.Number]*Field, len(fields)),
		byName:   make(map[string]*Field, len(fields)*2),
	}
	for i := range fields {
		f := &fields[i]
		if !f.Number.IsValid() {
			panic(fmt.Sprintf("wire: %s.%s: invalid field number %d", fullName, f.Name, f.Number))
		}
		if _, dup := d.byNumber[f.Number]; dup {
			panic(fmt.Sprintf("wire: %s: duplicate field number %d", fullName, f.Number))
		}
		if f.JSONName == "" {
			f.JSONName = jsonName(f.Name)
		}
		for _, key := range []string{f.Name, f.JSONName} {
			if prev, dup := d.byName[key]; dup && prev != f {
				panic(fmt.Sprintf("wire: %s: duplicate field name %q", fullName, key))
			}
			d.byName[key] = f
		}
		d.byNumber[f.Number] = f
		d.Fields = append(d.Fields, f)
	}
	sort.Slice(d.Fields, func(i, j int) bool { return d.Fields[i].Number < d.Fields[j].Number })
	return d
}

// ByNumber returns the field declared with number n.
func (d *Descriptor) ByNumber(n protowire.Number) (*Field, bool) {
	f, ok := d.byNumber[n]
	return f, ok
}

// ByName returns the field with the given proto or JSON name.
func (d *Descriptor) ByName(name string) (*Field, bool) {
	f, ok := d.byName[name]
	return f, ok
}

// Reset sets every field of m to its default value.
func Reset(m Message) {
	for _, f := range m.Descriptor().Fields {
		f.Set(m, nil)
	}
}

// Bool declares a bool field backed by the struct field returned by ref.
func Bool[M Message](name string, num protowire.Number, ref func(M) *bool) Field {
	return Field{
		Name:    name,
		Number:  num,
		Kind:    BoolKind,
		Default: false,
		get:     func(m Message) any { return *ref(m.(M)) },
		set:     func(m Message, v any) { *ref(m.(M)) = v.(bool) },
	}
}

// String declares a string field backed by the struct field returned by ref.
func String[M Message](name string, num protowire.Number, ref func(M) *string) Field {
	return Field{
		Name:    name,
		Number:  num,
		Kind:    StringKind,
		Default: "",
		get:     func(m Message) any { return *ref(m.(M)) },
		set:     func(m Message, v any) { *ref(m.(M)) = v.(string) },
	}
}

// Int64 declares a varint-encoded int64 field backed by the struct field returned by ref.
func Int64[M Message](name string, num protowire.Number, ref func(M) *int64) Field {
	return Field{
		Name:    name,
		Number:  num,
		Kind:    Int64Kind,
		Default: int64(0),
		get:     func(m Message) any { return *ref(m.(M)) },
		set:     func(m Message, v any) { *ref(m.(M)) = v.(int64) },
	}
}

// Nested declares an embedded message field. The field holds a pointer and is
// absent (nil) by default.
func Nested[M Message, T any, PT interface {
	*T
	Message
}](name string, num protowire.Number, ref func(M) *PT) Field {
	return Field{
		Name:    name,
		Number:  num,
		Kind:    MessageKind,
		Default: nil,
		get: func(m Message) any {
			p := *ref(m.(M))
			if p == nil {
				return nil
			}
			return Message(p)
		},
		set: func(m Message, v any) {
			if v == nil {
				*ref(m.(M)) = nil
				return
			}
			*ref(m.(M)) = v.(PT)
		},
		newMsg: func() Message { return PT(new(T)) },
	}
}

// jsonName converts a snake_case proto name to lowerCamelCase.
func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}
