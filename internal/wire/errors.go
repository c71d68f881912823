// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package wire

import (
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrTruncated     = errors.New("wire: truncated data")
	ErrInvalidUTF8   = errors.New("wire: string field contains invalid UTF-8")
	ErrNotJSONObject = errors.New("wire: JSON body is not an object")
	ErrTrailingData  = errors.New("wire: trailing data after JSON object")
)

// DecodeError reports input that could not be parsed into the expected message.
type DecodeError struct {
	// Message is the full name of the message being decoded.
	Message string
	// Field is the field number being read, or 0 when the failure is not tied to a field.
	Field protowire.Number
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == 0 {
		return fmt.Sprintf("decode %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("decode %s field %d: %v", e.Message, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// consumeErr converts a negative protowire length into an error.
func consumeErr(n int) error {
	err := protowire.ParseError(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
