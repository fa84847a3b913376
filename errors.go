package tres

import (
	"errors"
	"reflect"

	"github.com/KimNorgaard/go-tres/internal/formatter"
	"github.com/KimNorgaard/go-tres/internal/parser"
	"github.com/KimNorgaard/go-tres/value"
)

// Diagnostic describes a line that was skipped while parsing.
type Diagnostic = parser.Diagnostic

// Diagnostics is the list of lines skipped while parsing a document. It
// implements error.
type Diagnostics = parser.Diagnostics

// ErrNoFilePath is returned when saving or removing a resource that has no
// backing file.
var ErrNoFilePath = errors.New("tres: resource has no file path")

// ErrInvalidKey is returned when writing a property whose name is not made
// of letters, digits and underscores.
var ErrInvalidKey = formatter.ErrInvalidKey

// ErrNoLiteral is returned when writing a value that has no one-line
// literal, such as a string with a line break or an empty value.RawString.
var ErrNoLiteral = formatter.ErrNoLiteral

// ErrInvalidUTF8 is returned when reading a file that is not UTF-8 text.
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// A DecodeError reports a property whose value cannot be stored in a Go value.
type DecodeError struct {
	Key  string
	Kind value.Kind
	Type reflect.Type
	Err  error
}

func (e *DecodeError) Error() string {
	msg := "tres: cannot decode " + string(e.Kind) + " property " + e.Key + " into Go value of type " + e.Type.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// An EncodeError reports a Go value that has no literal form.
type EncodeError struct {
	Key  string
	Type reflect.Type
	Err  error
}

func (e *EncodeError) Error() string {
	msg := "tres: cannot encode field " + e.Key + " of type " + e.Type.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EncodeError) Unwrap() error { return e.Err }
