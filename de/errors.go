package de

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error codes (exported consts, mirroring the issue codes of the root package).
const (
	CodeInvalidType  = "invalid_type"
	CodeInvalidValue = "invalid_value"
	CodeDuplicateKey = "duplicate_key"
	CodeMissingValue = "missing_value"
	CodeCustom       = "custom"
)

// Sentinels for errors.Is; matching compares codes only.
var (
	ErrInvalidType  = &Error{Code: CodeInvalidType}
	ErrInvalidValue = &Error{Code: CodeInvalidValue}
	ErrDuplicateKey = &Error{Code: CodeDuplicateKey}
	ErrMissingValue = &Error{Code: CodeMissingValue}
	ErrCustom       = &Error{Code: CodeCustom}
)

// Error is the structured decode error. Every mismatch carries enough context
// to render an actionable message without looking at the source.
type Error struct {
	Code string
	// Expected describes what the target wanted (invalid_type, invalid_value).
	Expected string
	// Unexpected classifies what the decoder actually presented.
	Unexpected Unexpected
	// Field names the offending key (duplicate_key).
	Field string
	// Message holds the text of custom errors.
	Message string
	// Path locates the error from the document root, outermost segment first.
	Path []string
	// Line and Column are 1-based source positions; zero when unknown.
	Line   int
	Column int
	Cause  error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	if len(e.Path) > 0 {
		fmt.Fprintf(b, "at %s: ", e.Pointer())
	}
	switch e.Code {
	case CodeInvalidType:
		fmt.Fprintf(b, "invalid type: %s, expected %s", e.Unexpected, e.Expected)
	case CodeInvalidValue:
		fmt.Fprintf(b, "invalid value: %s, expected %s", e.Unexpected, e.Expected)
	case CodeDuplicateKey:
		fmt.Fprintf(b, "duplicate field `%s`", e.Field)
	case CodeMissingValue:
		b.WriteString("value is missing")
	default:
		b.WriteString(e.Message)
	}
	if e.Line > 0 {
		fmt.Fprintf(b, " (line %d, column %d)", e.Line, e.Column)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pointer renders Path as a JSON Pointer ("/" for the root).
func (e *Error) Pointer() string { return JoinPointer(e.Path) }

// JoinPointer renders path segments as a JSON Pointer ("/" for the root).
func JoinPointer(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range path {
		b.WriteByte('/')
		b.WriteString(jsonPointerEscaper.Replace(seg))
	}
	return b.String()
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// InvalidType reports a value whose kind does not match the target.
func InvalidType(got Unexpected, expected string) *Error {
	return &Error{Code: CodeInvalidType, Unexpected: got, Expected: expected}
}

// InvalidValue reports a value of the right kind whose content is rejected.
func InvalidValue(got Unexpected, expected string) *Error {
	return &Error{Code: CodeInvalidValue, Unexpected: got, Expected: expected}
}

// DuplicateField reports a key seen twice at one nesting level.
func DuplicateField(field string) *Error {
	return &Error{Code: CodeDuplicateKey, Field: field}
}

// MissingValue reports a map walk asked for a value before a key.
func MissingValue() *Error { return &Error{Code: CodeMissingValue} }

// Custom builds a contextual error with a free-form message.
func Custom(format string, args ...any) *Error {
	return &Error{Code: CodeCustom, Message: fmt.Sprintf(format, args...)}
}

// AtKey prefixes the path of a decode error with a map key. Errors that are
// not *Error pass through unchanged.
func AtKey(err error, key string) error { return prefixPath(err, key) }

// AtIndex prefixes the path of a decode error with a sequence index.
func AtIndex(err error, i int) error { return prefixPath(err, strconv.Itoa(i)) }

func prefixPath(err error, seg string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, seg)
	e.Path = append(path, e.Path...)
	return err
}

// Shape classifies the value a decoder presented.
type Shape uint8

const (
	ShapeBool Shape = iota + 1
	ShapeSigned
	ShapeUnsigned
	ShapeFloat
	ShapeStr
	ShapeBytes
	ShapeNull
	ShapeMap
	ShapeSeq
)

// Unexpected is the structured representation of an offending value used
// for diagnostics.
type Unexpected struct {
	Shape    Shape
	Bool     bool
	Signed   int64
	Unsigned uint64
	Float    float64
	Str      string
	Bytes    []byte
}

func UnexpectedBool(v bool) Unexpected       { return Unexpected{Shape: ShapeBool, Bool: v} }
func UnexpectedSigned(v int64) Unexpected    { return Unexpected{Shape: ShapeSigned, Signed: v} }
func UnexpectedUnsigned(v uint64) Unexpected { return Unexpected{Shape: ShapeUnsigned, Unsigned: v} }
func UnexpectedFloat(v float64) Unexpected   { return Unexpected{Shape: ShapeFloat, Float: v} }
func UnexpectedStr(v string) Unexpected      { return Unexpected{Shape: ShapeStr, Str: v} }
func UnexpectedBytes(v []byte) Unexpected    { return Unexpected{Shape: ShapeBytes, Bytes: v} }
func UnexpectedNull() Unexpected             { return Unexpected{Shape: ShapeNull} }
func UnexpectedMap() Unexpected              { return Unexpected{Shape: ShapeMap} }
func UnexpectedSeq() Unexpected              { return Unexpected{Shape: ShapeSeq} }

func (u Unexpected) String() string {
	switch u.Shape {
	case ShapeBool:
		return fmt.Sprintf("boolean `%t`", u.Bool)
	case ShapeSigned:
		return fmt.Sprintf("integer `%d`", u.Signed)
	case ShapeUnsigned:
		return fmt.Sprintf("integer `%d`", u.Unsigned)
	case ShapeFloat:
		return fmt.Sprintf("floating point `%s`", strconv.FormatFloat(u.Float, 'g', -1, 64))
	case ShapeStr:
		return fmt.Sprintf("string %q", u.Str)
	case ShapeBytes:
		return "byte array"
	case ShapeNull:
		return "null"
	case ShapeMap:
		return "map"
	case ShapeSeq:
		return "sequence"
	default:
		return "unknown value"
	}
}
