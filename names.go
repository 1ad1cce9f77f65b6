package salad

import (
	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/ser"
)

// LiteralName is implemented by zero-size types naming one fixed string.
type LiteralName interface {
	Literal() string
}

// Name matches exactly the literal of L. It has no other state: decoding
// checks the string and encoding writes it back.
type Name[L LiteralName] struct{}

func (Name[L]) String() string {
	var l L
	return l.Literal()
}

func (n Name[L]) EncodeTo(e ser.Encoder) error { return e.EncodeString(n.String()) }

func (n *Name[L]) DecodeFrom(d de.Decoder) error {
	lit := n.String()
	v := &literalVisitor{Reject: de.Reject{Expect: "the string `" + lit + "`"}, match: func(s string) bool { return s == lit }}
	return d.DecodeString(v)
}

type literalVisitor struct {
	de.Reject
	match func(string) bool
}

func (v *literalVisitor) VisitString(s string) error {
	if !v.match(s) {
		return de.InvalidValue(de.UnexpectedStr(s), v.Expect)
	}
	return nil
}

type arrayLiteral struct{}

func (arrayLiteral) Literal() string { return "array" }

type enumLiteral struct{}

func (enumLiteral) Literal() string { return "enum" }

type recordLiteral struct{}

func (recordLiteral) Literal() string { return "record" }

// ArrayName matches the string "array".
type ArrayName = Name[arrayLiteral]

// EnumName matches the string "enum".
type EnumName = Name[enumLiteral]

// RecordName matches the string "record".
type RecordName = Name[recordLiteral]

// PrimitiveType names one of the primitive data types of a schema.
type PrimitiveType uint8

const (
	PrimitiveNull PrimitiveType = iota + 1
	PrimitiveBoolean
	PrimitiveInt
	PrimitiveLong
	PrimitiveFloat
	PrimitiveDouble
	PrimitiveString
)

var primitiveTypeNames = map[PrimitiveType]string{
	PrimitiveNull:    "null",
	PrimitiveBoolean: "boolean",
	PrimitiveInt:     "int",
	PrimitiveLong:    "long",
	PrimitiveFloat:   "float",
	PrimitiveDouble:  "double",
	PrimitiveString:  "string",
}

// ParsePrimitiveType returns the type named s.
func ParsePrimitiveType(s string) (PrimitiveType, bool) {
	for t, name := range primitiveTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

func (t PrimitiveType) String() string {
	if name, ok := primitiveTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t PrimitiveType) EncodeTo(e ser.Encoder) error { return e.EncodeString(t.String()) }

func (t *PrimitiveType) DecodeFrom(d de.Decoder) error {
	const expect = "any of the following strings: `null`, `boolean`, `int`, `long`, `float`, `double`, `string`"
	match := func(s string) bool {
		pt, ok := ParsePrimitiveType(s)
		if ok {
			*t = pt
		}
		return ok
	}
	return d.DecodeString(&literalVisitor{Reject: de.Reject{Expect: expect}, match: match})
}
