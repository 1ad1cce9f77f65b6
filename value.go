package salad

import (
	"slices"
	"strconv"
	"unicode/utf8"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/internal/engine"
	"github.com/common-workflow-language/schema-salad/internal/narrow"
	"github.com/common-workflow-language/schema-salad/ser"
	"github.com/common-workflow-language/schema-salad/source/gojson"
	yamlsrc "github.com/common-workflow-language/schema-salad/source/yaml"
)

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindObject
	KindList
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "boolean",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindString:  "string",
	KindObject:  "object",
	KindList:    "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is an untyped document value: a boolean, a 32 or 64-bit integer, a
// 32 or 64-bit float, a string, an Object or a list of Values. Values are
// immutable once built. The zero Value is invalid.
//
// Decoding stores integers as Int when they fit in 32 bits and as Long
// otherwise; floats as Float when within the float32 range and as Double
// otherwise.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	obj  *Object
	list []Value
}

func BoolValue(v bool) Value      { return Value{kind: KindBool, b: v} }
func IntValue(v int32) Value      { return Value{kind: KindInt, i: int64(v)} }
func LongValue(v int64) Value     { return Value{kind: KindLong, i: v} }
func FloatValue(v float32) Value  { return Value{kind: KindFloat, f: float64(v)} }
func DoubleValue(v float64) Value { return Value{kind: KindDouble, f: v} }
func StringValue(v string) Value  { return Value{kind: KindString, s: v} }

// ObjectValue wraps o; a nil Object becomes an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = &Object{}
	}
	return Value{kind: KindObject, obj: o}
}

// ListValue builds a list of the given items.
func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// ListOf builds a list Value from a typed slice.
func ListOf[T any](xs []T, conv func(T) Value) Value {
	items := make([]Value, len(xs))
	for i, x := range xs {
		items[i] = conv(x)
	}
	return Value{kind: KindList, list: items}
}

// IntegerValue stores v as Int when it fits in 32 bits, as Long otherwise.
func IntegerValue(v int64) Value {
	if narrow.FitsInt32(v) {
		return IntValue(int32(v))
	}
	return LongValue(v)
}

// NumberValue stores v as Float when it is within the float32 range, as
// Double otherwise. Precision beyond float32 is not preserved.
func NumberValue(v float64) Value {
	if narrow.FitsFloat32(v) {
		return FloatValue(float32(v))
	}
	return DoubleValue(v)
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a variant.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

func (v Value) IsBool() bool    { return v.kind == KindBool }
func (v Value) IsInteger() bool { return v.kind == KindInt || v.kind == KindLong }
func (v Value) IsFloat() bool   { return v.kind == KindFloat || v.kind == KindDouble }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsObject() bool  { return v.kind == KindObject }
func (v Value) IsList() bool    { return v.kind == KindList }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsInt() (int32, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int32(v.i), true
}

func (v Value) AsLong() (int64, bool) {
	if v.kind != KindLong {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsFloat() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return float32(v.f), true
}

func (v Value) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.f, true
}

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == KindObject }

// AsList returns a copy of the list items.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Len returns the number of items of a list or entries of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Index returns the i-th item of a list.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Get returns the entry key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Equal reports deep equality. Objects compare regardless of key order.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == w.b
	case KindInt, KindLong:
		return v.i == w.i
	case KindFloat, KindDouble:
		return v.f == w.f
	case KindString:
		return v.s == w.s
	case KindObject:
		return v.obj.Equal(w.obj)
	case KindList:
		return slices.EqualFunc(v.list, w.list, Value.Equal)
	default:
		return true
	}
}

// String renders scalars the way they read in a document and collections as
// compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt, KindLong:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindObject, KindList:
		b, err := gojson.Marshal(v)
		if err != nil {
			return "<" + v.kind.String() + ": " + err.Error() + ">"
		}
		return string(b)
	default:
		return "<invalid>"
	}
}

// DecodeFrom decodes whatever value d presents.
func (v *Value) DecodeFrom(d de.Decoder) error {
	vis := &valueVisitor{Reject: de.Reject{Expect: "a salad primitive, a key-value object, or a list of them"}}
	if err := d.DecodeAny(vis); err != nil {
		return err
	}
	*v = vis.out
	return nil
}

type valueVisitor struct {
	de.Reject
	out Value
}

func (v *valueVisitor) VisitBool(b bool) error       { v.out = BoolValue(b); return nil }
func (v *valueVisitor) VisitInt32(i int32) error     { v.out = IntValue(i); return nil }
func (v *valueVisitor) VisitInt64(i int64) error     { v.out = IntegerValue(i); return nil }
func (v *valueVisitor) VisitFloat32(f float32) error { v.out = FloatValue(f); return nil }
func (v *valueVisitor) VisitFloat64(f float64) error { v.out = NumberValue(f); return nil }
func (v *valueVisitor) VisitString(s string) error   { v.out = StringValue(s); return nil }

func (v *valueVisitor) VisitUint64(u uint64) error {
	i, ok := narrow.Uint64ToInt64(u)
	if !ok {
		return de.InvalidValue(de.UnexpectedUnsigned(u), v.Expect)
	}
	v.out = IntegerValue(i)
	return nil
}

func (v *valueVisitor) VisitBytes(b []byte) error {
	if !utf8.Valid(b) {
		return de.InvalidValue(de.UnexpectedBytes(b), v.Expect)
	}
	v.out = StringValue(string(b))
	return nil
}

func (v *valueVisitor) VisitMap(m de.MapAccess) error {
	o, err := decodeEntries(m)
	if err != nil {
		return err
	}
	v.out = ObjectValue(o)
	return nil
}

func (v *valueVisitor) VisitSeq(s de.SeqAccess) error {
	n, _ := s.SizeHint()
	items := make([]Value, 0, n)
	for i := 0; ; i++ {
		ed, ok, err := s.NextElement()
		if err != nil {
			return de.AtIndex(err, i)
		}
		if !ok {
			break
		}
		var item Value
		if err := item.DecodeFrom(ed); err != nil {
			return de.AtIndex(err, i)
		}
		items = append(items, item)
	}
	v.out = Value{kind: KindList, list: items}
	return nil
}

// EncodeTo emits v: scalars as themselves, objects and lists in order.
func (v Value) EncodeTo(e ser.Encoder) error {
	switch v.kind {
	case KindBool:
		return e.EncodeBool(v.b)
	case KindInt:
		return e.EncodeInt32(int32(v.i))
	case KindLong:
		return e.EncodeInt64(v.i)
	case KindFloat:
		return e.EncodeFloat32(float32(v.f))
	case KindDouble:
		return e.EncodeFloat64(v.f)
	case KindString:
		return e.EncodeString(v.s)
	case KindObject:
		return v.obj.EncodeTo(e)
	case KindList:
		s, err := e.EncodeSeq(len(v.list))
		if err != nil {
			return err
		}
		for _, item := range v.list {
			if err := s.EncodeElement(item); err != nil {
				return err
			}
		}
		return s.End()
	default:
		return de.Custom("cannot encode an invalid value")
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) { return gojson.Marshal(v) }

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	out, err := Decode[Value](JSONBytes(b))
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) { return yamlsrc.ToNode(v) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(n *yamlv3.Node) error {
	r := engine.NewReader(yamlsrc.FromNode(n))
	if err := v.DecodeFrom(r.Value()); err != nil {
		return err
	}
	return r.Finish()
}

// describe renders a Value for diagnostics.
func describe(v Value) de.Unexpected {
	switch v.kind {
	case KindBool:
		return de.UnexpectedBool(v.b)
	case KindInt, KindLong:
		return de.UnexpectedSigned(v.i)
	case KindFloat, KindDouble:
		return de.UnexpectedFloat(v.f)
	case KindString:
		return de.UnexpectedStr(v.s)
	case KindObject:
		return de.UnexpectedMap()
	case KindList:
		return de.UnexpectedSeq()
	default:
		return de.Unexpected{}
	}
}
