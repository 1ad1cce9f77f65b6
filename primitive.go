package salad

import (
	"unicode/utf8"

	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/internal/narrow"
	"github.com/common-workflow-language/schema-salad/ser"
)

// Primitive is a Value restricted to the scalar variants: boolean, int,
// long, float, double and string.
type Primitive struct {
	v Value
}

// PrimitiveOf narrows v to a Primitive; objects and lists are refused.
func PrimitiveOf(v Value) (Primitive, bool) {
	switch v.kind {
	case KindInvalid, KindObject, KindList:
		return Primitive{}, false
	}
	return Primitive{v: v}, true
}

// Value widens p back to a Value.
func (p Primitive) Value() Value { return p.v }

func (p Primitive) Kind() Kind { return p.v.kind }

func (p Primitive) String() string { return p.v.String() }

func (p Primitive) Equal(q Primitive) bool { return p.v.Equal(q.v) }

func (p Primitive) EncodeTo(e ser.Encoder) error { return p.v.EncodeTo(e) }

// DecodeFrom decodes any scalar, narrowing numbers like Value does.
func (p *Primitive) DecodeFrom(d de.Decoder) error {
	v := &primitiveVisitor{Reject: de.Reject{Expect: "any of the salad primitives"}}
	if err := d.DecodeAny(v); err != nil {
		return err
	}
	p.v = v.out
	return nil
}

type primitiveVisitor struct {
	de.Reject
	out Value
}

func (v *primitiveVisitor) VisitBool(b bool) error       { v.out = BoolValue(b); return nil }
func (v *primitiveVisitor) VisitInt32(i int32) error     { v.out = IntValue(i); return nil }
func (v *primitiveVisitor) VisitInt64(i int64) error     { v.out = IntegerValue(i); return nil }
func (v *primitiveVisitor) VisitFloat32(f float32) error { v.out = FloatValue(f); return nil }
func (v *primitiveVisitor) VisitFloat64(f float64) error { v.out = NumberValue(f); return nil }
func (v *primitiveVisitor) VisitString(s string) error   { v.out = StringValue(s); return nil }

func (v *primitiveVisitor) VisitUint64(u uint64) error {
	i, ok := narrow.Uint64ToInt64(u)
	if !ok {
		return de.InvalidValue(de.UnexpectedUnsigned(u), v.Expect)
	}
	v.out = IntegerValue(i)
	return nil
}

func (v *primitiveVisitor) VisitBytes(b []byte) error {
	if !utf8.Valid(b) {
		return de.InvalidValue(de.UnexpectedBytes(b), v.Expect)
	}
	v.out = StringValue(string(b))
	return nil
}
