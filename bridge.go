package salad

import (
	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/internal/narrow"
)

// NewValueDecoder presents v through the decoding contract, so any type that
// decodes from a document decodes from an in-memory Value the same way.
// Typed requests accept the matching variant and the lossless coercions
// between widths; everything else fails with an invalid type error.
func NewValueDecoder(v Value) de.Decoder { return valueDecoder{v: v} }

type valueDecoder struct {
	v Value
}

func (d valueDecoder) mismatch(expected string) error {
	return de.InvalidType(describe(d.v), expected)
}

func (d valueDecoder) DecodeAny(vis de.Visitor) error {
	v := d.v
	switch v.kind {
	case KindBool:
		return vis.VisitBool(v.b)
	case KindInt:
		return vis.VisitInt32(int32(v.i))
	case KindLong:
		if narrow.FitsInt32(v.i) {
			return vis.VisitInt32(int32(v.i))
		}
		return vis.VisitInt64(v.i)
	case KindFloat:
		return vis.VisitFloat32(float32(v.f))
	case KindDouble:
		if narrow.FitsFloat32(v.f) {
			return vis.VisitFloat32(float32(v.f))
		}
		return vis.VisitFloat64(v.f)
	case KindString:
		return vis.VisitString(v.s)
	case KindObject:
		return vis.VisitMap(newObjectAccess(v.obj))
	case KindList:
		return vis.VisitSeq(&listAccess{items: v.list})
	default:
		return de.Custom("cannot decode an invalid value")
	}
}

func (d valueDecoder) DecodeBool(vis de.Visitor) error {
	switch d.v.kind {
	case KindBool:
		return vis.VisitBool(d.v.b)
	case KindInt, KindLong:
		switch d.v.i {
		case 0:
			return vis.VisitBool(false)
		case 1:
			return vis.VisitBool(true)
		}
	}
	return d.mismatch("boolean")
}

func (d valueDecoder) DecodeInt32(vis de.Visitor) error {
	switch d.v.kind {
	case KindInt:
		return vis.VisitInt32(int32(d.v.i))
	case KindLong:
		if narrow.FitsInt32(d.v.i) {
			return vis.VisitInt32(int32(d.v.i))
		}
	}
	return d.mismatch("signed integer")
}

func (d valueDecoder) DecodeInt64(vis de.Visitor) error {
	switch d.v.kind {
	case KindInt, KindLong:
		return vis.VisitInt64(d.v.i)
	}
	return d.mismatch("signed long integer")
}

func (d valueDecoder) DecodeFloat32(vis de.Visitor) error {
	switch d.v.kind {
	case KindFloat:
		return vis.VisitFloat32(float32(d.v.f))
	case KindDouble:
		if narrow.FitsFloat32(d.v.f) {
			return vis.VisitFloat32(float32(d.v.f))
		}
	}
	return d.mismatch("float")
}

func (d valueDecoder) DecodeFloat64(vis de.Visitor) error {
	switch d.v.kind {
	case KindFloat, KindDouble:
		return vis.VisitFloat64(d.v.f)
	}
	return d.mismatch("double")
}

func (d valueDecoder) DecodeString(vis de.Visitor) error {
	if d.v.kind == KindString {
		return vis.VisitString(d.v.s)
	}
	return d.mismatch("UTF-8 string")
}

func (d valueDecoder) DecodeMap(vis de.Visitor) error {
	if d.v.kind == KindObject {
		return vis.VisitMap(newObjectAccess(d.v.obj))
	}
	return d.mismatch("key-value map object")
}

func (d valueDecoder) DecodeSeq(vis de.Visitor) error {
	if d.v.kind == KindList {
		return vis.VisitSeq(&listAccess{items: d.v.list})
	}
	return d.mismatch("list of primitives/objects")
}

func (d valueDecoder) DecodeBytes(vis de.Visitor) error { return d.DecodeAny(vis) }

func (d valueDecoder) DecodeStruct(_ string, _ []string, vis de.Visitor) error {
	return d.DecodeAny(vis)
}

// objectAccess walks the entries of an Object in order; keys are presented
// as strings and values through the bridge again.
type objectAccess struct {
	o       *Object
	pos     int
	pending *Value
}

func newObjectAccess(o *Object) *objectAccess { return &objectAccess{o: o} }

func (m *objectAccess) NextKey() (de.Decoder, bool, error) {
	if m.pos >= m.o.Len() {
		return nil, false, nil
	}
	key := m.o.keys[m.pos]
	m.pending = &m.o.values[m.pos]
	m.pos++
	return de.NewStringDecoder(key), true, nil
}

func (m *objectAccess) NextValue() (de.Decoder, error) {
	if m.pending == nil {
		return nil, de.MissingValue()
	}
	v := *m.pending
	m.pending = nil
	return valueDecoder{v: v}, nil
}

func (m *objectAccess) SizeHint() (int, bool) { return m.o.Len() - m.pos, true }

type listAccess struct {
	items []Value
	pos   int
}

func (s *listAccess) NextElement() (de.Decoder, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}
	v := s.items[s.pos]
	s.pos++
	return valueDecoder{v: v}, true, nil
}

func (s *listAccess) SizeHint() (int, bool) { return len(s.items) - s.pos, true }
