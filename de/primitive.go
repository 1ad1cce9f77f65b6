package de

import (
	"math"
	"reflect"
	"unicode/utf8"
)

// decodePlain decodes T through its Decodable implementation, falling back to
// the builtin scalar types.
func decodePlain[T any](d Decoder) (T, error) {
	var out T
	if dec, ok := any(&out).(Decodable); ok {
		err := dec.DecodeFrom(d)
		return out, err
	}
	switch p := any(&out).(type) {
	case *bool:
		v := boolVisitor{Reject: Reject{Expect: "a boolean"}}
		err := d.DecodeBool(&v)
		*p = v.out
		return out, err
	case *int32:
		v := int32Visitor{Reject: Reject{Expect: "i32"}}
		err := d.DecodeInt32(&v)
		*p = v.out
		return out, err
	case *int64:
		v := int64Visitor{Reject: Reject{Expect: "i64"}}
		err := d.DecodeInt64(&v)
		*p = v.out
		return out, err
	case *float32:
		v := float32Visitor{Reject: Reject{Expect: "f32"}}
		err := d.DecodeFloat32(&v)
		*p = v.out
		return out, err
	case *float64:
		v := float64Visitor{Reject: Reject{Expect: "f64"}}
		err := d.DecodeFloat64(&v)
		*p = v.out
		return out, err
	case *string:
		v := newStringVisitor()
		err := d.DecodeString(v)
		*p = v.out
		return out, err
	}
	// *U where *U is not decodable but **U is: allocate the pointee.
	rt := reflect.TypeOf(out)
	if rt != nil && rt.Kind() == reflect.Pointer {
		elem := reflect.New(rt.Elem())
		if dec, ok := elem.Interface().(Decodable); ok {
			if err := dec.DecodeFrom(d); err != nil {
				return out, err
			}
			out = elem.Interface().(T)
			return out, nil
		}
	}
	return out, Custom("type %T cannot be decoded: it implements neither de.Decodable nor de.IntoSeed", out)
}

type boolVisitor struct {
	Reject
	out bool
}

func (v *boolVisitor) VisitBool(b bool) error {
	v.out = b
	return nil
}

type int32Visitor struct {
	Reject
	out int32
}

func (v *int32Visitor) VisitInt32(i int32) error {
	v.out = i
	return nil
}

func (v *int32Visitor) VisitInt64(i int64) error {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return InvalidValue(UnexpectedSigned(i), v.Expect)
	}
	v.out = int32(i)
	return nil
}

func (v *int32Visitor) VisitUint64(u uint64) error {
	if u > math.MaxInt32 {
		return InvalidValue(UnexpectedUnsigned(u), v.Expect)
	}
	v.out = int32(u)
	return nil
}

type int64Visitor struct {
	Reject
	out int64
}

func (v *int64Visitor) VisitInt32(i int32) error {
	v.out = int64(i)
	return nil
}

func (v *int64Visitor) VisitInt64(i int64) error {
	v.out = i
	return nil
}

func (v *int64Visitor) VisitUint64(u uint64) error {
	if u > math.MaxInt64 {
		return InvalidValue(UnexpectedUnsigned(u), v.Expect)
	}
	v.out = int64(u)
	return nil
}

type float32Visitor struct {
	Reject
	out float32
}

func (v *float32Visitor) VisitInt32(i int32) error {
	v.out = float32(i)
	return nil
}

func (v *float32Visitor) VisitInt64(i int64) error {
	v.out = float32(i)
	return nil
}

func (v *float32Visitor) VisitUint64(u uint64) error {
	v.out = float32(u)
	return nil
}

func (v *float32Visitor) VisitFloat32(f float32) error {
	v.out = f
	return nil
}

func (v *float32Visitor) VisitFloat64(f float64) error {
	v.out = float32(f)
	return nil
}

type float64Visitor struct {
	Reject
	out float64
}

func (v *float64Visitor) VisitInt32(i int32) error {
	v.out = float64(i)
	return nil
}

func (v *float64Visitor) VisitInt64(i int64) error {
	v.out = float64(i)
	return nil
}

func (v *float64Visitor) VisitUint64(u uint64) error {
	v.out = float64(u)
	return nil
}

func (v *float64Visitor) VisitFloat32(f float32) error {
	v.out = float64(f)
	return nil
}

func (v *float64Visitor) VisitFloat64(f float64) error {
	v.out = f
	return nil
}

type stringVisitor struct {
	Reject
	out string
}

func newStringVisitor() *stringVisitor {
	return &stringVisitor{Reject: Reject{Expect: "a string"}}
}

func (v *stringVisitor) VisitString(s string) error {
	v.out = s
	return nil
}

func (v *stringVisitor) VisitBytes(b []byte) error {
	if !utf8.Valid(b) {
		return InvalidValue(UnexpectedBytes(b), v.Expect)
	}
	v.out = string(b)
	return nil
}
