// Package de defines the push-style decoding contract shared by document
// backends, the in-memory value bridge and the format-flexible adapters.
//
// A Decoder presents exactly one value. The caller states what it wants
// (DecodeInt32, DecodeMap, ...) or lets the source pick (DecodeAny), and the
// Decoder answers by invoking a single method of the caller's Visitor. Maps and
// sequences are walked on demand through MapAccess and SeqAccess, each entry
// being another Decoder, so decoding runs as one recursive call stack whose
// depth follows the document's nesting.
package de

// Visitor receives the value a Decoder presents. Implementations keep their
// own result; every method reports failure through its error.
type Visitor interface {
	// Expecting describes the accepted input for diagnostics, e.g. "a string".
	Expecting() string

	VisitBool(v bool) error
	VisitInt32(v int32) error
	VisitInt64(v int64) error
	VisitUint64(v uint64) error
	VisitFloat32(v float32) error
	VisitFloat64(v float64) error
	VisitString(v string) error
	VisitBytes(v []byte) error
	VisitNull() error
	VisitMap(m MapAccess) error
	VisitSeq(s SeqAccess) error
}

// Decoder is a source for exactly one value.
type Decoder interface {
	// DecodeAny lets the source choose which Visitor method to call.
	DecodeAny(v Visitor) error
	DecodeBool(v Visitor) error
	DecodeInt32(v Visitor) error
	DecodeInt64(v Visitor) error
	DecodeFloat32(v Visitor) error
	DecodeFloat64(v Visitor) error
	DecodeString(v Visitor) error
	DecodeBytes(v Visitor) error
	DecodeMap(v Visitor) error
	DecodeSeq(v Visitor) error
	// DecodeStruct requests a record with the given field names. Sources
	// without a native struct notion present a map.
	DecodeStruct(name string, fields []string, v Visitor) error
}

// MapAccess walks the entries of a map. NextValue must follow NextKey.
type MapAccess interface {
	// NextKey returns a decoder for the next key, or false when exhausted.
	NextKey() (Decoder, bool, error)
	// NextValue returns a decoder for the value of the last key.
	NextValue() (Decoder, error)
	// SizeHint returns the number of remaining entries when known.
	SizeHint() (int, bool)
}

// SeqAccess walks the elements of a sequence in order.
type SeqAccess interface {
	NextElement() (Decoder, bool, error)
	SizeHint() (int, bool)
}

// Decodable is implemented (on pointer receivers) by types that construct
// themselves from a Decoder.
type Decodable interface {
	DecodeFrom(d Decoder) error
}

// Reject is an embeddable Visitor base: every visit fails with an invalid
// type error naming Expect. Visitors override the methods they accept.
type Reject struct {
	Expect string
}

func (r Reject) Expecting() string { return r.Expect }

func (r Reject) VisitBool(v bool) error {
	return InvalidType(UnexpectedBool(v), r.Expect)
}

func (r Reject) VisitInt32(v int32) error {
	return InvalidType(UnexpectedSigned(int64(v)), r.Expect)
}

func (r Reject) VisitInt64(v int64) error {
	return InvalidType(UnexpectedSigned(v), r.Expect)
}

func (r Reject) VisitUint64(v uint64) error {
	return InvalidType(UnexpectedUnsigned(v), r.Expect)
}

func (r Reject) VisitFloat32(v float32) error {
	return InvalidType(UnexpectedFloat(float64(v)), r.Expect)
}

func (r Reject) VisitFloat64(v float64) error {
	return InvalidType(UnexpectedFloat(v), r.Expect)
}

func (r Reject) VisitString(v string) error {
	return InvalidType(UnexpectedStr(v), r.Expect)
}

func (r Reject) VisitBytes(v []byte) error {
	return InvalidType(UnexpectedBytes(v), r.Expect)
}

func (r Reject) VisitNull() error {
	return InvalidType(UnexpectedNull(), r.Expect)
}

func (r Reject) VisitMap(MapAccess) error {
	return InvalidType(UnexpectedMap(), r.Expect)
}

func (r Reject) VisitSeq(SeqAccess) error {
	return InvalidType(UnexpectedSeq(), r.Expect)
}

// NextKeyString reads the next key of m as a string.
func NextKeyString(m MapAccess) (string, bool, error) {
	kd, ok, err := m.NextKey()
	if err != nil || !ok {
		return "", ok, err
	}
	s := newStringVisitor()
	if err := kd.DecodeString(s); err != nil {
		return "", false, err
	}
	return s.out, true, nil
}

// Skip drains a decoder without keeping its value.
func Skip(d Decoder) error { return d.DecodeAny(ignoreVisitor{}) }

type ignoreVisitor struct{}

func (ignoreVisitor) Expecting() string          { return "anything" }
func (ignoreVisitor) VisitBool(bool) error       { return nil }
func (ignoreVisitor) VisitInt32(int32) error     { return nil }
func (ignoreVisitor) VisitInt64(int64) error     { return nil }
func (ignoreVisitor) VisitUint64(uint64) error   { return nil }
func (ignoreVisitor) VisitFloat32(float32) error { return nil }
func (ignoreVisitor) VisitFloat64(float64) error { return nil }
func (ignoreVisitor) VisitString(string) error   { return nil }
func (ignoreVisitor) VisitBytes([]byte) error    { return nil }
func (ignoreVisitor) VisitNull() error           { return nil }

func (ignoreVisitor) VisitMap(m MapAccess) error {
	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := Skip(kd); err != nil {
			return err
		}
		vd, err := m.NextValue()
		if err != nil {
			return err
		}
		if err := Skip(vd); err != nil {
			return err
		}
	}
}

func (ignoreVisitor) VisitSeq(s SeqAccess) error {
	for {
		ed, ok, err := s.NextElement()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := Skip(ed); err != nil {
			return err
		}
	}
}
