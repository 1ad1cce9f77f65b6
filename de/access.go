package de

// NewStringDecoder presents s as a string value. Byte requests receive the
// raw bytes; every other request is served as a string.
func NewStringDecoder(s string) Decoder { return stringDecoder(s) }

type stringDecoder string

func (s stringDecoder) DecodeAny(v Visitor) error     { return v.VisitString(string(s)) }
func (s stringDecoder) DecodeBool(v Visitor) error    { return s.DecodeAny(v) }
func (s stringDecoder) DecodeInt32(v Visitor) error   { return s.DecodeAny(v) }
func (s stringDecoder) DecodeInt64(v Visitor) error   { return s.DecodeAny(v) }
func (s stringDecoder) DecodeFloat32(v Visitor) error { return s.DecodeAny(v) }
func (s stringDecoder) DecodeFloat64(v Visitor) error { return s.DecodeAny(v) }
func (s stringDecoder) DecodeString(v Visitor) error  { return s.DecodeAny(v) }
func (s stringDecoder) DecodeBytes(v Visitor) error   { return v.VisitBytes([]byte(s)) }
func (s stringDecoder) DecodeMap(v Visitor) error     { return s.DecodeAny(v) }
func (s stringDecoder) DecodeSeq(v Visitor) error     { return s.DecodeAny(v) }

func (s stringDecoder) DecodeStruct(_ string, _ []string, v Visitor) error {
	return s.DecodeAny(v)
}

// MapAccessDecoder presents an in-progress map walk as a map value, so the
// entries of m can be handed to another type's decoding.
func MapAccessDecoder(m MapAccess) Decoder { return mapAccessDecoder{m: m} }

type mapAccessDecoder struct {
	m MapAccess
}

func (d mapAccessDecoder) DecodeAny(v Visitor) error     { return v.VisitMap(d.m) }
func (d mapAccessDecoder) DecodeBool(v Visitor) error    { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeInt32(v Visitor) error   { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeInt64(v Visitor) error   { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeFloat32(v Visitor) error { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeFloat64(v Visitor) error { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeString(v Visitor) error  { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeBytes(v Visitor) error   { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeMap(v Visitor) error     { return d.DecodeAny(v) }
func (d mapAccessDecoder) DecodeSeq(v Visitor) error     { return d.DecodeAny(v) }

func (d mapAccessDecoder) DecodeStruct(_ string, _ []string, v Visitor) error {
	return d.DecodeAny(v)
}

// SeqAccessDecoder presents an in-progress sequence walk as a sequence value.
func SeqAccessDecoder(s SeqAccess) Decoder { return seqAccessDecoder{s: s} }

type seqAccessDecoder struct {
	s SeqAccess
}

func (d seqAccessDecoder) DecodeAny(v Visitor) error     { return v.VisitSeq(d.s) }
func (d seqAccessDecoder) DecodeBool(v Visitor) error    { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeInt32(v Visitor) error   { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeInt64(v Visitor) error   { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeFloat32(v Visitor) error { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeFloat64(v Visitor) error { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeString(v Visitor) error  { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeBytes(v Visitor) error   { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeMap(v Visitor) error     { return d.DecodeAny(v) }
func (d seqAccessDecoder) DecodeSeq(v Visitor) error     { return d.DecodeAny(v) }

func (d seqAccessDecoder) DecodeStruct(_ string, _ []string, v Visitor) error {
	return d.DecodeAny(v)
}
