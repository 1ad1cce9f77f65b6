// Package ser defines the encoding contract, the dual of package de: values
// push scalars, ordered maps and ordered sequences into an Encoder.
package ser

// Encoder receives exactly one value.
type Encoder interface {
	EncodeBool(v bool) error
	EncodeInt32(v int32) error
	EncodeInt64(v int64) error
	EncodeFloat32(v float32) error
	EncodeFloat64(v float64) error
	EncodeString(v string) error
	// EncodeMap starts a map of size entries (negative when unknown).
	EncodeMap(size int) (MapEncoder, error)
	// EncodeSeq starts a sequence of size elements (negative when unknown).
	EncodeSeq(size int) (SeqEncoder, error)
}

// MapEncoder receives map entries in order. End must be called once.
type MapEncoder interface {
	EncodeEntry(key string, v Encodable) error
	End() error
}

// SeqEncoder receives sequence elements in order. End must be called once.
type SeqEncoder interface {
	EncodeElement(v Encodable) error
	End() error
}

// Encodable is implemented by values that know how to emit themselves.
type Encodable interface {
	EncodeTo(e Encoder) error
}

// EncodableFunc adapts a function to Encodable.
type EncodableFunc func(e Encoder) error

func (f EncodableFunc) EncodeTo(e Encoder) error { return f(e) }

// String is an Encodable string.
type String string

func (s String) EncodeTo(e Encoder) error { return e.EncodeString(string(s)) }
