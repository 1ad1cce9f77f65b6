package de

// ContentKind tags the payload of a Content node.
type ContentKind uint8

const (
	ContentBool ContentKind = iota + 1
	ContentI32
	ContentI64
	ContentU64
	ContentF32
	ContentF64
	ContentString
	ContentBytes
	ContentNull
	ContentSeq
	ContentMap
)

// Content is a buffered copy of whatever a Decoder presented. Maps keep their
// entries in encounter order and keep duplicate keys, so replaying a Content
// reproduces the original event stream.
type Content struct {
	Kind  ContentKind
	Bool  bool
	I64   int64
	U64   uint64
	F64   float64
	Str   string
	Bytes []byte
	Seq   []Content
	Map   []Entry
}

// Entry is one key/value pair of a map Content.
type Entry struct {
	Key   Content
	Value Content
}

func BoolContent(v bool) Content      { return Content{Kind: ContentBool, Bool: v} }
func I32Content(v int32) Content      { return Content{Kind: ContentI32, I64: int64(v)} }
func I64Content(v int64) Content      { return Content{Kind: ContentI64, I64: v} }
func U64Content(v uint64) Content     { return Content{Kind: ContentU64, U64: v} }
func F32Content(v float32) Content    { return Content{Kind: ContentF32, F64: float64(v)} }
func F64Content(v float64) Content    { return Content{Kind: ContentF64, F64: v} }
func StringContent(v string) Content  { return Content{Kind: ContentString, Str: v} }
func BytesContent(v []byte) Content   { return Content{Kind: ContentBytes, Bytes: v} }
func NullContent() Content            { return Content{Kind: ContentNull} }
func SeqContent(v ...Content) Content { return Content{Kind: ContentSeq, Seq: v} }
func MapContent(v ...Entry) Content   { return Content{Kind: ContentMap, Map: v} }

// IsMap reports whether c holds a map.
func (c Content) IsMap() bool { return c.Kind == ContentMap }

// Unexpected classifies c for diagnostics.
func (c Content) Unexpected() Unexpected {
	switch c.Kind {
	case ContentBool:
		return UnexpectedBool(c.Bool)
	case ContentI32, ContentI64:
		return UnexpectedSigned(c.I64)
	case ContentU64:
		return UnexpectedUnsigned(c.U64)
	case ContentF32, ContentF64:
		return UnexpectedFloat(c.F64)
	case ContentString:
		return UnexpectedStr(c.Str)
	case ContentBytes:
		return UnexpectedBytes(c.Bytes)
	case ContentSeq:
		return UnexpectedSeq()
	case ContentMap:
		return UnexpectedMap()
	default:
		return UnexpectedNull()
	}
}

// CaptureContent buffers the value d presents.
func CaptureContent(d Decoder) (Content, error) {
	v := &contentVisitor{}
	if err := d.DecodeAny(v); err != nil {
		return Content{}, err
	}
	return v.out, nil
}

type contentVisitor struct {
	out Content
}

func (*contentVisitor) Expecting() string { return "any value" }

func (v *contentVisitor) VisitBool(b bool) error       { v.out = BoolContent(b); return nil }
func (v *contentVisitor) VisitInt32(i int32) error     { v.out = I32Content(i); return nil }
func (v *contentVisitor) VisitInt64(i int64) error     { v.out = I64Content(i); return nil }
func (v *contentVisitor) VisitUint64(u uint64) error   { v.out = U64Content(u); return nil }
func (v *contentVisitor) VisitFloat32(f float32) error { v.out = F32Content(f); return nil }
func (v *contentVisitor) VisitFloat64(f float64) error { v.out = F64Content(f); return nil }
func (v *contentVisitor) VisitString(s string) error   { v.out = StringContent(s); return nil }
func (v *contentVisitor) VisitNull() error             { v.out = NullContent(); return nil }

func (v *contentVisitor) VisitBytes(b []byte) error {
	v.out = BytesContent(append([]byte(nil), b...))
	return nil
}

func (v *contentVisitor) VisitSeq(s SeqAccess) error {
	var items []Content
	if n, ok := s.SizeHint(); ok {
		items = make([]Content, 0, n)
	}
	for i := 0; ; i++ {
		ed, ok, err := s.NextElement()
		if err != nil {
			return AtIndex(err, i)
		}
		if !ok {
			break
		}
		c, err := CaptureContent(ed)
		if err != nil {
			return AtIndex(err, i)
		}
		items = append(items, c)
	}
	v.out = SeqContent(items...)
	return nil
}

func (v *contentVisitor) VisitMap(m MapAccess) error {
	var entries []Entry
	if n, ok := m.SizeHint(); ok {
		entries = make([]Entry, 0, n)
	}
	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		k, err := CaptureContent(kd)
		if err != nil {
			return err
		}
		vd, err := m.NextValue()
		if err != nil {
			return err
		}
		val, err := CaptureContent(vd)
		if err != nil {
			if k.Kind == ContentString {
				return AtKey(err, k.Str)
			}
			return err
		}
		entries = append(entries, Entry{Key: k, Value: val})
	}
	v.out = MapContent(entries...)
	return nil
}

// NewContentDecoder replays c. Every typed request is served like DecodeAny:
// the visitor receives the buffered event as captured.
func NewContentDecoder(c Content) Decoder { return contentDecoder{c: c} }

type contentDecoder struct {
	c Content
}

func (d contentDecoder) DecodeAny(v Visitor) error {
	c := d.c
	switch c.Kind {
	case ContentBool:
		return v.VisitBool(c.Bool)
	case ContentI32:
		return v.VisitInt32(int32(c.I64))
	case ContentI64:
		return v.VisitInt64(c.I64)
	case ContentU64:
		return v.VisitUint64(c.U64)
	case ContentF32:
		return v.VisitFloat32(float32(c.F64))
	case ContentF64:
		return v.VisitFloat64(c.F64)
	case ContentString:
		return v.VisitString(c.Str)
	case ContentBytes:
		return v.VisitBytes(c.Bytes)
	case ContentSeq:
		return v.VisitSeq(&contentSeqAccess{items: c.Seq})
	case ContentMap:
		return v.VisitMap(&contentMapAccess{entries: c.Map})
	default:
		return v.VisitNull()
	}
}

func (d contentDecoder) DecodeBool(v Visitor) error    { return d.DecodeAny(v) }
func (d contentDecoder) DecodeInt32(v Visitor) error   { return d.DecodeAny(v) }
func (d contentDecoder) DecodeInt64(v Visitor) error   { return d.DecodeAny(v) }
func (d contentDecoder) DecodeFloat32(v Visitor) error { return d.DecodeAny(v) }
func (d contentDecoder) DecodeFloat64(v Visitor) error { return d.DecodeAny(v) }
func (d contentDecoder) DecodeString(v Visitor) error  { return d.DecodeAny(v) }
func (d contentDecoder) DecodeBytes(v Visitor) error   { return d.DecodeAny(v) }
func (d contentDecoder) DecodeMap(v Visitor) error     { return d.DecodeAny(v) }
func (d contentDecoder) DecodeSeq(v Visitor) error     { return d.DecodeAny(v) }

func (d contentDecoder) DecodeStruct(_ string, _ []string, v Visitor) error {
	return d.DecodeAny(v)
}

type contentSeqAccess struct {
	items []Content
	pos   int
}

func (s *contentSeqAccess) NextElement() (Decoder, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}
	c := s.items[s.pos]
	s.pos++
	return contentDecoder{c: c}, true, nil
}

func (s *contentSeqAccess) SizeHint() (int, bool) { return len(s.items) - s.pos, true }

type contentMapAccess struct {
	entries []Entry
	pos     int
	pending *Content
}

func (m *contentMapAccess) NextKey() (Decoder, bool, error) {
	if m.pos >= len(m.entries) {
		return nil, false, nil
	}
	e := m.entries[m.pos]
	m.pos++
	m.pending = &e.Value
	return contentDecoder{c: e.Key}, true, nil
}

func (m *contentMapAccess) NextValue() (Decoder, error) {
	if m.pending == nil {
		return nil, MissingValue()
	}
	c := *m.pending
	m.pending = nil
	return contentDecoder{c: c}, nil
}

func (m *contentMapAccess) SizeHint() (int, bool) { return len(m.entries) - m.pos, true }
