package engine

import (
	"errors"
	"io"
	"strconv"

	"github.com/common-workflow-language/schema-salad/de"
)

// Reader presents the values of a token stream through the de.Decoder
// contract. Values are pulled from the source only as visitors ask for them.
type Reader struct {
	src  TokenSource
	back *Token
}

// NewReader returns a Reader over src.
func NewReader(src TokenSource) *Reader { return &Reader{src: src} }

// Value returns a decoder for the next value of the stream.
func (r *Reader) Value() de.Decoder { return &valueDecoder{r: r} }

// Finish reports an error when tokens remain after the document.
func (r *Reader) Finish() error {
	tok, err := r.next()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	return at(de.Custom("trailing data after document: unexpected %s", tok.Kind), tok)
}

func (r *Reader) next() (Token, error) {
	if r.back != nil {
		tok := *r.back
		r.back = nil
		return tok, nil
	}
	tok, err := r.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.EOF
	}
	return tok, err
}

func (r *Reader) unread(tok Token) { r.back = &tok }

// valueDecoder consumes exactly one value the first time it is asked.
type valueDecoder struct {
	r    *Reader
	used bool
}

func (d *valueDecoder) DecodeAny(v de.Visitor) error {
	if d.used {
		return de.Custom("value already consumed")
	}
	d.used = true
	tok, err := d.r.next()
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindBeginObject:
		m := &mapAccess{r: d.r}
		if err := v.VisitMap(m); err != nil {
			if m.key != nil {
				err = at(err, *m.key)
			}
			return at(err, tok)
		}
		return m.drain()
	case KindBeginArray:
		s := &seqAccess{r: d.r}
		if err := v.VisitSeq(s); err != nil {
			return at(err, tok)
		}
		return s.drain()
	case KindString:
		return at(v.VisitString(tok.String), tok)
	case KindBytes:
		return at(v.VisitBytes(tok.Bytes), tok)
	case KindBool:
		return at(v.VisitBool(tok.Bool), tok)
	case KindNull:
		return at(v.VisitNull(), tok)
	case KindNumber:
		return at(visitNumber(v, tok.Number), tok)
	default:
		return at(de.Custom("unexpected %s", tok.Kind), tok)
	}
}

func (d *valueDecoder) DecodeBool(v de.Visitor) error    { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeInt32(v de.Visitor) error   { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeInt64(v de.Visitor) error   { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeFloat32(v de.Visitor) error { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeFloat64(v de.Visitor) error { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeString(v de.Visitor) error  { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeBytes(v de.Visitor) error   { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeMap(v de.Visitor) error     { return d.DecodeAny(v) }
func (d *valueDecoder) DecodeSeq(v de.Visitor) error     { return d.DecodeAny(v) }

func (d *valueDecoder) DecodeStruct(_ string, _ []string, v de.Visitor) error {
	return d.DecodeAny(v)
}

// skip discards the value when no visitor claimed it.
func (d *valueDecoder) skip() error {
	if d == nil || d.used {
		return nil
	}
	return de.Skip(d)
}

// visitNumber presents a number literal as the narrowest signed, unsigned or
// floating representation that parses. Literals beyond the float64 range are
// rejected rather than rounded to an infinity.
func visitNumber(v de.Visitor, lit string) error {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return v.VisitInt64(i)
	}
	if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
		return v.VisitUint64(u)
	}
	f, err := strconv.ParseFloat(lit, 64)
	if errors.Is(err, strconv.ErrRange) {
		return de.InvalidValue(de.UnexpectedStr(lit), "a number within the 64-bit float range")
	}
	if err != nil {
		return de.Custom("invalid number literal %q", lit)
	}
	return v.VisitFloat64(f)
}

type mapAccess struct {
	r       *Reader
	pending bool
	value   *valueDecoder
	done    bool
	// key is the token of the entry being visited; errors raised for the
	// entry without a position of their own take its position.
	key *Token
}

func (m *mapAccess) NextKey() (de.Decoder, bool, error) {
	if m.done {
		return nil, false, nil
	}
	if err := m.settle(); err != nil {
		return nil, false, err
	}
	tok, err := m.r.next()
	if errors.Is(err, io.EOF) {
		return nil, false, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, false, err
	}
	switch tok.Kind {
	case KindEndObject:
		m.done, m.key = true, nil
		return nil, false, nil
	case KindKey:
		m.pending, m.key = true, &tok
		return de.NewStringDecoder(tok.String), true, nil
	default:
		return nil, false, at(de.Custom("expected object key, found %s", tok.Kind), tok)
	}
}

func (m *mapAccess) NextValue() (de.Decoder, error) {
	if !m.pending {
		return nil, de.MissingValue()
	}
	m.pending = false
	m.value = &valueDecoder{r: m.r}
	return m.value, nil
}

func (*mapAccess) SizeHint() (int, bool) { return 0, false }

// settle consumes whatever the visitor left of the previous entry.
func (m *mapAccess) settle() error {
	if m.pending {
		m.pending = false
		m.value = &valueDecoder{r: m.r}
	}
	err := m.value.skip()
	m.value = nil
	return err
}

func (m *mapAccess) drain() error {
	for {
		_, ok, err := m.NextKey()
		if err != nil || !ok {
			return err
		}
	}
}

type seqAccess struct {
	r    *Reader
	elem *valueDecoder
	done bool
}

func (s *seqAccess) NextElement() (de.Decoder, bool, error) {
	if s.done {
		return nil, false, nil
	}
	if err := s.elem.skip(); err != nil {
		return nil, false, err
	}
	s.elem = nil
	tok, err := s.r.next()
	if errors.Is(err, io.EOF) {
		return nil, false, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, false, err
	}
	if tok.Kind == KindEndArray {
		s.done = true
		return nil, false, nil
	}
	s.r.unread(tok)
	s.elem = &valueDecoder{r: s.r}
	return s.elem, true, nil
}

func (*seqAccess) SizeHint() (int, bool) { return 0, false }

func (s *seqAccess) drain() error {
	for {
		_, ok, err := s.NextElement()
		if err != nil || !ok {
			return err
		}
	}
}

// at stamps the token position on a decode error that has none yet.
func at(err error, tok Token) error {
	if err == nil || tok.Line == 0 {
		return err
	}
	var e *de.Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line, e.Column = tok.Line, tok.Column
	}
	return err
}
