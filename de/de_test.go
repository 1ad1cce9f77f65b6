package de

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kv is a minimal ordered object used to observe adapter output.
type kv [][2]string

func (o *kv) DecodeFrom(d Decoder) error {
	return d.DecodeMap(&kvVisitor{Reject: Reject{Expect: "an object"}, out: o})
}

type kvVisitor struct {
	Reject
	out *kv
}

func (v *kvVisitor) VisitMap(m MapAccess) error {
	seen := map[string]bool{}
	for {
		k, ok, err := NextKeyString(m)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if seen[k] {
			return DuplicateField(k)
		}
		seen[k] = true
		vd, err := m.NextValue()
		if err != nil {
			return err
		}
		s, err := Decode[string](vd)
		if err != nil {
			return AtKey(err, k)
		}
		*v.out = append(*v.out, [2]string{k, s})
	}
}

type prefixed string

func (prefixed) DecodeSeed(data *SeedData) Seed[prefixed] {
	return SeedFunc[prefixed](func(d Decoder) (prefixed, error) {
		s, err := Decode[string](d)
		if err != nil {
			return "", err
		}
		p, _ := data.Lookup("prefix")
		ps, _ := p.(string)
		return prefixed(ps + s), nil
	})
}

func str(s string) Content { return StringContent(s) }

func entry(k string, v Content) Entry { return Entry{Key: str(k), Value: v} }

func TestDecodeBuiltins(t *testing.T) {
	i, err := Decode[int32](NewContentDecoder(I64Content(7)))
	require.NoError(t, err)
	assert.Equal(t, int32(7), i)

	_, err = Decode[int32](NewContentDecoder(I64Content(math.MaxInt32 + 1)))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Decode[int64](NewContentDecoder(U64Content(math.MaxUint64)))
	assert.ErrorIs(t, err, ErrInvalidValue)

	f, err := Decode[float64](NewContentDecoder(F32Content(1.5)))
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	b, err := Decode[bool](NewContentDecoder(BoolContent(true)))
	require.NoError(t, err)
	assert.True(t, b)

	_, err = Decode[string](NewContentDecoder(BytesContent([]byte{0xff, 0xfe})))
	assert.ErrorIs(t, err, ErrInvalidValue)

	s, err := Decode[string](NewContentDecoder(BytesContent([]byte("ok"))))
	require.NoError(t, err)
	assert.Equal(t, "ok", s)

	_, err = Decode[string](NewContentDecoder(NullContent()))
	require.ErrorIs(t, err, ErrInvalidType)
	assert.Equal(t, "invalid type: null, expected a string", err.Error())
}

func TestDecodeUnsupportedType(t *testing.T) {
	_, err := Decode[complex64](NewContentDecoder(I64Content(1)))
	assert.ErrorIs(t, err, ErrCustom)
}

func TestErrorRendering(t *testing.T) {
	err := InvalidType(UnexpectedStr("x"), "i32")
	assert.Equal(t, `invalid type: string "x", expected i32`, err.Error())

	wrapped := AtIndex(AtKey(InvalidValue(UnexpectedSigned(3), "the string `array`"), "a/b"), 0)
	var de *Error
	require.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "/0/a~1b", de.Pointer())
	assert.Equal(t, "at /0/a~1b: invalid value: integer `3`, expected the string `array`", de.Error())

	dup := DuplicateField("k")
	dup.Line, dup.Column = 3, 1
	assert.Equal(t, "duplicate field `k` (line 3, column 1)", dup.Error())
	assert.ErrorIs(t, dup, ErrDuplicateKey)
	assert.NotErrorIs(t, dup, ErrInvalidType)
}

func TestContentRoundTrip(t *testing.T) {
	src := MapContent(
		entry("a", SeqContent(I32Content(1), F64Content(2.5))),
		entry("a", NullContent()),
	)
	got, err := CaptureContent(NewContentDecoder(src))
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestContentMapMissingValue(t *testing.T) {
	m := &contentMapAccess{entries: []Entry{entry("a", str("b"))}}
	_, err := m.NextValue()
	assert.ErrorIs(t, err, ErrMissingValue)
}

func TestStringDecoder(t *testing.T) {
	s, err := Decode[string](NewStringDecoder("key"))
	require.NoError(t, err)
	assert.Equal(t, "key", s)

	_, err = Decode[int32](NewStringDecoder("key"))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestSkip(t *testing.T) {
	src := MapContent(entry("a", SeqContent(MapContent(entry("b", BoolContent(true))))))
	assert.NoError(t, Skip(NewContentDecoder(src)))
}

func TestSingleOrMany(t *testing.T) {
	tests := []struct {
		name string
		in   Content
		want List[string]
	}{
		{name: "scalar", in: str("a"), want: List[string]{"a"}},
		{name: "sequence", in: SeqContent(str("a"), str("b"), str("c")), want: List[string]{"a", "b", "c"}},
		{name: "empty", in: SeqContent(), want: List[string]{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[List[string]](NewContentDecoder(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSingleOrManyMap(t *testing.T) {
	got, err := Decode[List[kv]](NewContentDecoder(MapContent(entry("a", str("b")))))
	require.NoError(t, err)
	assert.Equal(t, List[kv]{{{"a", "b"}}}, got)
}

func TestSingleOrManyErrors(t *testing.T) {
	_, err := Decode[List[string]](NewContentDecoder(NullContent()))
	require.ErrorIs(t, err, ErrInvalidType)
	assert.Contains(t, err.Error(), "expected one or a list of values")

	_, err = Decode[List[string]](NewContentDecoder(SeqContent(str("a"), I64Content(1))))
	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "/1", de.Pointer())
	assert.Equal(t, CodeInvalidType, de.Code)
}

func TestListDecodeFrom(t *testing.T) {
	var l List[int64]
	require.NoError(t, l.DecodeFrom(NewContentDecoder(I32Content(4))))
	assert.Equal(t, List[int64]{4}, l)
}

func TestSeedThreading(t *testing.T) {
	data := NewSeedData(WithValue("prefix", "x-"))
	got, err := DecodeWith[List[prefixed]](NewContentDecoder(SeqContent(str("a"), str("b"))), data)
	require.NoError(t, err)
	assert.Equal(t, List[prefixed]{"x-a", "x-b"}, got)

	got, err = Decode[List[prefixed]](NewContentDecoder(str("a")))
	require.NoError(t, err)
	assert.Equal(t, List[prefixed]{"a"}, got)
}

func TestSeedDataNil(t *testing.T) {
	var data *SeedData
	_, ok := data.Lookup("x")
	assert.False(t, ok)

	v, ok := NewSeedData(WithValue("x", 1)).Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMapToListSequence(t *testing.T) {
	in := SeqContent(
		MapContent(entry("class", str("a")), entry("key", str("1"))),
		MapContent(entry("class", str("b")), entry("key", str("2"))),
		MapContent(entry("class", str("c")), entry("key", str("3"))),
	)
	got, err := NewMapToList[kv]("class", nil).Decode(NewContentDecoder(in))
	require.NoError(t, err)
	assert.Equal(t, List[kv]{
		{{"class", "a"}, {"key", "1"}},
		{{"class", "b"}, {"key", "2"}},
		{{"class", "c"}, {"key", "3"}},
	}, got)
}

func TestMapToListMapOfObjects(t *testing.T) {
	in := MapContent(
		entry("class_1", MapContent(entry("key", str("value_1")))),
		entry("class_2", MapContent(entry("key", str("value_2")))),
	)
	got, err := NewMapToList[kv]("class", nil).Decode(NewContentDecoder(in))
	require.NoError(t, err)
	assert.Equal(t, List[kv]{
		{{"key", "value_1"}, {"class", "class_1"}},
		{{"key", "value_2"}, {"class", "class_2"}},
	}, got)
}

func TestMapToListPredicate(t *testing.T) {
	in := MapContent(
		entry("class_1", str("value_1")),
		entry("class_2", MapContent(entry("key", str("value_2")))),
	)
	got, err := NewMapToListWithPredicate[kv]("class", "key", nil).Decode(NewContentDecoder(in))
	require.NoError(t, err)
	assert.Equal(t, List[kv]{
		{{"class", "class_1"}, {"key", "value_1"}},
		{{"key", "value_2"}, {"class", "class_2"}},
	}, got)
}

func TestMapToListWithoutPredicate(t *testing.T) {
	in := MapContent(entry("class_1", str("value_1")))
	_, err := NewMapToList[kv]("class", nil).Decode(NewContentDecoder(in))
	require.ErrorIs(t, err, ErrCustom)
	assert.Equal(t, "at /class_1: field `class` requires a map or predicate value", err.Error())
}

func TestMapToListInjectedDuplicate(t *testing.T) {
	in := MapContent(entry("a", MapContent(entry("class", str("b")))))
	_, err := NewMapToList[kv]("class", nil).Decode(NewContentDecoder(in))
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "duplicate field `class`")
}

func TestMapToListRejectsScalar(t *testing.T) {
	_, err := NewMapToList[kv]("class", nil).Decode(NewContentDecoder(str("x")))
	require.ErrorIs(t, err, ErrInvalidType)
	assert.Contains(t, err.Error(), "expected a map or sequence of objects")
}
