package de

// List is an ordered list of T that also accepts a bare T in place of a
// one-element sequence.
type List[T any] []T

// DecodeSeed returns the one-or-many seed for T, threading data to every
// element.
func (List[T]) DecodeSeed(data *SeedData) Seed[List[T]] {
	return SingleOrMany[T]{Data: data}
}

// DecodeFrom decodes l without shared context.
func (l *List[T]) DecodeFrom(d Decoder) error {
	out, err := SingleOrMany[T]{}.Decode(d)
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// SingleOrMany decodes either one T or a sequence of T into a List[T].
type SingleOrMany[T any] struct {
	Data *SeedData
}

func (s SingleOrMany[T]) Decode(d Decoder) (List[T], error) {
	v := &singleOrManyVisitor[T]{
		Reject: Reject{Expect: "one or a list of values"},
		seed:   SeedFor[T](s.Data),
	}
	if err := d.DecodeAny(v); err != nil {
		return nil, err
	}
	return v.out, nil
}

type singleOrManyVisitor[T any] struct {
	Reject
	seed Seed[T]
	out  List[T]
}

func (v *singleOrManyVisitor[T]) one(d Decoder) error {
	x, err := v.seed.Decode(d)
	if err != nil {
		return err
	}
	v.out = List[T]{x}
	return nil
}

func (v *singleOrManyVisitor[T]) replay(c Content) error {
	return v.one(NewContentDecoder(c))
}

func (v *singleOrManyVisitor[T]) VisitBool(b bool) error       { return v.replay(BoolContent(b)) }
func (v *singleOrManyVisitor[T]) VisitInt32(i int32) error     { return v.replay(I32Content(i)) }
func (v *singleOrManyVisitor[T]) VisitInt64(i int64) error     { return v.replay(I64Content(i)) }
func (v *singleOrManyVisitor[T]) VisitUint64(u uint64) error   { return v.replay(U64Content(u)) }
func (v *singleOrManyVisitor[T]) VisitFloat32(f float32) error { return v.replay(F32Content(f)) }
func (v *singleOrManyVisitor[T]) VisitFloat64(f float64) error { return v.replay(F64Content(f)) }
func (v *singleOrManyVisitor[T]) VisitString(s string) error   { return v.replay(StringContent(s)) }
func (v *singleOrManyVisitor[T]) VisitBytes(b []byte) error    { return v.replay(BytesContent(b)) }
func (v *singleOrManyVisitor[T]) VisitMap(m MapAccess) error   { return v.one(MapAccessDecoder(m)) }

func (v *singleOrManyVisitor[T]) VisitSeq(s SeqAccess) error {
	n, _ := s.SizeHint()
	out := make(List[T], 0, n)
	for i := 0; ; i++ {
		ed, ok, err := s.NextElement()
		if err != nil {
			return AtIndex(err, i)
		}
		if !ok {
			break
		}
		x, err := v.seed.Decode(ed)
		if err != nil {
			return AtIndex(err, i)
		}
		out = append(out, x)
	}
	v.out = out
	return nil
}
