package de

import "go.uber.org/zap"

// MapToList decodes a list of objects written in any of three shapes:
//
//	# sequence of objects, used as-is
//	- {class: a, key: x}
//	# map of objects, the map key is added under the key field
//	a: {key: x}
//	# map of scalars, only with a predicate field
//	a: x        # becomes {class: a, key: x}
//
// Shapes two and three are chosen per entry, so one map may mix them.
type MapToList[T any] struct {
	key     string
	pred    string
	hasPred bool
	data    *SeedData
}

// NewMapToList returns a MapToList that injects map keys under key.
func NewMapToList[T any](key string, data *SeedData) MapToList[T] {
	return MapToList[T]{key: key, data: data}
}

// NewMapToListWithPredicate also accepts scalar map values, stored under pred.
func NewMapToListWithPredicate[T any](key, pred string, data *SeedData) MapToList[T] {
	return MapToList[T]{key: key, pred: pred, hasPred: true, data: data}
}

func (s MapToList[T]) Decode(d Decoder) (List[T], error) {
	v := &mapToListVisitor[T]{
		Reject: Reject{Expect: "a map or sequence of objects"},
		cfg:    s,
		seed:   SeedFor[T](s.data),
	}
	if err := d.DecodeAny(v); err != nil {
		return nil, err
	}
	return v.out, nil
}

type mapToListVisitor[T any] struct {
	Reject
	cfg  MapToList[T]
	seed Seed[T]
	out  List[T]
}

func (v *mapToListVisitor[T]) VisitSeq(s SeqAccess) error {
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

func (v *mapToListVisitor[T]) VisitMap(m MapAccess) error {
	n, ok := m.SizeHint()
	if !ok {
		n = 1
	}
	out := make(List[T], 0, n)
	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		key, err := CaptureContent(kd)
		if err != nil {
			return err
		}
		vd, err := m.NextValue()
		if err != nil {
			return err
		}
		x, err := v.entry(key, vd)
		if err != nil {
			if key.Kind == ContentString {
				return AtKey(err, key.Str)
			}
			return err
		}
		out = append(out, x)
	}
	v.out = out
	return nil
}

func (v *mapToListVisitor[T]) entry(key Content, vd Decoder) (T, error) {
	var zero T
	value, err := CaptureContent(vd)
	if err != nil {
		return zero, err
	}
	keyField := StringContent(v.cfg.key)
	var obj Content
	switch {
	case value.IsMap():
		for _, e := range value.Map {
			if e.Key.Kind == ContentString && e.Key.Str == v.cfg.key {
				Logger().Debug("key field already present in map entry",
					zap.String("field", v.cfg.key), zap.String("entry", key.Str))
				break
			}
		}
		entries := make([]Entry, 0, len(value.Map)+1)
		entries = append(entries, value.Map...)
		obj = MapContent(append(entries, Entry{Key: keyField, Value: key})...)
	case v.cfg.hasPred:
		obj = MapContent(
			Entry{Key: keyField, Value: key},
			Entry{Key: StringContent(v.cfg.pred), Value: value},
		)
	default:
		return zero, Custom("field `%s` requires a map or predicate value", v.cfg.key)
	}
	return v.seed.Decode(NewContentDecoder(obj))
}
