package salad

import (
	"iter"
	"slices"

	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/ser"
	"github.com/common-workflow-language/schema-salad/source/gojson"
)

// Object maps unique string keys to Values. Entries keep the order in which
// they were decoded or given; equality ignores that order.
type Object struct {
	keys   []string
	values []Value
	index  map[string]int
}

// Field is one key/value entry of an Object.
type Field struct {
	Key   string
	Value Value
}

// NewObject builds an Object from fields, failing on a repeated key.
func NewObject(fields ...Field) (*Object, error) {
	o := &Object{}
	for _, f := range fields {
		if err := o.add(f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Object) add(key string, v Value) error {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if _, dup := o.index[key]; dup {
		return de.DuplicateField(key)
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
	return nil
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.values[i], true
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates over the entries in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i := 0; i < o.Len(); i++ {
			if !yield(o.keys[i], o.values[i]) {
				return
			}
		}
	}
}

// Equal reports whether o and p hold the same entries in any order.
func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}
	for k, v := range o.All() {
		w, ok := p.Get(k)
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

func (o *Object) String() string {
	b, err := gojson.Marshal(o)
	if err != nil {
		return "<object: " + err.Error() + ">"
	}
	return string(b)
}

// DecodeFrom decodes a map, rejecting repeated keys.
func (o *Object) DecodeFrom(d de.Decoder) error {
	v := &objectVisitor{Reject: de.Reject{Expect: "a Schema Salad key-value object"}}
	if err := d.DecodeMap(v); err != nil {
		return err
	}
	*o = *v.out
	return nil
}

type objectVisitor struct {
	de.Reject
	out *Object
}

func (v *objectVisitor) VisitMap(m de.MapAccess) error {
	o, err := decodeEntries(m)
	if err != nil {
		return err
	}
	v.out = o
	return nil
}

func decodeEntries(m de.MapAccess) (*Object, error) {
	o := &Object{}
	if n, ok := m.SizeHint(); ok {
		o.keys = make([]string, 0, n)
		o.values = make([]Value, 0, n)
		o.index = make(map[string]int, n)
	}
	for {
		k, ok, err := de.NextKeyString(m)
		if err != nil {
			return nil, err
		}
		if !ok {
			return o, nil
		}
		vd, err := m.NextValue()
		if err != nil {
			return nil, de.AtKey(err, k)
		}
		var val Value
		if err := val.DecodeFrom(vd); err != nil {
			return nil, de.AtKey(err, k)
		}
		if err := o.add(k, val); err != nil {
			return nil, err
		}
	}
}

// EncodeTo emits the entries in order.
func (o *Object) EncodeTo(e ser.Encoder) error {
	m, err := e.EncodeMap(o.Len())
	if err != nil {
		return err
	}
	for k, v := range o.All() {
		if err := m.EncodeEntry(k, v); err != nil {
			return err
		}
	}
	return m.End()
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) { return gojson.Marshal(o) }
