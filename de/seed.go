package de

// SeedData is shared, read-only context threaded through recursive decode
// calls. It is built once and never mutated afterwards, so one instance may
// serve concurrent decodes. A nil *SeedData is valid and empty.
type SeedData struct {
	values map[string]any
}

// SeedOption configures a SeedData at construction time.
type SeedOption func(*SeedData)

// WithValue stores v under key.
func WithValue(key string, v any) SeedOption {
	return func(s *SeedData) { s.values[key] = v }
}

// NewSeedData builds an immutable SeedData.
func NewSeedData(opts ...SeedOption) *SeedData {
	s := &SeedData{values: make(map[string]any, len(opts))}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Lookup returns the value stored under key.
func (s *SeedData) Lookup(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Seed decodes one T, possibly using context captured at construction.
type Seed[T any] interface {
	Decode(d Decoder) (T, error)
}

// SeedFunc adapts a function to Seed.
type SeedFunc[T any] func(d Decoder) (T, error)

func (f SeedFunc[T]) Decode(d Decoder) (T, error) { return f(d) }

// IntoSeed is implemented by types that need the shared context to decode.
// The method is called on the zero value of the type.
type IntoSeed[T any] interface {
	DecodeSeed(data *SeedData) Seed[T]
}

// PassThrough is the seed of types that need no context: it ignores the
// SeedData and defers to the type's ordinary decoding.
type PassThrough[T any] struct{}

func (PassThrough[T]) Decode(d Decoder) (T, error) { return decodePlain[T](d) }

// SeedFor returns the seed for T: T's own DecodeSeed when it implements
// IntoSeed, the pass-through seed otherwise.
func SeedFor[T any](data *SeedData) Seed[T] {
	var zero T
	if s, ok := any(zero).(IntoSeed[T]); ok {
		return s.DecodeSeed(data)
	}
	if s, ok := any(&zero).(IntoSeed[T]); ok {
		return s.DecodeSeed(data)
	}
	return PassThrough[T]{}
}

// Decode decodes a T from d without shared context.
func Decode[T any](d Decoder) (T, error) { return SeedFor[T](nil).Decode(d) }

// DecodeWith decodes a T from d, threading data to every nested seed.
func DecodeWith[T any](d Decoder, data *SeedData) (T, error) {
	return SeedFor[T](data).Decode(d)
}
