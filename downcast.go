package salad

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/common-workflow-language/schema-salad/de"
)

// DowncastError reports a failed downcast. It carries the input untouched so
// the caller can retry against another target type.
type DowncastError struct {
	// Value is the input of the downcast.
	Value Value
	// Object is set when the input was an *Object.
	Object *Object
	// Target names the requested type.
	Target string
	Err    error
}

func (e *DowncastError) Error() string {
	return fmt.Sprintf("cannot downcast %s value to %s: %v", e.Value.Kind(), e.Target, e.Err)
}

func (e *DowncastError) Unwrap() error { return e.Err }

// Downcast reinterprets v as a T by decoding T from v. v is never altered;
// on failure the returned *DowncastError holds it.
func Downcast[T any](v Value) (T, error) { return DowncastSeed[T](v, nil) }

// DowncastSeed is like Downcast but threads data to every nested type.
func DowncastSeed[T any](v Value, data *de.SeedData) (T, error) {
	out, err := de.DecodeWith[T](NewValueDecoder(v), data)
	if err != nil {
		var zero T
		return zero, downcastFailed[T](v, nil, err)
	}
	return out, nil
}

// DowncastObject reinterprets o as a T.
func DowncastObject[T any](o *Object) (T, error) {
	v := ObjectValue(o)
	out, err := de.DecodeWith[T](NewValueDecoder(v), nil)
	if err != nil {
		var zero T
		return zero, downcastFailed[T](v, o, err)
	}
	return out, nil
}

func downcastFailed[T any](v Value, o *Object, err error) *DowncastError {
	target := reflect.TypeFor[T]().String()
	Logger().Debug("downcast failed",
		zap.Stringer("kind", v.Kind()),
		zap.String("target", target),
		zap.Error(err),
	)
	return &DowncastError{Value: v, Object: o, Target: target, Err: err}
}
