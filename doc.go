// Package salad provides:
//
// - Value, an untyped document tree (booleans, 32/64-bit integers and floats,
// strings, ordered objects and lists) with numeric narrowing at decode time
// - Downcast, which re-decodes a Value or Object into any decodable type
// - Decode/DecodeSeed over JSON and YAML sources with duplicate-key and depth
// enforcement
// - A stable error projection via Issues (JSON Pointer, code, message)
//
// Types that decode themselves implement de.Decodable (or de.IntoSeed when
// they need shared context) and work unchanged over a document source or an
// in-memory Value.
//
// Typical usage:
//
//	v, err := salad.Decode[salad.Value](salad.YAMLBytes(data))
//	n, err := salad.Downcast[int64](v)
//
//	fields := de.NewMapToListWithPredicate[Field]("name", "type", nil)
//	list, err := salad.DecodeWith[de.List[Field]](salad.YAMLBytes(data), fields)
package salad
