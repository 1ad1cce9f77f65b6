package salad

import (
	"go.uber.org/zap"

	"github.com/common-workflow-language/schema-salad/de"
	eng "github.com/common-workflow-language/schema-salad/internal/engine"
	"github.com/common-workflow-language/schema-salad/ser"
	"github.com/common-workflow-language/schema-salad/source/gojson"
	yamlsrc "github.com/common-workflow-language/schema-salad/source/yaml"
)

// Decode reads one document from src into a T. T may be a builtin scalar,
// any de.Decodable or any de.IntoSeed type. Data after the document is an
// error.
func Decode[T any](src Source, opts ...DecodeOpt) (T, error) {
	return DecodeSeed[T](src, nil, opts...)
}

// DecodeSeed is like Decode but threads data to every nested type. A nil
// data falls back to DecodeOpt.Seed.
func DecodeSeed[T any](src Source, data *de.SeedData, opts ...DecodeOpt) (T, error) {
	if data == nil {
		data = lastOpt(opts).Seed
	}
	return DecodeWith(src, de.SeedFor[T](data), opts...)
}

// DecodeWith reads one document from src through seed, e.g. a de.MapToList.
func DecodeWith[T any](src Source, seed de.Seed[T], opts ...DecodeOpt) (T, error) {
	var zero T
	src = EnforceSourceIfNeeded(src, lastOpt(opts))
	r := eng.NewReader(engineTokenSource(src))
	out, err := seed.Decode(r.Value())
	if err == nil {
		err = r.Finish()
	}
	if err != nil {
		Logger().Debug("decode failed", zap.Error(err))
		return zero, err
	}
	return out, nil
}

// MarshalJSON encodes v as compact JSON.
func MarshalJSON(v ser.Encodable) ([]byte, error) { return gojson.Marshal(v) }

// MarshalJSONIndent encodes v as JSON indented by indent.
func MarshalJSONIndent(v ser.Encodable, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, "", indent)
}

// MarshalYAML encodes v as a YAML document.
func MarshalYAML(v ser.Encodable) ([]byte, error) { return yamlsrc.Marshal(v) }
