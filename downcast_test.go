package salad_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salad "github.com/common-workflow-language/schema-salad"
	"github.com/common-workflow-language/schema-salad/de"
)

type tool struct {
	Class  string
	Inputs de.List[string]
}

func (t *tool) DecodeFrom(d de.Decoder) error {
	return d.DecodeStruct("tool", []string{"class", "inputs"}, &toolVisitor{Reject: de.Reject{Expect: "a tool object"}, out: t})
}

type toolVisitor struct {
	de.Reject
	out *tool
}

func (v *toolVisitor) VisitMap(m de.MapAccess) error {
	for {
		k, ok, err := de.NextKeyString(m)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		vd, err := m.NextValue()
		if err != nil {
			return err
		}
		switch k {
		case "class":
			v.out.Class, err = de.Decode[string](vd)
		case "inputs":
			v.out.Inputs, err = de.Decode[de.List[string]](vd)
		default:
			err = de.Skip(vd)
		}
		if err != nil {
			return de.AtKey(err, k)
		}
	}
}

func TestDowncastKeepsInput(t *testing.T) {
	v := decodeYAML(t, "42")
	require.Equal(t, salad.KindInt, v.Kind())

	_, err := salad.Downcast[string](v)
	require.Error(t, err)
	var dc *salad.DowncastError
	require.True(t, errors.As(err, &dc))
	assert.True(t, dc.Value.Equal(v))
	assert.Equal(t, "string", dc.Target)
	assert.ErrorIs(t, err, de.ErrInvalidType)
	assert.Equal(t, "cannot downcast int value to string: invalid type: integer `42`, expected UTF-8 string", err.Error())

	n, err := salad.Downcast[int64](dc.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	m, err := salad.Downcast[int32](dc.Value)
	require.NoError(t, err)
	assert.Equal(t, int32(42), m)
}

func TestDowncastCoercions(t *testing.T) {
	b, err := salad.Downcast[bool](salad.IntValue(1))
	require.NoError(t, err)
	assert.True(t, b)
	b, err = salad.Downcast[bool](salad.LongValue(0))
	require.NoError(t, err)
	assert.False(t, b)
	_, err = salad.Downcast[bool](salad.IntValue(2))
	assert.ErrorIs(t, err, de.ErrInvalidType)

	i, err := salad.Downcast[int32](salad.LongValue(7))
	require.NoError(t, err)
	assert.Equal(t, int32(7), i)
	_, err = salad.Downcast[int32](salad.LongValue(math.MaxInt32 + 1))
	require.ErrorIs(t, err, de.ErrInvalidType)
	assert.Contains(t, err.Error(), "expected signed integer")

	f, err := salad.Downcast[float32](salad.DoubleValue(0.5))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), f)
	_, err = salad.Downcast[float32](salad.DoubleValue(math.MaxFloat64))
	require.ErrorIs(t, err, de.ErrInvalidType)
	assert.Contains(t, err.Error(), "expected float")

	d, err := salad.Downcast[float64](salad.FloatValue(1.5))
	require.NoError(t, err)
	assert.Equal(t, 1.5, d)

	_, err = salad.Downcast[float64](salad.IntValue(1))
	assert.Contains(t, err.Error(), "expected double")
	_, err = salad.Downcast[int64](salad.StringValue("1"))
	assert.Contains(t, err.Error(), "expected signed long integer")
	_, err = salad.Downcast[*salad.Object](salad.ListValue())
	assert.Contains(t, err.Error(), "expected key-value map object")
}

func TestDowncastToValueNarrows(t *testing.T) {
	v, err := salad.Downcast[salad.Value](salad.LongValue(5))
	require.NoError(t, err)
	assert.Equal(t, salad.KindInt, v.Kind())

	v, err = salad.Downcast[salad.Value](salad.DoubleValue(1.5))
	require.NoError(t, err)
	assert.Equal(t, salad.KindFloat, v.Kind())

	v, err = salad.Downcast[salad.Value](salad.LongValue(1 << 40))
	require.NoError(t, err)
	assert.Equal(t, salad.KindLong, v.Kind())
}

func TestDowncastObject(t *testing.T) {
	v := decodeYAML(t, "class: CommandLineTool\ninputs: reads\nextra: [1, 2]\n")
	o, ok := v.AsObject()
	require.True(t, ok)

	got, err := salad.DowncastObject[tool](o)
	require.NoError(t, err)
	assert.Equal(t, "CommandLineTool", got.Class)
	assert.Equal(t, de.List[string]{"reads"}, got.Inputs)

	o, ok = decodeYAML(t, "class: 7\n").AsObject()
	require.True(t, ok)
	_, err = salad.DowncastObject[tool](o)
	var dc *salad.DowncastError
	require.True(t, errors.As(err, &dc))
	assert.Same(t, o, dc.Object)

	iss := salad.ToIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/class", iss[0].Path)
	assert.Equal(t, salad.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "UTF-8 string", iss[0].Params["expected"])
}

func TestDowncastList(t *testing.T) {
	one, err := salad.Downcast[de.List[string]](salad.StringValue("x"))
	require.NoError(t, err)
	assert.Equal(t, de.List[string]{"x"}, one)

	many, err := salad.Downcast[de.List[string]](salad.ListOf([]string{"a", "b"}, salad.StringValue))
	require.NoError(t, err)
	assert.Equal(t, de.List[string]{"a", "b"}, many)

	_, err = salad.Downcast[de.List[string]](salad.ListValue(salad.StringValue("a"), salad.IntValue(1)))
	require.Error(t, err)
	var e *de.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "/1", e.Pointer())
}

func TestPrimitive(t *testing.T) {
	p, err := salad.Decode[salad.Primitive](salad.YAMLBytes([]byte("true")))
	require.NoError(t, err)
	assert.Equal(t, salad.KindBool, p.Kind())
	assert.Equal(t, "true", p.String())

	p, err = salad.Decode[salad.Primitive](salad.YAMLBytes([]byte("3.14")))
	require.NoError(t, err)
	assert.Equal(t, salad.KindFloat, p.Kind())
	assert.Equal(t, "3.14", p.String())

	_, err = salad.Decode[salad.Primitive](salad.YAMLBytes([]byte("[1]")))
	require.ErrorIs(t, err, de.ErrInvalidType)
	assert.Contains(t, err.Error(), "expected any of the salad primitives")

	_, ok := salad.PrimitiveOf(salad.ListValue())
	assert.False(t, ok)
	q, ok := salad.PrimitiveOf(salad.StringValue("s"))
	require.True(t, ok)
	assert.True(t, q.Value().Equal(salad.StringValue("s")))

	b, err := salad.MarshalJSON(q)
	require.NoError(t, err)
	assert.Equal(t, `"s"`, string(b))
}

func TestNames(t *testing.T) {
	_, err := salad.Decode[salad.ArrayName](salad.JSONBytes([]byte(`"array"`)))
	require.NoError(t, err)

	_, err = salad.Decode[salad.ArrayName](salad.JSONBytes([]byte(`"enum"`)))
	require.ErrorIs(t, err, de.ErrInvalidValue)
	assert.Equal(t, "invalid value: string \"enum\", expected the string `array`", err.Error())

	_, err = salad.Decode[salad.RecordName](salad.JSONBytes([]byte(`1`)))
	assert.ErrorIs(t, err, de.ErrInvalidType)

	var n salad.EnumName
	assert.Equal(t, "enum", n.String())
	b, err := salad.MarshalJSON(n)
	require.NoError(t, err)
	assert.Equal(t, `"enum"`, string(b))
}

func TestPrimitiveType(t *testing.T) {
	pt, err := salad.Decode[salad.PrimitiveType](salad.YAMLBytes([]byte("long")))
	require.NoError(t, err)
	assert.Equal(t, salad.PrimitiveLong, pt)

	_, err = salad.Decode[salad.PrimitiveType](salad.YAMLBytes([]byte("short")))
	require.ErrorIs(t, err, de.ErrInvalidValue)
	assert.Contains(t, err.Error(), "`null`, `boolean`, `int`, `long`, `float`, `double`, `string`")

	for _, name := range []string{"null", "boolean", "int", "long", "float", "double", "string"} {
		pt, ok := salad.ParsePrimitiveType(name)
		require.True(t, ok, name)
		assert.Equal(t, name, pt.String())
	}
	_, ok := salad.ParsePrimitiveType("Int")
	assert.False(t, ok)

	b, err := salad.MarshalYAML(salad.PrimitiveDouble)
	require.NoError(t, err)
	assert.Equal(t, "double\n", string(b))
}
