package salad_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	salad "github.com/common-workflow-language/schema-salad"
	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/i18n"
)

// ignored accepts any document.
type ignored struct{}

func (*ignored) DecodeFrom(d de.Decoder) error { return de.Skip(d) }

// prefixed prepends the "prefix" seed value to a string.
type prefixed string

func (prefixed) DecodeSeed(data *de.SeedData) de.Seed[prefixed] {
	return de.SeedFunc[prefixed](func(d de.Decoder) (prefixed, error) {
		s, err := de.Decode[string](d)
		if err != nil {
			return "", err
		}
		p, _ := data.Lookup("prefix")
		ps, _ := p.(string)
		return prefixed(ps + s), nil
	})
}

func TestTrailingData(t *testing.T) {
	_, err := salad.Decode[int32](salad.JSONBytes([]byte(`1 2`)))
	require.ErrorIs(t, err, de.ErrCustom)
	assert.Contains(t, err.Error(), "trailing data after document")

	_, err = salad.Decode[salad.Value](salad.YAMLBytes([]byte("a: 1\n---\nb: 2\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing data after document")
}

func TestTruncatedInput(t *testing.T) {
	_, err := salad.Decode[salad.Value](salad.JSONBytes([]byte(`{"a": [1, 2`)))
	require.Error(t, err)
	iss := salad.ToIssues(err)
	require.Len(t, iss, 1)
	assert.Contains(t, []string{salad.CodeTruncated, salad.CodeParseError}, iss[0].Code)
}

func TestStrictDuplicateKeys(t *testing.T) {
	doc := "a: 1\nb:\n  c: 1\n  c: 2\n"
	opt := salad.DecodeOpt{Strictness: salad.Strictness{OnDuplicateKey: salad.Error}}

	_, err := salad.Decode[ignored](salad.YAMLBytes([]byte(doc)))
	require.NoError(t, err)

	_, err = salad.Decode[ignored](salad.YAMLBytes([]byte(doc)), opt)
	require.ErrorIs(t, err, de.ErrDuplicateKey)
	var e *de.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "c", e.Field)
	assert.Equal(t, 4, e.Line)
	assert.Equal(t, 3, e.Column)

	iss := salad.ToIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, salad.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "duplicate field `c`", iss[0].Message)
	assert.Equal(t, 4, iss[0].Line)
}

func TestWarnDuplicateKeysLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	salad.SetLogger(zap.New(core))
	t.Cleanup(func() { salad.SetLogger(nil) })

	opt := salad.DecodeOpt{Strictness: salad.Strictness{OnDuplicateKey: salad.Warn}}
	_, err := salad.Decode[ignored](salad.JSONBytes([]byte(`{"l": [{"a": 1, "a": 2}]}`)), opt)
	require.NoError(t, err)

	entries := logs.FilterMessage("duplicate key").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/l/0/a", fields["path"])
	assert.Equal(t, "a", fields["key"])
}

func TestMaxDepth(t *testing.T) {
	doc := []byte(`{"a": {"b": [1]}}`)
	_, err := salad.Decode[salad.Value](salad.JSONBytes(doc), salad.DecodeOpt{MaxDepth: 3})
	require.NoError(t, err)

	_, err = salad.Decode[salad.Value](salad.JSONBytes(doc), salad.DecodeOpt{MaxDepth: 2})
	require.ErrorIs(t, err, de.ErrCustom)
	assert.Contains(t, err.Error(), "max depth 2 exceeded")
}

func TestEnforceSourceIfNeeded(t *testing.T) {
	src := salad.JSONBytes([]byte(`{}`))
	assert.Same(t, src, salad.EnforceSourceIfNeeded(src, salad.DecodeOpt{}))
	assert.NotSame(t, src, salad.EnforceSourceIfNeeded(src, salad.DecodeOpt{MaxDepth: 1}))
	warn := salad.DecodeOpt{Strictness: salad.Strictness{OnDuplicateKey: salad.Warn}}
	assert.NotSame(t, src, salad.EnforceSourceIfNeeded(src, warn))
}

func TestLastOptionWins(t *testing.T) {
	doc := []byte(`{"a": 1, "a": 2}`)
	strict := salad.DecodeOpt{Strictness: salad.Strictness{OnDuplicateKey: salad.Error}}
	_, err := salad.Decode[ignored](salad.JSONBytes(doc), strict, salad.DecodeOpt{})
	assert.NoError(t, err)
	_, err = salad.Decode[ignored](salad.JSONBytes(doc), salad.DecodeOpt{}, strict)
	assert.ErrorIs(t, err, de.ErrDuplicateKey)
}

func TestDecodeSeed(t *testing.T) {
	data := de.NewSeedData(de.WithValue("prefix", "#"))
	got, err := salad.DecodeSeed[de.List[prefixed]](salad.YAMLBytes([]byte("[a, b]")), data)
	require.NoError(t, err)
	assert.Equal(t, de.List[prefixed]{"#a", "#b"}, got)

	got, err = salad.Decode[de.List[prefixed]](salad.YAMLBytes([]byte("a")), salad.DecodeOpt{Seed: data})
	require.NoError(t, err)
	assert.Equal(t, de.List[prefixed]{"#a"}, got)

	one, err := salad.DowncastSeed[prefixed](salad.StringValue("x"), data)
	require.NoError(t, err)
	assert.Equal(t, prefixed("#x"), one)
}

func TestMapToListShapes(t *testing.T) {
	seed := de.NewMapToListWithPredicate[salad.Value]("class", "key", nil)
	docs := map[string]string{
		"sequence": "- {class: class_1, key: value_1}\n- {class: class_2, key: value_2}\n",
		"objects":  "class_1: {key: value_1}\nclass_2: {key: value_2}\n",
		"scalars":  "class_1: value_1\nclass_2: value_2\n",
		"mixed":    "class_1: value_1\nclass_2: {key: value_2}\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			got, err := salad.DecodeWith[de.List[salad.Value]](salad.YAMLBytes([]byte(doc)), seed)
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i, item := range got {
				class, ok := item.Get("class")
				require.True(t, ok)
				key, ok := item.Get("key")
				require.True(t, ok)
				n := string(rune('1' + i))
				assert.Equal(t, "class_"+n, class.String())
				assert.Equal(t, "value_"+n, key.String())
			}
		})
	}
}

func TestMapToListErrors(t *testing.T) {
	seed := de.NewMapToList[salad.Value]("class", nil)

	_, err := salad.DecodeWith[de.List[salad.Value]](salad.JSONBytes([]byte(`{"class_1": "value_1"}`)), seed)
	require.ErrorIs(t, err, de.ErrCustom)
	assert.Equal(t, "at /class_1: field `class` requires a map or predicate value", err.Error())

	_, err = salad.DecodeWith[de.List[salad.Value]](salad.JSONBytes([]byte(`{"a": {"class": "b"}}`)), seed)
	require.ErrorIs(t, err, de.ErrDuplicateKey)
	var e *de.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "/a", e.Pointer())

	_, err = salad.DecodeWith[de.List[salad.Value]](salad.JSONBytes([]byte(`"x"`)), seed)
	assert.ErrorIs(t, err, de.ErrInvalidType)
}

func TestToIssues(t *testing.T) {
	_, err := salad.Decode[int32](salad.JSONBytes([]byte(`"x"`)))
	iss := salad.ToIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/", iss[0].Path)
	assert.Equal(t, salad.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "invalid type: got string \"x\", expected i32", iss[0].Message)
	assert.Equal(t, "invalid_type at /", iss.Error())

	again, ok := salad.AsIssues(error(iss))
	require.True(t, ok)
	assert.Equal(t, iss, again)

	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })
	iss = salad.ToIssues(err)
	assert.Equal(t, "型が不正です: string \"x\" (i32 が必要です)", iss[0].Message)

	other := salad.ToIssues(errors.New("boom"))
	assert.Equal(t, salad.CodeParseError, other[0].Code)
	assert.Nil(t, salad.ToIssues(nil))

	trunc := salad.ToIssues(io.ErrUnexpectedEOF)
	assert.Equal(t, salad.CodeTruncated, trunc[0].Code)
}

type countingDriver struct {
	salad.JSONDriver
	calls int
}

func (d *countingDriver) NewBytes(b []byte) salad.Source {
	d.calls++
	return d.JSONDriver.NewBytes(b)
}

func (*countingDriver) Name() string { return "counting" }

func TestJSONDriverSwap(t *testing.T) {
	d := &countingDriver{JSONDriver: salad.CurrentJSONDriver()}
	salad.SetJSONDriver(d)
	t.Cleanup(salad.UseDefaultJSONDriver)

	assert.Equal(t, "counting", salad.CurrentJSONDriver().Name())
	v, err := salad.Decode[salad.Value](salad.JSONBytes([]byte(`[true]`)))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 1, d.calls)

	salad.UseDefaultJSONDriver()
	assert.Equal(t, "go-json", salad.CurrentJSONDriver().Name())
}

func TestReaderSources(t *testing.T) {
	v, err := salad.Decode[salad.Value](salad.YAMLReader(strings.NewReader("x: [a]\n")))
	require.NoError(t, err)
	assert.Equal(t, `{"x":["a"]}`, v.String())

	v, err = salad.Decode[salad.Value](salad.JSONReader(strings.NewReader(`{"x": ["a"]}`)))
	require.NoError(t, err)
	assert.Equal(t, `{"x":["a"]}`, v.String())

	b, err := salad.MarshalJSONIndent(v, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"x\": [\n    \"a\"\n  ]\n}", string(b))
}
