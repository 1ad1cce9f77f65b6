package salad

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/common-workflow-language/schema-salad/de"
	eng "github.com/common-workflow-language/schema-salad/internal/engine"
	"github.com/common-workflow-language/schema-salad/source/gojson"
	yamlsrc "github.com/common-workflow-language/schema-salad/source/yaml"
)

// TokenKind enumerates document token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
	TokenBytes
)

func (k TokenKind) String() string { return eng.Kind(k).String() }

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise); Line and Column are 1-based and zero when unknown.
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Literal text of a number token.
	Bool   bool
	Bytes  []byte // Stored for binary tokens.
	Offset int64
	Line   int
	Column int
}

// Source abstracts over document inputs. NextToken returns io.EOF once the
// input is exhausted.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver JSONReader and JSONBytes use.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return fromEngine(gojson.NewReader(r)) }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return fromEngine(gojson.NewBytes(b)) }
func (defaultJSONDriver) Name() string                 { return "go-json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// YAMLReader wraps an io.Reader as a YAML Source. Only the first document
// is decoded; further documents are reported as trailing data.
func YAMLReader(r io.Reader) Source { return fromEngine(yamlsrc.NewReader(r)) }

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source { return fromEngine(yamlsrc.NewBytes(b)) }

// EnforceSource wraps a Source with runtime enforcement (duplicate keys,
// depth). Duplicate keys under Warn are logged and decoding continues.
func EnforceSource(s Source, opt DecodeOpt) Source {
	return fromEngine(eng.WrapWithEnforcement(engineTokenSource(s), enforceOptions(opt)))
}

// EnforceSourceIfNeeded returns s unchanged when the options are
// effectively disabled (ignore duplicate keys, zero depth).
func EnforceSourceIfNeeded(s Source, opt DecodeOpt) Source {
	eo := enforceOptions(opt)
	if !eo.Active() {
		return s
	}
	return fromEngine(eng.WrapWithEnforcement(engineTokenSource(s), eo))
}

func enforceOptions(opt DecodeOpt) eng.EnforceOptions {
	return eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   logIssue,
	}
}

func logIssue(e *de.Error) {
	Logger().Warn("duplicate key",
		zap.String("path", e.Pointer()),
		zap.String("key", e.Field),
		zap.Int("line", e.Line),
		zap.Int("column", e.Column),
	)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// ---- engine.TokenSource <-> Source adapters ----

func fromEngine(inner eng.TokenSource) Source { return &engineSourceAdapter{inner: inner} }

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{
		Kind:   TokenKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Bytes:  t.Bytes,
		Offset: t.Offset,
		Line:   t.Line,
		Column: t.Column,
	}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   eng.Kind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Bytes:  t.Bytes,
		Offset: t.Offset,
		Line:   t.Line,
		Column: t.Column,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}
