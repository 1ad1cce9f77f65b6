package engine

import (
	"strconv"

	"github.com/common-workflow-language/schema-salad/de"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling and
// max depth checks in a streaming fashion.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	// IssueSink receives non-fatal findings (duplicate keys under DupWarn).
	// The error's Path is the JSON Pointer of the offending key.
	IssueSink func(*de.Error)
}

// Active reports whether any enforcement is requested.
func (o EnforceOptions) Active() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         []string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy
// and maximum nesting depth. Fatal findings are returned as *de.Error without
// a path; decoders add it while unwinding.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.childPath()
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			err := de.Custom("max depth %d exceeded", e.opt.MaxDepth)
			err.Line, err.Column = tok.Line, tok.Column
			return Token{}, err
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
					issue := de.DuplicateField(tok.String)
					issue.Line, issue.Column = tok.Line, tok.Column
					if e.opt.OnDuplicate == DupError {
						return Token{}, issue
					}
					if e.opt.IssueSink != nil {
						issue.Path = append(append([]string(nil), top.path...), tok.String)
						e.opt.IssueSink(issue)
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	default:
		e.childPath()
		e.valueDone()
	}

	return tok, nil
}

// childPath returns the path of the value starting at the current position
// and advances array indexes.
func (e *enforcingTokenSource) childPath() []string {
	n := len(e.stack)
	if n == 0 {
		return nil
	}
	top := &e.stack[n-1]
	path := append([]string(nil), top.path...)
	if top.kind == kindArray {
		path = append(path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return path
	}
	return append(path, top.pendingKey)
}

// valueDone marks the pending object entry as complete.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
