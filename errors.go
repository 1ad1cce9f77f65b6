package salad

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/common-workflow-language/schema-salad/de"
	"github.com/common-workflow-language/schema-salad/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType  = de.CodeInvalidType
	CodeInvalidValue = de.CodeInvalidValue
	CodeDuplicateKey = de.CodeDuplicateKey
	CodeMissingValue = de.CodeMissingValue
	CodeCustom       = de.CodeCustom
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue is a decode failure projected for reporting.
type Issue struct {
	Path    string // JSON Pointer (for example: /inputs/2/type).
	Code    string // One of the codes listed above.
	Message string // Localized through package i18n.
	Line    int    // 1-based; zero when unknown.
	Column  int
	Cause   error
	// Params carries the structured parts of the message (expected, got, field).
	Params map[string]string
}

// Issues is a collection of decode failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues projects a decode error into Issues. Decode errors keep their
// code, path and position; truncated input and other failures map to
// truncated and parse_error.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var dc *DowncastError
	if errors.As(err, &dc) {
		err = dc.Err
	}
	var e *de.Error
	if errors.As(err, &e) {
		params := map[string]string{}
		switch e.Code {
		case de.CodeInvalidType, de.CodeInvalidValue:
			params["expected"] = e.Expected
			params["got"] = e.Unexpected.String()
		case de.CodeDuplicateKey:
			params["field"] = e.Field
		case de.CodeCustom:
			params["message"] = e.Message
		}
		return Issues{{
			Path:    e.Pointer(),
			Code:    e.Code,
			Message: i18n.T(e.Code, params),
			Line:    e.Line,
			Column:  e.Column,
			Cause:   err,
			Params:  params,
		}}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Issues{{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Cause: err}}
	}
	params := map[string]string{"message": err.Error()}
	return Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, params), Cause: err, Params: params}}
}
