package salad

import "github.com/common-workflow-language/schema-salad/de"

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement at the token level.
type Strictness struct {
	// OnDuplicateKey applies to every mapping of the document. Value and
	// Object reject duplicates regardless; this setting catches them in the
	// source, before any target type sees them, and reports their position.
	OnDuplicateKey Severity
}

// DecodeOpt bundles decoding options. When several are passed, the last one
// wins.
type DecodeOpt struct {
	Strictness Strictness
	// MaxDepth bounds the nesting of objects and lists; zero means unbounded.
	MaxDepth int
	// Seed is the shared context threaded to every nested type when the call
	// does not pass its own.
	Seed *de.SeedData
}

func lastOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}
