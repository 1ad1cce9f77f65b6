package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	KindBytes
)

var kindNames = [...]string{
	KindBeginObject: "object start",
	KindEndObject:   "object end",
	KindBeginArray:  "array start",
	KindEndArray:    "array end",
	KindKey:         "key",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "boolean",
	KindNull:        "null",
	KindBytes:       "binary",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token represents a streaming token with its input position. Number holds the
// literal text of a number in decimal or float syntax; Line and Column are
// 1-based and zero when the source does not track them.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Bytes  []byte
	Offset int64
	Line   int
	Column int
}

// TokenSource is a minimal interface required by the engine. NextToken returns
// io.EOF once the input is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}
