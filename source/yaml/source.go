// Package yaml provides YAML token sources and encoders backed by
// gopkg.in/yaml.v3 nodes. Tags are resolved the way yaml.v3 resolves them,
// aliases are followed and every token keeps its line and column.
package yaml

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/common-workflow-language/schema-salad/de"
	eng "github.com/common-workflow-language/schema-salad/internal/engine"
)

type frame struct {
	node *yamlv3.Node
	i    int
}

type source struct {
	dec   *yamlv3.Decoder
	root  *yamlv3.Node
	stack []frame
	done  bool
}

// NewReader wraps an io.Reader into an engine.TokenSource for YAML. Each
// document of the stream is read as it is reached.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{dec: yamlv3.NewDecoder(r)}
}

// NewBytes wraps a byte slice into an engine.TokenSource for YAML.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// FromNode returns an engine.TokenSource over an already parsed node, such as
// the one handed to a yaml.Unmarshaler.
func FromNode(n *yamlv3.Node) eng.TokenSource {
	if n.Kind == yamlv3.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	return &source{root: n}
}

func (s *source) NextToken() (eng.Token, error) {
	for len(s.stack) == 0 {
		if s.done {
			return eng.Token{}, io.EOF
		}
		if s.root != nil {
			root := s.root
			s.root, s.done = nil, true
			return s.start(root)
		}
		var doc yamlv3.Node
		if err := s.dec.Decode(&doc); err != nil {
			s.done = true
			if errors.Is(err, io.EOF) {
				return eng.Token{}, io.EOF
			}
			return eng.Token{}, err
		}
		if len(doc.Content) == 0 {
			continue
		}
		return s.start(doc.Content[0])
	}

	top := &s.stack[len(s.stack)-1]
	n := top.node
	switch n.Kind {
	case yamlv3.MappingNode:
		if top.i >= len(n.Content) {
			s.stack = s.stack[:len(s.stack)-1]
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		}
		c := n.Content[top.i]
		top.i++
		if top.i%2 == 1 {
			return keyToken(c)
		}
		return s.start(c)
	default:
		if top.i >= len(n.Content) {
			s.stack = s.stack[:len(s.stack)-1]
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
		c := n.Content[top.i]
		top.i++
		return s.start(c)
	}
}

func (s *source) Location() int64 { return -1 }

// start emits the first token of n, entering it when it is a collection.
func (s *source) start(n *yamlv3.Node) (eng.Token, error) {
	n, err := s.resolveAlias(n)
	if err != nil {
		return eng.Token{}, err
	}
	switch n.Kind {
	case yamlv3.MappingNode:
		s.stack = append(s.stack, frame{node: n})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1, Line: n.Line, Column: n.Column}, nil
	case yamlv3.SequenceNode:
		s.stack = append(s.stack, frame{node: n})
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1, Line: n.Line, Column: n.Column}, nil
	case yamlv3.ScalarNode:
		return scalarToken(n)
	default:
		return eng.Token{}, positioned(de.Custom("unsupported YAML node kind %d", n.Kind), n)
	}
}

func (s *source) resolveAlias(n *yamlv3.Node) (*yamlv3.Node, error) {
	for n.Kind == yamlv3.AliasNode {
		target := n.Alias
		if target == nil {
			return nil, positioned(de.Custom("unknown anchor %q", n.Value), n)
		}
		for _, f := range s.stack {
			if f.node == target {
				return nil, positioned(de.Custom("anchor %q contains itself", target.Anchor), n)
			}
		}
		n = target
	}
	return n, nil
}

func keyToken(n *yamlv3.Node) (eng.Token, error) {
	for n.Kind == yamlv3.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yamlv3.ScalarNode {
		return eng.Token{}, positioned(de.Custom("mapping keys must be scalars"), n)
	}
	return eng.Token{Kind: eng.KindKey, String: n.Value, Offset: -1, Line: n.Line, Column: n.Column}, nil
}

func scalarToken(n *yamlv3.Node) (eng.Token, error) {
	tok := eng.Token{Offset: -1, Line: n.Line, Column: n.Column}
	switch n.ShortTag() {
	case "!!null":
		tok.Kind = eng.KindNull
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return eng.Token{}, positioned(de.Custom("invalid boolean %q", n.Value), n)
		}
		tok.Kind, tok.Bool = eng.KindBool, b
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			tok.Kind, tok.Number = eng.KindNumber, strconv.FormatInt(i, 10)
			break
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return eng.Token{}, positioned(de.Custom("integer %q out of range", n.Value), n)
		}
		tok.Kind, tok.Number = eng.KindNumber, strconv.FormatUint(u, 10)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return eng.Token{}, positioned(de.Custom("invalid float %q", n.Value), n)
		}
		tok.Kind, tok.Number = eng.KindNumber, floatLiteral(f)
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return eng.Token{}, positioned(de.Custom("invalid base64 in !!binary scalar"), n)
		}
		tok.Kind, tok.Bytes = eng.KindBytes, b
	default:
		tok.Kind, tok.String = eng.KindString, n.Value
	}
	return tok, nil
}

// floatLiteral renders f so that it never reads back as an integer.
func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func positioned(err *de.Error, n *yamlv3.Node) error {
	err.Line, err.Column = n.Line, n.Column
	return err
}
