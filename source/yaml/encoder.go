package yaml

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/common-workflow-language/schema-salad/ser"
)

// ToNode encodes v into a yaml.v3 node tree.
func ToNode(v ser.Encodable) (*yamlv3.Node, error) {
	n := &yamlv3.Node{}
	if err := v.EncodeTo(&Encoder{out: n}); err != nil {
		return nil, err
	}
	return n, nil
}

// Marshal encodes v as a YAML document indented by two spaces.
func Marshal(v ser.Encodable) ([]byte, error) {
	n, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder fills one yaml.Node with the value pushed into it.
type Encoder struct {
	out *yamlv3.Node
}

// NewEncoder returns an Encoder storing its result in n.
func NewEncoder(n *yamlv3.Node) *Encoder { return &Encoder{out: n} }

func (e *Encoder) scalar(tag, value string) error {
	*e.out = yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: value}
	return nil
}

func (e *Encoder) EncodeBool(v bool) error { return e.scalar("!!bool", strconv.FormatBool(v)) }

func (e *Encoder) EncodeInt32(v int32) error {
	return e.scalar("!!int", strconv.FormatInt(int64(v), 10))
}

func (e *Encoder) EncodeInt64(v int64) error { return e.scalar("!!int", strconv.FormatInt(v, 10)) }

func (e *Encoder) EncodeFloat32(v float32) error { return e.float(float64(v), 32) }

func (e *Encoder) EncodeFloat64(v float64) error { return e.float(v, 64) }

func (e *Encoder) float(v float64, bits int) error {
	var s string
	switch {
	case math.IsNaN(v):
		s = ".nan"
	case math.IsInf(v, 1):
		s = ".inf"
	case math.IsInf(v, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(v, 'g', -1, bits)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
	}
	return e.scalar("!!float", s)
}

func (e *Encoder) EncodeString(v string) error { return e.scalar("!!str", v) }

func (e *Encoder) EncodeMap(size int) (ser.MapEncoder, error) {
	*e.out = yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
	if size > 0 {
		e.out.Content = make([]*yamlv3.Node, 0, 2*size)
	}
	return &collection{n: e.out}, nil
}

func (e *Encoder) EncodeSeq(size int) (ser.SeqEncoder, error) {
	*e.out = yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
	if size > 0 {
		e.out.Content = make([]*yamlv3.Node, 0, size)
	}
	return &collection{n: e.out}, nil
}

type collection struct {
	n *yamlv3.Node
}

func (c *collection) EncodeEntry(key string, v ser.Encodable) error {
	val, err := ToNode(v)
	if err != nil {
		return err
	}
	k := &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: key}
	c.n.Content = append(c.n.Content, k, val)
	return nil
}

func (c *collection) EncodeElement(v ser.Encodable) error {
	val, err := ToNode(v)
	if err != nil {
		return err
	}
	c.n.Content = append(c.n.Content, val)
	return nil
}

func (*collection) End() error { return nil }
