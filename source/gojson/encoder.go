package gojson

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/common-workflow-language/schema-salad/ser"
)

// Encoder writes compact JSON for the values pushed into it.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Marshal encodes v as compact JSON.
func Marshal(v ser.Encodable) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.EncodeTo(NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(v ser.Encodable, prefix, indent string) ([]byte, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, b, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (e *Encoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Encoder) EncodeBool(v bool) error { return e.write(strconv.FormatBool(v)) }

func (e *Encoder) EncodeInt32(v int32) error { return e.write(strconv.FormatInt(int64(v), 10)) }

func (e *Encoder) EncodeInt64(v int64) error { return e.write(strconv.FormatInt(v, 10)) }

func (e *Encoder) EncodeFloat32(v float32) error { return e.float(float64(v), 32) }

func (e *Encoder) EncodeFloat64(v float64) error { return e.float(v, 64) }

// float keeps a fraction or exponent so the number reads back as floating.
func (e *Encoder) float(v float64, bits int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("json: unsupported value: %v", v)
	}
	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return e.write(s)
}

func (e *Encoder) EncodeString(v string) error {
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}

func (e *Encoder) EncodeMap(int) (ser.MapEncoder, error) {
	if err := e.write("{"); err != nil {
		return nil, err
	}
	return &compound{e: e, close: "}"}, nil
}

func (e *Encoder) EncodeSeq(int) (ser.SeqEncoder, error) {
	if err := e.write("["); err != nil {
		return nil, err
	}
	return &compound{e: e, close: "]"}, nil
}

type compound struct {
	e     *Encoder
	close string
	n     int
}

func (c *compound) sep() error {
	c.n++
	if c.n == 1 {
		return nil
	}
	return c.e.write(",")
}

func (c *compound) EncodeEntry(key string, v ser.Encodable) error {
	if err := c.sep(); err != nil {
		return err
	}
	if err := c.e.EncodeString(key); err != nil {
		return err
	}
	if err := c.e.write(":"); err != nil {
		return err
	}
	return v.EncodeTo(c.e)
}

func (c *compound) EncodeElement(v ser.Encodable) error {
	if err := c.sep(); err != nil {
		return err
	}
	return v.EncodeTo(c.e)
}

func (c *compound) End() error { return c.e.write(c.close) }
