// Package astcodec converts an AST to tagged records, one per node, and
// back. Records keep field order, so JSON output is stable and msgpack
// output round-trips through Decode.
package astcodec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Field is one named value of a record. Value is nil, string, bool, *Node,
// []*Node or []string.
type Field struct {
	Name  string
	Value any
}

// Node is a tagged record: the node kind plus its fields in source order.
type Node struct {
	Type   string
	Fields []Field
}

func newNode(typ string, fields ...Field) *Node {
	return &Node{Type: typ, Fields: fields}
}

// Get returns the value of the named field.
func (n *Node) Get(name string) (any, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes {"type": ..., fields...} keeping the field order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	typ, err := json.Marshal(n.Type)
	if err != nil {
		return nil, err
	}
	buf.Write(typ)
	for _, f := range n.Fields {
		buf.WriteByte(',')
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", n.Type, f.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// field value tags in the msgpack form
const (
	tagNil uint8 = iota
	tagString
	tagBool
	tagNode
	tagNodes
	tagStrings
)

var (
	_ msgpack.CustomEncoder = (*Node)(nil)
	_ msgpack.CustomDecoder = (*Node)(nil)
)

// EncodeMsgpack пишет узел как [type, [[name, tag, value]...]].
func (n *Node) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(n.Type); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(n.Fields)); err != nil {
		return err
	}
	for _, f := range n.Fields {
		if err := enc.EncodeArrayLen(3); err != nil {
			return err
		}
		if err := enc.EncodeString(f.Name); err != nil {
			return err
		}
		if err := encodeValue(enc, f.Value); err != nil {
			return fmt.Errorf("%s.%s: %w", n.Type, f.Name, err)
		}
	}
	return nil
}

func encodeValue(enc *msgpack.Encoder, v any) error {
	switch v := v.(type) {
	case nil:
		if err := enc.EncodeUint8(tagNil); err != nil {
			return err
		}
		return enc.EncodeNil()
	case string:
		if err := enc.EncodeUint8(tagString); err != nil {
			return err
		}
		return enc.EncodeString(v)
	case bool:
		if err := enc.EncodeUint8(tagBool); err != nil {
			return err
		}
		return enc.EncodeBool(v)
	case *Node:
		if v == nil {
			return encodeValue(enc, nil)
		}
		if err := enc.EncodeUint8(tagNode); err != nil {
			return err
		}
		return v.EncodeMsgpack(enc)
	case []*Node:
		if err := enc.EncodeUint8(tagNodes); err != nil {
			return err
		}
		if err := enc.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for _, c := range v {
			if err := c.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case []string:
		if err := enc.EncodeUint8(tagStrings); err != nil {
			return err
		}
		if err := enc.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for _, s := range v {
			if err := enc.EncodeString(s); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported field value %T", v)
}

// DecodeMsgpack reads the form written by EncodeMsgpack.
func (n *Node) DecodeMsgpack(dec *msgpack.Decoder) error {
	l, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if l != 2 {
		return fmt.Errorf("astcodec: node record has %d items", l)
	}
	if n.Type, err = dec.DecodeString(); err != nil {
		return err
	}
	nf, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	n.Fields = make([]Field, 0, max(nf, 0))
	for range nf {
		fl, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		if fl != 3 {
			return fmt.Errorf("astcodec: %s field has %d items", n.Type, fl)
		}
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", n.Type, name, err)
		}
		n.Fields = append(n.Fields, Field{Name: name, Value: v})
	}
	return nil
}

func decodeValue(dec *msgpack.Decoder) (any, error) {
	tag, err := dec.DecodeUint8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, dec.DecodeNil()
	case tagString:
		return dec.DecodeString()
	case tagBool:
		return dec.DecodeBool()
	case tagNode:
		child := new(Node)
		if err := child.DecodeMsgpack(dec); err != nil {
			return nil, err
		}
		return child, nil
	case tagNodes:
		l, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		out := make([]*Node, 0, max(l, 0))
		for range l {
			child := new(Node)
			if err := child.DecodeMsgpack(dec); err != nil {
				return nil, err
			}
			out = append(out, child)
		}
		return out, nil
	case tagStrings:
		l, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, max(l, 0))
		for range l {
			s, err := dec.DecodeString()
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown field tag %d", tag)
}

// EncodeMsgpack serializes the record tree.
func EncodeMsgpack(n *Node) ([]byte, error) {
	return msgpack.Marshal(n)
}

// DecodeMsgpack parses bytes written by EncodeMsgpack.
func DecodeMsgpack(data []byte) (*Node, error) {
	n := new(Node)
	if err := msgpack.Unmarshal(data, n); err != nil {
		return nil, err
	}
	return n, nil
}
