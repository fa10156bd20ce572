package status

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Cell is one labelled value of a table row.
type Cell struct {
	Label string
	Value Value
}

// Row is a table row in device column order. Columns the device adds in
// newer firmware are kept like any other cell.
type Row []Cell

// Get returns the value of the column with the given label.
func (r Row) Get(label string) (Value, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return Value{}, false
}

// With returns a copy of the row with label set to v, appended when the
// row has no such column.
func (r Row) With(label string, v Value) Row {
	out := make(Row, len(r), len(r)+1)
	copy(out, r)
	for i := range out {
		if out[i].Label == label {
			out[i].Value = v
			return out
		}
	}
	return append(out, Cell{Label: label, Value: v})
}

// Labels returns the column labels in order.
func (r Row) Labels() []string {
	labels := make([]string, len(r))
	for i, c := range r {
		labels[i] = c.Label
	}
	return labels
}

// MarshalJSON writes the row as an object keeping the column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, c.Label, c.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the row as a mapping keeping the column order.
func (r Row) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range r {
		if err := appendMember(node, c.Label, c.Value); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

func appendMember(node *yaml.Node, key string, v any) error {
	var val yaml.Node
	if err := val.Encode(v); err != nil {
		return err
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&val,
	)
	return nil
}
