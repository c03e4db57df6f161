package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONEmitter writes the report as a single JSON document.
type JSONEmitter struct {
	Indent string
}

func (e JSONEmitter) Emit(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	return enc.Encode(newDocument(r))
}

// YAMLEmitter writes the report as a YAML document.
type YAMLEmitter struct{}

func (YAMLEmitter) Emit(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(r)); err != nil {
		return err
	}
	return enc.Close()
}

func (t tallyEntries) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, e := range t {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		count, err := json.Marshal(e.Count)
		if err != nil {
			return nil, err
		}
		buf = append(buf, count...)
	}
	return append(buf, '}'), nil
}

func (t tallyEntries) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range t {
		var key, val yaml.Node
		if err := key.Encode(e.Category); err != nil {
			return nil, err
		}
		if err := val.Encode(e.Count); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}
