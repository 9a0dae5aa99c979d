package openapi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the document as compact JSON in document key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON encodes the document as indented JSON in document key order, with a
// trailing newline.
func (d *Document) JSON() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// YAML encodes the document as YAML in document key order. Aliases and
// merge keys are expanded, matching the JSON encoding.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(expand(d.root)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fingerprint returns the hex SHA-256 of the compact JSON encoding. The same
// content in the same key order always yields the same fingerprint;
// reordering keys changes it.
func (d *Document) Fingerprint() (string, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func encodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	n = resolveAlias(n)
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return encodeJSON(buf, n.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, pair := range mappingPairs(n) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, pair[0].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeJSON(buf, pair[1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return encodeScalar(buf, n)

	default:
		return fmt.Errorf("cannot encode %s node at line %d", kindName(n.Kind), n.Line)
	}
}

// expand returns a copy of n with every alias replaced by its target and
// every merge key inlined. Anchors are dropped.
func expand(n *yaml.Node) *yaml.Node {
	n = resolveAlias(n)
	c := *n
	c.Anchor = ""
	c.Alias = nil

	switch n.Kind {
	case yaml.MappingNode:
		pairs := mappingPairs(n)
		c.Content = make([]*yaml.Node, 0, 2*len(pairs))
		for _, pair := range pairs {
			c.Content = append(c.Content, expand(pair[0]), expand(pair[1]))
		}
	case yaml.SequenceNode, yaml.DocumentNode:
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = expand(child)
		}
	}
	return &c
}

// mappingPairs returns key/value pairs in order, expanding YAML merge keys.
// Keys declared directly on the mapping win over merged ones.
func mappingPairs(n *yaml.Node) [][2]*yaml.Node {
	own := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].ShortTag() != "!!merge" {
			own[n.Content[i].Value] = true
		}
	}

	pairs := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := resolveAlias(n.Content[i]), n.Content[i+1]
		if key.ShortTag() != "!!merge" {
			pairs = append(pairs, [2]*yaml.Node{key, value})
			continue
		}

		value = resolveAlias(value)
		sources := []*yaml.Node{value}
		if value.Kind == yaml.SequenceNode {
			sources = value.Content
		}
		for _, src := range sources {
			src = resolveAlias(src)
			if src.Kind != yaml.MappingNode {
				continue
			}
			for _, p := range mappingPairs(src) {
				if own[p[0].Value] {
					continue
				}
				own[p[0].Value] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

func encodeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil

	case "!!bool", "!!int", "!!float":
		// Values parsed from JSON are already valid JSON literals.
		if n.Style == 0 && json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil

	default:
		return writeJSONString(buf, n.Value)
	}
}

// writeJSONString writes s as a JSON string without HTML escaping, so code
// samples keep their "&&" and "<" readable.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
