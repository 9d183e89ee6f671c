// Package yamlnode converts node trees to and from YAML documents.
//
// Mapping key order is preserved. Sequence items that carry a type tag are
// written with a local YAML tag:
//
//	ports:
//	  - !int 8080
//	  - !string "8081"
//	  - !float64 3.0
//
// YAML has a single integer and a single float type, so numbers read back as
// 64-bit values; the deserializer narrows them to the declared field kind.
package yamlnode

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hengadev/cfgx/node"
)

// ErrInvalidDocument is returned for YAML that has no node tree equivalent.
var ErrInvalidDocument = errors.New("invalid yaml document")

const (
	nullTag  = "!!null"
	boolTag  = "!!bool"
	strTag   = "!!str"
	intTag   = "!!int"
	floatTag = "!!float"
	mergeTag = "!!merge"
)

// Marshal encodes n as a YAML document indented by two spaces.
func Marshal(n node.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Encode(n)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a YAML document into a node tree. An empty document is null.
func Unmarshal(data []byte) (node.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return Decode(&doc)
}

// Encode converts n into a YAML node.
func Encode(n node.Node) *yaml.Node {
	switch v := n.(type) {
	case *node.Scalar:
		return encodeScalar(v)
	case *node.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, child := range v.All() {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key},
				Encode(child))
		}
		return out
	case *node.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			yn := Encode(item.Value)
			if item.Tag != "" {
				yn.Tag = "!" + item.Tag
				if yn.Kind == yaml.ScalarNode && item.Value.Kind() == node.KindScalar {
					if s := item.Value.(*node.Scalar); s.Type() == node.TypeString {
						yn.Style = yaml.DoubleQuotedStyle
					}
				}
			}
			out.Content = append(out.Content, yn)
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}
	}
}

func encodeScalar(s *node.Scalar) *yaml.Node {
	out := &yaml.Node{Kind: yaml.ScalarNode}
	switch s.Type() {
	case node.TypeString:
		str, _ := s.Str()
		out.Tag, out.Value = strTag, str
	case node.TypeBool:
		b, _ := s.Boolean()
		out.Tag, out.Value = boolTag, strconv.FormatBool(b)
	case node.TypeInt:
		i, _ := s.Int64()
		out.Tag, out.Value = intTag, strconv.FormatInt(i, 10)
	case node.TypeUint:
		u, _ := s.Uint64()
		out.Tag, out.Value = intTag, strconv.FormatUint(u, 10)
	case node.TypeFloat:
		f, _ := s.Float64()
		out.Tag, out.Value = floatTag, formatFloat(f)
	}
	return out
}

// formatFloat always yields a YAML float literal, so 3.0 is not read back as
// an integer.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Decode converts a YAML node into a node tree. Aliases are resolved and merge
// keys are expanded.
func Decode(yn *yaml.Node) (node.Node, error) {
	switch yn.Kind {
	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			return node.Nil(), nil
		}
		return Decode(yn.Content[0])
	case yaml.AliasNode:
		if yn.Alias == nil {
			return nil, fmt.Errorf("%w: line %d: dangling alias", ErrInvalidDocument, yn.Line)
		}
		return Decode(yn.Alias)
	case yaml.ScalarNode:
		return decodeScalar(yn)
	case yaml.MappingNode:
		return decodeMapping(yn)
	case yaml.SequenceNode:
		return decodeSequence(yn)
	case 0:
		return node.Nil(), nil
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported node kind %v", ErrInvalidDocument, yn.Line, yn.Kind)
	}
}

// localTag returns the type tag of a node written with a "!name" tag.
func localTag(yn *yaml.Node) (string, bool) {
	if strings.HasPrefix(yn.Tag, "!") && !strings.HasPrefix(yn.Tag, "!!") && len(yn.Tag) > 1 {
		return yn.Tag[1:], true
	}
	return "", false
}

// untagged returns a shallow copy of yn without its local tag, so the YAML core
// schema decides the value type again.
func untagged(yn *yaml.Node) *yaml.Node {
	if _, ok := localTag(yn); !ok {
		return yn
	}
	c := *yn
	c.Tag = ""
	c.Style &^= yaml.TaggedStyle
	return &c
}

func decodeScalar(yn *yaml.Node) (node.Node, error) {
	yn = untagged(yn)
	switch yn.ShortTag() {
	case nullTag:
		return node.Nil(), nil
	case boolTag:
		var b bool
		if err := yn.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDocument, yn.Line, err)
		}
		return node.Bool(b), nil
	case intTag:
		var i int64
		if err := yn.Decode(&i); err == nil {
			return node.Int(i, node.NumInt64), nil
		}
		var u uint64
		if err := yn.Decode(&u); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDocument, yn.Line, err)
		}
		return node.Uint(u, node.NumUint64), nil
	case floatTag:
		var f float64
		if err := yn.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDocument, yn.Line, err)
		}
		return node.Float(f, node.NumFloat64), nil
	default:
		return node.String(yn.Value), nil
	}
}

func decodeMapping(yn *yaml.Node) (node.Node, error) {
	if len(yn.Content)%2 != 0 {
		return nil, fmt.Errorf("%w: line %d: odd mapping content", ErrInvalidDocument, yn.Line)
	}
	m := node.NewMapping(len(yn.Content) / 2)
	for i := 0; i < len(yn.Content); i += 2 {
		key, value := yn.Content[i], yn.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == mergeTag {
			if err := merge(m, value); err != nil {
				return nil, err
			}
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: mapping keys must be scalars", ErrInvalidDocument, key.Line)
		}
		child, err := Decode(value)
		if err != nil {
			return nil, err
		}
		m.Set(key.Value, child)
	}
	return m, nil
}

// merge copies the entries of a merged mapping, or of each mapping in a merged
// sequence, into m. Keys already in m win.
func merge(m *node.Mapping, yn *yaml.Node) error {
	src := yn
	if src.Kind == yaml.AliasNode && src.Alias != nil {
		src = src.Alias
	}
	if src.Kind == yaml.SequenceNode {
		for _, item := range src.Content {
			if err := merge(m, item); err != nil {
				return err
			}
		}
		return nil
	}

	decoded, err := Decode(src)
	if err != nil {
		return err
	}
	merged, ok := decoded.(*node.Mapping)
	if !ok {
		return fmt.Errorf("%w: line %d: merge value must be a mapping", ErrInvalidDocument, yn.Line)
	}
	for key, value := range merged.All() {
		if !m.Has(key) {
			m.Set(key, value)
		}
	}
	return nil
}

func decodeSequence(yn *yaml.Node) (node.Node, error) {
	seq := node.NewSequence(len(yn.Content))
	for _, item := range yn.Content {
		tag, _ := localTag(item)
		child, err := Decode(untagged(item))
		if err != nil {
			return nil, err
		}
		seq.Append(tag, child)
	}
	return seq, nil
}
