package node

import "iter"

// Mapping is an insertion-ordered set of keyed nodes.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (*Mapping) Kind() Kind { return KindMapping }
func (*Mapping) node()      {}

// NewMapping returns an empty mapping with room for size entries.
func NewMapping(size int) *Mapping {
	return &Mapping{
		keys:   make([]string, 0, size),
		values: make(map[string]Node, size),
	}
}

// Set stores n under key. Replacing an existing key keeps its position.
// A nil n is stored as Null.
func (m *Mapping) Set(key string, n Node) *Mapping {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if n == nil {
		n = Nil()
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = n
	return m
}

// Get returns the node stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	n, ok := m.values[key]
	return n, ok
}

// Has reports whether key is present, including keys mapped to Null.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates over entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// GetString returns the string stored under key, if any.
func (m *Mapping) GetString(key string) (string, bool) {
	n, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := n.(*Scalar)
	if !ok {
		return "", false
	}
	return s.Str()
}
