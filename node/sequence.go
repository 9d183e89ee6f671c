package node

// Item is one sequence element. Tag is the element's type identifier; an empty
// tag means the element carries no identifier and takes the reader's static type.
type Item struct {
	Tag   string
	Value Node
}

// Sequence is an ordered list of optionally tagged nodes.
type Sequence struct {
	items []Item
}

func (*Sequence) Kind() Kind { return KindSequence }
func (*Sequence) node()      {}

// NewSequence returns an empty sequence with room for size items.
func NewSequence(size int) *Sequence {
	return &Sequence{items: make([]Item, 0, size)}
}

// Append adds an element. A nil value is stored as Null.
func (s *Sequence) Append(tag string, n Node) *Sequence {
	if n == nil {
		n = Nil()
	}
	s.items = append(s.items, Item{Tag: tag, Value: n})
	return s
}

// Len returns the number of items.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the i-th item.
func (s *Sequence) At(i int) Item { return s.items[i] }

// Items returns a copy of the items.
func (s *Sequence) Items() []Item {
	if s == nil {
		return nil
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
