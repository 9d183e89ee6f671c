// Package node defines the structural tree that sits between live Go values and
// a backing configuration store.
//
// A tree is made of four node kinds: Null, Scalar, Mapping and Sequence. Scalars
// remember the numeric kind they were produced from so a reader can narrow a wide
// stored number back to the exact declared width of the destination field.
package node

// Kind identifies the variant of a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Node is a structural tree node. The set of implementations is closed.
type Node interface {
	Kind() Kind
	node()
}

// Null is the explicit null node. It is distinct from an absent mapping key.
type Null struct{}

// Nil returns the null node.
func Nil() Null { return Null{} }

func (Null) Kind() Kind { return KindNull }
func (Null) node()      {}

// IsNull reports whether n is nil or a Null node.
func IsNull(n Node) bool {
	if n == nil {
		return true
	}
	return n.Kind() == KindNull
}

// Marshaler is implemented by values that describe themselves as a mapping.
type Marshaler interface {
	MarshalNode() (*Mapping, error)
}

// Unmarshaler is implemented by pointer types that can rebuild themselves from
// a mapping produced by MarshalNode.
type Unmarshaler interface {
	UnmarshalNode(m *Mapping) error
}
