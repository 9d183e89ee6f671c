// Package cfgx converts Go values into trees of structural nodes and rebuilds
// values from such trees. The trees map directly onto configuration formats
// like YAML, so a configuration struct can be written to and read from a
// document without hand-written marshalling code.
//
// # Quick Start
//
//	type Endpoint struct {
//	    Host string
//	    Port uint16
//	}
//
//	type Server struct {
//	    Name      string
//	    Timeout   time.Duration
//	    Endpoints []Endpoint
//	}
//
//	engine, err := cfgx.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tree, err := engine.Serialize(server)
//	...
//	var restored Server
//	err = engine.Deserialize(tree, &restored)
//
// # How values are converted
//
// Each value is classified in this order:
//
//   - a handler registered for its type, or for an interface it implements
//     (see RegisterHandler and the registry package)
//   - a type implementing node.Marshaler and, through its pointer,
//     node.Unmarshaler
//   - a scalar: string, bool, integers and floats
//   - a struct, walked field by field; fields are keyed by their lower camel
//     case name or by a `cfgx:"name"` tag, and `cfgx:"-"` skips a field
//   - a slice or array, and a map with string keys
//
// Anything else, such as channels or functions, fails with
// ErrUnserializableType.
//
// Deserialization builds a fresh value and only stores it into the target when
// every field succeeded. Keys missing from a mapping leave the field at its
// default; a key holding null sets the field to its zero value. Structs with a
// SetDefaults() method get it called before fields are filled.
//
// Numbers are narrowed to the declared field kind, so a document format that
// reads every integer as int64 still fills uint8 or float32 fields.
//
// # Heterogeneous lists
//
// Elements of a slice whose element type is an interface carry a type tag:
//
//	values:
//	  - !int 1
//	  - !string "two"
//	  - !float64 3.0
//
// Builtin scalar types use their kind name. Other types are written under their
// package path and name unless RegisterTypeTag binds a shorter tag.
//
// # Depth limit
//
// Every descent into a field, element or map value counts as one level. Values
// nested deeper than the limit (20 unless WithMaxDepth says otherwise) fail
// with ErrRecursionLimitExceeded, which also stops self-referencing values.
// WithCycleDetection reports such references as soon as they are revisited.
//
// # Documents
//
// Engine.Marshal and Engine.Unmarshal convert values to YAML. Engine.Save and
// Engine.Load additionally read and write named documents through a
// store.Store: a directory, a SQLite database, an S3 bucket or a Vault KV
// mount.
package cfgx
