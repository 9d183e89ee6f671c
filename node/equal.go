package node

// Equal reports whether two trees are structurally equal. Mapping key order is
// significant; numeric scalars compare by value and storage category but not by
// NumKind, since a store round trip widens every number.
func Equal(a, b Node) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *Scalar:
		y := b.(*Scalar)
		if x.typ != y.typ {
			if x.IsNumber() && y.IsNumber() && x.typ != TypeFloat && y.typ != TypeFloat {
				xi, _ := x.Int64()
				yi, _ := y.Int64()
				return xi == yi
			}
			return false
		}
		switch x.typ {
		case TypeString:
			return x.s == y.s
		case TypeBool:
			return x.b == y.b
		case TypeInt:
			return x.i == y.i
		case TypeUint:
			return x.u == y.u
		case TypeFloat:
			return x.f == y.f
		}
		return false
	case *Mapping:
		y := b.(*Mapping)
		if x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k {
				return false
			}
			if !Equal(x.values[k], y.values[k]) {
				return false
			}
		}
		return true
	case *Sequence:
		y := b.(*Sequence)
		if x.Len() != y.Len() {
			return false
		}
		for i := range x.items {
			if x.items[i].Tag != y.items[i].Tag {
				return false
			}
			if !Equal(x.items[i].Value, y.items[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
