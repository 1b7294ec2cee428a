package dimen

// DimenT is an option type for dimensions.
//
// Layout computations constantly deal with dimensions which are not known
// yet. DimenT models this explicitly: arithmetic involving an unset operand
// yields an unset result, letting not-yet-known inputs propagate through a
// computation without special casing.
type DimenT struct {
	d   Dimen
	set bool
}

// Some creates an optional dimension with a value of x.
func Some(x Dimen) DimenT {
	return DimenT{d: x, set: true}
}

// None creates an optional dimension without a value.
func None() DimenT {
	return DimenT{}
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return !o.set
}

// IsSome returns true if o is set.
func (o DimenT) IsSome() bool {
	return o.set
}

// Unwrap returns the dimension value. Unset dimensions unwrap to Zero.
func (o DimenT) Unwrap() Dimen {
	return o.d
}

// UnwrapOr returns the dimension value or a default, if o is unset.
func (o DimenT) UnwrapOr(d Dimen) Dimen {
	if !o.set {
		return d
	}
	return o.d
}

// Plus adds two optional dimensions.
func (o DimenT) Plus(other DimenT) DimenT {
	if !o.set || !other.set {
		return None()
	}
	return Some(o.d + other.d)
}

// Minus subtracts other from o.
func (o DimenT) Minus(other DimenT) DimenT {
	if !o.set || !other.set {
		return None()
	}
	return Some(o.d - other.d)
}

// Add adds a known dimension.
func (o DimenT) Add(d Dimen) DimenT {
	if !o.set {
		return o
	}
	return Some(o.d + d)
}

// Sub subtracts a known dimension.
func (o DimenT) Sub(d Dimen) DimenT {
	if !o.set {
		return o
	}
	return Some(o.d - d)
}

// Max returns the greater of o and other, unset if either is unset.
func (o DimenT) Max(other DimenT) DimenT {
	if !o.set || !other.set {
		return None()
	}
	return Some(Max(o.d, other.d))
}

// Equals compares o to another optional or plain dimension.
func (o DimenT) Equals(other interface{}) bool {
	switch x := other.(type) {
	case DimenT:
		return o.set == x.set && o.d == x.d
	case Dimen:
		return o.set && o.d == x
	case int:
		return o.set && o.d == Dimen(x)
	case int32:
		return o.set && o.d == Dimen(x)
	}
	return false
}

func (o DimenT) String() string {
	if !o.set {
		return "Dimen.None"
	}
	return o.d.String()
}
