// Package staticinit holds the static-initializer and initial-value sum
// types a file-scope or static block-scope declaration resolves to. These
// are consumed downstream by code generation, outside this pass; the pass
// only ever produces them.
package staticinit

import "math"

// StaticInit is one concrete static initializer. The family is sealed: the
// only implementations are the IntInit/LongInit/UIntInit/ULongInit/
// DoubleInit/ZeroInit constructors below.
type StaticInit interface {
	String() string
	staticInitNode()
}

// IntInit is a 32-bit signed constant initializer.
type IntInit struct{ Value int32 }

func (IntInit) staticInitNode() {}
func (i IntInit) String() string { return "IntInit" }

// LongInit is a 64-bit signed constant initializer.
type LongInit struct{ Value int64 }

func (LongInit) staticInitNode() {}
func (i LongInit) String() string { return "LongInit" }

// UIntInit is a 32-bit unsigned constant initializer.
type UIntInit struct{ Value uint32 }

func (UIntInit) staticInitNode() {}
func (i UIntInit) String() string { return "UIntInit" }

// ULongInit is a 64-bit unsigned constant initializer.
type ULongInit struct{ Value uint64 }

func (ULongInit) staticInitNode() {}
func (i ULongInit) String() string { return "ULongInit" }

// DoubleInit carries both the decoded float64 value and its raw IEEE-754
// bit pattern. Float-to-string-to-float round trips are not bit-exact on
// every platform, so code generation needs the bits, not a reformatted
// decimal.
type DoubleInit struct {
	Value   float64
	RawBits uint64
}

func (DoubleInit) staticInitNode() {}
func (d DoubleInit) String() string { return "DoubleInit" }

// NewDoubleInit builds a DoubleInit, deriving RawBits from value so callers
// never have to remember to keep the two in sync.
func NewDoubleInit(value float64) DoubleInit {
	return DoubleInit{Value: value, RawBits: math.Float64bits(value)}
}

// ZeroInit represents Bytes zero bytes of zero-initialized storage. The
// type checker uses it for a static block-scope variable declared without
// an initializer; file-scope tentative definitions stay Tentative.
type ZeroInit struct{ Bytes uint64 }

func (ZeroInit) staticInitNode() {}
func (z ZeroInit) String() string { return "ZeroInit" }

// InitialValue is a static object's initial value: Tentative, Initial, or
// NoInitializer.
type InitialValue interface {
	String() string
	initialValueNode()
}

// Tentative marks a file-scope variable with no explicit initializer and no
// extern storage class yet seen; becomes a zero-initialized definition
// unless a later declaration in the same translation unit supplies one.
type Tentative struct{}

func (Tentative) initialValueNode() {}
func (Tentative) String() string    { return "Tentative" }

// Initial is a definite initializer: one StaticInit per scalar sub-object
// (an aggregate initializer lowers to more than one element).
type Initial struct{ Inits []StaticInit }

func (Initial) initialValueNode() {}
func (Initial) String() string    { return "Initial" }

// NoInitializer marks an extern declaration with no initializer: a
// reference to a definition that must live elsewhere.
type NoInitializer struct{}

func (NoInitializer) initialValueNode() {}
func (NoInitializer) String() string    { return "NoInitializer" }
