package ast

import "github.com/hassan/cc-semant/internal/types"

// Expr is an expression node. Every expression carries a non-nil result
// type once the type checker has run.
type Expr interface {
	Node
	Type() types.Type
	SetType(types.Type)
	exprNode()
}

// typed gives every expression node its Type()/SetType() pair. Embed it
// alongside BaseNode in each concrete expression struct.
type typed struct {
	resultType types.Type
}

func (t *typed) Type() types.Type      { return t.resultType }
func (t *typed) SetType(ty types.Type) { t.resultType = ty }

// ConstKind distinguishes a Constant expression's inherent lexical kind,
// assigned by the parser from the lexer's token type and confirmed (or,
// for values too large for Int/UInt, upgraded) by the type checker.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstLong
	ConstUInt
	ConstULong
	ConstDouble
)

// ConstantExpr is an integer or floating-point literal.
type ConstantExpr struct {
	BaseNode
	typed
	Kind     ConstKind
	IntVal   uint64  // valid when Kind != ConstDouble; holds the literal's bit pattern
	FloatVal float64 // valid when Kind == ConstDouble
}

func (*ConstantExpr) exprNode() {}

// VarExpr references a variable by name. Name is rewritten to its
// canonical form by the resolver.
type VarExpr struct {
	BaseNode
	typed
	Name string
}

func (*VarExpr) exprNode() {}

// CastExpr is an explicit (post-resolution, possibly compiler-inserted)
// conversion of X to Target. Every implicit conversion the type checker
// performs is materialized as one of these.
type CastExpr struct {
	BaseNode
	typed
	Target types.Type
	X      Expr
}

func (*CastExpr) exprNode() {}

// UnaryOp is a unary operator.
type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpComplement
	OpNot
)

// UnaryExpr applies a unary operator to X.
type UnaryExpr struct {
	BaseNode
	typed
	Op UnaryOp
	X  Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryOp is a binary arithmetic, bitwise, relational, or logical
// operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpAnd
	OpOr
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

// IsComparison reports whether op is a relational or equality operator,
// whose result type is always Int regardless of the common operand type.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	default:
		return false
	}
}

// IsLogical reports whether op is && or ||: these short-circuit and never
// undergo the usual arithmetic conversions (each operand only needs to be
// scalar, and the result is always Int).
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// BinaryExpr applies a binary operator to Left and Right.
type BinaryExpr struct {
	BaseNode
	typed
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) exprNode() {}

// AssignmentExpr is a plain "l = r" assignment.
type AssignmentExpr struct {
	BaseNode
	typed
	Left, Right Expr
}

func (*AssignmentExpr) exprNode() {}

// AssignmentCompoundExpr is "l op= r" (+=, -=, and so on). Its result type
// is l's type; only Right carries a materialized Cast (to the common type
// of l and r), and no Cast node records the conversion back to l's type.
type AssignmentCompoundExpr struct {
	BaseNode
	typed
	Op          BinaryOp
	Left, Right Expr
}

func (*AssignmentCompoundExpr) exprNode() {}

// ConditionalExpr is "cond ? then : else".
type ConditionalExpr struct {
	BaseNode
	typed
	Cond, Then, Else Expr
}

func (*ConditionalExpr) exprNode() {}

// FunctionCallExpr calls the function bound to Name with Args. Name is
// rewritten to its canonical form by the resolver.
type FunctionCallExpr struct {
	BaseNode
	typed
	Name string
	Args []Expr
}

func (*FunctionCallExpr) exprNode() {}

// DereferenceExpr is "*x".
type DereferenceExpr struct {
	BaseNode
	typed
	X Expr
}

func (*DereferenceExpr) exprNode() {}

// AddrOfExpr is "&x".
type AddrOfExpr struct {
	BaseNode
	typed
	X Expr
}

func (*AddrOfExpr) exprNode() {}

// SubscriptExpr is "a[i]", typed as equivalent to *(a + i) per ISO C,
// after array-to-pointer decay of whichever operand is the array.
type SubscriptExpr struct {
	BaseNode
	typed
	Array, Index Expr
}

func (*SubscriptExpr) exprNode() {}

// IsLvalue reports whether e is one of the lvalue expression forms: a
// plain variable reference, a dereference, or a subscript.
func IsLvalue(e Expr) bool {
	switch e.(type) {
	case *VarExpr, *DereferenceExpr, *SubscriptExpr:
		return true
	default:
		return false
	}
}
