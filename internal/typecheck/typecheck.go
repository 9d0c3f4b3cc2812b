// Package typecheck implements the type checker: it assigns a result type
// to every expression, materializes implicit conversions as explicit Cast
// nodes, checks statements and declarations, and populates the symbol
// table.
//
// The checker never walks an AST subtree on its own. The resolver
// (internal/resolver) owns traversal order and calls into these methods
// bottom-up, once each subexpression is already resolved (names rewritten
// to canonical form) and, for composite expressions, already checked.
// Keeping traversal out of this package leaves the two components
// separately testable.
package typecheck

import (
	"math"

	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/semerr"
	"github.com/hassan/cc-semant/internal/staticinit"
	"github.com/hassan/cc-semant/internal/symtab"
	"github.com/hassan/cc-semant/internal/types"
)

// Checker holds the symbol table and the small amount of context that
// spans a single function body (its return type).
type Checker struct {
	Symbols *symtab.SymbolTable

	// PointerWidth is the target's pointer size in bytes, from
	// internal/config's Config.PointerWidth, consumed by
	// CheckStaticBlockScopeVarDecl via types.SizeOf.
	PointerWidth uint64

	currentReturnType types.Type
}

// New creates a Checker over the given symbol table, sizing pointers at
// pointerWidth bytes.
func New(symbols *symtab.SymbolTable, pointerWidth uint64) *Checker {
	return &Checker{Symbols: symbols, PointerWidth: pointerWidth}
}

// EnterFunction records fn's return type for Return-statement checking,
// called by the resolver when it starts walking a function body.
func (c *Checker) EnterFunction(returnType types.Type) {
	c.currentReturnType = returnType
}

// ExitFunction clears the current-function context.
func (c *Checker) ExitFunction() {
	c.currentReturnType = nil
}

// convert wraps e in a CastExpr to target if e's type isn't already
// target, so no implicit conversion is left un-materialized in the output
// tree. Returns e unchanged if no conversion is needed.
func convert(e ast.Expr, target types.Type) ast.Expr {
	if e.Type() != nil && e.Type().Equals(target) {
		return e
	}
	cast := &ast.CastExpr{BaseNode: ast.BaseNode{StartPos: e.Pos()}, Target: target, X: e}
	cast.SetType(target)
	return cast
}

// Decay applies array-to-pointer decay: an array-typed expression is
// converted to a pointer to its element type, materialized as a Cast like
// any other implicit conversion. AddrOf's operand is never decayed;
// CheckSubscript decays both of its operands.
func Decay(e ast.Expr) ast.Expr {
	at, ok := e.Type().(types.ArrayType)
	if !ok {
		return e
	}
	return convert(e, types.NewPointer(at.Elem))
}

// CheckConstant assigns e's result type. The lexer/parser supply Kind as a
// hint from the literal's suffix, but a suffixless literal whose value
// doesn't fit in Int is promoted to Long (and analogously UInt -> ULong),
// since C requires every integer constant to have a type wide enough to
// hold its value.
func (c *Checker) CheckConstant(e *ast.ConstantExpr) (ast.Expr, error) {
	switch e.Kind {
	case ast.ConstDouble:
		e.SetType(types.Double)
	case ast.ConstInt:
		if e.IntVal > math.MaxInt32 {
			e.Kind = ast.ConstLong
		}
		e.SetType(kindType(e.Kind))
	case ast.ConstUInt:
		if e.IntVal > math.MaxUint32 {
			e.Kind = ast.ConstULong
		}
		e.SetType(kindType(e.Kind))
	default:
		e.SetType(kindType(e.Kind))
	}
	return e, nil
}

func kindType(k ast.ConstKind) types.Type {
	switch k {
	case ast.ConstInt:
		return types.Int
	case ast.ConstLong:
		return types.Long
	case ast.ConstUInt:
		return types.UInt
	case ast.ConstULong:
		return types.ULong
	default:
		return types.Double
	}
}

// CheckVar looks e's canonical name up in the symbol table and assigns its
// stored type.
func (c *Checker) CheckVar(e *ast.VarExpr) (ast.Expr, error) {
	sym, ok := c.Symbols.Get(e.Name)
	if !ok {
		return nil, semerr.New(semerr.UndeclaredIdentifier, e.Pos(), "undeclared identifier %q", e.Name)
	}
	e.SetType(sym.Type)
	return e, nil
}

// CheckCast validates and types an explicit cast: casts among arithmetic
// types and among pointer types are allowed; casts between Double and a
// pointer type are disallowed in either direction.
func (c *Checker) CheckCast(pos lexer.Position, target types.Type, x ast.Expr) (ast.Expr, error) {
	x = Decay(x)
	xt := x.Type()
	if (target.Equals(types.Double) && types.IsPointer(xt)) ||
		(types.IsPointer(target) && xt.Equals(types.Double)) {
		return nil, semerr.New(semerr.IncompatibleCast, pos, "cannot cast between %s and %s", xt, target)
	}
	cast := &ast.CastExpr{BaseNode: ast.BaseNode{StartPos: pos}, Target: target, X: x}
	cast.SetType(target)
	return cast, nil
}

// CheckUnary types a unary expression: - requires an arithmetic operand,
// ~ an integer operand, and ! any scalar (yielding Int).
func (c *Checker) CheckUnary(pos lexer.Position, op ast.UnaryOp, x ast.Expr) (ast.Expr, error) {
	x = Decay(x)
	xt := x.Type()

	switch op {
	case ast.OpNegate:
		if !types.IsArithmetic(xt) {
			return nil, semerr.New(semerr.NonArithmeticOperand, pos, "operand of unary - must be arithmetic, got %s", xt)
		}
	case ast.OpComplement:
		if !types.IsInteger(xt) {
			return nil, semerr.New(semerr.NonArithmeticOperand, pos, "operand of ~ must be an integer type, got %s", xt)
		}
	case ast.OpNot:
		if !types.IsScalar(xt) {
			return nil, semerr.New(semerr.NonArithmeticOperand, pos, "operand of ! must be scalar, got %s", xt)
		}
	}

	u := &ast.UnaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, X: x}
	if op == ast.OpNot {
		u.SetType(types.Int)
	} else {
		u.SetType(xt)
	}
	return u, nil
}

// CommonType implements C's usual arithmetic conversions:
//  1. either operand Double -> Double
//  2. identical types -> no conversion
//  3. same signedness -> lower rank converts to higher rank
//  4. mixed signedness -> unsigned wins if its rank >= the signed rank,
//     else the unsigned operand converts to the signed type
func CommonType(pos lexer.Position, a, b types.Type) (types.Type, error) {
	if !types.IsArithmetic(a) || !types.IsArithmetic(b) {
		return nil, semerr.New(semerr.NonArithmeticOperand, pos, "operands must be arithmetic, got %s and %s", a, b)
	}

	if a.Equals(types.Double) || b.Equals(types.Double) {
		return types.Double, nil
	}
	if a.Equals(b) {
		return a, nil
	}

	aUnsigned, bUnsigned := types.IsUnsigned(a), types.IsUnsigned(b)
	if aUnsigned == bUnsigned {
		if types.Rank(a) >= types.Rank(b) {
			return a, nil
		}
		return b, nil
	}

	var unsigned, signed types.Type
	if aUnsigned {
		unsigned, signed = a, b
	} else {
		unsigned, signed = b, a
	}
	if types.Rank(unsigned) >= types.Rank(signed) {
		return unsigned, nil
	}
	return signed, nil
}

// CheckBinary types a binary expression, applying the usual arithmetic
// conversions (for arithmetic operators) and materializing conversions as
// Cast nodes on whichever operand needs one.
func (c *Checker) CheckBinary(pos lexer.Position, op ast.BinaryOp, left, right ast.Expr) (ast.Expr, error) {
	left = Decay(left)
	right = Decay(right)

	if op.IsLogical() {
		if !types.IsScalar(left.Type()) || !types.IsScalar(right.Type()) {
			return nil, semerr.New(semerr.NonArithmeticOperand, pos, "operands of && / || must be scalar")
		}
		b := &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
		b.SetType(types.Int)
		return b, nil
	}

	common, err := CommonType(pos, left.Type(), right.Type())
	if err != nil {
		return nil, err
	}

	left = convert(left, common)
	right = convert(right, common)

	b := &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	if op.IsComparison() {
		b.SetType(types.Int)
	} else {
		b.SetType(common)
	}
	return b, nil
}

// CheckAssignment types "l = r": l must be an lvalue, and r is converted
// to l's type if needed. The types of l and r are not checked for
// compatibility; any r is cast to l's type.
func (c *Checker) CheckAssignment(pos lexer.Position, left, right ast.Expr) (ast.Expr, error) {
	if !ast.IsLvalue(left) {
		return nil, semerr.New(semerr.InvalidLValue, pos, "left side of assignment is not an lvalue")
	}
	right = Decay(right)
	right = convert(right, left.Type())

	a := &ast.AssignmentExpr{BaseNode: ast.BaseNode{StartPos: pos}, Left: left, Right: right}
	a.SetType(left.Type())
	return a, nil
}

// CheckAssignmentCompound types "l op= r": the usual arithmetic
// conversions pick a common type for l and r, r is converted to it with a
// materialized Cast, and the result type is l's type. l is not wrapped in
// a Cast, and the conversion of the combined value back to l's type is not
// materialized as a Cast node.
func (c *Checker) CheckAssignmentCompound(pos lexer.Position, op ast.BinaryOp, left, right ast.Expr) (ast.Expr, error) {
	if !ast.IsLvalue(left) {
		return nil, semerr.New(semerr.InvalidLValue, pos, "left side of compound assignment is not an lvalue")
	}
	right = Decay(right)

	common, err := CommonType(pos, left.Type(), right.Type())
	if err != nil {
		return nil, err
	}
	right = convert(right, common)

	a := &ast.AssignmentCompoundExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	a.SetType(left.Type())
	return a, nil
}

// CheckConditional types "cond ? then : else": the condition must be
// scalar and the two arms are brought to a common type.
func (c *Checker) CheckConditional(pos lexer.Position, cond, then, els ast.Expr) (ast.Expr, error) {
	cond = Decay(cond)
	if !types.IsScalar(cond.Type()) {
		return nil, semerr.New(semerr.NonScalarCondition, pos, "conditional operator condition must be scalar, got %s", cond.Type())
	}
	then = Decay(then)
	els = Decay(els)

	common, err := CommonType(pos, then.Type(), els.Type())
	if err != nil {
		return nil, err
	}
	then = convert(then, common)
	els = convert(els, common)

	e := &ast.ConditionalExpr{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Then: then, Else: els}
	e.SetType(common)
	return e, nil
}

// CheckFunctionCall types a call, validating callability, arity, and
// per-argument conversions.
func (c *Checker) CheckFunctionCall(pos lexer.Position, name string, args []ast.Expr) (ast.Expr, error) {
	sym, ok := c.Symbols.Get(name)
	if !ok {
		return nil, semerr.New(semerr.UndeclaredIdentifier, pos, "undeclared identifier %q", name)
	}
	ft, ok := sym.Type.(types.FunType)
	if !ok {
		return nil, semerr.New(semerr.NotCallable, pos, "%q is not a function", name)
	}
	if len(args) != len(ft.Params) {
		return nil, semerr.New(semerr.ArityMismatch, pos, "function %q expects %d argument(s), got %d", name, len(ft.Params), len(args))
	}

	converted := make([]ast.Expr, len(args))
	for i, arg := range args {
		arg = Decay(arg)
		param := ft.Params[i]
		compatible := arg.Type().Equals(param) ||
			(types.IsArithmetic(arg.Type()) && types.IsArithmetic(param)) ||
			(types.IsPointer(arg.Type()) && types.IsPointer(param))
		if !compatible {
			return nil, semerr.New(semerr.ArgTypeMismatch, pos, "argument %d to %q: cannot convert %s to %s", i+1, name, arg.Type(), param)
		}
		converted[i] = convert(arg, param)
	}

	e := &ast.FunctionCallExpr{BaseNode: ast.BaseNode{StartPos: pos}, Name: name, Args: converted}
	e.SetType(ft.Ret)
	return e, nil
}

// CheckDereference types "*x": x must be a pointer; the result is the
// pointee type and an lvalue.
func (c *Checker) CheckDereference(pos lexer.Position, x ast.Expr) (ast.Expr, error) {
	x = Decay(x)
	pt, ok := x.Type().(types.PointerType)
	if !ok {
		return nil, semerr.New(semerr.NonArithmeticOperand, pos, "cannot dereference non-pointer type %s", x.Type())
	}
	e := &ast.DereferenceExpr{BaseNode: ast.BaseNode{StartPos: pos}, X: x}
	e.SetType(pt.Elem)
	return e, nil
}

// CheckAddrOf types "&x": x must be an lvalue; the result is a pointer to
// x's type.
func (c *Checker) CheckAddrOf(pos lexer.Position, x ast.Expr) (ast.Expr, error) {
	if !ast.IsLvalue(x) {
		return nil, semerr.New(semerr.InvalidLValue, pos, "operand of & must be an lvalue")
	}
	e := &ast.AddrOfExpr{BaseNode: ast.BaseNode{StartPos: pos}, X: x}
	e.SetType(types.NewPointer(x.Type()))
	return e, nil
}

// CheckSubscript types "a[i]": exactly one of a/i (after array decay) must
// be a pointer and the other an integer type; the result is the pointee
// type and an lvalue, per ISO C's "*(a + i)" equivalence.
func (c *Checker) CheckSubscript(pos lexer.Position, array, index ast.Expr) (ast.Expr, error) {
	array = Decay(array)
	index = Decay(index)

	var elem types.Type
	switch {
	case types.IsPointer(array.Type()) && types.IsInteger(index.Type()):
		elem = array.Type().(types.PointerType).Elem
	case types.IsInteger(array.Type()) && types.IsPointer(index.Type()):
		elem = index.Type().(types.PointerType).Elem
		array, index = index, array
	default:
		return nil, semerr.New(semerr.NonArithmeticOperand, pos, "subscript requires one pointer and one integer operand, got %s and %s", array.Type(), index.Type())
	}

	e := &ast.SubscriptExpr{BaseNode: ast.BaseNode{StartPos: pos}, Array: array, Index: index}
	e.SetType(elem)
	return e, nil
}

// CheckReturn converts value to the enclosing function's return type.
// value may be nil for a bare "return;" in a void function.
func (c *Checker) CheckReturn(pos lexer.Position, value ast.Expr) (ast.Expr, error) {
	if value == nil {
		return nil, nil
	}
	value = Decay(value)
	return convert(value, c.currentReturnType), nil
}

// CheckCondition validates that e is usable as an if/while/do-while/for
// condition: arithmetic or pointer.
func (c *Checker) CheckCondition(pos lexer.Position, e ast.Expr) error {
	if !types.IsScalar(e.Type()) {
		return semerr.New(semerr.NonScalarCondition, pos, "condition must be scalar, got %s", e.Type())
	}
	return nil
}

// EvalConstant evaluates a constant expression to a StaticInit of target's
// type, for static initializers (file-scope and static block-scope
// variables). Only literal constants, optionally negated or cast, are
// supported; anything else is not a constant expression.
func EvalConstant(pos lexer.Position, e ast.Expr, target types.Type) (staticinit.StaticInit, error) {
	value, isFloat, floatValue, err := constantValue(pos, e)
	if err != nil {
		return nil, err
	}

	if target.Equals(types.Double) {
		if isFloat {
			return staticinit.NewDoubleInit(floatValue), nil
		}
		return staticinit.NewDoubleInit(float64(value)), nil
	}
	if isFloat {
		value = int64(floatValue)
	}

	switch {
	case target.Equals(types.Int):
		return staticinit.IntInit{Value: int32(value)}, nil
	case target.Equals(types.Long):
		return staticinit.LongInit{Value: value}, nil
	case target.Equals(types.UInt):
		return staticinit.UIntInit{Value: uint32(value)}, nil
	case target.Equals(types.ULong):
		return staticinit.ULongInit{Value: uint64(value)}, nil
	default:
		return nil, semerr.New(semerr.NonConstantStaticInit, pos, "cannot build a static initializer of type %s", target)
	}
}

// constantValue unwraps a (possibly negated, possibly cast) constant
// expression to its numeric value.
func constantValue(pos lexer.Position, e ast.Expr) (intValue int64, isFloat bool, floatValue float64, err error) {
	switch n := e.(type) {
	case *ast.ConstantExpr:
		if n.Kind == ast.ConstDouble {
			return 0, true, n.FloatVal, nil
		}
		return int64(n.IntVal), false, 0, nil
	case *ast.UnaryExpr:
		if n.Op != ast.OpNegate {
			return 0, false, 0, semerr.New(semerr.NonConstantStaticInit, pos, "initializer is not a constant expression")
		}
		v, isF, fv, err := constantValue(pos, n.X)
		if err != nil {
			return 0, false, 0, err
		}
		if isF {
			return 0, true, -fv, nil
		}
		return -v, false, 0, nil
	case *ast.CastExpr:
		return constantValue(pos, n.X)
	default:
		return 0, false, 0, semerr.New(semerr.NonConstantStaticInit, pos, "initializer is not a constant expression")
	}
}
