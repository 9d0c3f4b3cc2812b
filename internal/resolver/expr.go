package resolver

import (
	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/semerr"
)

// ResolveExpr recursively resolves e's identifiers to their canonical form
// and immediately type-checks the result. The returned Expr may be e
// itself or a CastExpr wrapping e, whichever the type checker decided the
// node's context needs.
func (r *Resolver) ResolveExpr(e ast.Expr) (ast.Expr, error) {
	switch x := e.(type) {
	case *ast.ConstantExpr:
		return r.checker.CheckConstant(x)

	case *ast.VarExpr:
		canonical, err := r.lookup(x.Pos(), x.Name)
		if err != nil {
			return nil, err
		}
		x.Name = canonical
		return r.checker.CheckVar(x)

	case *ast.CastExpr:
		inner, err := r.ResolveExpr(x.X)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckCast(x.Pos(), x.Target, inner)

	case *ast.UnaryExpr:
		inner, err := r.ResolveExpr(x.X)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckUnary(x.Pos(), x.Op, inner)

	case *ast.BinaryExpr:
		left, err := r.ResolveExpr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.ResolveExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckBinary(x.Pos(), x.Op, left, right)

	case *ast.AssignmentExpr:
		left, err := r.ResolveExpr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.ResolveExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckAssignment(x.Pos(), left, right)

	case *ast.AssignmentCompoundExpr:
		left, err := r.ResolveExpr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.ResolveExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckAssignmentCompound(x.Pos(), x.Op, left, right)

	case *ast.ConditionalExpr:
		cond, err := r.ResolveExpr(x.Cond)
		if err != nil {
			return nil, err
		}
		then, err := r.ResolveExpr(x.Then)
		if err != nil {
			return nil, err
		}
		els, err := r.ResolveExpr(x.Else)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckConditional(x.Pos(), cond, then, els)

	case *ast.FunctionCallExpr:
		canonical, err := r.lookup(x.Pos(), x.Name)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(x.Args))
		for i, a := range x.Args {
			ra, err := r.ResolveExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = ra
		}
		return r.checker.CheckFunctionCall(x.Pos(), canonical, args)

	case *ast.DereferenceExpr:
		inner, err := r.ResolveExpr(x.X)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckDereference(x.Pos(), inner)

	case *ast.AddrOfExpr:
		inner, err := r.ResolveExpr(x.X)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckAddrOf(x.Pos(), inner)

	case *ast.SubscriptExpr:
		arr, err := r.ResolveExpr(x.Array)
		if err != nil {
			return nil, err
		}
		idx, err := r.ResolveExpr(x.Index)
		if err != nil {
			return nil, err
		}
		return r.checker.CheckSubscript(x.Pos(), arr, idx)

	default:
		return nil, semerr.Internal(e.Pos(), "resolver: unhandled expression kind %T", e)
	}
}
