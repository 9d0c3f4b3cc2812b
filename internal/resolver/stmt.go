package resolver

import (
	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/semerr"
)

// ResolveBlock pushes a fresh scope, resolves every item in b, and pops
// the scope.
func (r *Resolver) ResolveBlock(b *ast.Block) error {
	r.EnterScope()
	defer r.ExitScope()
	return r.resolveBlockItems(b.Items)
}

func (r *Resolver) resolveBlockItems(items []ast.BlockItem) error {
	for i, item := range items {
		resolved, err := r.resolveBlockItem(item)
		if err != nil {
			return err
		}
		items[i] = resolved
	}
	return nil
}

func (r *Resolver) resolveBlockItem(item ast.BlockItem) (ast.BlockItem, error) {
	switch it := item.(type) {
	case *ast.VarDecl:
		if err := r.resolveBlockScopeVarDecl(it); err != nil {
			return nil, err
		}
		return it, nil
	case *ast.FunDecl:
		if err := r.resolveFunDecl(it); err != nil {
			return nil, err
		}
		return it, nil
	case ast.Stmt:
		return r.resolveStmt(it)
	default:
		return nil, semerr.Internal(item.Pos(), "resolver: unhandled block item kind %T", item)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) (ast.Stmt, error) {
	switch st := s.(type) {
	case *ast.ReturnStmt:
		return r.resolveReturn(st)
	case *ast.ExprStmt:
		v, err := r.ResolveExpr(st.X)
		if err != nil {
			return nil, err
		}
		st.X = v
		return st, nil
	case *ast.IfStmt:
		return r.resolveIf(st)
	case *ast.CompoundStmt:
		if err := r.ResolveBlock(st.Body); err != nil {
			return nil, err
		}
		return st, nil
	case *ast.WhileStmt:
		return r.resolveWhile(st)
	case *ast.DoWhileStmt:
		return r.resolveDoWhile(st)
	case *ast.ForStmt:
		return r.resolveFor(st)
	case *ast.BreakStmt:
		id, err := r.loops.TagBreak()
		if err != nil {
			return nil, semerr.New(semerr.OrphanBreakContinue, st.Pos(), "%v", err)
		}
		st.LoopID = id
		return st, nil
	case *ast.ContinueStmt:
		id, err := r.loops.TagContinue()
		if err != nil {
			return nil, semerr.New(semerr.OrphanBreakContinue, st.Pos(), "%v", err)
		}
		st.LoopID = id
		return st, nil
	case *ast.LabelStmt:
		return r.resolveLabel(st)
	case *ast.GotoStmt:
		if r.depth > r.gotoDepth[st.Name] {
			r.gotoDepth[st.Name] = r.depth
		}
		st.Name = r.canonicalLabel(st.Name)
		return st, nil
	case *ast.NullStmt:
		return st, nil
	default:
		return nil, semerr.Internal(s.Pos(), "resolver: unhandled statement kind %T", s)
	}
}

func (r *Resolver) resolveReturn(st *ast.ReturnStmt) (ast.Stmt, error) {
	if st.Value == nil {
		return st, nil
	}
	v, err := r.ResolveExpr(st.Value)
	if err != nil {
		return nil, err
	}
	converted, err := r.checker.CheckReturn(st.Pos(), v)
	if err != nil {
		return nil, err
	}
	st.Value = converted
	return st, nil
}

func (r *Resolver) resolveIf(st *ast.IfStmt) (ast.Stmt, error) {
	cond, err := r.ResolveExpr(st.Cond)
	if err != nil {
		return nil, err
	}
	if err := r.checker.CheckCondition(st.Pos(), cond); err != nil {
		return nil, err
	}
	st.Cond = cond

	then, err := r.resolveStmt(st.Then)
	if err != nil {
		return nil, err
	}
	st.Then = then

	if st.Else != nil {
		els, err := r.resolveStmt(st.Else)
		if err != nil {
			return nil, err
		}
		st.Else = els
	}
	return st, nil
}

func (r *Resolver) resolveWhile(st *ast.WhileStmt) (ast.Stmt, error) {
	cond, err := r.ResolveExpr(st.Cond)
	if err != nil {
		return nil, err
	}
	if err := r.checker.CheckCondition(st.Pos(), cond); err != nil {
		return nil, err
	}
	st.Cond = cond

	st.LoopID = r.loops.EnterWhile()
	body, err := r.resolveStmt(st.Body)
	r.loops.Exit()
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}

func (r *Resolver) resolveDoWhile(st *ast.DoWhileStmt) (ast.Stmt, error) {
	st.LoopID = r.loops.EnterDoWhile()
	body, err := r.resolveStmt(st.Body)
	if err != nil {
		r.loops.Exit()
		return nil, err
	}
	st.Body = body

	cond, err := r.ResolveExpr(st.Cond)
	r.loops.Exit()
	if err != nil {
		return nil, err
	}
	if err := r.checker.CheckCondition(st.Pos(), cond); err != nil {
		return nil, err
	}
	st.Cond = cond
	return st, nil
}

// resolveFor wraps the init, condition, post, and body in a fresh scope,
// with the loop-annotator's id pushed only around the body so that
// break/continue inside the body see it but a (nonsensical) break in the
// init-clause does not.
func (r *Resolver) resolveFor(st *ast.ForStmt) (ast.Stmt, error) {
	r.EnterScope()
	defer r.ExitScope()

	if st.Init != nil {
		init, err := r.resolveForInit(st.Init)
		if err != nil {
			return nil, err
		}
		st.Init = init
	}

	if st.Cond != nil {
		cond, err := r.ResolveExpr(st.Cond)
		if err != nil {
			return nil, err
		}
		if err := r.checker.CheckCondition(st.Pos(), cond); err != nil {
			return nil, err
		}
		st.Cond = cond
	}

	if st.Post != nil {
		post, err := r.ResolveExpr(st.Post)
		if err != nil {
			return nil, err
		}
		st.Post = post
	}

	st.LoopID = r.loops.EnterFor()
	body, err := r.resolveStmt(st.Body)
	r.loops.Exit()
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}

// resolveForInit resolves a for-loop's init-clause. A declaration form
// with a storage class is a hard error: a static or extern loop variable
// has no meaning.
func (r *Resolver) resolveForInit(init ast.ForInit) (ast.ForInit, error) {
	switch fi := init.(type) {
	case ast.InitDecl:
		if fi.Decl.Storage != ast.StorageNone {
			return nil, semerr.New(semerr.IllegalStorageClass, fi.Decl.Pos(), "illegal storage class %q on for-loop initializer", fi.Decl.Storage)
		}
		if err := r.resolveBlockScopeVarDecl(fi.Decl); err != nil {
			return nil, err
		}
		return fi, nil
	case ast.InitExpr:
		if fi.Expr == nil {
			return fi, nil
		}
		v, err := r.ResolveExpr(fi.Expr)
		if err != nil {
			return nil, err
		}
		fi.Expr = v
		return fi, nil
	default:
		return nil, semerr.Internal(init.Pos(), "resolver: unhandled for-init kind %T", init)
	}
}

// canonicalLabel returns the canonical name bound to a label/goto's source
// name, minting one on first sight. Label and goto share the map, so
// whichever is seen first fixes the canonical name both rewrite to.
func (r *Resolver) canonicalLabel(name string) string {
	if canonical, ok := r.gotoMap[name]; ok {
		return canonical
	}
	canonical := r.names.Fresh(name)
	r.gotoMap[name] = canonical
	return canonical
}

func (r *Resolver) resolveLabel(st *ast.LabelStmt) (ast.Stmt, error) {
	if r.labelSet[st.Name] {
		return nil, semerr.New(semerr.DuplicateLabel, st.Pos(), "duplicate label %q", st.Name)
	}
	r.labelSet[st.Name] = true
	r.labelDepth[st.Name] = r.depth
	st.Name = r.canonicalLabel(st.Name)

	body, err := r.resolveStmt(st.Body)
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}
