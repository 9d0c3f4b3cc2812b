// Package resolver implements the identifier resolver, the driver of the
// whole walk. It maintains the scope stack and the external-linkage map,
// rewrites every binding and use site to a canonical name, and delegates
// to internal/typecheck on the same node immediately after resolving it:
// identifier resolution must precede type checking on a node, because the
// type checker dereferences canonical names through the symbol table.
//
// The scope stack and the external-linkage map are explicit fields on
// Resolver rather than package-level state, so independent resolvers can
// coexist and tests can construct one in isolation.
package resolver

import (
	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/loopctx"
	"github.com/hassan/cc-semant/internal/namegen"
	"github.com/hassan/cc-semant/internal/semerr"
	"github.com/hassan/cc-semant/internal/typecheck"
)

// Resolver owns the scope stack, the external-linkage map, and the
// per-function label/goto bookkeeping, and drives the whole program walk,
// calling into a typecheck.Checker at each node once it is resolved.
type Resolver struct {
	checker *typecheck.Checker
	names   *namegen.Generator
	loops   *loopctx.Stack

	// strictForwardGoto is internal/config's Config.StrictForwardGoto: when
	// true, resolveFunDecl rejects a goto whose target label sits in an
	// enclosing block rather than the same or a nested one.
	strictForwardGoto bool

	scopes   []map[string]string
	depth    int
	external map[string]int

	labelSet   map[string]bool
	labelDepth map[string]int
	gotoMap    map[string]string
	gotoDepth  map[string]int
}

// New creates a Resolver driving checker, minting names from names and
// tagging loops via loops. The three collaborators are constructed once by
// the semantic driver and shared for the lifetime of one Analyze call.
// strictForwardGoto is internal/config's Config.StrictForwardGoto.
func New(checker *typecheck.Checker, names *namegen.Generator, loops *loopctx.Stack, strictForwardGoto bool) *Resolver {
	return &Resolver{
		checker:           checker,
		names:             names,
		loops:             loops,
		strictForwardGoto: strictForwardGoto,
		external:          make(map[string]int),
	}
}

// Reset clears all scope-walk state, for reuse across independent Analyze
// calls.
func (r *Resolver) Reset() {
	r.scopes = nil
	r.depth = 0
	r.external = make(map[string]int)
	r.labelSet = nil
	r.labelDepth = nil
	r.gotoMap = nil
	r.gotoDepth = nil
}

// EnterScope pushes an empty scope frame.
func (r *Resolver) EnterScope() {
	r.scopes = append(r.scopes, make(map[string]string))
	r.depth++
}

// ExitScope pops the innermost scope frame, first removing from the
// external-linkage map any name whose recorded sighting depth is the depth
// being popped. The depth check matters: an extern redeclaration in a
// nested scope must not outlive that scope's sighting, while a file-scope
// sighting of the same name must.
func (r *Resolver) ExitScope() {
	top := r.scopes[len(r.scopes)-1]
	for name := range top {
		if r.external[name] == r.depth {
			delete(r.external, name)
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
	r.depth--
}

// recordExternalLinkage notes name's first sighting depth, if it hasn't
// been seen yet. Used for file-scope variables, extern block-scope
// variables, and function declarations at any depth.
func (r *Resolver) recordExternalLinkage(name string) {
	if _, ok := r.external[name]; !ok {
		r.external[name] = r.depth
	}
}

// bindCurrentScope records name -> canonical in the innermost scope frame.
func (r *Resolver) bindCurrentScope(name, canonical string) {
	r.scopes[len(r.scopes)-1][name] = canonical
}

// lookup scans frames innermost-first for name's canonical binding.
func (r *Resolver) lookup(pos lexer.Position, name string) (string, error) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if canonical, ok := r.scopes[i][name]; ok {
			return canonical, nil
		}
	}
	return "", semerr.New(semerr.UndeclaredIdentifier, pos, "undeclared identifier %q", name)
}

// ResolveProgram enters file scope and walks every top-level declaration
// in source order. The driver (internal/semantic) clears all state before
// calling this.
func (r *Resolver) ResolveProgram(p *ast.Program) error {
	r.EnterScope() // depth 1: file scope
	defer r.ExitScope()

	for _, d := range p.Decls {
		if err := r.resolveTopLevelDecl(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveTopLevelDecl(d ast.Decl) error {
	switch decl := d.(type) {
	case *ast.FunDecl:
		return r.resolveFunDecl(decl)
	case *ast.VarDecl:
		return r.resolveFileScopeVarDecl(decl)
	default:
		return semerr.Internal(d.Pos(), "resolver: unhandled top-level declaration kind %T", d)
	}
}

// resolveFileScopeVarDecl handles a file-scope variable: the canonical
// name always equals the source name, and the type checker does the
// linkage/initializer merging.
func (r *Resolver) resolveFileScopeVarDecl(d *ast.VarDecl) error {
	r.recordExternalLinkage(d.Name)
	r.bindCurrentScope(d.Name, d.Name)

	if d.Init != nil {
		init, err := r.ResolveExpr(d.Init)
		if err != nil {
			return err
		}
		d.Init = init
	}
	return r.checker.CheckFileScopeVarDecl(d)
}

// resolveFunDecl rejects block-scope definitions and block-scope static,
// records linkage, binds the source name, delegates to the type checker,
// then (for a definition) walks parameters and body in a fresh scope and
// validates every goto against the labels seen in the same function. When
// strictForwardGoto is set, a goto whose label sits at a shallower block
// depth than the goto itself (a jump into an enclosing block) is also
// rejected.
func (r *Resolver) resolveFunDecl(d *ast.FunDecl) error {
	if d.Body != nil && r.depth > 1 {
		return semerr.New(semerr.BlockScopedFunctionDefinition, d.Pos(), "function %q defined at block scope", d.Name)
	}
	if d.Storage == ast.StorageStatic && r.depth > 1 {
		return semerr.New(semerr.BlockScopedStaticFunction, d.Pos(), "static storage class on block-scope declaration of %q", d.Name)
	}

	r.recordExternalLinkage(d.Name)
	r.bindCurrentScope(d.Name, d.Name)

	if err := r.checker.CheckFunDecl(d); err != nil {
		return err
	}
	if d.Body == nil {
		return nil
	}

	r.labelSet = make(map[string]bool)
	r.labelDepth = make(map[string]int)
	r.gotoMap = make(map[string]string)
	r.gotoDepth = make(map[string]int)
	r.checker.EnterFunction(d.ReturnType)
	defer r.checker.ExitFunction()

	r.EnterScope()
	defer r.ExitScope()

	for _, p := range d.Params {
		if err := r.resolveParam(p); err != nil {
			return err
		}
	}
	if err := r.resolveBlockItems(d.Body.Items); err != nil {
		return err
	}

	for name := range r.gotoMap {
		if !r.labelSet[name] {
			return semerr.New(semerr.UnresolvedGoto, d.Pos(), "goto to undefined label %q", name)
		}
		if r.strictForwardGoto && r.labelDepth[name] < r.gotoDepth[name] {
			return semerr.New(semerr.StrictForwardGotoViolation, d.Pos(), "goto %q jumps into an enclosing block", name)
		}
	}
	return nil
}

// resolveParam mints a fresh canonical name for p, exactly like an
// ordinary block-scope variable.
func (r *Resolver) resolveParam(p *ast.Param) error {
	canonical := r.names.Fresh(p.Name)
	r.bindCurrentScope(p.Name, canonical)
	p.Name = canonical
	return r.checker.CheckParam(p)
}

// resolveBlockScopeVarDecl handles a block-scope variable: redeclaration
// in the same frame is an error unless the new declaration is extern and
// the name already has a linkage sighting; an
// extern declaration keeps its source name and file-scope linkage
// semantics; anything else is minted a fresh canonical name.
func (r *Resolver) resolveBlockScopeVarDecl(d *ast.VarDecl) error {
	top := r.scopes[len(r.scopes)-1]
	if _, exists := top[d.Name]; exists {
		_, hasLinkage := r.external[d.Name]
		if !(hasLinkage && d.Storage == ast.StorageExtern) {
			return semerr.New(semerr.Redeclaration, d.Pos(), "redeclaration of %q", d.Name)
		}
	}

	if d.Storage == ast.StorageExtern {
		r.recordExternalLinkage(d.Name)
		r.bindCurrentScope(d.Name, d.Name)
		if d.Init != nil {
			init, err := r.ResolveExpr(d.Init)
			if err != nil {
				return err
			}
			d.Init = init
		}
		return r.checker.CheckExternBlockScopeVarDecl(d)
	}

	canonical := r.names.Fresh(d.Name)
	r.bindCurrentScope(d.Name, canonical)
	d.Name = canonical

	if d.Storage == ast.StorageStatic {
		return r.checker.CheckStaticBlockScopeVarDecl(d)
	}

	if d.Init != nil {
		init, err := r.ResolveExpr(d.Init)
		if err != nil {
			return err
		}
		d.Init = init
	}
	return r.checker.CheckLocalVarDecl(d)
}
