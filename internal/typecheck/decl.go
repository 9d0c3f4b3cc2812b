package typecheck

import (
	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/semerr"
	"github.com/hassan/cc-semant/internal/staticinit"
	"github.com/hassan/cc-semant/internal/symtab"
	"github.com/hassan/cc-semant/internal/types"
)

// CheckFunDecl builds d's FunType, checks it for consistency against any
// prior declaration of the same name, and updates the symbol table.
func (c *Checker) CheckFunDecl(d *ast.FunDecl) error {
	ft := d.FunType()
	isGlobal := d.Storage != ast.StorageStatic
	isDefined := d.Body != nil

	if sym, ok := c.Symbols.Get(d.Name); ok {
		if !sym.Type.Equals(ft) {
			return semerr.New(semerr.ConflictingTypes, d.Pos(), "conflicting types for %q", d.Name)
		}
		fa, ok := sym.Attrs.(symtab.FunAttr)
		if !ok {
			return semerr.New(semerr.ConflictingTypes, d.Pos(), "%q was previously declared as a different kind of symbol", d.Name)
		}
		if fa.IsDefined && isDefined {
			return semerr.New(semerr.RedefinedFunction, d.Pos(), "redefinition of function %q", d.Name)
		}
		if fa.IsGlobal != isGlobal {
			if !fa.IsGlobal {
				isGlobal = false // internal linkage is sticky
			} else {
				return semerr.New(semerr.ConflictingLinkage, d.Pos(), "conflicting linkage for %q", d.Name)
			}
		}
		isDefined = fa.IsDefined || isDefined
	}

	c.Symbols.Put(d.Name, &symtab.Symbol{Type: ft, Attrs: symtab.FunAttr{IsDefined: isDefined, IsGlobal: isGlobal}})
	return nil
}

// CheckFileScopeVarDecl determines d's InitialValue and linkage and merges
// it with any prior declaration of the same name. Also used, verbatim, for
// extern block-scope declarations, which share the exact same
// linkage/merging rule.
func (c *Checker) CheckFileScopeVarDecl(d *ast.VarDecl) error {
	var init staticinit.InitialValue
	switch {
	case d.Init != nil:
		si, err := EvalConstant(d.Init.Pos(), d.Init, d.Type)
		if err != nil {
			return err
		}
		init = staticinit.Initial{Inits: []staticinit.StaticInit{si}}
	case d.Storage != ast.StorageExtern:
		init = staticinit.Tentative{}
	default:
		init = staticinit.NoInitializer{}
	}

	isGlobal := d.Storage != ast.StorageStatic

	if sym, ok := c.Symbols.Get(d.Name); ok {
		sa, ok := sym.Attrs.(symtab.StaticAttr)
		if !ok || !sym.Type.Equals(d.Type) {
			return semerr.New(semerr.ConflictingTypes, d.Pos(), "conflicting types for %q", d.Name)
		}
		if sa.IsGlobal != isGlobal {
			if !sa.IsGlobal {
				isGlobal = false // internal linkage is sticky
			} else {
				return semerr.New(semerr.ConflictingLinkage, d.Pos(), "conflicting linkage for %q", d.Name)
			}
		}
		combined, err := combineInitialValues(d.Pos(), sa.Init, init)
		if err != nil {
			return err
		}
		init = combined
	}

	c.Symbols.Put(d.Name, &symtab.Symbol{Type: d.Type, Attrs: symtab.StaticAttr{IsGlobal: isGlobal, Init: init}})
	return nil
}

// combineInitialValues merges a prior InitialValue with the one the
// current declaration produced: two explicit Initials conflict; Initial
// wins over Tentative; NoInitializer inherits from the prior declaration.
func combineInitialValues(pos lexer.Position, old, next staticinit.InitialValue) (staticinit.InitialValue, error) {
	_, oldInitial := old.(staticinit.Initial)
	_, nextInitial := next.(staticinit.Initial)

	if oldInitial && nextInitial {
		return nil, semerr.New(semerr.ConflictingInitializers, pos, "conflicting initializers")
	}
	if _, nextIsNoInit := next.(staticinit.NoInitializer); nextIsNoInit {
		return old, nil
	}
	if oldInitial {
		return old, nil
	}
	if nextInitial {
		return next, nil
	}
	return staticinit.Tentative{}, nil
}

// CheckExternBlockScopeVarDecl rejects an initializer on a block-scope
// extern declaration and otherwise defers to the file-scope rule.
func (c *Checker) CheckExternBlockScopeVarDecl(d *ast.VarDecl) error {
	if d.Init != nil {
		return semerr.New(semerr.InitializerOnExtern, d.Pos(), "initializer on extern declaration of %q", d.Name)
	}
	return c.CheckFileScopeVarDecl(d)
}

// CheckStaticBlockScopeVarDecl builds a definite or zero initial value
// from d's (already resolved) initializer, rejecting any non-constant
// initializer.
func (c *Checker) CheckStaticBlockScopeVarDecl(d *ast.VarDecl) error {
	var init staticinit.InitialValue
	if d.Init != nil {
		si, err := EvalConstant(d.Init.Pos(), d.Init, d.Type)
		if err != nil {
			return err
		}
		init = staticinit.Initial{Inits: []staticinit.StaticInit{si}}
	} else {
		init = staticinit.Initial{Inits: []staticinit.StaticInit{staticinit.ZeroInit{Bytes: types.SizeOf(d.Type, c.PointerWidth)}}}
	}

	c.Symbols.Put(d.Name, &symtab.Symbol{Type: d.Type, Attrs: symtab.StaticAttr{IsGlobal: false, Init: init}})
	return nil
}

// CheckLocalVarDecl records an ordinary automatic variable and, if
// present, converts its initializer to the declared type.
func (c *Checker) CheckLocalVarDecl(d *ast.VarDecl) error {
	if d.Init != nil {
		d.Init = convert(Decay(d.Init), d.Type)
	}
	c.Symbols.Put(d.Name, &symtab.Symbol{Type: d.Type, Attrs: symtab.LocalAttr{}})
	return nil
}

// CheckParam records a function parameter under its canonical name with
// LocalAttr.
func (c *Checker) CheckParam(p *ast.Param) error {
	c.Symbols.Put(p.Name, &symtab.Symbol{Type: p.Type, Attrs: symtab.LocalAttr{}})
	return nil
}
