package ast

import "github.com/hassan/cc-semant/internal/types"

// FunDecl is a function declaration or definition. Body is nil for a
// prototype.
type FunDecl struct {
	BaseNode
	Name       string // never rewritten: function names keep their source spelling
	Params     []*Param
	ReturnType types.Type
	Body       *Block
	Storage    StorageClass
}

func (*FunDecl) declNode()      {}
func (*FunDecl) blockItemNode() {}

// FunType builds this declaration's function type from its parameter and
// return types.
func (f *FunDecl) FunType() types.Type {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return types.NewFunType(params, f.ReturnType)
}

// VarDecl is a variable declaration at file scope, block scope, or as a
// for-loop's init-declaration.
type VarDecl struct {
	BaseNode
	Name    string // rewritten to its canonical name by the resolver, unless externally linked
	Type    types.Type
	Init    Expr // nil if no initializer
	Storage StorageClass
}

func (*VarDecl) declNode()      {}
func (*VarDecl) blockItemNode() {}
