// Package ast defines the AST node families the semantic core observes and
// mutates: Program, declarations, blocks, statements, and expressions.
//
// DESIGN CHOICE: interfaces with unexported marker methods, not a
// double-dispatch Visitor. The resolver and the type checker need
// different per-node signatures on the same walk (the resolver rewrites
// names in place, the type checker returns a types.Type and wraps nodes in
// casts), so a single Accept(Visitor) method can't serve both without two
// parallel Visitor interfaces. Plain recursive functions with Go type
// switches, the same approach golang.org/x/tools/go/ast takes for
// multi-purpose traversal, read more directly here.
package ast

import (
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/types"
)

// Node is the common interface of every AST node: it can report its source
// position.
type Node interface {
	Pos() lexer.Position
}

// BaseNode gives every concrete node a Pos() for free. Embed it and set
// StartPos in the parser.
type BaseNode struct {
	StartPos lexer.Position
}

func (b BaseNode) Pos() lexer.Position { return b.StartPos }

// StorageClass is a declaration's storage-class specifier: absent, static,
// or extern.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageStatic
	StorageExtern
)

func (s StorageClass) String() string {
	switch s {
	case StorageStatic:
		return "static"
	case StorageExtern:
		return "extern"
	default:
		return ""
	}
}

// Program is the root node: a sequence of top-level declarations.
type Program struct {
	Decls []Decl
}

// Decl is a top-level or block-scope declaration: FunDecl or VarDecl.
type Decl interface {
	Node
	BlockItem
	declNode()
}

// BlockItem is anything that can appear inside a Block: a Stmt or a Decl.
type BlockItem interface {
	Node
	blockItemNode()
}

// Block is a compound statement's body: an ordered sequence of BlockItems.
type Block struct {
	BaseNode
	Items []BlockItem
}

// Param is one function parameter: a name and a type, bound to LocalAttr in
// the symbol table once resolved.
type Param struct {
	BaseNode
	Name string // rewritten to its canonical name by the resolver
	Type types.Type
}
