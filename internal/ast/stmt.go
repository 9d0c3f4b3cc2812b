package ast

import "github.com/hassan/cc-semant/internal/lexer"

// Stmt is a statement node.
type Stmt interface {
	Node
	BlockItem
	stmtNode()
}

// ReturnStmt is "return e;" or "return;" (Value is nil for the latter).
type ReturnStmt struct {
	BaseNode
	Value Expr
}

func (*ReturnStmt) stmtNode()      {}
func (*ReturnStmt) blockItemNode() {}

// ExprStmt is a bare expression used as a statement, e.g. "f(x);" or
// "x = 1;".
type ExprStmt struct {
	BaseNode
	X Expr
}

func (*ExprStmt) stmtNode()      {}
func (*ExprStmt) blockItemNode() {}

// IfStmt is "if (cond) then" or "if (cond) then else else_". Else is nil
// when there is no else-branch.
type IfStmt struct {
	BaseNode
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) stmtNode()      {}
func (*IfStmt) blockItemNode() {}

// CompoundStmt wraps a Block used in statement position. The block gets
// its own scope.
type CompoundStmt struct {
	BaseNode
	Body *Block
}

func (*CompoundStmt) stmtNode()      {}
func (*CompoundStmt) blockItemNode() {}

// WhileStmt is "while (cond) body". LoopID is filled in by the loop
// annotator when the resolver enters the loop.
type WhileStmt struct {
	BaseNode
	Cond   Expr
	Body   Stmt
	LoopID uint64
}

func (*WhileStmt) stmtNode()      {}
func (*WhileStmt) blockItemNode() {}

// DoWhileStmt is "do body while (cond);".
type DoWhileStmt struct {
	BaseNode
	Body   Stmt
	Cond   Expr
	LoopID uint64
}

func (*DoWhileStmt) stmtNode()      {}
func (*DoWhileStmt) blockItemNode() {}

// ForInit is a for-loop's init-clause: either InitDecl (a VarDecl, with an
// empty storage class enforced by the resolver) or InitExpr (an optional
// expression). A nil ForInit means an empty init-clause ("for (;;)").
type ForInit interface {
	Node
	forInitNode()
}

// InitDecl is a for-loop init-clause that declares a variable.
type InitDecl struct {
	Decl *VarDecl
}

func (d InitDecl) Pos() lexer.Position { return d.Decl.Pos() }
func (InitDecl) forInitNode()          {}

// InitExpr is a for-loop init-clause that is a bare expression, or a
// completely empty init-clause when Expr is nil.
type InitExpr struct {
	BaseNode
	Expr Expr
}

func (InitExpr) forInitNode() {}

// ForStmt is "for (init; cond; post) body". A fresh scope wraps the init,
// condition, post, and body, so an init-declared variable is visible in
// all three but not past the loop.
type ForStmt struct {
	BaseNode
	Init   ForInit
	Cond   Expr // nil means an absent condition, which type-checks as always-true
	Post   Expr // nil means no post-expression
	Body   Stmt
	LoopID uint64
}

func (*ForStmt) stmtNode()      {}
func (*ForStmt) blockItemNode() {}

// BreakStmt is tagged with the id of its nearest enclosing loop by the loop
// annotator.
type BreakStmt struct {
	BaseNode
	LoopID uint64
}

func (*BreakStmt) stmtNode()      {}
func (*BreakStmt) blockItemNode() {}

// ContinueStmt is tagged with the id of its nearest enclosing loop by the
// loop annotator.
type ContinueStmt struct {
	BaseNode
	LoopID uint64
}

func (*ContinueStmt) stmtNode()      {}
func (*ContinueStmt) blockItemNode() {}

// LabelStmt is "name: body".
type LabelStmt struct {
	BaseNode
	Name string // rewritten to its canonical name by the resolver
	Body Stmt
}

func (*LabelStmt) stmtNode()      {}
func (*LabelStmt) blockItemNode() {}

// GotoStmt is "goto name;". Forward references (a goto whose target label
// appears later in the same function) are valid.
type GotoStmt struct {
	BaseNode
	Name string // rewritten to its canonical name by the resolver
}

func (*GotoStmt) stmtNode()      {}
func (*GotoStmt) blockItemNode() {}

// NullStmt is the empty statement ";".
type NullStmt struct {
	BaseNode
}

func (*NullStmt) stmtNode()      {}
func (*NullStmt) blockItemNode() {}
