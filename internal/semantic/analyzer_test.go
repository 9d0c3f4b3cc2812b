package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/config"
	"github.com/hassan/cc-semant/internal/semerr"
	"github.com/hassan/cc-semant/internal/symtab"
	"github.com/hassan/cc-semant/internal/types"
)

func testConfig() config.Config {
	return config.Config{PointerWidth: 8}
}

// Empty program -> empty symbol table, success.
func TestAnalyze_EmptyProgramSucceeds(t *testing.T) {
	a := New(testConfig())
	err := a.Analyze(&ast.Program{})
	require.NoError(t, err)
	require.Equal(t, 0, a.Symbols.Len())
}

func TestAnalyze_PopulatesSymbolTable(t *testing.T) {
	fn := &ast.FunDecl{Name: "main", ReturnType: types.Int, Body: &ast.Block{Items: []ast.BlockItem{
		&ast.ReturnStmt{Value: &ast.ConstantExpr{Kind: ast.ConstInt, IntVal: 0}},
	}}}
	prog := &ast.Program{Decls: []ast.Decl{fn}}

	a := New(testConfig())
	require.NoError(t, a.Analyze(prog))

	sym, ok := a.Symbols.Get("main")
	require.True(t, ok)
	fa, ok := sym.Attrs.(symtab.FunAttr)
	require.True(t, ok)
	require.True(t, fa.IsDefined)
	require.True(t, fa.IsGlobal)
}

func TestAnalyze_AbortsOnFirstError(t *testing.T) {
	bad := &ast.ExprStmt{X: &ast.VarExpr{Name: "undeclared"}}
	fn := &ast.FunDecl{Name: "main", ReturnType: types.Int, Body: &ast.Block{Items: []ast.BlockItem{bad}}}
	prog := &ast.Program{Decls: []ast.Decl{fn}}

	a := New(testConfig())
	err := a.Analyze(prog)
	require.Error(t, err)
	var se *semerr.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, semerr.UndeclaredIdentifier, se.Kind)
}

// Running Analyze twice on independent programs must not leak state (fresh
// name counters, scope stack, symbol table) from the first run into the
// second.
func TestAnalyze_ResetsStateBetweenRuns(t *testing.T) {
	a := New(testConfig())

	decl1 := &ast.VarDecl{Name: "x", Type: types.Int, Init: &ast.ConstantExpr{Kind: ast.ConstInt, IntVal: 1}}
	prog1 := &ast.Program{Decls: []ast.Decl{decl1}}
	require.NoError(t, a.Analyze(prog1))
	firstRunID := a.RunID()

	decl2 := &ast.VarDecl{Name: "x", Type: types.Int, Init: &ast.ConstantExpr{Kind: ast.ConstInt, IntVal: 2}}
	prog2 := &ast.Program{Decls: []ast.Decl{decl2}}
	require.NoError(t, a.Analyze(prog2))

	require.NotEqual(t, firstRunID, a.RunID())
	require.Equal(t, 1, a.Symbols.Len(), "the first run's symbol table must not survive the reset")

	sym, _ := a.Symbols.Get("x")
	require.True(t, sym.Type.Equals(types.Int))
}
