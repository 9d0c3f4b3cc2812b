package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src, "test.c"))
	prog, errs := p.ParseProgram()
	require.Empty(t, errs)
	return prog
}

func TestParseProgram_SimpleFunction(t *testing.T) {
	prog := parse(t, `int main(void) { return 0; }`)

	require.Len(t, prog.Decls, 1)
	fn, ok := prog.Decls[0].(*ast.FunDecl)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.Nil(t, fn.Params)
	require.True(t, types.Int.Equals(fn.ReturnType))
	require.Len(t, fn.Body.Items, 1)

	ret, ok := fn.Body.Items[0].(*ast.ReturnStmt)
	require.True(t, ok)
	c, ok := ret.Value.(*ast.ConstantExpr)
	require.True(t, ok)
	require.Equal(t, ast.ConstInt, c.Kind)
	require.Equal(t, uint64(0), c.IntVal)
}

func TestParseProgram_FunctionPrototypeHasNoBody(t *testing.T) {
	prog := parse(t, `int foo(int x, int y);`)

	fn := prog.Decls[0].(*ast.FunDecl)
	require.Nil(t, fn.Body)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "x", fn.Params[0].Name)
	require.Equal(t, "y", fn.Params[1].Name)
}

func TestParseProgram_VarDeclWithStorageClassAndInit(t *testing.T) {
	prog := parse(t, `static long counter = 10l;`)

	vd := prog.Decls[0].(*ast.VarDecl)
	require.Equal(t, "counter", vd.Name)
	require.Equal(t, ast.StorageStatic, vd.Storage)
	require.True(t, types.Long.Equals(vd.Type))
	c := vd.Init.(*ast.ConstantExpr)
	require.Equal(t, ast.ConstLong, c.Kind)
	require.Equal(t, uint64(10), c.IntVal)
}

func TestParseProgram_PointerAndArrayDeclarators(t *testing.T) {
	prog := parse(t, `
		int *p;
		int a[10];
	`)

	p := prog.Decls[0].(*ast.VarDecl)
	require.True(t, types.NewPointer(types.Int).Equals(p.Type))

	arr := prog.Decls[1].(*ast.VarDecl)
	require.True(t, types.NewArray(10, types.Int).Equals(arr.Type))
}

func TestParseProgram_UnsignedLongCombinations(t *testing.T) {
	prog := parse(t, `
		unsigned u;
		unsigned long ul;
		long l;
	`)

	require.True(t, types.UInt.Equals(prog.Decls[0].(*ast.VarDecl).Type))
	require.True(t, types.ULong.Equals(prog.Decls[1].(*ast.VarDecl).Type))
	require.True(t, types.Long.Equals(prog.Decls[2].(*ast.VarDecl).Type))
}

func TestParseProgram_IfWhileForBreakContinue(t *testing.T) {
	prog := parse(t, `
		int main(void) {
			int i;
			for (i = 0; i < 10; i = i + 1) {
				if (i == 5) {
					break;
				} else {
					continue;
				}
			}
			while (i > 0) {
				i = i - 1;
			}
			return i;
		}
	`)

	fn := prog.Decls[0].(*ast.FunDecl)
	require.Len(t, fn.Body.Items, 4)

	forStmt, ok := fn.Body.Items[1].(*ast.ForStmt)
	require.True(t, ok)
	initExpr, ok := forStmt.Init.(ast.InitExpr)
	require.True(t, ok)
	require.IsType(t, &ast.AssignmentExpr{}, initExpr.Expr)

	body := forStmt.Body.(*ast.CompoundStmt)
	ifStmt := body.Body.Items[0].(*ast.IfStmt)
	require.NotNil(t, ifStmt.Else)

	whileStmt, ok := fn.Body.Items[2].(*ast.WhileStmt)
	require.True(t, ok)
	require.NotNil(t, whileStmt.Cond)
}

func TestParseProgram_DoWhile(t *testing.T) {
	prog := parse(t, `
		int main(void) {
			do {
				return 1;
			} while (1);
			return 0;
		}
	`)

	fn := prog.Decls[0].(*ast.FunDecl)
	_, ok := fn.Body.Items[0].(*ast.DoWhileStmt)
	require.True(t, ok)
}

func TestParseProgram_LabelAndGoto(t *testing.T) {
	prog := parse(t, `
		int main(void) {
			goto done;
			done: return 0;
		}
	`)

	fn := prog.Decls[0].(*ast.FunDecl)
	_, ok := fn.Body.Items[0].(*ast.GotoStmt)
	require.True(t, ok)
	label, ok := fn.Body.Items[1].(*ast.LabelStmt)
	require.True(t, ok)
	require.Equal(t, "done", label.Name)
}

func TestParseExpression_PrecedenceAndAssociativity(t *testing.T) {
	prog := parse(t, `int main(void) { return 1 + 2 * 3; }`)
	ret := prog.Decls[0].(*ast.FunDecl).Body.Items[0].(*ast.ReturnStmt)

	bin := ret.Value.(*ast.BinaryExpr)
	require.Equal(t, ast.OpAdd, bin.Op)
	mul, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, mul.Op)
}

func TestParseExpression_ConditionalAndCompoundAssignment(t *testing.T) {
	prog := parse(t, `
		int main(void) {
			int x;
			x += 1 ? 2 : 3;
			return x;
		}
	`)

	fn := prog.Decls[0].(*ast.FunDecl)
	stmt := fn.Body.Items[1].(*ast.ExprStmt)
	compound := stmt.X.(*ast.AssignmentCompoundExpr)
	require.Equal(t, ast.OpAdd, compound.Op)
	_, ok := compound.Right.(*ast.ConditionalExpr)
	require.True(t, ok)
}

func TestParseExpression_CastBindsTighterThanBinary(t *testing.T) {
	prog := parse(t, `int main(void) { return (int) 1.5 + 1; }`)
	ret := prog.Decls[0].(*ast.FunDecl).Body.Items[0].(*ast.ReturnStmt)

	bin := ret.Value.(*ast.BinaryExpr)
	cast, ok := bin.Left.(*ast.CastExpr)
	require.True(t, ok)
	require.True(t, types.Int.Equals(cast.Target))
}

func TestParseExpression_DereferenceAddrOfSubscript(t *testing.T) {
	prog := parse(t, `
		int main(void) {
			int a[3];
			int *p;
			p = &a[0];
			return *p;
		}
	`)

	fn := prog.Decls[0].(*ast.FunDecl)
	assign := fn.Body.Items[2].(*ast.ExprStmt).X.(*ast.AssignmentExpr)
	addrOf := assign.Right.(*ast.AddrOfExpr)
	_, ok := addrOf.X.(*ast.SubscriptExpr)
	require.True(t, ok)

	ret := fn.Body.Items[3].(*ast.ReturnStmt)
	_, ok = ret.Value.(*ast.DereferenceExpr)
	require.True(t, ok)
}

func TestParseExpression_FunctionCallWithArguments(t *testing.T) {
	prog := parse(t, `
		int add(int a, int b);
		int main(void) {
			return add(1, 2);
		}
	`)

	main := prog.Decls[1].(*ast.FunDecl)
	ret := main.Body.Items[0].(*ast.ReturnStmt)
	call := ret.Value.(*ast.FunctionCallExpr)
	require.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseProgram_EmptyForClauses(t *testing.T) {
	prog := parse(t, `
		int main(void) {
			for (;;) {
				break;
			}
			return 0;
		}
	`)

	fn := prog.Decls[0].(*ast.FunDecl)
	forStmt := fn.Body.Items[0].(*ast.ForStmt)
	require.Nil(t, forStmt.Init)
	require.Nil(t, forStmt.Cond)
	require.Nil(t, forStmt.Post)
}

func TestParseProgram_ReportsSyntaxErrorAndRecovers(t *testing.T) {
	p := New(lexer.New(`
		int a
		int b;
	`, "test.c"))
	prog, errs := p.ParseProgram()

	require.NotEmpty(t, errs)
	require.Len(t, prog.Decls, 1)
	require.Equal(t, "b", prog.Decls[0].(*ast.VarDecl).Name)
}
