package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/types"
)

// Precedence levels for C's binary operators: assignment binds loosest,
// postfix tightest. Unary and cast expressions are handled structurally
// rather than through this table, matching C's grammar (they are prefix
// forms, not infix).
type precedence int

const (
	precNone precedence = iota
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

// binaryOpInfo reports the precedence and ast.BinaryOp for a binary
// operator token, or (precNone, 0) if tt isn't a binary operator.
func binaryOpInfo(tt lexer.TokenType) (precedence, ast.BinaryOp) {
	switch tt {
	case lexer.TokenPipePipe:
		return precOr, ast.OpOr
	case lexer.TokenAmpAmp:
		return precAnd, ast.OpAnd
	case lexer.TokenPipe:
		return precBitOr, ast.OpBitOr
	case lexer.TokenCaret:
		return precBitXor, ast.OpBitXor
	case lexer.TokenAmp:
		return precBitAnd, ast.OpBitAnd
	case lexer.TokenEqualEqual:
		return precEquality, ast.OpEqual
	case lexer.TokenNotEqual:
		return precEquality, ast.OpNotEqual
	case lexer.TokenLess:
		return precRelational, ast.OpLess
	case lexer.TokenLessEqual:
		return precRelational, ast.OpLessEqual
	case lexer.TokenGreater:
		return precRelational, ast.OpGreater
	case lexer.TokenGreaterEqual:
		return precRelational, ast.OpGreaterEqual
	case lexer.TokenShl:
		return precShift, ast.OpShl
	case lexer.TokenShr:
		return precShift, ast.OpShr
	case lexer.TokenPlus:
		return precAdditive, ast.OpAdd
	case lexer.TokenMinus:
		return precAdditive, ast.OpSub
	case lexer.TokenStar:
		return precMultiplicative, ast.OpMul
	case lexer.TokenSlash:
		return precMultiplicative, ast.OpDiv
	case lexer.TokenPercent:
		return precMultiplicative, ast.OpMod
	default:
		return precNone, 0
	}
}

// compoundAssignOp reports the underlying ast.BinaryOp for a compound
// assignment token ("+=" etc.), or ok=false if tt isn't one.
func compoundAssignOp(tt lexer.TokenType) (ast.BinaryOp, bool) {
	switch tt {
	case lexer.TokenPlusEqual:
		return ast.OpAdd, true
	case lexer.TokenMinusEqual:
		return ast.OpSub, true
	case lexer.TokenStarEqual:
		return ast.OpMul, true
	case lexer.TokenSlashEqual:
		return ast.OpDiv, true
	case lexer.TokenPercentEqual:
		return ast.OpMod, true
	case lexer.TokenAmpEqual:
		return ast.OpBitAnd, true
	case lexer.TokenPipeEqual:
		return ast.OpBitOr, true
	case lexer.TokenCaretEqual:
		return ast.OpBitXor, true
	case lexer.TokenShlEqual:
		return ast.OpShl, true
	case lexer.TokenShrEqual:
		return ast.OpShr, true
	default:
		return 0, false
	}
}

// parseExpression parses a full expression: assignment is the lowest
// precedence level, so this is the entry point used everywhere an
// expression is expected.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment parses "lvalue = expr", "lvalue op= expr", or falls
// through to a conditional expression. Assignment is right-associative
// ("x = y = 0" means "x = (y = 0)").
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseConditional()
	pos := p.current.Position

	if p.match(lexer.TokenAssign) {
		right := p.parseAssignment()
		return &ast.AssignmentExpr{BaseNode: ast.BaseNode{StartPos: pos}, Left: left, Right: right}
	}

	if op, ok := compoundAssignOp(p.current.Type); ok {
		p.advance()
		right := p.parseAssignment()
		return &ast.AssignmentCompoundExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	}

	return left
}

// parseConditional parses "cond ? then : else", falling through to plain
// binary expressions when there's no '?'.
func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseBinary(precOr)
	if !p.match(lexer.TokenQuestion) {
		return cond
	}

	pos := cond.Pos()
	then := p.parseExpression()
	p.consume(lexer.TokenColon, "expected ':' in conditional expression")
	els := p.parseConditional()

	return &ast.ConditionalExpr{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Then: then, Else: els}
}

// parseBinary is the precedence-climbing loop over C's binary operators:
// parse a unary/cast operand, then repeatedly consume operators whose
// precedence is at least minPrec, recursing at prec+1 so operators are
// left-associative.
func (p *Parser) parseBinary(minPrec precedence) ast.Expr {
	left := p.parseCast()

	for {
		prec, op := binaryOpInfo(p.current.Type)
		if prec == precNone || prec < minPrec {
			return left
		}
		pos := p.current.Position
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	}
}

// parseCast parses an explicit cast "(type) expr", or falls through to a
// unary expression. Casts are right-recursive, the same as unary
// operators: "(int)(double)x" casts twice.
func (p *Parser) parseCast() ast.Expr {
	if p.check(lexer.TokenLeftParen) && isTypeStart(p.peekNext().Type) {
		pos := p.current.Position
		p.advance()
		target := p.parseCastType()
		p.consume(lexer.TokenRightParen, "expected ')' after cast type")
		x := p.parseCast()
		return &ast.CastExpr{BaseNode: ast.BaseNode{StartPos: pos}, Target: target, X: x}
	}
	return p.parseUnary()
}

// parseCastType parses a cast's type-name: a type specifier and zero or
// more pointer stars, with no declarator name.
func (p *Parser) parseCastType() types.Type {
	base, isVoid := p.parseTypeSpecifier()
	if isVoid {
		p.error("void is not a valid cast target")
		panic("void cast target")
	}
	t := base
	for p.match(lexer.TokenStar) {
		t = types.NewPointer(t)
	}
	return t
}

// parseUnary parses a unary prefix operator, or falls through to a
// postfix expression.
func (p *Parser) parseUnary() ast.Expr {
	pos := p.current.Position

	switch p.current.Type {
	case lexer.TokenMinus:
		p.advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: ast.OpNegate, X: p.parseCast()}

	case lexer.TokenTilde:
		p.advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: ast.OpComplement, X: p.parseCast()}

	case lexer.TokenBang:
		p.advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: ast.OpNot, X: p.parseCast()}

	case lexer.TokenPlus:
		// Unary plus has no effect and no dedicated AST node; parse and
		// discard it, same as the operand's own value.
		p.advance()
		return p.parseCast()

	case lexer.TokenStar:
		p.advance()
		return &ast.DereferenceExpr{BaseNode: ast.BaseNode{StartPos: pos}, X: p.parseCast()}

	case lexer.TokenAmp:
		p.advance()
		return &ast.AddrOfExpr{BaseNode: ast.BaseNode{StartPos: pos}, X: p.parseCast()}

	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by any number of
// subscript suffixes.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for p.check(lexer.TokenLeftBracket) {
		pos := p.current.Position
		p.advance()
		index := p.parseExpression()
		p.consume(lexer.TokenRightBracket, "expected ']' after subscript index")
		expr = &ast.SubscriptExpr{BaseNode: ast.BaseNode{StartPos: pos}, Array: expr, Index: index}
	}

	return expr
}

// parsePrimary parses a literal, identifier reference, function call, or
// parenthesized expression.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.current.Position

	switch p.current.Type {
	case lexer.TokenIntConstant, lexer.TokenLongConstant, lexer.TokenUIntConstant, lexer.TokenULongConstant:
		return p.parseIntConstant(pos)

	case lexer.TokenDoubleConstant:
		tok := p.current
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.error(fmt.Sprintf("invalid floating-point constant %q", tok.Lexeme))
		}
		return &ast.ConstantExpr{BaseNode: ast.BaseNode{StartPos: pos}, Kind: ast.ConstDouble, FloatVal: value}

	case lexer.TokenIdentifier:
		name := p.current.Lexeme
		p.advance()
		if p.match(lexer.TokenLeftParen) {
			var args []ast.Expr
			if !p.check(lexer.TokenRightParen) {
				for {
					args = append(args, p.parseExpression())
					if !p.match(lexer.TokenComma) {
						break
					}
				}
			}
			p.consume(lexer.TokenRightParen, "expected ')' after call arguments")
			return &ast.FunctionCallExpr{BaseNode: ast.BaseNode{StartPos: pos}, Name: name, Args: args}
		}
		return &ast.VarExpr{BaseNode: ast.BaseNode{StartPos: pos}, Name: name}

	case lexer.TokenLeftParen:
		p.advance()
		expr := p.parseExpression()
		p.consume(lexer.TokenRightParen, "expected ')' after expression")
		return expr

	default:
		p.error(fmt.Sprintf("expected an expression, got %s", p.current.Type))
		panic("expected expression")
	}
}

// parseIntConstant builds a ConstantExpr from an integer literal token,
// setting Kind directly from the token's suffix-derived type. The type
// checker later upgrades a too-large Int/UInt to Long/ULong.
func (p *Parser) parseIntConstant(pos lexer.Position) *ast.ConstantExpr {
	tok := p.current
	p.advance()

	kind := map[lexer.TokenType]ast.ConstKind{
		lexer.TokenIntConstant:   ast.ConstInt,
		lexer.TokenLongConstant:  ast.ConstLong,
		lexer.TokenUIntConstant:  ast.ConstUInt,
		lexer.TokenULongConstant: ast.ConstULong,
	}[tok.Type]

	value, err := parseUintLiteral(tok.Lexeme)
	if err != nil {
		p.error(err.Error())
	}

	return &ast.ConstantExpr{BaseNode: ast.BaseNode{StartPos: pos}, Kind: kind, IntVal: value}
}

// parseUintLiteral strips an integer literal's u/U/l/L suffix and parses
// the remaining digits as an unsigned 64-bit value, preserving the raw bit
// pattern for however the type checker ultimately types the constant.
func parseUintLiteral(lexeme string) (uint64, error) {
	digits := strings.TrimRight(lexeme, "uUlL")
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer constant %q: %w", lexeme, err)
	}
	return value, nil
}
