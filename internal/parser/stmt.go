package parser

import (
	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
)

// parseBlock parses a compound statement's body: "{" BlockItem* "}".
func (p *Parser) parseBlock() *ast.Block {
	pos := p.consume(lexer.TokenLeftBrace, "expected '{'").Position
	block := &ast.Block{BaseNode: ast.BaseNode{StartPos: pos}}

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		item := p.parseBlockItemSynced()
		if item != nil {
			block.Items = append(block.Items, item)
		}
	}

	p.consume(lexer.TokenRightBrace, "expected '}'")
	return block
}

func (p *Parser) parseBlockItemSynced() ast.BlockItem {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()
	return p.parseBlockItem()
}

// parseBlockItem parses one BlockItem: a declaration or a statement.
func (p *Parser) parseBlockItem() ast.BlockItem {
	if isDeclStart(p.current.Type) {
		return p.parseDecl()
	}
	return p.parseStmt()
}

// parseStmt parses one statement.
func (p *Parser) parseStmt() ast.Stmt {
	pos := p.current.Position

	switch {
	case p.check(lexer.TokenLeftBrace):
		return &ast.CompoundStmt{BaseNode: ast.BaseNode{StartPos: pos}, Body: p.parseBlock()}

	case p.match(lexer.TokenIf):
		return p.parseIfStmt(pos)

	case p.match(lexer.TokenWhile):
		return p.parseWhileStmt(pos)

	case p.match(lexer.TokenDo):
		return p.parseDoWhileStmt(pos)

	case p.match(lexer.TokenFor):
		return p.parseForStmt(pos)

	case p.match(lexer.TokenReturn):
		var value ast.Expr
		if !p.check(lexer.TokenSemicolon) {
			value = p.parseExpression()
		}
		p.consume(lexer.TokenSemicolon, "expected ';' after return statement")
		return &ast.ReturnStmt{BaseNode: ast.BaseNode{StartPos: pos}, Value: value}

	case p.match(lexer.TokenBreak):
		p.consume(lexer.TokenSemicolon, "expected ';' after 'break'")
		return &ast.BreakStmt{BaseNode: ast.BaseNode{StartPos: pos}}

	case p.match(lexer.TokenContinue):
		p.consume(lexer.TokenSemicolon, "expected ';' after 'continue'")
		return &ast.ContinueStmt{BaseNode: ast.BaseNode{StartPos: pos}}

	case p.match(lexer.TokenGoto):
		name := p.consume(lexer.TokenIdentifier, "expected a label name after 'goto'").Lexeme
		p.consume(lexer.TokenSemicolon, "expected ';' after goto statement")
		return &ast.GotoStmt{BaseNode: ast.BaseNode{StartPos: pos}, Name: name}

	case p.match(lexer.TokenSemicolon):
		return &ast.NullStmt{BaseNode: ast.BaseNode{StartPos: pos}}

	case p.check(lexer.TokenIdentifier) && p.peekNext().Type == lexer.TokenColon:
		name := p.current.Lexeme
		p.advance() // identifier
		p.advance() // ':'
		body := p.parseStmt()
		return &ast.LabelStmt{BaseNode: ast.BaseNode{StartPos: pos}, Name: name, Body: body}

	default:
		expr := p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after expression")
		return &ast.ExprStmt{BaseNode: ast.BaseNode{StartPos: pos}, X: expr}
	}
}

func (p *Parser) parseIfStmt(pos lexer.Position) *ast.IfStmt {
	p.consume(lexer.TokenLeftParen, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	then := p.parseStmt()

	var els ast.Stmt
	if p.match(lexer.TokenElse) {
		els = p.parseStmt()
	}

	return &ast.IfStmt{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhileStmt(pos lexer.Position) *ast.WhileStmt {
	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	body := p.parseStmt()
	return &ast.WhileStmt{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt(pos lexer.Position) *ast.DoWhileStmt {
	body := p.parseStmt()
	p.consume(lexer.TokenWhile, "expected 'while' after 'do' body")
	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	p.consume(lexer.TokenSemicolon, "expected ';' after do-while statement")
	return &ast.DoWhileStmt{BaseNode: ast.BaseNode{StartPos: pos}, Body: body, Cond: cond}
}

func (p *Parser) parseForStmt(pos lexer.Position) *ast.ForStmt {
	p.consume(lexer.TokenLeftParen, "expected '(' after 'for'")

	init := p.parseForInit()

	var cond ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		cond = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after loop condition")

	var post ast.Expr
	if !p.check(lexer.TokenRightParen) {
		post = p.parseExpression()
	}
	p.consume(lexer.TokenRightParen, "expected ')' after for clauses")

	body := p.parseStmt()

	return &ast.ForStmt{BaseNode: ast.BaseNode{StartPos: pos}, Init: init, Cond: cond, Post: post, Body: body}
}

// parseForInit parses a for-loop's init-clause: empty, a declaration, or
// an expression. A nil return means an empty init-clause ("for (;;)").
func (p *Parser) parseForInit() ast.ForInit {
	if p.match(lexer.TokenSemicolon) {
		return nil
	}

	if isDeclStart(p.current.Type) {
		decl := p.parseDecl()
		vd, ok := decl.(*ast.VarDecl)
		if !ok {
			p.error("a for-loop's init-declaration cannot be a function")
			panic("function in for-init")
		}
		return ast.InitDecl{Decl: vd}
	}

	pos := p.current.Position
	expr := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after for-loop init expression")
	return ast.InitExpr{BaseNode: ast.BaseNode{StartPos: pos}, Expr: expr}
}
