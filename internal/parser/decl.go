package parser

import (
	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/types"
)

// parseDecl parses one declaration, at file scope or block scope: an
// optional storage-class specifier, a type specifier, pointer stars, a
// name, and then either a function's parameter list and body/semicolon or
// a variable's optional array suffix and initializer.
//
// Block-scope function definitions (a body present) and block-scope
// static functions are syntactically valid here; internal/resolver
// rejects them.
func (p *Parser) parseDecl() ast.Decl {
	pos := p.current.Position
	storage := p.parseOptionalStorageClass()

	base, isVoid := p.parseTypeSpecifier()
	t := base
	for p.match(lexer.TokenStar) {
		t = types.NewPointer(t)
	}

	name := p.consume(lexer.TokenIdentifier, "expected a declaration name").Lexeme

	if p.check(lexer.TokenLeftParen) {
		return p.parseFunDeclRest(pos, storage, t, name)
	}

	if isVoid {
		p.error("a variable cannot have type void")
		panic("void variable")
	}
	return p.parseVarDeclRest(pos, storage, t, name)
}

func (p *Parser) parseOptionalStorageClass() ast.StorageClass {
	switch {
	case p.match(lexer.TokenStatic):
		return ast.StorageStatic
	case p.match(lexer.TokenExtern):
		return ast.StorageExtern
	default:
		return ast.StorageNone
	}
}

// parseTypeSpecifier consumes a run of int/long/unsigned/double/void
// keywords and resolves them to a types.Type, following C's combinable
// specifier rules. isVoid reports a bare "void" specifier, which has no
// types.Type representation in this module's closed type family and is
// only meaningful as a function's return type.
func (p *Parser) parseTypeSpecifier() (base types.Type, isVoid bool) {
	var sawInt, sawLong, sawUnsigned, sawDouble, sawVoid, sawAny bool

	for isTypeStart(p.current.Type) {
		sawAny = true
		switch p.current.Type {
		case lexer.TokenInt:
			sawInt = true
		case lexer.TokenLong:
			sawLong = true
		case lexer.TokenUnsigned:
			sawUnsigned = true
		case lexer.TokenDouble:
			sawDouble = true
		case lexer.TokenVoid:
			sawVoid = true
		}
		p.advance()
	}

	if !sawAny {
		p.error("expected a type specifier")
		panic("missing type specifier")
	}

	switch {
	case sawVoid:
		if sawInt || sawLong || sawUnsigned || sawDouble {
			p.error("void cannot combine with another type specifier")
		}
		return nil, true
	case sawDouble:
		if sawInt || sawLong || sawUnsigned {
			p.error("double cannot combine with another type specifier")
		}
		return types.Double, false
	case sawUnsigned && sawLong:
		return types.ULong, false
	case sawUnsigned:
		return types.UInt, false
	case sawLong:
		return types.Long, false
	default:
		return types.Int, false
	}
}

// parseFunDeclRest parses a function's parameter list and, if present, its
// body, given the already-parsed storage class, return type, and name.
func (p *Parser) parseFunDeclRest(pos lexer.Position, storage ast.StorageClass, retType types.Type, name string) *ast.FunDecl {
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	params := p.parseParams()
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	var body *ast.Block
	if !p.match(lexer.TokenSemicolon) {
		body = p.parseBlock()
	}

	return &ast.FunDecl{
		BaseNode:   ast.BaseNode{StartPos: pos},
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Storage:    storage,
	}
}

// parseParams parses a function's parameter list, up to but not including
// the closing ')'. "(void)" and "()" both mean zero parameters.
func (p *Parser) parseParams() []*ast.Param {
	if p.check(lexer.TokenRightParen) {
		return nil
	}
	if p.check(lexer.TokenVoid) && p.peekNext().Type == lexer.TokenRightParen {
		p.advance()
		return nil
	}

	var params []*ast.Param
	for {
		pos := p.current.Position
		base, isVoid := p.parseTypeSpecifier()
		if isVoid {
			p.error("a parameter cannot have type void")
			panic("void parameter")
		}
		t := base
		for p.match(lexer.TokenStar) {
			t = types.NewPointer(t)
		}

		name := p.consume(lexer.TokenIdentifier, "expected a parameter name").Lexeme

		if p.match(lexer.TokenLeftBracket) {
			size := p.parseArraySize()
			p.consume(lexer.TokenRightBracket, "expected ']' after array size")
			t = types.NewArray(size, t)
		}

		params = append(params, &ast.Param{BaseNode: ast.BaseNode{StartPos: pos}, Name: name, Type: t})

		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return params
}

// parseVarDeclRest parses a variable's optional array suffix and
// initializer, given the already-parsed storage class, element type, and
// name.
func (p *Parser) parseVarDeclRest(pos lexer.Position, storage ast.StorageClass, t types.Type, name string) *ast.VarDecl {
	if p.match(lexer.TokenLeftBracket) {
		size := p.parseArraySize()
		p.consume(lexer.TokenRightBracket, "expected ']' after array size")
		t = types.NewArray(size, t)
	}

	var init ast.Expr
	if p.match(lexer.TokenAssign) {
		init = p.parseExpression()
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")

	return &ast.VarDecl{
		BaseNode: ast.BaseNode{StartPos: pos},
		Name:     name,
		Type:     t,
		Init:     init,
		Storage:  storage,
	}
}

// parseArraySize parses the constant integer inside an array declarator's
// brackets, e.g. the 10 in "int a[10];". C array sizes are never negative
// or identifier-valued in the subset this module accepts.
func (p *Parser) parseArraySize() uint64 {
	tok := p.consume(lexer.TokenIntConstant, "expected an array size")
	size, err := parseUintLiteral(tok.Lexeme)
	if err != nil {
		p.error(err.Error())
		return 0
	}
	return size
}
