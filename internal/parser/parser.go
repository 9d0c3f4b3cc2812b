// Package parser implements a recursive-descent parser for the C subset
// this module analyzes: declarations and statements are parsed by direct
// recursive descent, expressions by precedence climbing.
//
// ERROR HANDLING: parse errors are accumulated rather than aborting at
// the first one. panic/recover unwinds to the nearest declaration or
// statement boundary and synchronize() resumes scanning there. This is
// unrelated to the semantic pass's first-error-aborts rule, which governs
// internal/semantic, not this package: a syntactically broken file has no
// single "first" semantic error to report yet.
package parser

import (
	"fmt"

	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/lexer"
)

// Parser converts a token stream into an *ast.Program.
type Parser struct {
	lex *lexer.Lexer

	current lexer.Token
	peeked  *lexer.Token

	errors    []error
	panicMode bool
}

// New creates a Parser over l, priming it with the first token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.advance()
	return p
}

// ParseProgram parses a complete translation unit: a sequence of top-level
// declarations up to EOF. It always returns a non-nil *ast.Program, even
// when errors is non-empty, so a caller inspecting a partially-parsed tree
// (e.g. an IDE) has something to look at.
func (p *Parser) ParseProgram() (*ast.Program, []error) {
	prog := &ast.Program{}

	for !p.isAtEnd() {
		decl := p.parseDeclSynced()
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
	}

	return prog, p.errors
}

// parseDeclSynced wraps parseDecl with the panic/recover + synchronize
// error-recovery scheme, so one malformed declaration doesn't abort
// parsing of the rest of the file.
func (p *Parser) parseDeclSynced() ast.Decl {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()
	return p.parseDecl()
}

// token helpers

func (p *Parser) peekNext() lexer.Token {
	if p.peeked == nil {
		tok := p.scan()
		p.peeked = &tok
	}
	return *p.peeked
}

func (p *Parser) advance() {
	if p.peeked != nil {
		p.current = *p.peeked
		p.peeked = nil
		return
	}
	p.current = p.scan()
}

func (p *Parser) scan() lexer.Token {
	tok, err := p.lex.NextToken()
	if err != nil {
		p.error(err.Error())
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current.Type == tt
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		tok := p.current
		p.advance()
		return tok
	}
	p.error(message)
	panic(message)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

func (p *Parser) error(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, fmt.Errorf("%s: %s", p.current.Position.String(), message))
}

// synchronize skips tokens until it reaches a likely declaration or
// statement boundary, so the parser can keep looking for further errors
// instead of giving up on the rest of the file.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.isAtEnd() {
		if p.current.Type == lexer.TokenSemicolon {
			p.advance()
			return
		}

		switch p.current.Type {
		case lexer.TokenInt, lexer.TokenLong, lexer.TokenUnsigned, lexer.TokenDouble,
			lexer.TokenVoid, lexer.TokenStatic, lexer.TokenExtern,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenFor, lexer.TokenDo,
			lexer.TokenReturn, lexer.TokenBreak, lexer.TokenContinue, lexer.TokenGoto,
			lexer.TokenLeftBrace, lexer.TokenRightBrace:
			return
		}

		p.advance()
	}
}

// isTypeStart reports whether tt can start a type specifier.
func isTypeStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenInt, lexer.TokenLong, lexer.TokenUnsigned, lexer.TokenDouble, lexer.TokenVoid:
		return true
	default:
		return false
	}
}

// isDeclStart reports whether tt can start a declaration: a storage-class
// specifier or a type specifier.
func isDeclStart(tt lexer.TokenType) bool {
	return tt == lexer.TokenStatic || tt == lexer.TokenExtern || isTypeStart(tt)
}
