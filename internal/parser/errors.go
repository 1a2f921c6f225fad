package parser

import (
	"fmt"

	"github.com/dwislpy/dwislpy/internal/diagnostic"
	"github.com/dwislpy/dwislpy/internal/lexer"
)

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without consuming
func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise reports an error and leaves the token in place
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		p.diags.Errorf(tok.Line, tok.Column, "expected %s, got %s", describeType(tt), describe(tok))
		return tok
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// expectEndOfLine consumes the NEWLINE ending a simple statement. Anything
// else left on the line is reported once and skipped.
func (p *Parser) expectEndOfLine() {
	if p.match(lexer.NEWLINE) {
		return
	}
	tok := p.current()
	p.diags.Errorf(tok.Line, tok.Column, "expected end of line, got %s", describe(tok))
	p.synchronize()
}

// synchronize skips tokens up to and including the next NEWLINE, stopping
// early at a DEDENT so the enclosing block can close.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.check(lexer.DEDENT) {
			return
		}
		if p.advance().Type == lexer.NEWLINE {
			return
		}
	}
}

// describeType names a token type for error messages
func describeType(tt lexer.TokenType) string {
	switch tt {
	case lexer.NEWLINE:
		return "end of line"
	case lexer.EOF:
		return "end of file"
	case lexer.INDENT:
		return "an indented block"
	case lexer.DEDENT:
		return "end of block"
	case lexer.IDENT:
		return "a name"
	case lexer.INT_LIT:
		return "an integer"
	case lexer.STRING_LIT:
		return "a string"
	default:
		return fmt.Sprintf("'%s'", tt)
	}
}

// describe names a concrete token for error messages
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.IDENT:
		return fmt.Sprintf("name '%s'", tok.Literal)
	case lexer.INT_LIT:
		return fmt.Sprintf("integer %s", tok.Literal)
	case lexer.STRING_LIT:
		return "a string"
	case lexer.ILLEGAL:
		if len(tok.Literal) == 1 {
			return fmt.Sprintf("unexpected character '%s'", tok.Literal)
		}
		return tok.Literal
	default:
		return describeType(tok.Type)
	}
}

// unexpected reports a token that cannot appear where it was found. Lexer
// errors carry their own message.
func unexpected(tok lexer.Token, where string) string {
	if tok.Type == lexer.ILLEGAL {
		return describe(tok)
	}
	return fmt.Sprintf("unexpected %s %s", describe(tok), where)
}
