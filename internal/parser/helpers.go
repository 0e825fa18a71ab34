package parser

import (
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

// checkNext reports whether the token after the current one has type t,
// without consuming anything. Used so that `fun` starts a function
// declaration only when a name follows it; any other `fun` falls through
// to statement parsing, which reports it as an error.
func (p *Parser) checkNext(t token.Type) bool {
	if p.isAtEnd() || p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// consume advances past the current token if it has type t, otherwise
// raises a parse error at the current token and unwinds to the nearest
// statement boundary.
func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(parseError{p.newErr(p.peek(), message)})
}

// newErr builds a SourceError naming tok's lexeme, without recording it.
// Used by callers that panic with the result (declarationSync's recover
// is what actually appends it to p.errors) as well as by errAt below.
func (p *Parser) newErr(tok token.Token, message string) *errors.SourceError {
	lexeme := tok.Lexeme
	if tok.Type == token.EOF {
		lexeme = ""
	}
	return errors.NewAt(tok.Pos(), lexeme, message)
}

// errAt records a non-fatal SourceError (parsing continues) at tok.
func (p *Parser) errAt(tok token.Token, message string) {
	p.errors = append(p.errors, p.newErr(tok, message))
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so a single syntax error doesn't cascade into a wall of
// spurious follow-on errors: it stops just after a ';' or just before a
// token that starts a statement. progressed reports whether the failed
// declaration consumed any token; if not, the offending token is skipped
// first so that parsing always moves forward.
func (p *Parser) synchronize(progressed bool) {
	if !progressed {
		p.advance()
	}

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}
