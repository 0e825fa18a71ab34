package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/token"
)

// expression -> assignment ;
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment -> ( call "." )? IDENTIFIER "=" assignment
//
//	| logic_or ;
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		}
		p.errAt(equals, "Invalid assignment target.")
	}

	return expr
}

// logic_or -> logic_and ( "or" logic_and )* ;
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// logic_and -> equality ( "and" equality )* ;
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// equality -> comparison ( ( "!=" | "==" ) comparison )* ;
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// term -> factor ( ( "-" | "+" ) factor )* ;
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// factor -> unary ( ( "/" | "*" ) unary )* ;
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// unary -> ( "!" | "-" ) unary | call ;
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Operator: op, Right: right}
	}
	return p.call()
}

// call -> primary ( "(" arguments? ")" | "." IDENTIFIER )* ;
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

// arguments -> expression ( "," expression )* ;
func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	closingParen := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, ClosingParen: closingParen, Args: args}
}

// primary -> "true" | "false" | "nil" | "this"
//
//	| NUMBER | STRING | IDENTIFIER | "(" expression ")"
//	| "super" "." IDENTIFIER ;
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Token: p.previous()}
	case p.match(token.NUMBER):
		tok := p.previous()
		return &ast.LiteralExpr{Token: tok, Value: parseNumber(tok.Lexeme)}
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.LiteralExpr{Token: tok, Value: tok.Literal}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(token.THIS):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(token.IDENTIFIER):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		lparen := p.previous()
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{LParen: lparen, Expression: expr}
	}

	panic(parseError{p.newErr(p.peek(), "Expect expression.")})
}

// parseNumber classifies a number lexeme as Int or Float: a literal with
// no '.' is an int64, otherwise a float64.
func parseNumber(lexeme string) any {
	if !strings.Contains(lexeme, ".") {
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err == nil {
			return n
		}
		// Overflows int64 (the lexer only ever produces digit runs, so this
		// is the one case left for strconv to reject); fall back to float64.
	}
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}
