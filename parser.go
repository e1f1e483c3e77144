// parser.go - recursive descent parser for the wolf language
//
// Grammar:
//
//	program    := statement* EOF
//	statement  := "let" IDENT "=" expression ";"
//	            | expression ";"
//	expression := term (("+"|"-") term)*
//	term       := primary (("*"|"/") primary)*
//	primary    := NUMBER | IDENT | "(" expression ")"
//
// Both operator levels are left-associative; "*" and "/" bind tighter than
// "+" and "-". The parser is LL(1) and stops at the first error.
package main

import "strconv"

type Parser struct {
	tokens []Token
	pos    int
}

// NewParser wraps a token stream. The stream must end with a TOKEN_EOF
// token, which Tokenize guarantees.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource lexes and parses source text in one step.
func ParseSource(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	// Past the end we keep handing out the final EOF token.
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// matchType consumes the current token only on an exact type match.
func (p *Parser) matchType(kind TokenType) bool {
	if p.current().Type == kind {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorExpected(expected string) *ParseError {
	token := p.current()
	return &ParseError{
		Expected: expected,
		Found:    token.Type.String(),
		Line:     token.Line,
		Column:   token.Column,
	}
}

func (p *Parser) ParseProgram() (*Program, error) {
	program := &Program{}
	for p.current().Type != TOKEN_EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	if p.current().Type == TOKEN_LET {
		return p.parseLetStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseLetStatement() (Statement, error) {
	p.advance() // consume 'let'

	nameToken := p.current()
	if nameToken.Type != TOKEN_IDENT {
		return nil, p.errorExpected("identifier after 'let'")
	}
	p.advance()

	if !p.matchType(TOKEN_EQUALS) {
		return nil, p.errorExpected("'=' after variable name '" + nameToken.Value + "'")
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.matchType(TOKEN_SEMICOLON) {
		return nil, p.errorExpected("';' after variable declaration")
	}

	return &LetStmt{Name: nameToken.Value, Value: value}, nil
}

func (p *Parser) parseExpressionStatement() (Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.matchType(TOKEN_SEMICOLON) {
		return nil, p.errorExpected("';' after expression")
	}
	return &ExpressionStmt{Expr: expr}, nil
}

func (p *Parser) parseExpression() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.current().Type {
		case TOKEN_PLUS:
			op = OpAdd
		case TOKEN_MINUS:
			op = OpSubtract
		default:
			return left, nil
		}
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseTerm() (Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.current().Type {
		case TOKEN_STAR:
			op = OpMultiply
		case TOKEN_SLASH:
			op = OpDivide
		default:
			return left, nil
		}
		p.advance()

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parsePrimary() (Expression, error) {
	token := p.current()

	switch token.Type {
	case TOKEN_NUMBER:
		p.advance()
		value, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Expected: "integer literal in range",
				Found:    token.Value,
				Line:     token.Line,
				Column:   token.Column,
			}
		}
		return &NumberExpr{Value: value}, nil

	case TOKEN_IDENT:
		p.advance()
		return &IdentExpr{Name: token.Value}, nil

	case TOKEN_LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.matchType(TOKEN_RPAREN) {
			return nil, p.errorExpected("')'")
		}
		return expr, nil

	default:
		return nil, p.errorExpected("number, identifier or '('")
	}
}
