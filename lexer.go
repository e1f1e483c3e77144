// lexer.go - tokenizer for the wolf language
package main

// Token types for the wolf language
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_IDENT
	TOKEN_NUMBER
	TOKEN_LET
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_EQUALS
	TOKEN_SEMICOLON
	TOKEN_LPAREN
	TOKEN_RPAREN
)

func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "end of file"
	case TOKEN_IDENT:
		return "identifier"
	case TOKEN_NUMBER:
		return "number"
	case TOKEN_LET:
		return "'let'"
	case TOKEN_PLUS:
		return "'+'"
	case TOKEN_MINUS:
		return "'-'"
	case TOKEN_STAR:
		return "'*'"
	case TOKEN_SLASH:
		return "'/'"
	case TOKEN_EQUALS:
		return "'='"
	case TOKEN_SEMICOLON:
		return "';'"
	case TOKEN_LPAREN:
		return "'('"
	case TOKEN_RPAREN:
		return "')'"
	default:
		return "unknown"
	}
}

type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int // Column position (1-indexed) where the token starts
}

// Lexer turns wolf source text into a flat token stream
type Lexer struct {
	input  string
	pos    int
	line   int
	column int // Current column (1-indexed)
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, pos: 0, line: 1, column: 1}
}

func (l *Lexer) current() (byte, bool) {
	if l.pos < len(l.input) {
		return l.input[l.pos], true
	}
	return 0, false
}

func (l *Lexer) advance() {
	if ch, ok := l.current(); ok {
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos++
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.current()
		if !ok {
			return
		}
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// NextToken returns the next token and advances the lexer. Once the end of
// the input is reached it keeps returning TOKEN_EOF tokens.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	ch, ok := l.current()
	if !ok {
		return Token{Type: TOKEN_EOF, Line: l.line, Column: l.column}, nil
	}

	line := l.line
	column := l.column

	if isIdentStart(ch) {
		return l.lexIdentifier(line, column), nil
	}
	if isDigit(ch) {
		return l.lexNumber(line, column), nil
	}
	return l.lexSymbol(ch, line, column)
}

func (l *Lexer) lexIdentifier(line, column int) Token {
	start := l.pos
	for {
		ch, ok := l.current()
		if !ok || !isIdentPart(ch) {
			break
		}
		l.advance()
	}

	text := l.input[start:l.pos]
	kind := TOKEN_IDENT
	if text == "let" {
		kind = TOKEN_LET
	}
	return Token{Type: kind, Value: text, Line: line, Column: column}
}

func (l *Lexer) lexNumber(line, column int) Token {
	start := l.pos
	for {
		ch, ok := l.current()
		if !ok || !isDigit(ch) {
			break
		}
		l.advance()
	}
	return Token{Type: TOKEN_NUMBER, Value: l.input[start:l.pos], Line: line, Column: column}
}

func (l *Lexer) lexSymbol(ch byte, line, column int) (Token, error) {
	l.advance()

	var kind TokenType
	switch ch {
	case '+':
		kind = TOKEN_PLUS
	case '-':
		kind = TOKEN_MINUS
	case '*':
		kind = TOKEN_STAR
	case '/':
		kind = TOKEN_SLASH
	case '=':
		kind = TOKEN_EQUALS
	case ';':
		kind = TOKEN_SEMICOLON
	case '(':
		kind = TOKEN_LPAREN
	case ')':
		kind = TOKEN_RPAREN
	default:
		return Token{}, &LexError{Char: rune(ch), Line: line, Column: column}
	}

	return Token{Type: kind, Value: string(ch), Line: line, Column: column}, nil
}

// Tokenize runs the lexer over the whole input. The returned slice always
// ends with a TOKEN_EOF token.
func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token
	for {
		token, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == TOKEN_EOF {
			return tokens, nil
		}
	}
}
