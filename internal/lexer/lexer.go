package lexer

// tabWidth is the indentation width counted for a tab character
const tabWidth = 4

// Lexer scans DwiSlpy source code and produces tokens.
// Like Python, it turns leading whitespace into INDENT/DEDENT tokens and
// line ends into NEWLINE tokens. Line ends inside parentheses are ignored.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number

	atLineStart bool    // next token begins a logical line
	indents     []int   // stack of indentation widths, bottom is always 0
	pending     []Token // queued INDENT/DEDENT/NEWLINE tokens
	parenDepth  int
	last        TokenType // type of the last token handed out
	emitted     bool      // whether any token has been handed out
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		column:      0,
		atLineStart: true,
		indents:     []int{0},
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipInlineWhitespace skips spaces, tabs and carriage returns but not newlines
func (l *Lexer) skipInlineWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips a '#' comment up to (not including) the end of line
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) enqueue(tt TokenType, literal string, line, col int) {
	l.pending = append(l.pending, Token{Type: tt, Literal: literal, Line: line, Column: col})
}

// handleIndentation measures the indentation of the next non-blank line and
// queues the INDENT or DEDENT tokens it implies. Blank and comment-only lines
// are skipped entirely.
func (l *Lexer) handleIndentation() {
	for {
		width := 0
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			switch l.ch {
			case ' ':
				width++
			case '\t':
				width += tabWidth
			}
			l.readChar()
		}

		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.ch == 0 {
			// EOF handling unwinds the indent stack
			l.atLineStart = false
			return
		}

		l.atLineStart = false
		line, col := l.line, l.column
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.enqueue(INDENT, "", line, col)
		case width < top:
			for width < top {
				l.indents = l.indents[:len(l.indents)-1]
				top = l.indents[len(l.indents)-1]
				l.enqueue(DEDENT, "", line, col)
			}
			if width != top {
				l.enqueue(ILLEGAL, "inconsistent dedent", line, col)
			}
		}
		return
	}
}

// handleEOF queues the tokens that close the input: a final NEWLINE if the
// last line was not terminated, one DEDENT per open indentation level, and EOF.
func (l *Lexer) handleEOF(line, col int) {
	if l.emitted && l.last != NEWLINE && l.last != DEDENT && l.last != EOF {
		l.enqueue(NEWLINE, "", line, col)
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.enqueue(DEDENT, "", line, col)
	}
	l.enqueue(EOF, "", line, col)
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads an integer literal
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a string literal delimited by quote and returns its
// decoded contents. The closing quote is left as the current char.
func (l *Lexer) readString(quote byte) (string, bool) {
	var result []byte
	for {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			return "", false
		}
		if l.ch == quote {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			case '\'':
				result = append(result, '\'')
			case 0, '\n':
				return "", false
			default:
				// Invalid escape sequence, keep the backslash
				result = append(result, '\\', l.ch)
			}
		} else {
			result = append(result, l.ch)
		}
	}
	return string(result), true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	tok := l.scan()
	l.last = tok.Type
	l.emitted = true
	return tok
}

func (l *Lexer) dequeue() Token {
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

func (l *Lexer) scan() Token {
	if len(l.pending) > 0 {
		return l.dequeue()
	}
	if l.last == EOF && l.emitted {
		return Token{Type: EOF, Line: l.line, Column: l.column}
	}

	if l.atLineStart && l.parenDepth == 0 {
		l.handleIndentation()
		if len(l.pending) > 0 {
			return l.dequeue()
		}
	}

	l.skipInlineWhitespace()
	if l.ch == '#' {
		l.skipComment()
	}

	line, col := l.line, l.column
	tok := Token{Line: line, Column: col}

	switch l.ch {
	case 0:
		l.handleEOF(line, col)
		return l.dequeue()
	case '\n':
		l.readChar()
		if l.parenDepth > 0 {
			return l.scan()
		}
		l.atLineStart = true
		if !l.emitted || l.last == NEWLINE {
			// nothing on this logical line yet
			return l.scan()
		}
		tok.Type, tok.Literal = NEWLINE, ""
		return tok
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = EQ, "=="
		} else {
			tok.Type, tok.Literal = ASSIGN, "="
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = LEQ, "<="
		} else {
			tok.Type, tok.Literal = LT, "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = GEQ, ">="
		} else {
			tok.Type, tok.Literal = GT, ">"
		}
	case '+':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = PLUS_ASSIGN, "+="
		} else {
			tok.Type, tok.Literal = PLUS, "+"
		}
	case '-':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok.Type, tok.Literal = MINUS_ASSIGN, "-="
		case '>':
			l.readChar()
			tok.Type, tok.Literal = ARROW, "->"
		default:
			tok.Type, tok.Literal = MINUS, "-"
		}
	case '*':
		tok.Type, tok.Literal = STAR, "*"
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			tok.Type, tok.Literal = SLASHSLASH, "//"
		} else {
			tok.Type, tok.Literal = ILLEGAL, "/"
		}
	case '%':
		tok.Type, tok.Literal = PERCENT, "%"
	case '(':
		l.parenDepth++
		tok.Type, tok.Literal = LPAREN, "("
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		tok.Type, tok.Literal = RPAREN, ")"
	case ',':
		tok.Type, tok.Literal = COMMA, ","
	case ':':
		tok.Type, tok.Literal = COLON, ":"
	case '"', '\'':
		str, ok := l.readString(l.ch)
		if !ok {
			tok.Type, tok.Literal = ILLEGAL, "unterminated string"
			return tok
		}
		tok.Type, tok.Literal = STRING_LIT, str
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tok.Type, tok.Literal = LookupIdent(ident), ident
			return tok // readIdentifier already advanced
		} else if isDigit(l.ch) {
			tok.Type, tok.Literal = INT_LIT, l.readNumber()
			return tok // readNumber already advanced
		}
		tok.Type, tok.Literal = ILLEGAL, string(l.ch)
	}

	l.readChar()
	return tok
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
