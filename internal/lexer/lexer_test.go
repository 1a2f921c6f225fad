package lexer

import (
	"testing"
)

func tokenTypes(input string) []TokenType {
	var types []TokenType
	for _, tok := range New(input).Tokenize() {
		types = append(types, tok.Type)
	}
	return types
}

func assertTypes(t *testing.T, input string, expected []TokenType) {
	t.Helper()
	got := tokenTypes(input)
	if len(got) != len(expected) {
		t.Fatalf("token count mismatch for %q: expected %d, got %d (%v)", input, len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token[%d] - wrong type. expected=%q, got=%q (full=%v)", i, expected[i], got[i], got)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "arithmetic operators",
			input:    "+ - * // %",
			expected: []TokenType{PLUS, MINUS, STAR, SLASHSLASH, PERCENT, NEWLINE, EOF},
		},
		{
			name:     "comparison operators",
			input:    "== < > <= >=",
			expected: []TokenType{EQ, LT, GT, LEQ, GEQ, NEWLINE, EOF},
		},
		{
			name:     "assignment operators",
			input:    "= += -=",
			expected: []TokenType{ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, NEWLINE, EOF},
		},
		{
			name:     "arrow",
			input:    "->",
			expected: []TokenType{ARROW, NEWLINE, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTypes(t, tt.input, tt.expected)
		})
	}
}

func TestNextToken_SingleSlashIsIllegal(t *testing.T) {
	tok := New("/").NextToken()
	if tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL for '/', got %s", tok.Type)
	}
}

func TestNextToken_Keywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"def", DEF},
		{"if", IF},
		{"elif", ELIF},
		{"else", ELSE},
		{"while", WHILE},
		{"repeat", REPEAT},
		{"until", UNTIL},
		{"return", RETURN},
		{"pass", PASS},
		{"print", PRINT},
		{"input", INPUT},
		{"and", AND},
		{"or", OR},
		{"not", NOT},
		{"True", TRUE},
		{"False", FALSE},
		{"None", NONE},
		{"int", INT_TYPE},
		{"str", STR_TYPE},
		{"bool", BOOL_TYPE},
		{"true", IDENT},
		{"printer", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			tok := New(tt.keyword).NextToken()
			if tok.Type != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, tok.Type)
			}
			if tok.Literal != tt.keyword {
				t.Errorf("expected literal %q, got %q", tt.keyword, tok.Literal)
			}
		})
	}
}

func TestNextToken_Strings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'single'`, "single"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"quote \" inside"`, `quote " inside`},
		{`'it\'s'`, "it's"},
		{`""`, ""},
	}

	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != STRING_LIT {
			t.Fatalf("input %s: expected STRING_LIT, got %s", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %s: expected %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	tok := New("\"oops\nx").NextToken()
	if tok.Type != ILLEGAL || tok.Literal != "unterminated string" {
		t.Errorf("expected unterminated string error, got %s %q", tok.Type, tok.Literal)
	}
}

func TestNextToken_IntroductionLine(t *testing.T) {
	assertTypes(t, "x: int = 42\n", []TokenType{
		IDENT, COLON, INT_TYPE, ASSIGN, INT_LIT, NEWLINE, EOF,
	})
}

func TestIndentDedent(t *testing.T) {
	src := "" +
		"def f(a: int) -> int:\n" +
		"    if a > 0:\n" +
		"        return a\n" +
		"    return 0 - a\n" +
		"print(f(3))\n"
	assertTypes(t, src, []TokenType{
		DEF, IDENT, LPAREN, IDENT, COLON, INT_TYPE, RPAREN, ARROW, INT_TYPE, COLON, NEWLINE,
		INDENT,
		IF, IDENT, GT, INT_LIT, COLON, NEWLINE,
		INDENT,
		RETURN, IDENT, NEWLINE,
		DEDENT,
		RETURN, INT_LIT, MINUS, IDENT, NEWLINE,
		DEDENT,
		PRINT, LPAREN, IDENT, LPAREN, INT_LIT, RPAREN, RPAREN, NEWLINE,
		EOF,
	})
}

func TestBlankAndCommentLinesAreSkipped(t *testing.T) {
	src := "" +
		"# leading comment\n" +
		"\n" +
		"while True:\n" +
		"\n" +
		"    # indented comment\n" +
		"    pass   # trailing comment\n" +
		"\n"
	assertTypes(t, src, []TokenType{
		WHILE, TRUE, COLON, NEWLINE,
		INDENT, PASS, NEWLINE,
		DEDENT,
		EOF,
	})
}

func TestMissingTrailingNewlineClosesBlocks(t *testing.T) {
	src := "if x:\n    pass"
	assertTypes(t, src, []TokenType{
		IF, IDENT, COLON, NEWLINE,
		INDENT, PASS, NEWLINE,
		DEDENT,
		EOF,
	})
}

func TestNewlinesInsideParensAreIgnored(t *testing.T) {
	src := "print(1,\n      2)\n"
	assertTypes(t, src, []TokenType{
		PRINT, LPAREN, INT_LIT, COMMA, INT_LIT, RPAREN, NEWLINE, EOF,
	})
}

func TestTabsCountAsFourSpaces(t *testing.T) {
	src := "while c:\n\tpass\n    pass\n"
	assertTypes(t, src, []TokenType{
		WHILE, IDENT, COLON, NEWLINE,
		INDENT, PASS, NEWLINE,
		PASS, NEWLINE,
		DEDENT,
		EOF,
	})
}

func TestInconsistentDedent(t *testing.T) {
	src := "if c:\n    pass\n  pass\n"
	found := false
	for _, tok := range New(src).Tokenize() {
		if tok.Type == ILLEGAL && tok.Literal == "inconsistent dedent" {
			found = true
		}
	}
	if !found {
		t.Error("expected an inconsistent dedent token")
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	src := "x: int = 1\ny = x + 2\n"
	tokens := New(src).Tokenize()

	expected := []struct {
		typ  TokenType
		line int
		col  int
	}{
		{IDENT, 1, 1},
		{COLON, 1, 2},
		{INT_TYPE, 1, 4},
		{ASSIGN, 1, 8},
		{INT_LIT, 1, 10},
		{NEWLINE, 1, 11},
		{IDENT, 2, 1},
		{ASSIGN, 2, 3},
		{IDENT, 2, 5},
		{PLUS, 2, 7},
		{INT_LIT, 2, 9},
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Type != exp.typ || tok.Line != exp.line || tok.Column != exp.col {
			t.Errorf("token[%d]: expected %s at %d:%d, got %s at %d:%d",
				i, exp.typ, exp.line, exp.col, tok.Type, tok.Line, tok.Column)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	assertTypes(t, "", []TokenType{EOF})
	assertTypes(t, "\n\n# only a comment\n", []TokenType{EOF})
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}
