package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	NEWLINE // end of a logical line
	INDENT  // indentation increased
	DEDENT  // indentation decreased

	// Literals
	IDENT      // x, y, my_variable
	INT_LIT    // 123
	STRING_LIT // "hello" (Literal holds the decoded contents)

	// Keywords
	DEF
	IF
	ELIF
	ELSE
	WHILE
	REPEAT
	UNTIL
	RETURN
	PASS
	PRINT
	INPUT
	AND
	OR
	NOT
	TRUE
	FALSE
	NONE // None, both the literal and the type

	// Type keywords (int and str double as conversion functions)
	INT_TYPE
	STR_TYPE
	BOOL_TYPE

	// Operators
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASHSLASH   // //
	PERCENT      // %
	EQ           // ==
	LT           // <
	GT           // >
	LEQ          // <=
	GEQ          // >=
	ASSIGN       // =
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	ARROW        // ->

	// Delimiters
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	COLON  // :
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenNames = map[TokenType]string{
	ILLEGAL:      "ILLEGAL",
	EOF:          "EOF",
	NEWLINE:      "NEWLINE",
	INDENT:       "INDENT",
	DEDENT:       "DEDENT",
	IDENT:        "IDENT",
	INT_LIT:      "INT_LIT",
	STRING_LIT:   "STRING_LIT",
	DEF:          "def",
	IF:           "if",
	ELIF:         "elif",
	ELSE:         "else",
	WHILE:        "while",
	REPEAT:       "repeat",
	UNTIL:        "until",
	RETURN:       "return",
	PASS:         "pass",
	PRINT:        "print",
	INPUT:        "input",
	AND:          "and",
	OR:           "or",
	NOT:          "not",
	TRUE:         "True",
	FALSE:        "False",
	NONE:         "None",
	INT_TYPE:     "int",
	STR_TYPE:     "str",
	BOOL_TYPE:    "bool",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASHSLASH:   "//",
	PERCENT:      "%",
	EQ:           "==",
	LT:           "<",
	GT:           ">",
	LEQ:          "<=",
	GEQ:          ">=",
	ASSIGN:       "=",
	PLUS_ASSIGN:  "+=",
	MINUS_ASSIGN: "-=",
	ARROW:        "->",
	LPAREN:       "(",
	RPAREN:       ")",
	COMMA:        ",",
	COLON:        ":",
}

// String returns a string representation of the token type.
// Keywords and operators render as their source spelling.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"def":    DEF,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"while":  WHILE,
	"repeat": REPEAT,
	"until":  UNTIL,
	"return": RETURN,
	"pass":   PASS,
	"print":  PRINT,
	"input":  INPUT,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"True":   TRUE,
	"False":  FALSE,
	"None":   NONE,
	"int":    INT_TYPE,
	"str":    STR_TYPE,
	"bool":   BOOL_TYPE,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
