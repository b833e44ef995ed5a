package token

import (
	"fmt"
	"slices"
	"strings"
)

// MaxIdentLen bounds the source text of identifiers and numbers.
const MaxIdentLen = 15

type TokenType string

const (
	// Special
	TokenNone TokenType = "TK_NONE" // carries a lexical error, never reaches the parser
	TokenEOF  TokenType = "TK_EOF"

	// Literals & Identifiers
	TokenIdent  TokenType = "TK_IDENT"  // myVar
	TokenNumber TokenType = "TK_NUMBER" // 123
	TokenChar   TokenType = "TK_CHAR"   // 'a'

	// Keywords
	TokenProgram   TokenType = "KW_PROGRAM"
	TokenConst     TokenType = "KW_CONST"
	TokenTypeKw    TokenType = "KW_TYPE"
	TokenVar       TokenType = "KW_VAR"
	TokenInteger   TokenType = "KW_INTEGER"
	TokenCharKw    TokenType = "KW_CHAR"
	TokenArray     TokenType = "KW_ARRAY"
	TokenOf        TokenType = "KW_OF"
	TokenFunction  TokenType = "KW_FUNCTION"
	TokenProcedure TokenType = "KW_PROCEDURE"
	TokenBegin     TokenType = "KW_BEGIN"
	TokenEnd       TokenType = "KW_END"
	TokenCall      TokenType = "KW_CALL"
	TokenIf        TokenType = "KW_IF"
	TokenThen      TokenType = "KW_THEN"
	TokenElse      TokenType = "KW_ELSE"
	TokenWhile     TokenType = "KW_WHILE"
	TokenDo        TokenType = "KW_DO"
	TokenFor       TokenType = "KW_FOR"
	TokenTo        TokenType = "KW_TO"

	// Symbols
	TokenSemicolon TokenType = "SB_SEMICOLON" // ;
	TokenColon     TokenType = "SB_COLON"     // :
	TokenPeriod    TokenType = "SB_PERIOD"    // .
	TokenComma     TokenType = "SB_COMMA"     // ,
	TokenAssign    TokenType = "SB_ASSIGN"    // :=
	TokenEq        TokenType = "SB_EQ"        // =
	TokenNeq       TokenType = "SB_NEQ"       // != or <>
	TokenLt        TokenType = "SB_LT"        // <
	TokenLe        TokenType = "SB_LE"        // <=
	TokenGt        TokenType = "SB_GT"        // >
	TokenGe        TokenType = "SB_GE"        // >=
	TokenPlus      TokenType = "SB_PLUS"      // +
	TokenMinus     TokenType = "SB_MINUS"     // -
	TokenTimes     TokenType = "SB_TIMES"     // *
	TokenSlash     TokenType = "SB_SLASH"     // /
	TokenLParen    TokenType = "SB_LPAR"      // (
	TokenRParen    TokenType = "SB_RPAR"      // )
	TokenLSel      TokenType = "SB_LSEL"      // (. or [
	TokenRSel      TokenType = "SB_RSEL"      // .) or ]
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Value   int // only meaningful for TokenNumber
}

// String renders the token the way `kplc scan` prints it.
func (t Token) String() string {
	switch t.Type {
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("%d-%d:%s(%s)", t.Line, t.Column, t.Type, t.Literal)
	case TokenChar:
		return fmt.Sprintf("%d-%d:%s('%s')", t.Line, t.Column, t.Type, t.Literal)
	default:
		return fmt.Sprintf("%d-%d:%s", t.Line, t.Column, t.Type)
	}
}

// Describe returns the human readable name used in "Missing ..." diagnostics.
func Describe(tt TokenType) string {
	switch tt {
	case TokenNone:
		return "None"
	case TokenIdent:
		return "an identification"
	case TokenNumber:
		return "a number"
	case TokenChar:
		return "a constant char"
	case TokenEOF:
		return "end of file"
	}
	if lexeme, ok := lexemes[tt]; ok {
		return "'" + lexeme + "'"
	}
	if strings.HasPrefix(string(tt), "KW_") {
		return "keyword " + strings.TrimPrefix(string(tt), "KW_")
	}
	return string(tt)
}

var lexemes = map[TokenType]string{
	TokenSemicolon: ";",
	TokenColon:     ":",
	TokenPeriod:    ".",
	TokenComma:     ",",
	TokenAssign:    ":=",
	TokenEq:        "=",
	TokenNeq:       "!=",
	TokenLt:        "<",
	TokenLe:        "<=",
	TokenGt:        ">",
	TokenGe:        ">=",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenTimes:     "*",
	TokenSlash:     "/",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLSel:      "(.",
	TokenRSel:      ".)",
}

// keywords maps upper-cased keyword spellings to their token types.
var keywords = map[string]TokenType{
	"PROGRAM":   TokenProgram,
	"CONST":     TokenConst,
	"TYPE":      TokenTypeKw,
	"VAR":       TokenVar,
	"INTEGER":   TokenInteger,
	"CHAR":      TokenCharKw,
	"ARRAY":     TokenArray,
	"OF":        TokenOf,
	"FUNCTION":  TokenFunction,
	"PROCEDURE": TokenProcedure,
	"BEGIN":     TokenBegin,
	"END":       TokenEnd,
	"CALL":      TokenCall,
	"IF":        TokenIf,
	"THEN":      TokenThen,
	"ELSE":      TokenElse,
	"WHILE":     TokenWhile,
	"DO":        TokenDo,
	"FOR":       TokenFor,
	"TO":        TokenTo,
}

// LookupIdent checks if an identifier is a keyword, ignoring case, returning
// the keyword's token type or TokenIdent.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[strings.ToUpper(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Keywords returns the keyword spellings in a stable order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	slices.Sort(out)
	return out
}

// Set is a small FIRST/FOLLOW set of token types.
type Set []TokenType

func NewSet(types ...TokenType) Set {
	return Set(types)
}

func (s Set) Has(tt TokenType) bool {
	return slices.Contains(s, tt)
}

// Union returns a new set holding the members of s and others.
func (s Set) Union(others ...Set) Set {
	out := slices.Clone(s)
	for _, o := range others {
		for _, tt := range o {
			if !out.Has(tt) {
				out = append(out, tt)
			}
		}
	}
	return out
}
