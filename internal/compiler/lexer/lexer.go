package lexer

import (
	"strconv"
	"strings"

	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/reader"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

type Lexer struct {
	r     *reader.Reader
	diags *diag.List
}

// NewLexer scans r, reporting lexical errors into diags. A nil diags gets a
// private list, reachable through Diagnostics.
func NewLexer(r *reader.Reader, diags *diag.List) *Lexer {
	if diags == nil {
		diags = &diag.List{}
	}
	return &Lexer{r: r, diags: diags}
}

// NewLexerString is a convenience for in-memory sources.
func NewLexerString(input string) *Lexer {
	return NewLexer(reader.NewString(input), nil)
}

func (l *Lexer) Diagnostics() *diag.List {
	return l.diags
}

func (l *Lexer) errorAt(kind diag.Kind, line, col int) {
	l.diags.Add(diag.New(kind, line, col))
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

// single consumes a one character token.
func (l *Lexer) single(tokenType token.TokenType) token.Token {
	line, col := l.r.Position()
	literal := string(l.r.Current())
	l.r.ReadChar()
	return l.newToken(tokenType, literal, line, col)
}

// NextToken returns the next token, skipping whitespace and comments. Tokens
// that carry a lexical error come back as TokenNone after the error has been
// reported; the reader is always advanced past them.
func (l *Lexer) NextToken() token.Token {
	for {
		ch := l.r.Current()
		line, col := l.r.Position()

		if ch == reader.EOF {
			return l.newToken(token.TokenEOF, "", line, col)
		}

		switch Classify(ch) {
		case CharSpace:
			l.skipBlank()
			continue
		case CharLetter:
			return l.readIdentKeyword()
		case CharDigit:
			return l.readNumber()
		case CharSingleQuote:
			return l.readConstChar()
		case CharPlus:
			return l.single(token.TokenPlus)
		case CharMinus:
			return l.single(token.TokenMinus)
		case CharTimes:
			return l.single(token.TokenTimes)
		case CharSlash:
			return l.single(token.TokenSlash)
		case CharEq:
			return l.single(token.TokenEq)
		case CharComma:
			return l.single(token.TokenComma)
		case CharSemicolon:
			return l.single(token.TokenSemicolon)
		case CharRParen:
			return l.single(token.TokenRParen)
		case CharLBracket:
			return l.single(token.TokenLSel)
		case CharRBracket:
			return l.single(token.TokenRSel)
		case CharLt:
			l.r.ReadChar()
			switch Classify(l.r.Current()) {
			case CharEq:
				l.r.ReadChar()
				return l.newToken(token.TokenLe, "<=", line, col)
			case CharGt:
				l.r.ReadChar()
				return l.newToken(token.TokenNeq, "<>", line, col)
			}
			return l.newToken(token.TokenLt, "<", line, col)
		case CharGt:
			l.r.ReadChar()
			if Classify(l.r.Current()) == CharEq {
				l.r.ReadChar()
				return l.newToken(token.TokenGe, ">=", line, col)
			}
			return l.newToken(token.TokenGt, ">", line, col)
		case CharExclamation:
			l.r.ReadChar()
			if Classify(l.r.Current()) == CharEq {
				l.r.ReadChar()
				return l.newToken(token.TokenNeq, "!=", line, col)
			}
			l.errorAt(diag.InvalidSymbol, line, col)
			return l.newToken(token.TokenNone, "!", line, col)
		case CharColon:
			l.r.ReadChar()
			if Classify(l.r.Current()) == CharEq {
				l.r.ReadChar()
				return l.newToken(token.TokenAssign, ":=", line, col)
			}
			return l.newToken(token.TokenColon, ":", line, col)
		case CharPeriod:
			l.r.ReadChar()
			if Classify(l.r.Current()) == CharRParen {
				l.r.ReadChar()
				return l.newToken(token.TokenRSel, ".)", line, col)
			}
			return l.newToken(token.TokenPeriod, ".", line, col)
		case CharLParen:
			l.r.ReadChar()
			switch Classify(l.r.Current()) {
			case CharPeriod:
				l.r.ReadChar()
				return l.newToken(token.TokenLSel, "(.", line, col)
			case CharTimes:
				l.r.ReadChar()
				l.skipComment()
				continue
			}
			return l.newToken(token.TokenLParen, "(", line, col)
		default:
			l.errorAt(diag.InvalidSymbol, line, col)
			l.r.ReadChar()
			return l.newToken(token.TokenNone, string(ch), line, col)
		}
	}
}

// NextValidToken discards error tokens so the caller always gets an
// analyzable token or EOF.
func (l *Lexer) NextValidToken() token.Token {
	tok := l.NextToken()
	for tok.Type == token.TokenNone {
		tok = l.NextToken()
	}
	return tok
}

// Tokens scans the rest of the input, error tokens included, up to and
// including EOF.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks
		}
	}
}

func (l *Lexer) skipBlank() {
	for Classify(l.r.Current()) == CharSpace {
		l.r.ReadChar()
	}
}

// skipComment consumes a comment body after its opening "(*". Comments nest:
// each "(*" must be matched by its own "*)".
func (l *Lexer) skipComment() {
	depth := 1
	for depth > 0 && l.r.Current() != reader.EOF {
		switch l.r.Current() {
		case '(':
			if l.r.ReadChar() == '*' {
				depth++
				l.r.ReadChar()
			}
		case '*':
			if l.r.ReadChar() == ')' {
				depth--
				l.r.ReadChar()
			}
		default:
			l.r.ReadChar()
		}
	}
	if depth > 0 {
		line, col := l.r.Position()
		l.errorAt(diag.EndOfComment, line, col)
	}
}

// readRun accumulates characters while accept holds.
func (l *Lexer) readRun(accept func(CharClass) bool) string {
	var sb strings.Builder
	for accept(Classify(l.r.Current())) {
		sb.WriteRune(l.r.Current())
		l.r.ReadChar()
	}
	return sb.String()
}

func (l *Lexer) readIdentKeyword() token.Token {
	line, col := l.r.Position()
	ident := l.readRun(func(c CharClass) bool { return c == CharLetter || c == CharDigit })
	if len(ident) > token.MaxIdentLen {
		l.errorAt(diag.IdentifierTooLong, line, col)
		return l.newToken(token.TokenNone, "", line, col)
	}
	return l.newToken(token.LookupIdent(ident), ident, line, col)
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.r.Position()
	literal := l.readRun(func(c CharClass) bool { return c == CharDigit })
	if len(literal) > token.MaxIdentLen {
		l.errorAt(diag.IdentifierTooLong, line, col)
		return l.newToken(token.TokenNone, "", line, col)
	}
	// at most 15 digits, always fits
	value, _ := strconv.Atoi(literal)
	tok := l.newToken(token.TokenNumber, literal, line, col)
	tok.Value = value
	return tok
}

func (l *Lexer) readConstChar() token.Token {
	line, col := l.r.Position()
	ch := l.r.ReadChar() // consume opening quote

	switch {
	case ch == reader.EOF, ch == '\n':
		l.errorAt(diag.InvalidCharConstant, line, col)
		return l.newToken(token.TokenNone, "", line, col)
	case Classify(ch) == CharSingleQuote:
		l.r.ReadChar()
		l.errorAt(diag.InvalidCharConstant, line, col)
		return l.newToken(token.TokenNone, "", line, col)
	}

	if Classify(l.r.ReadChar()) != CharSingleQuote {
		l.errorAt(diag.InvalidCharConstant, line, col)
		return l.newToken(token.TokenNone, string(ch), line, col)
	}
	l.r.ReadChar() // consume closing quote

	tok := l.newToken(token.TokenChar, string(ch), line, col)
	tok.Value = int(ch)
	return tok
}
