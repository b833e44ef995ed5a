package lexer

import (
	"strings"
	"testing"

	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

type expectedToken struct {
	typ     token.TokenType
	literal string
	line    int
	col     int
}

func checkTokens(t *testing.T, input string, want []expectedToken) *Lexer {
	t.Helper()
	l := NewLexerString(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ {
			t.Fatalf("tokens[%d] type wrong. expected=%s, got=%s (%q)", i, w.typ, tok.Type, tok.Literal)
		}
		if w.literal != "" && tok.Literal != w.literal {
			t.Errorf("tokens[%d] literal wrong. expected=%q, got=%q", i, w.literal, tok.Literal)
		}
		if w.line != 0 && (tok.Line != w.line || tok.Column != w.col) {
			t.Errorf("tokens[%d] position wrong. expected=%d-%d, got=%d-%d", i, w.line, w.col, tok.Line, tok.Column)
		}
	}
	return l
}

func checkDiagnostics(t *testing.T, l *Lexer, want ...*diag.Diagnostic) {
	t.Helper()
	got := l.Diagnostics().Items()
	if len(got) != len(want) {
		t.Fatalf("expected %d diagnostics, got=%d: %v", len(want), len(got), l.Diagnostics().Err())
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].Line != want[i].Line || got[i].Column != want[i].Column {
			t.Errorf("diagnostic %d expected=%s at %d-%d, got=%s at %d-%d",
				i, want[i].Kind, want[i].Line, want[i].Column, got[i].Kind, got[i].Line, got[i].Column)
		}
	}
}

func TestMinimalProgram(t *testing.T) {
	l := checkTokens(t, "PROGRAM P; BEGIN END.", []expectedToken{
		{token.TokenProgram, "PROGRAM", 1, 1},
		{token.TokenIdent, "P", 1, 9},
		{token.TokenSemicolon, ";", 1, 10},
		{token.TokenBegin, "BEGIN", 1, 12},
		{token.TokenEnd, "END", 1, 18},
		{token.TokenPeriod, ".", 1, 21},
		{token.TokenEOF, "", 1, 22},
	})
	checkDiagnostics(t, l)
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	l := checkTokens(t, "program Program PROGRAM begin End", []expectedToken{
		{typ: token.TokenProgram, literal: "program"},
		{typ: token.TokenProgram, literal: "Program"},
		{typ: token.TokenProgram, literal: "PROGRAM"},
		{typ: token.TokenBegin},
		{typ: token.TokenEnd},
		{typ: token.TokenEOF},
	})
	checkDiagnostics(t, l)
}

func TestOperators(t *testing.T) {
	input := "<= < <> >= > := : .) . (. ( ) != = + - * / , ; [ ]"
	l := checkTokens(t, input, []expectedToken{
		{typ: token.TokenLe},
		{typ: token.TokenLt},
		{typ: token.TokenNeq},
		{typ: token.TokenGe},
		{typ: token.TokenGt},
		{typ: token.TokenAssign},
		{typ: token.TokenColon},
		{typ: token.TokenRSel},
		{typ: token.TokenPeriod},
		{typ: token.TokenLSel},
		{typ: token.TokenLParen},
		{typ: token.TokenRParen},
		{typ: token.TokenNeq},
		{typ: token.TokenEq},
		{typ: token.TokenPlus},
		{typ: token.TokenMinus},
		{typ: token.TokenTimes},
		{typ: token.TokenSlash},
		{typ: token.TokenComma},
		{typ: token.TokenSemicolon},
		{typ: token.TokenLSel},
		{typ: token.TokenRSel},
		{typ: token.TokenEOF},
	})
	checkDiagnostics(t, l)
}

func TestOperatorsWithoutSpaces(t *testing.T) {
	l := checkTokens(t, "a[i]:=x(.1.)+f(y);", []expectedToken{
		{token.TokenIdent, "a", 1, 1},
		{token.TokenLSel, "[", 1, 2},
		{token.TokenIdent, "i", 1, 3},
		{token.TokenRSel, "]", 1, 4},
		{token.TokenAssign, ":=", 1, 5},
		{token.TokenIdent, "x", 1, 7},
		{token.TokenLSel, "(.", 1, 8},
		{token.TokenNumber, "1", 1, 10},
		{token.TokenRSel, ".)", 1, 11},
		{token.TokenPlus, "+", 1, 13},
		{token.TokenIdent, "f", 1, 14},
		{token.TokenLParen, "(", 1, 15},
		{token.TokenIdent, "y", 1, 16},
		{token.TokenRParen, ")", 1, 17},
		{token.TokenSemicolon, ";", 1, 18},
		{token.TokenEOF, "", 1, 19},
	})
	checkDiagnostics(t, l)
}

func TestNumbers(t *testing.T) {
	l := NewLexerString("0 42 123456789012345")
	for _, want := range []int{0, 42, 123456789012345} {
		tok := l.NextToken()
		if tok.Type != token.TokenNumber {
			t.Fatalf("expected number, got=%s", tok.Type)
		}
		if tok.Value != want {
			t.Errorf("value expected=%d, got=%d", want, tok.Value)
		}
	}
	checkDiagnostics(t, l)
}

func TestNegativeNumberIsTwoTokens(t *testing.T) {
	checkTokens(t, "-5", []expectedToken{
		{typ: token.TokenMinus},
		{typ: token.TokenNumber, literal: "5"},
		{typ: token.TokenEOF},
	})
}

func TestIdentifierTooLong(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"twenty chars", "ThisIsASixteenCharId", 1, 1},
		{"sixteen chars", "abcdefghijklmnop", 1, 1},
		{"after whitespace", "\n   abcdefghijklmnop1", 2, 4},
		{"number", "1234567890123456", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexerString(tt.input)
			tok := l.NextToken()
			if tok.Type != token.TokenNone {
				t.Fatalf("expected TK_NONE, got=%s", tok.Type)
			}
			if next := l.NextToken(); next.Type != token.TokenEOF {
				t.Fatalf("expected the whole run consumed, got=%s", next.Type)
			}
			checkDiagnostics(t, l, diag.New(diag.IdentifierTooLong, tt.line, tt.col))
		})
	}
}

func TestFifteenCharIdentifierIsAccepted(t *testing.T) {
	l := checkTokens(t, "abcdefghijklmno", []expectedToken{
		{token.TokenIdent, "abcdefghijklmno", 1, 1},
		{typ: token.TokenEOF},
	})
	checkDiagnostics(t, l)
}

func TestCharConstants(t *testing.T) {
	l := checkTokens(t, "'a' ' ' '*'", []expectedToken{
		{token.TokenChar, "a", 1, 1},
		{token.TokenChar, " ", 1, 5},
		{token.TokenChar, "*", 1, 9},
		{typ: token.TokenEOF},
	})
	checkDiagnostics(t, l)
}

func TestInvalidCharConstants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"eof after quote", "'"},
		{"empty", "''"},
		{"newline content", "'\n'"},
		{"unterminated", "'a"},
		{"two chars", "'ab'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexerString(tt.input)
			if tok := l.NextToken(); tok.Type != token.TokenNone {
				t.Fatalf("expected TK_NONE, got=%s", tok.Type)
			}
			d := l.Diagnostics().Items()
			if len(d) == 0 || d[0].Kind != diag.InvalidCharConstant || d[0].Line != 1 || d[0].Column != 1 {
				t.Fatalf("expected InvalidCharConstant at 1-1, got=%v", l.Diagnostics().Err())
			}
		})
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"flat", "(* hello *) x", 1, 13},
		{"depth two", "(* a (* b *) c *) x", 1, 19},
		{"depth three", "(*(*(**)*)*)x", 1, 13},
		{"stars inside", "(* ** * ) **) x", 1, 15},
		{"multi line", "(* one\ntwo *)\n x", 3, 2},
		{"paren not opener", "(* ( ) (x *) x", 1, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := checkTokens(t, tt.input, []expectedToken{
				{token.TokenIdent, "x", tt.line, tt.col},
				{typ: token.TokenEOF},
			})
			checkDiagnostics(t, l)
		})
	}
}

func TestNestedCommentsOfAnyDepth(t *testing.T) {
	for depth := 1; depth <= 8; depth++ {
		src := strings.Repeat("(* ", depth) + strings.Repeat(" *)", depth) + "y"
		l := NewLexerString(src)
		tok := l.NextToken()
		if tok.Type != token.TokenIdent || tok.Literal != "y" {
			t.Fatalf("depth %d: expected identifier y after comment, got=%s(%q)", depth, tok.Type, tok.Literal)
		}
		checkDiagnostics(t, l)

		unterminated := strings.Repeat("(* ", depth) + strings.Repeat(" *)", depth-1) + "y"
		l = NewLexerString(unterminated)
		if tok := l.NextToken(); tok.Type != token.TokenEOF {
			t.Fatalf("depth %d: expected EOF for unterminated comment, got=%s", depth, tok.Type)
		}
		if l.Diagnostics().Len() != 1 || l.Diagnostics().Items()[0].Kind != diag.EndOfComment {
			t.Fatalf("depth %d: expected exactly one EndOfComment, got=%v", depth, l.Diagnostics().Err())
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	l := checkTokens(t, "(* unterminated", []expectedToken{
		{token.TokenEOF, "", 1, 16},
	})
	checkDiagnostics(t, l, diag.New(diag.EndOfComment, 1, 16))
}

func TestInvalidSymbolsDoNotStopScanning(t *testing.T) {
	l := checkTokens(t, "x $ ! y _", []expectedToken{
		{token.TokenIdent, "x", 1, 1},
		{token.TokenNone, "$", 1, 3},
		{token.TokenNone, "!", 1, 5},
		{token.TokenIdent, "y", 1, 7},
		{token.TokenNone, "_", 1, 9},
		{typ: token.TokenEOF},
	})
	checkDiagnostics(t, l,
		diag.New(diag.InvalidSymbol, 1, 3),
		diag.New(diag.InvalidSymbol, 1, 5),
		diag.New(diag.InvalidSymbol, 1, 9),
	)
}

func TestNextValidTokenSkipsErrors(t *testing.T) {
	l := NewLexerString("a ?? abcdefghijklmnopq 'xy b")
	want := []string{"a", "y", "b"}
	for _, w := range want {
		tok := l.NextValidToken()
		if tok.Type != token.TokenIdent || tok.Literal != w {
			t.Fatalf("expected identifier %q, got=%s(%q)", w, tok.Type, tok.Literal)
		}
	}
	if tok := l.NextValidToken(); tok.Type != token.TokenEOF {
		t.Fatalf("expected EOF, got=%s", tok.Type)
	}
	if got := l.Diagnostics().Count(diag.StageLexical); got != 4 {
		t.Errorf("expected 4 lexical diagnostics, got=%d: %v", got, l.Diagnostics().Err())
	}
}

func TestTokensDump(t *testing.T) {
	toks := NewLexerString("PROGRAM Example1;\n(* c *) BEGIN END.").Tokens()
	var lines []string
	for _, tok := range toks {
		lines = append(lines, tok.String())
	}
	want := []string{
		"1-1:KW_PROGRAM",
		"1-9:TK_IDENT(Example1)",
		"1-17:SB_SEMICOLON",
		"2-9:KW_BEGIN",
		"2-15:KW_END",
		"2-18:SB_PERIOD",
		"2-19:TK_EOF",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("dump mismatch.\nexpected=\n%s\ngot=\n%s", strings.Join(want, "\n"), strings.Join(lines, "\n"))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ch   rune
		want CharClass
	}{
		{' ', CharSpace},
		{'\t', CharSpace},
		{'q', CharLetter},
		{'Q', CharLetter},
		{'7', CharDigit},
		{'\'', CharSingleQuote},
		{'!', CharExclamation},
		{'[', CharLBracket},
		{'_', CharUnknown},
		{'é', CharUnknown},
		{-1, CharUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.ch); got != tt.want {
			t.Errorf("Classify(%q) expected=%d, got=%d", tt.ch, tt.want, got)
		}
	}
}
