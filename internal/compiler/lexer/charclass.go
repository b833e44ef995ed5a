package lexer

import "github.com/arnavsurve/kplc/internal/compiler/reader"

// CharClass classifies raw input characters to dispatch scanning.
type CharClass int

const (
	CharSpace CharClass = iota
	CharLetter
	CharDigit
	CharPlus
	CharMinus
	CharTimes
	CharSlash
	CharLt
	CharGt
	CharExclamation
	CharEq
	CharComma
	CharPeriod
	CharColon
	CharSemicolon
	CharSingleQuote
	CharLParen
	CharRParen
	CharLBracket
	CharRBracket
	CharUnknown
)

var charClasses [128]CharClass

func init() {
	for i := range charClasses {
		charClasses[i] = CharUnknown
	}
	for _, ch := range " \t\n\r\f\v" {
		charClasses[ch] = CharSpace
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		charClasses[ch] = CharLetter
		charClasses[ch-'a'+'A'] = CharLetter
	}
	for ch := '0'; ch <= '9'; ch++ {
		charClasses[ch] = CharDigit
	}

	symbols := map[rune]CharClass{
		'+':  CharPlus,
		'-':  CharMinus,
		'*':  CharTimes,
		'/':  CharSlash,
		'<':  CharLt,
		'>':  CharGt,
		'!':  CharExclamation,
		'=':  CharEq,
		',':  CharComma,
		'.':  CharPeriod,
		':':  CharColon,
		';':  CharSemicolon,
		'\'': CharSingleQuote,
		'(':  CharLParen,
		')':  CharRParen,
		'[':  CharLBracket,
		']':  CharRBracket,
	}
	for ch, class := range symbols {
		charClasses[ch] = class
	}
}

// Classify returns the class of ch. EOF and non-ASCII input are CharUnknown.
func Classify(ch rune) CharClass {
	if ch == reader.EOF || ch < 0 || int(ch) >= len(charClasses) {
		return CharUnknown
	}
	return charClasses[ch]
}
