package parser

import "github.com/arnavsurve/kplc/internal/compiler/token"

// FIRST and FOLLOW sets of the grammar. Epsilon alternatives are chosen by
// testing the lookahead against a FOLLOW set, and error recovery skips to
// FOLLOW ∪ syncSet.
var (
	firstConstant  = token.NewSet(token.TokenPlus, token.TokenMinus, token.TokenNumber, token.TokenIdent, token.TokenChar)
	firstType      = token.NewSet(token.TokenInteger, token.TokenCharKw, token.TokenArray, token.TokenIdent)
	firstBasicType = token.NewSet(token.TokenInteger, token.TokenCharKw)
	firstParam     = token.NewSet(token.TokenVar, token.TokenIdent)
	firstStatement = token.NewSet(token.TokenIdent, token.TokenCall, token.TokenBegin, token.TokenIf, token.TokenWhile, token.TokenFor)

	comparators = token.NewSet(token.TokenEq, token.TokenNeq, token.TokenLe, token.TokenLt, token.TokenGe, token.TokenGt)

	followDecl       = token.NewSet(token.TokenSemicolon)
	followConstant   = followDecl
	followType       = followDecl
	followBasicType  = token.NewSet(token.TokenSemicolon, token.TokenRParen)
	followParam      = token.NewSet(token.TokenSemicolon, token.TokenRParen)
	followParams     = token.NewSet(token.TokenSemicolon, token.TokenColon)
	followStatements = token.NewSet(token.TokenEnd)
	followStatement  = token.NewSet(token.TokenSemicolon, token.TokenEnd, token.TokenElse)
	followCondition  = token.NewSet(token.TokenThen, token.TokenDo)

	followExpression = followStatement.Union(comparators, token.NewSet(
		token.TokenTo, token.TokenDo, token.TokenThen,
		token.TokenRParen, token.TokenComma, token.TokenRSel,
	))
	followTerm      = followExpression.Union(token.NewSet(token.TokenPlus, token.TokenMinus))
	followFactor    = followTerm.Union(token.NewSet(token.TokenTimes, token.TokenSlash))
	followArguments = followFactor

	// syncSet holds tokens that start or close a block. Recovery never skips
	// past them.
	syncSet = token.NewSet(
		token.TokenConst, token.TokenTypeKw, token.TokenVar,
		token.TokenFunction, token.TokenProcedure,
		token.TokenBegin, token.TokenEnd, token.TokenPeriod, token.TokenEOF,
	)
)
