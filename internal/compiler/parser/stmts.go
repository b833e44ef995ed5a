package parser

import (
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

// Statements → Statement (; Statement)*
//
// A statement that starts without a separating ';' is reported as a missing
// ';' and parsed anyway. Tokens that can neither continue nor end the list
// are reported and skipped.
func (p *Parser) parseStatements() {
	defer p.trace("Statements")()

	p.parseStatement()
	for {
		switch {
		case p.peekIs(token.TokenSemicolon):
			p.advance()
			p.parseStatement()
		case firstStatement.Has(p.peekTok.Type):
			p.report(diag.Missing(token.TokenSemicolon, p.peekTok))
			p.parseStatement()
		case followStatements.Has(p.peekTok.Type), followStatement.Has(p.peekTok.Type), syncSet.Has(p.peekTok.Type):
			return
		default:
			p.invalid(diag.InvalidStatement, followStatement.Union(firstStatement))
		}
	}
}

func (p *Parser) parseStatement() {
	switch p.peekTok.Type {
	case token.TokenIdent:
		p.parseAssignSt()
	case token.TokenCall:
		p.parseCallSt()
	case token.TokenBegin:
		p.parseGroupSt()
	case token.TokenIf:
		p.parseIfSt()
	case token.TokenWhile:
		p.parseWhileSt()
	case token.TokenFor:
		p.parseForSt()
	default:
		if followStatement.Has(p.peekTok.Type) {
			return // empty statement
		}
		p.invalid(diag.InvalidStatement, followStatement)
	}
}

// AssignSt → ident Indexes? := Expression
func (p *Parser) parseAssignSt() {
	defer p.trace("Assign")()

	ident, _ := p.expectIdent()
	_, err := p.checker.CheckDeclaredLValueIdent(ident)
	p.check(err)
	if p.peekIs(token.TokenLSel) {
		p.parseIndexes()
	}
	p.expect(token.TokenAssign)
	p.parseExpression()
}

// CallSt → CALL ident Arguments?
func (p *Parser) parseCallSt() {
	defer p.trace("Call")()

	p.expect(token.TokenCall)
	if ident, ok := p.expectIdent(); ok {
		_, err := p.checker.CheckDeclaredProcedure(ident)
		p.check(err)
	}
	p.parseArguments()
}

// GroupSt → BEGIN Statements END
func (p *Parser) parseGroupSt() {
	defer p.trace("Group")()

	p.expect(token.TokenBegin)
	p.parseStatements()
	p.expect(token.TokenEnd)
}

// IfSt → IF Condition THEN Statement (ELSE Statement)?
func (p *Parser) parseIfSt() {
	defer p.trace("If")()

	p.expect(token.TokenIf)
	p.parseCondition()
	p.expect(token.TokenThen)
	p.parseStatement()
	if p.peekIs(token.TokenElse) {
		p.advance()
		p.parseStatement()
	}
}

// WhileSt → WHILE Condition DO Statement
func (p *Parser) parseWhileSt() {
	defer p.trace("While")()

	p.expect(token.TokenWhile)
	p.parseCondition()
	p.expect(token.TokenDo)
	p.parseStatement()
}

// ForSt → FOR ident := Expression TO Expression DO Statement
func (p *Parser) parseForSt() {
	defer p.trace("For")()

	p.expect(token.TokenFor)
	if ident, ok := p.expectIdent(); ok {
		_, err := p.checker.CheckDeclaredVariable(ident)
		p.check(err)
	}
	p.expect(token.TokenAssign)
	p.parseExpression()
	p.expect(token.TokenTo)
	p.parseExpression()
	p.expect(token.TokenDo)
	p.parseStatement()
}
