package parser

import (
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/scope"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

// Condition → Expression comparator Expression
func (p *Parser) parseCondition() {
	defer p.trace("Condition")()

	p.parseExpression()
	if !comparators.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidComparator, followCondition)
		return
	}
	p.advance()
	p.parseExpression()
}

// Expression → (+|-)? Term ((+|-) Term)*
func (p *Parser) parseExpression() {
	defer p.trace("Expression")()

	if p.peekIs(token.TokenPlus) || p.peekIs(token.TokenMinus) {
		p.advance()
	}
	p.parseTerm()
	for p.peekIs(token.TokenPlus) || p.peekIs(token.TokenMinus) {
		p.advance()
		p.parseTerm()
	}
	if !followExpression.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidExpression, followExpression)
	}
}

// Term → Factor ((*|/) Factor)*
func (p *Parser) parseTerm() {
	p.parseFactor()
	for p.peekIs(token.TokenTimes) || p.peekIs(token.TokenSlash) {
		p.advance()
		p.parseFactor()
	}
	if !followTerm.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidTerm, followTerm)
	}
}

// Factor → number | charliteral | ident (Indexes | Arguments)? | ( Expression )
func (p *Parser) parseFactor() {
	switch p.peekTok.Type {
	case token.TokenNumber, token.TokenChar:
		p.advance()
	case token.TokenLParen:
		p.advance()
		p.parseExpression()
		p.expect(token.TokenRParen)
	case token.TokenIdent:
		p.advance()
		ident := p.curTok
		obj, err := p.checker.CheckDeclaredIdent(ident)
		if p.check(err) {
			switch obj.Kind {
			case scope.ObjConstant, scope.ObjVariable, scope.ObjParameter, scope.ObjFunction:
			default:
				// types, procedures and the program have no value
				p.report(diag.At(diag.InvalidFactor, ident))
			}
		}
		switch p.peekTok.Type {
		case token.TokenLSel:
			p.parseIndexes()
		case token.TokenLParen:
			p.parseArguments()
		}
	default:
		p.invalid(diag.InvalidFactor, followFactor)
	}
}

// Indexes → ([ Expression ])+
func (p *Parser) parseIndexes() {
	for p.peekIs(token.TokenLSel) {
		p.advance()
		p.parseExpression()
		p.expect(token.TokenRSel)
	}
}

// Arguments → ( Expression (, Expression)* )?
func (p *Parser) parseArguments() {
	defer p.trace("Arguments")()

	if !p.peekIs(token.TokenLParen) {
		if !followArguments.Has(p.peekTok.Type) {
			p.invalid(diag.InvalidArguments, followArguments)
		}
		return
	}

	p.advance()
	p.parseExpression()
	for p.peekIs(token.TokenComma) {
		p.advance()
		p.parseExpression()
	}
	if p.peekIs(token.TokenRParen) {
		p.advance()
		return
	}
	p.invalid(diag.InvalidArguments, followArguments)
}
