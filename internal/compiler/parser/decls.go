package parser

import (
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/scope"
	"github.com/arnavsurve/kplc/internal/compiler/symbols"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

// parseBlock parses the declarations and body of a program or routine. The
// caller has already entered the block's scope. Each declaration section may
// be repeated, but sections keep the CONST, TYPE, VAR order.
func (p *Parser) parseBlock() {
	defer p.trace("Block")()

	p.parseDeclSection(token.TokenConst, p.parseConstDecl)
	p.parseDeclSection(token.TokenTypeKw, p.parseTypeDecl)
	p.parseDeclSection(token.TokenVar, p.parseVarDecl)
	p.parseSubDecls()

	p.expect(token.TokenBegin)
	p.parseStatements()
	p.expect(token.TokenEnd)
}

// parseDeclSection parses (keyword decl+)*.
func (p *Parser) parseDeclSection(keyword token.TokenType, decl func()) {
	for p.peekIs(keyword) {
		p.advance()
		decl()
		for p.peekIs(token.TokenIdent) {
			decl()
		}
	}
}

// freshIdent reads the identifier being declared. ok is false if it is
// missing or already declared in the current scope.
func (p *Parser) freshIdent() (ident token.Token, ok bool) {
	ident, ok = p.expectIdent()
	if !ok {
		return ident, false
	}
	return ident, p.check(p.checker.CheckFreshIdent(ident))
}

// ConstDecl → ident = Constant ;
func (p *Parser) parseConstDecl() {
	ident, fresh := p.freshIdent()
	p.expect(token.TokenEq)
	value := p.parseConstant()
	if fresh {
		p.declare(scope.NewConstant(ident.Literal, value))
	}
	p.expect(token.TokenSemicolon)
}

// TypeDecl → ident = Type ;
func (p *Parser) parseTypeDecl() {
	ident, fresh := p.freshIdent()
	p.expect(token.TokenEq)
	typ := p.parseType()
	if fresh {
		p.declare(scope.NewType(ident.Literal, typ))
	}
	p.expect(token.TokenSemicolon)
}

// VarDecl → ident : Type ;
func (p *Parser) parseVarDecl() {
	ident, fresh := p.freshIdent()
	p.expect(token.TokenColon)
	typ := p.parseType()
	if fresh {
		p.declare(p.table.NewVariable(ident.Literal, typ))
	}
	p.expect(token.TokenSemicolon)
}

// Constant → (+|-)? (number | ident) | charliteral
func (p *Parser) parseConstant() *symbols.ConstantValue {
	defer p.trace("Constant")()

	if !firstConstant.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidConstant, followConstant)
		return nil
	}
	switch p.peekTok.Type {
	case token.TokenChar:
		p.advance()
		return symbols.CharValue(byte(p.curTok.Value))
	case token.TokenPlus, token.TokenMinus:
		p.advance()
		return p.parseUnsignedConstant(p.curTok.Type)
	}
	return p.parseUnsignedConstant(token.TokenNone)
}

// parseUnsignedConstant parses a number or a reference to another constant.
// sign is the already consumed '+' or '-', or TokenNone. A sign may only be
// applied to an integer.
func (p *Parser) parseUnsignedConstant(sign token.TokenType) *symbols.ConstantValue {
	var value *symbols.ConstantValue

	switch p.peekTok.Type {
	case token.TokenNumber:
		p.advance()
		value = symbols.IntValue(p.curTok.Value)
	case token.TokenIdent:
		p.advance()
		obj, err := p.checker.CheckDeclaredConstant(p.curTok)
		if !p.check(err) || obj.Value == nil {
			return nil
		}
		if sign != token.TokenNone && obj.Value.Kind != symbols.TypeInt {
			p.report(diag.At(diag.InvalidConstant, p.curTok))
			return nil
		}
		value = obj.Value.Duplicate()
	default:
		p.invalid(diag.InvalidConstant, followConstant)
		return nil
	}

	if sign == token.TokenMinus {
		value.Int = -value.Int
	}
	return value
}

// Type → INTEGER | CHAR | ARRAY [ number ] OF Type | ident
func (p *Parser) parseType() *symbols.Type {
	defer p.trace("Type")()

	if !firstType.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidType, followType)
		return nil
	}
	switch p.peekTok.Type {
	case token.TokenInteger:
		p.advance()
		return symbols.IntType()
	case token.TokenCharKw:
		p.advance()
		return symbols.CharType()
	case token.TokenArray:
		p.advance()
		p.expect(token.TokenLSel)
		size := 0
		if p.expect(token.TokenNumber) {
			size = p.curTok.Value
			if size <= 0 {
				p.report(diag.At(diag.InvalidType, p.curTok))
			}
		}
		p.expect(token.TokenRSel)
		p.expect(token.TokenOf)
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return symbols.ArrayType(size, elem)
	default: // user type
		p.advance()
		obj, err := p.checker.CheckDeclaredType(p.curTok)
		if !p.check(err) {
			return nil
		}
		// aliases are copied, every object owns its type
		return symbols.Duplicate(obj.Type)
	}
}

// BasicType → INTEGER | CHAR
func (p *Parser) parseBasicType() *symbols.Type {
	if !firstBasicType.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidBasicType, followBasicType)
		return nil
	}
	p.advance()
	if p.curTok.Type == token.TokenCharKw {
		return symbols.CharType()
	}
	return symbols.IntType()
}

// SubDecl*; anything but FUNCTION or PROCEDURE ends the list and is left
// for the caller's BEGIN check.
func (p *Parser) parseSubDecls() {
	defer p.trace("Subroutines")()

	for {
		switch p.peekTok.Type {
		case token.TokenFunction:
			p.parseFuncDecl()
		case token.TokenProcedure:
			p.parseProcDecl()
		default:
			return
		}
	}
}

// FUNCTION ident Params : BasicType ; Block ;
func (p *Parser) parseFuncDecl() {
	defer p.trace("Function")()

	p.expect(token.TokenFunction)
	ident, fresh := p.freshIdent()

	fn := p.table.NewFunction(ident.Literal)
	if fresh {
		// declared before its body so it can recurse
		p.declare(fn)
	}
	p.table.EnterBlock(fn.Scope)
	defer p.table.ExitBlock()

	p.parseParams()
	p.expect(token.TokenColon)
	fn.Type = p.parseBasicType()
	p.expect(token.TokenSemicolon)
	p.parseBlock()
	p.expect(token.TokenSemicolon)
}

// PROCEDURE ident Params ; Block ;
func (p *Parser) parseProcDecl() {
	defer p.trace("Procedure")()

	p.expect(token.TokenProcedure)
	ident, fresh := p.freshIdent()

	proc := p.table.NewProcedure(ident.Literal)
	if fresh {
		p.declare(proc)
	}
	p.table.EnterBlock(proc.Scope)
	defer p.table.ExitBlock()

	p.parseParams()
	p.expect(token.TokenSemicolon)
	p.parseBlock()
	p.expect(token.TokenSemicolon)
}

// Params → ( Param (; Param)* )?
func (p *Parser) parseParams() {
	switch {
	case p.peekIs(token.TokenLParen):
		p.advance()
		p.parseParam()
		for p.peekIs(token.TokenSemicolon) {
			p.advance()
			p.parseParam()
		}
		if p.peekIs(token.TokenRParen) {
			p.advance()
			return
		}
		p.invalid(diag.InvalidParam, followParam)
		if p.peekIs(token.TokenRParen) {
			p.advance()
		}
	case followParams.Has(p.peekTok.Type):
		// no parameter list
	default:
		p.invalid(diag.InvalidParam, followParams)
	}
}

// Param → VAR? ident : BasicType
func (p *Parser) parseParam() {
	if !firstParam.Has(p.peekTok.Type) {
		p.invalid(diag.InvalidParam, followParam)
		return
	}

	mode := scope.ByValue
	if p.peekIs(token.TokenVar) {
		p.advance()
		mode = scope.ByReference
	}
	ident, fresh := p.freshIdent()
	p.expect(token.TokenColon)
	typ := p.parseBasicType()
	if fresh {
		p.declare(scope.NewParameter(ident.Literal, mode, typ, p.table.CurrentScope.Owner))
	}
}
