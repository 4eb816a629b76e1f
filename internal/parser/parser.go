// Package parser builds a syntax tree from a token sequence by recursive
// descent.
//
// Grammar, one statement per call:
//
//	statement      := ifStmt | whileStmt | assignment | expression
//	ifStmt         := "if" expression statement ("else" statement)?
//	whileStmt      := "while" expression statement
//	assignment     := IDENTIFIER "=" expression
//	expression     := addition
//	addition       := multiplication (("+" | "-") multiplication)*
//	multiplication := primary (("*" | "/") primary)*
//	primary        := NUMBER | IDENTIFIER
//
// Parse stops after the first complete statement. Tokens after it are left
// unconsumed and are not an error; Pos reports how far parsing got.
// Parentheses and the comparison operators are scanned but no production
// consumes them.
package parser

import (
	"github.com/podhmo/tinycalc/internal/ast"
	"github.com/podhmo/tinycalc/internal/token"
)

// Parser holds a token sequence and the position of the next token.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the first statement of tokens.
func Parse(tokens []token.Token) (ast.Node, error) {
	return New(tokens).Parse()
}

// Parse parses one statement starting at the current position.
// It returns (nil, nil) when no tokens remain.
func (p *Parser) Parse() (ast.Node, error) {
	if p.atEnd() {
		return nil, nil
	}
	return p.statement()
}

// Pos returns the number of tokens consumed so far.
func (p *Parser) Pos() int {
	return p.pos
}

// Remaining returns the tokens not yet consumed.
func (p *Parser) Remaining() []token.Token {
	return p.tokens[p.pos:]
}

func (p *Parser) statement() (ast.Node, error) {
	if p.atEnd() {
		return nil, &ParseError{Kind: UnexpectedEnd, Want: "statement"}
	}
	cur := p.tokens[p.pos]
	switch {
	case cur.Is(token.KEYWORD, token.If):
		return p.ifStatement()
	case cur.Is(token.KEYWORD, token.While):
		return p.whileStatement()
	case cur.Kind == token.IDENTIFIER && p.peekIs(token.OPERATOR, "="):
		return p.assignment()
	default:
		return p.expression()
	}
}

func (p *Parser) ifStatement() (ast.Node, error) {
	if _, err := p.consume(token.KEYWORD, token.If); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Cond: cond, Then: then}
	if p.currentIs(token.KEYWORD, token.Else) {
		p.pos++
		node.Else, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *Parser) whileStatement() (ast.Node, error) {
	if _, err := p.consume(token.KEYWORD, token.While); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

func (p *Parser) assignment() (ast.Node, error) {
	name, err := p.consume(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.OPERATOR, "="); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: name.Text, Value: value}, nil
}

func (p *Parser) expression() (ast.Node, error) {
	return p.addition()
}

func (p *Parser) addition() (ast.Node, error) {
	return p.binary(p.multiplication, ast.Add, ast.Sub)
}

func (p *Parser) multiplication() (ast.Node, error) {
	return p.binary(p.primary, ast.Mul, ast.Div)
}

// binary parses a left-associative chain of operand (op operand)*.
func (p *Parser) binary(operand func() (ast.Node, error), ops ...ast.Operator) (ast.Node, error) {
	node, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator(ops)
		if !ok {
			return node, nil
		}
		p.pos++
		right, err := operand()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Left: node, Op: op, Right: right}
	}
}

func (p *Parser) primary() (ast.Node, error) {
	if p.atEnd() {
		return nil, &ParseError{Kind: UnexpectedEnd, Want: "number or identifier"}
	}
	cur := p.tokens[p.pos]
	switch cur.Kind {
	case token.NUMBER:
		p.pos++
		return &ast.Number{Value: cur.Number, Big: cur.Big}, nil
	case token.IDENTIFIER:
		p.pos++
		return &ast.Variable{Name: cur.Text}, nil
	default:
		return nil, &ParseError{Kind: InvalidPrimary, Got: &cur, Want: "number or identifier"}
	}
}

func (p *Parser) matchOperator(ops []ast.Operator) (ast.Operator, bool) {
	if p.atEnd() || p.tokens[p.pos].Kind != token.OPERATOR {
		return "", false
	}
	for _, op := range ops {
		if p.tokens[p.pos].Text == string(op) {
			return op, true
		}
	}
	return "", false
}

// consume advances past the current token if it has the given kind and,
// when text is non-empty, the given literal.
func (p *Parser) consume(kind token.Kind, text string) (token.Token, error) {
	if p.atEnd() {
		want := kind.String()
		if text != "" {
			want = text
		}
		return token.Token{}, &ParseError{Kind: UnexpectedEnd, Want: want}
	}
	cur := p.tokens[p.pos]
	if cur.Kind != kind {
		return token.Token{}, &ParseError{Kind: UnexpectedKind, Got: &cur, Want: kind.String()}
	}
	if text != "" && cur.Text != text {
		return token.Token{}, &ParseError{Kind: UnexpectedValue, Got: &cur, Want: text}
	}
	p.pos++
	return cur, nil
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) currentIs(kind token.Kind, text string) bool {
	return !p.atEnd() && p.tokens[p.pos].Is(kind, text)
}

func (p *Parser) peekIs(kind token.Kind, text string) bool {
	return p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Is(kind, text)
}
