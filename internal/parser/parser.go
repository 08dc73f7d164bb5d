// Package parser implements the recursive-descent XPath parser: ten
// explicit precedence levels on top of a single left-associative binary
// driver, bottoming out at location-path steps and primary expressions.
package parser

import (
	"fmt"

	"github.com/sxdgo/xpath/internal/ast"
	"github.com/sxdgo/xpath/internal/lexer"
	"github.com/sxdgo/xpath/internal/token"
)

// Parser consumes a token.Source (the composed lexical pipeline) and
// produces an ast.Expr.
type Parser struct {
	src    lexer.Source
	cur    token.Token
	lexErr error
}

// Parse tokenizes and parses src in one call, the normal entry point.
func Parse(src string) (ast.Expr, error) {
	p := &Parser{src: lexer.NewPipeline(src)}
	p.advance()

	expr, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if p.lexErr != nil {
		return nil, &Error{Kind: TokenizerError, Msg: p.lexErr.Error()}
	}
	if p.cur.Kind != token.EOF {
		return nil, &Error{Kind: ExtraUnparsedTokens, Msg: fmt.Sprintf("%v", p.cur.Kind)}
	}
	return expr, nil
}

func (p *Parser) advance() {
	if p.lexErr != nil {
		p.cur = token.Token{Kind: token.EOF}
		return
	}
	tok, err := p.src.Next()
	if err != nil {
		p.cur = token.Token{Kind: token.EOF}
		p.lexErr = err
		return
	}
	p.cur = tok
}

// lexErr, once set, means the underlying stream is broken; cur behaves as
// EOF from here on, and every subsequent "missing token" error is
// surfaced as the TokenizerError it actually was.
func (p *Parser) check(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(k token.Kind) error {
	if p.check(k) {
		p.advance()
		return nil
	}
	return p.unexpectedOrEOF()
}

func (p *Parser) unexpectedOrEOF() error {
	if p.lexErr != nil {
		return &Error{Kind: TokenizerError, Msg: p.lexErr.Error()}
	}
	if p.cur.Kind == token.EOF {
		return &Error{Kind: RanOutOfInput}
	}
	return &Error{Kind: UnexpectedToken, Msg: fmt.Sprintf("%v", p.cur.Kind)}
}

// rhs converts a "no expression found" error from a required right-hand
// side into RightHandSideExpressionMissing, leaving every other error
// (notably TokenizerError) untouched.
func rhs(err error) error {
	if pe, ok := err.(*Error); ok && (pe.Kind == RanOutOfInput || pe.Kind == UnexpectedToken) {
		return &Error{Kind: RightHandSideExpressionMissing}
	}
	return err
}

// binaryLevel implements the common left-associative driver described in
// the design notes: parse a left operand with child, then as long as the
// lookahead matches one of rules, consume the operator and fold in a
// right operand parsed by the same child.
func binaryLevel(p *Parser, child func() (ast.Expr, error), rules map[token.Kind]func(left, right ast.Expr) ast.Expr) (ast.Expr, error) {
	left, err := child()
	if err != nil {
		return nil, err
	}
	for {
		ctor, ok := rules[p.cur.Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := child()
		if err != nil {
			return nil, rhs(err)
		}
		left = ctor(left, right)
	}
}

// 1. OrExpr
func (p *Parser) parseOrExpr() (ast.Expr, error) {
	return binaryLevel(p, p.parseAndExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.Or: func(a, b ast.Expr) ast.Expr { return &ast.Or{Left: a, Right: b} },
	})
}

// 2. AndExpr
func (p *Parser) parseAndExpr() (ast.Expr, error) {
	return binaryLevel(p, p.parseEqualityExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.And: func(a, b ast.Expr) ast.Expr { return &ast.And{Left: a, Right: b} },
	})
}

// 3. EqualityExpr
func (p *Parser) parseEqualityExpr() (ast.Expr, error) {
	return binaryLevel(p, p.parseRelationalExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.Equal:    func(a, b ast.Expr) ast.Expr { return &ast.Equal{Left: a, Right: b} },
		token.NotEqual: func(a, b ast.Expr) ast.Expr { return &ast.NotEqual{Left: a, Right: b} },
	})
}

// 4. RelationalExpr
func (p *Parser) parseRelationalExpr() (ast.Expr, error) {
	rel := func(op ast.RelOp) func(a, b ast.Expr) ast.Expr {
		return func(a, b ast.Expr) ast.Expr { return &ast.Relational{Op: op, Left: a, Right: b} }
	}
	return binaryLevel(p, p.parseAdditiveExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.LessThan:           rel(ast.LessThan),
		token.LessThanOrEqual:    rel(ast.LessThanOrEqual),
		token.GreaterThan:        rel(ast.GreaterThan),
		token.GreaterThanOrEqual: rel(ast.GreaterThanOrEqual),
	})
}

// 5. AdditiveExpr
func (p *Parser) parseAdditiveExpr() (ast.Expr, error) {
	math := func(op ast.MathOp) func(a, b ast.Expr) ast.Expr {
		return func(a, b ast.Expr) ast.Expr { return &ast.Math{Op: op, Left: a, Right: b} }
	}
	return binaryLevel(p, p.parseMultiplicativeExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.PlusSign:  math(ast.Add),
		token.MinusSign: math(ast.Subtract),
	})
}

// 6. MultiplicativeExpr
func (p *Parser) parseMultiplicativeExpr() (ast.Expr, error) {
	math := func(op ast.MathOp) func(a, b ast.Expr) ast.Expr {
		return func(a, b ast.Expr) ast.Expr { return &ast.Math{Op: op, Left: a, Right: b} }
	}
	return binaryLevel(p, p.parseUnaryExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.Multiply:  math(ast.Multiply),
		token.Divide:    math(ast.Divide),
		token.Remainder: math(ast.Remainder),
	})
}

// 7. UnaryExpr: prefix '-', any repetition.
func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if p.match(token.MinusSign) {
		operand, err := p.parseUnaryExpr()
		if err != nil {
			return nil, rhs(err)
		}
		return &ast.Negation{Operand: operand}, nil
	}
	return p.parseUnionExpr()
}

// 8. UnionExpr
func (p *Parser) parseUnionExpr() (ast.Expr, error) {
	return binaryLevel(p, p.parsePathExpr, map[token.Kind]func(a, b ast.Expr) ast.Expr{
		token.Pipe: func(a, b ast.Expr) ast.Expr { return &ast.Union{Left: a, Right: b} },
	})
}

func isStepStart(k token.Kind) bool {
	return k == token.Axis || k == token.NodeTest || k == token.Name || k == token.PrefixedName
}

// 9. PathExpr = LocationPath | FilterExpr ('/' RelativeLocationPath)?
func (p *Parser) parsePathExpr() (ast.Expr, error) {
	if p.check(token.Slash) || isStepStart(p.cur.Kind) {
		return p.parseLocationPath()
	}

	primary, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for p.check(token.LeftBracket) {
		pred, err := p.parsePredicateBody()
		if err != nil {
			return nil, err
		}
		primary = &ast.Predicate{Selector: primary, Cond: pred}
	}

	if p.match(token.Slash) {
		if !isStepStart(p.cur.Kind) {
			return nil, &Error{Kind: TrailingSlash}
		}
		steps, err := p.parseRelativeLocationPath()
		if err != nil {
			return nil, err
		}
		return &ast.Path{Start: primary, Steps: steps}, nil
	}
	return primary, nil
}

func (p *Parser) parseLocationPath() (ast.Expr, error) {
	if p.match(token.Slash) {
		if !isStepStart(p.cur.Kind) {
			// a lone slash selects the document root
			return &ast.Path{Start: &ast.RootNode{}}, nil
		}
		steps, err := p.parseRelativeLocationPath()
		if err != nil {
			return nil, err
		}
		return &ast.Path{Start: &ast.RootNode{}, Steps: steps}, nil
	}
	steps, err := p.parseRelativeLocationPath()
	if err != nil {
		return nil, err
	}
	return &ast.Path{Start: &ast.ContextNode{}, Steps: steps}, nil
}

func (p *Parser) parseRelativeLocationPath() ([]ast.Expr, error) {
	var steps []ast.Expr
	first, err := p.parseStep()
	if err != nil {
		return nil, err
	}
	steps = append(steps, first)

	for p.match(token.Slash) {
		if !isStepStart(p.cur.Kind) {
			return nil, &Error{Kind: TrailingSlash}
		}
		next, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, next)
	}
	return steps, nil
}

var axisNames = map[string]ast.Axis{
	"self":               ast.Self,
	"parent":             ast.Parent,
	"child":              ast.Child,
	"descendant":         ast.Descendant,
	"descendant-or-self": ast.DescendantOrSelf,
	"attribute":          ast.Attribute,
}

var nodeTestKinds = map[string]ast.NodeTestKind{
	"node":                   ast.TestNode,
	"text":                   ast.TestText,
	"comment":                ast.TestComment,
	"processing-instruction": ast.TestPI,
}

// 10. Step
func (p *Parser) parseStep() (ast.Expr, error) {
	axis := ast.Child
	if p.check(token.Axis) {
		name := p.cur.Str
		a, ok := axisNames[name]
		if !ok {
			return nil, &Error{Kind: InvalidAxis, Name: name}
		}
		axis = a
		p.advance()
		if err := p.consume(token.DoubleColon); err != nil {
			return nil, err
		}
	}

	test, err := p.parseNodeTest()
	if err != nil {
		return nil, err
	}

	var step ast.Expr = &ast.Step{Axis: axis, Test: test}
	for p.check(token.LeftBracket) {
		pred, err := p.parsePredicateBody()
		if err != nil {
			return nil, err
		}
		step = &ast.Predicate{Selector: step, Cond: pred}
	}
	return step, nil
}

func (p *Parser) parseNodeTest() (ast.NodeTest, error) {
	switch p.cur.Kind {
	case token.NodeTest:
		name := p.cur.Str
		kind, ok := nodeTestKinds[name]
		if !ok {
			return ast.NodeTest{}, &Error{Kind: InvalidNodeTest, Name: name}
		}
		p.advance()
		if err := p.consume(token.LeftParen); err != nil {
			return ast.NodeTest{}, err
		}
		test := ast.NodeTest{Kind: kind}
		if kind == ast.TestPI && p.check(token.Literal) {
			test.PIHasTarget = true
			test.PITarget = p.cur.Str
			p.advance()
		}
		if err := p.consume(token.RightParen); err != nil {
			return ast.NodeTest{}, err
		}
		return test, nil
	case token.Name:
		name := p.cur.Str
		p.advance()
		return ast.NodeTest{Kind: ast.TestName, Name: name}, nil
	case token.PrefixedName:
		prefix, local := p.cur.Str, p.cur.Str2
		p.advance()
		return ast.NodeTest{Kind: ast.TestName, Prefix: prefix, Name: local}, nil
	default:
		return ast.NodeTest{}, p.unexpectedOrEOF()
	}
}

// parsePredicateBody parses "[" Expr "]", erroring on an empty predicate.
func (p *Parser) parsePredicateBody() (ast.Expr, error) {
	p.advance() // consume '['
	if p.check(token.RightBracket) {
		return nil, &Error{Kind: EmptyPredicate}
	}
	expr, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.RightBracket); err != nil {
		return nil, err
	}
	return expr, nil
}

// PrimaryExpr = '$' Name | Literal | Number | Function '(' args ')' |
// '(' Expr ')'
func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.DollarSign:
		p.advance()
		if p.cur.Kind != token.Name {
			return nil, p.unexpectedOrEOF()
		}
		name := p.cur.Str
		p.advance()
		return &ast.Variable{Name: name}, nil
	case token.Literal:
		v := p.cur.Str
		p.advance()
		return &ast.Literal{Kind: ast.LiteralString, Str: v}, nil
	case token.Number:
		v := p.cur.Num
		p.advance()
		return &ast.Literal{Kind: ast.LiteralNumber, Num: v}, nil
	case token.Function:
		return p.parseFunctionCall()
	case token.LeftParen:
		p.advance()
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.RightParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.unexpectedOrEOF()
	}
}

// parseFunctionCall parses a function call. The token alphabet has no
// comma, so arguments are complete top-level expressions parsed
// back-to-back until ')' closes the call (see DESIGN.md).
func (p *Parser) parseFunctionCall() (ast.Expr, error) {
	name := p.cur.Str
	p.advance() // consume Function token
	if err := p.consume(token.LeftParen); err != nil {
		return nil, err
	}

	var args []ast.Expr
	for !p.check(token.RightParen) {
		arg, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.consume(token.RightParen); err != nil {
		return nil, err
	}
	return &ast.Function{Name: name, Args: args}, nil
}
