package lexer

import (
	"testing"

	"github.com/sxdgo/xpath/internal/token"
)

func kinds(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestOperatorNameContext(t *testing.T) {
	toks, err := Tokenize("1and 2")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []token.Kind{token.Number, token.And, token.Number}
	if got := kinds(t, toks); !equalKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	toks, err = Tokenize("and")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.Name || toks[0].Str != "and" {
		t.Fatalf("expected Name(and) at start of input, got %+v", toks)
	}
}

func TestWildcardVsMultiply(t *testing.T) {
	toks, err := Tokenize("2 * 3")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[1].Kind != token.Multiply {
		t.Fatalf("expected Multiply in operator position, got %v", toks[1].Kind)
	}

	toks, err = Tokenize("*")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.Name || toks[0].Str != "*" {
		t.Fatalf("expected wildcard Name(*) at start of input, got %+v", toks)
	}
}

func TestTwoCharPunctuation(t *testing.T) {
	toks, err := Tokenize("<= >= != :: // ..")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []token.Kind{
		token.LessThanOrEqual, token.GreaterThanOrEqual, token.NotEqual,
		token.DoubleColon, token.DoubleSlash, token.ParentNode,
	}
	if got := kinds(t, toks); !equalKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringLiteral(t *testing.T) {
	toks, err := Tokenize(`'hello' "world"`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Str != "hello" || toks[1].Str != "world" {
		t.Fatalf("unexpected literal values: %+v", toks)
	}
}

func TestMismatchedQuoteError(t *testing.T) {
	_, err := Tokenize(`'unterminated`)
	if err == nil {
		t.Fatalf("expected mismatched quote error")
	}
}

func TestPrefixedName(t *testing.T) {
	toks, err := Tokenize("foo:bar")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.PrefixedName || toks[0].Str != "foo" || toks[0].Str2 != "bar" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}

	// local part starting with a multi-byte letter
	toks, err = Tokenize("ns:中文")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.PrefixedName || toks[0].Str != "ns" || toks[0].Str2 != "中文" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestMissingLocalNameError(t *testing.T) {
	_, err := Tokenize("foo:1")
	if err == nil {
		t.Fatalf("expected missing local name error")
	}
}

func TestCurrentNodeVsNumber(t *testing.T) {
	toks, err := Tokenize(". .5")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != token.CurrentNode {
		t.Fatalf("expected CurrentNode, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Number || toks[1].Num != 0.5 {
		t.Fatalf("expected Number(0.5), got %+v", toks[1])
	}
}

func TestDeabbreviatorExpandsAtSign(t *testing.T) {
	p := NewDeabbreviator(New("@foo"))
	var got []token.Token
	for {
		tok, err := p.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == token.EOF {
			break
		}
		got = append(got, tok)
	}
	want := []token.Kind{token.Name, token.DoubleColon, token.Name}
	if !equalKinds(kinds(t, got), want) {
		t.Fatalf("got %v, want %v", kinds(t, got), want)
	}
	if got[0].Str != "attribute" || got[2].Str != "foo" {
		t.Fatalf("unexpected expansion: %+v", got)
	}
}

func TestDisambiguatorRewritesFunctionAxisNodeTest(t *testing.T) {
	toks := drain(t, NewPipeline("foo() bar::baz text()"))
	var sawFunction, sawAxis, sawNodeTest bool
	for _, tok := range toks {
		switch tok.Kind {
		case token.Function:
			sawFunction = sawFunction || tok.Str == "foo"
		case token.Axis:
			sawAxis = sawAxis || tok.Str == "bar"
		case token.NodeTest:
			sawNodeTest = sawNodeTest || tok.Str == "text"
		}
	}
	if !sawFunction || !sawAxis || !sawNodeTest {
		t.Fatalf("expected Function/Axis/NodeTest rewrites, got %+v", toks)
	}
}

func TestAbbreviationEquivalencePipeline(t *testing.T) {
	abbrev := drain(t, NewPipeline("//a"))
	expanded := drain(t, NewPipeline("/descendant-or-self::node()/a"))
	if !equalKinds(kinds(t, abbrev), kinds(t, expanded)) {
		t.Fatalf("expected equivalent token kinds, got %v vs %v", kinds(t, abbrev), kinds(t, expanded))
	}
}

func drain(t *testing.T, src Source) []token.Token {
	t.Helper()
	var out []token.Token
	for {
		tok, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
