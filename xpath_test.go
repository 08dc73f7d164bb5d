package xpath_test

import (
	"math"
	"testing"

	"github.com/sxdgo/xpath"
	"github.com/sxdgo/xpath/document"
	"github.com/sxdgo/xpath/internal/parser"
	"github.com/sxdgo/xpath/stdfunc"
)

func emptyDoc() *document.Document { return document.New() }

func evalScalar(t *testing.T, expr string) xpath.Value {
	t.Helper()
	doc := emptyDoc()
	v, err := xpath.Evaluate(expr, doc, doc.Root(), stdfunc.NewCoreTable(), nil)
	if err != nil {
		t.Fatalf("evaluate %q: %v", expr, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	v := evalScalar(t, "1.1 + 2.2")
	if v.Kind != xpath.ValueNumber || math.Abs(v.Num-3.3) >= 1e-6 {
		t.Fatalf("1.1 + 2.2 = %+v", v)
	}

	v = evalScalar(t, "-  -  - 7.2")
	if v.Kind != xpath.ValueNumber || v.Num != -7.2 {
		t.Fatalf("triple negation = %+v", v)
	}
}

func TestRelational(t *testing.T) {
	v := evalScalar(t, "1.2 >= 1.2")
	if v.Kind != xpath.ValueBoolean || !v.Bool {
		t.Fatalf("1.2 >= 1.2 = %+v", v)
	}
	v = evalScalar(t, "1 < 0")
	if v.Bool {
		t.Fatalf("1 < 0 = %+v", v)
	}
}

func TestIEEEDivision(t *testing.T) {
	v := evalScalar(t, "1 div 0")
	if !math.IsInf(v.Num, 1) {
		t.Fatalf("1 div 0 = %+v", v)
	}
	v = evalScalar(t, "-1 div 0")
	if !math.IsInf(v.Num, -1) {
		t.Fatalf("-1 div 0 = %+v", v)
	}
	v = evalScalar(t, "0 div 0")
	if !math.IsNaN(v.Num) {
		t.Fatalf("0 div 0 = %+v", v)
	}
}

func TestRemainder(t *testing.T) {
	v := evalScalar(t, "5 mod 2")
	if v.Num != 1 {
		t.Fatalf("5 mod 2 = %+v", v)
	}
	v = evalScalar(t, "-5 mod 2")
	if v.Num != -1 {
		t.Fatalf("-5 mod 2 = %+v", v)
	}
}

// twoChildren builds <a><b/><b/></a> and returns (doc, a, second b).
func twoChildren(t *testing.T) (*document.Document, document.Handle, document.Handle) {
	t.Helper()
	doc, err := document.DecodeString("<a><b/><b/></a>")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, ok := doc.DocumentElement()
	if !ok {
		t.Fatal("no document element")
	}
	bs := doc.Children(a)
	if len(bs) != 2 {
		t.Fatalf("expected 2 children, got %d", len(bs))
	}
	return doc, a, bs[1]
}

func TestPredicateIndex(t *testing.T) {
	doc, a, second := twoChildren(t)
	v, err := xpath.Evaluate("b[2]", doc, a, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Kind != xpath.ValueNodes || !v.Nodes.Equal(xpath.Nodeset{second}) {
		t.Fatalf("b[2] = %+v, want {second b}", v)
	}
}

func TestPredicateBooleanKeepsSurvivors(t *testing.T) {
	doc, err := document.DecodeString(`<a><b id="x"/><b/><b id="y"/></a>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, _ := doc.DocumentElement()
	v, err := xpath.Evaluate("b[@id]", doc, a, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	bs := doc.Children(a)
	want := xpath.Nodeset{bs[0], bs[2]}
	if !v.Nodes.Equal(want) {
		t.Fatalf("b[@id] = %v, want %v", v.Nodes, want)
	}
}

func TestShortCircuit(t *testing.T) {
	invoked := false
	fns := stdfunc.NewCoreTable()
	fns["error"] = func(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
		invoked = true
		return xpath.Value{}, &xpath.EvalError{Kind: xpath.UnknownFunction, Name: "error"}
	}

	doc := emptyDoc()
	v, err := xpath.Evaluate("true() or error()", doc, doc.Root(), fns, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !v.Bool || invoked {
		t.Fatalf("or did not short-circuit: value %+v, invoked %v", v, invoked)
	}

	v, err = xpath.Evaluate("false() and error()", doc, doc.Root(), fns, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Bool || invoked {
		t.Fatalf("and did not short-circuit: value %+v, invoked %v", v, invoked)
	}
}

func TestUnionMultiset(t *testing.T) {
	doc, a, _ := twoChildren(t)
	v, err := xpath.Evaluate("b | b", doc, a, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	bs := doc.Children(a)
	want := xpath.Nodeset{bs[0], bs[1], bs[0], bs[1]}
	if !v.Nodes.Equal(want) {
		t.Fatalf("b | b = %v, want right appended after left %v", v.Nodes, want)
	}
}

func TestUnionOnScalarErrors(t *testing.T) {
	doc := emptyDoc()
	_, err := xpath.Evaluate("1 | 2", doc, doc.Root(), nil, nil)
	ee, ok := err.(*xpath.EvalError)
	if !ok || ee.Kind != xpath.WrongArgumentType {
		t.Fatalf("expected WrongArgumentType, got %v", err)
	}
}

func TestAbsolutePathFromNestedContext(t *testing.T) {
	doc, _, second := twoChildren(t)
	v, err := xpath.Evaluate("/a/b", doc, second, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Nodes.Size() != 2 {
		t.Fatalf("/a/b from nested context = %v", v.Nodes)
	}

	v, err = xpath.Evaluate("/", doc, second, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !v.Nodes.Equal(xpath.Nodeset{doc.Root()}) {
		t.Fatalf("/ = %v, want {root}", v.Nodes)
	}
}

func TestDescendantAbbreviation(t *testing.T) {
	doc, err := document.DecodeString("<a><b><c/></b><c/></a>")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	v, err := xpath.Evaluate("//c", doc, doc.Root(), nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Nodes.Size() != 2 {
		t.Fatalf("//c = %v, want both c elements", v.Nodes)
	}
}

func TestAttributeAbbreviation(t *testing.T) {
	doc, err := document.DecodeString(`<a id="7"/>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, _ := doc.DocumentElement()
	v, err := xpath.Evaluate("@id", doc, a, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Nodes.Size() != 1 || doc.Value(v.Nodes[0]) != "7" {
		t.Fatalf("@id = %v", v.Nodes)
	}
}

func TestVariables(t *testing.T) {
	doc := emptyDoc()
	vars := map[string]xpath.Value{"n": xpath.NumberValue(4)}
	v, err := xpath.Evaluate("$n * 2", doc, doc.Root(), nil, vars)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Num != 8 {
		t.Fatalf("$n * 2 = %+v", v)
	}

	_, err = xpath.Evaluate("$missing", doc, doc.Root(), nil, nil)
	ee, ok := err.(*xpath.EvalError)
	if !ok || ee.Kind != xpath.UnknownVariable || ee.Name != "missing" {
		t.Fatalf("expected UnknownVariable(missing), got %v", err)
	}
}

func TestUnknownFunction(t *testing.T) {
	doc := emptyDoc()
	_, err := xpath.Evaluate("nope()", doc, doc.Root(), nil, nil)
	ee, ok := err.(*xpath.EvalError)
	if !ok || ee.Kind != xpath.UnknownFunction || ee.Name != "nope" {
		t.Fatalf("expected UnknownFunction(nope), got %v", err)
	}
}

func TestParseErrorsSurface(t *testing.T) {
	doc := emptyDoc()

	_, err := xpath.Evaluate("-", doc, doc.Root(), nil, nil)
	pe, ok := err.(*parser.Error)
	if !ok || pe.Kind != parser.RightHandSideExpressionMissing {
		t.Fatalf("expected RightHandSideExpressionMissing, got %v", err)
	}

	_, err = xpath.Evaluate("f(", doc, doc.Root(), nil, nil)
	pe, ok = err.(*parser.Error)
	if !ok || (pe.Kind != parser.RanOutOfInput && pe.Kind != parser.UnexpectedToken) {
		t.Fatalf("expected RanOutOfInput or UnexpectedToken, got %v", err)
	}

	_, err = xpath.Evaluate("'open", doc, doc.Root(), nil, nil)
	pe, ok = err.(*parser.Error)
	if !ok || pe.Kind != parser.TokenizerError {
		t.Fatalf("expected TokenizerError, got %v", err)
	}
}

func TestEqualityCoercionCases(t *testing.T) {
	doc, err := document.DecodeString("<a><b>3</b></a>")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, _ := doc.DocumentElement()

	cases := []struct {
		expr string
		want bool
	}{
		{"1 = 1", true},
		{"1 = '1'", true},   // number vs string compares as numbers
		{"'x' = 'x'", true}, // string vs string
		{"'x' = 'y'", false},
		{"b = 3", true},   // node set coerces through its string value
		{"b = '3'", true}, // string comparison against first node's value
		{"1 != 2", true},
	}
	for _, c := range cases {
		v, err := xpath.Evaluate(c.expr, doc, a, nil, nil)
		if err != nil {
			t.Fatalf("evaluate %q: %v", c.expr, err)
		}
		if v.Bool != c.want {
			t.Errorf("%q = %v, want %v", c.expr, v.Bool, c.want)
		}
	}
}

func TestCompileCacheReturnsSameTree(t *testing.T) {
	e1, err := xpath.Compile("a/b/c[1]")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	e2, err := xpath.Compile("a/b/c[1]")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if e1 != e2 {
		t.Fatal("expected cached compile to return the same expression")
	}
	if e1.Source() != "a/b/c[1]" {
		t.Fatalf("Source() = %q", e1.Source())
	}
}

func TestFilterExprWithPath(t *testing.T) {
	doc, err := document.DecodeString("<a><b><c>1</c></b><b><c>2</c></b></a>")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, _ := doc.DocumentElement()
	v, err := xpath.Evaluate("(b)[2]/c", doc, a, nil, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Nodes.Size() != 1 || doc.StringValue(v.Nodes[0]) != "2" {
		t.Fatalf("(b)[2]/c = %v", v.Nodes)
	}
}
