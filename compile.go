package xpath

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/sxdgo/xpath/document"
	"github.com/sxdgo/xpath/internal/ast"
	"github.com/sxdgo/xpath/internal/parser"
)

// Expr is a compiled XPath expression: the parsed tree, reusable across
// any number of evaluations and documents.
type Expr struct {
	src  string
	root ast.Expr
}

// Source returns the expression text the Expr was compiled from.
func (e *Expr) Source() string { return e.src }

// Evaluate runs the compiled expression under ctx.
func (e *Expr) Evaluate(ctx *Context) (Value, error) {
	return evaluate(e.root, ctx)
}

// Compiled-expression cache: tokenizing and parsing is pure per source
// string, so distinct callers of the same expression share one tree.
var (
	exprCache   *lru.Cache
	exprCacheMu sync.RWMutex
)

func init() {
	exprCache = lru.New(1000)
}

func getCachedExpr(src string) (*Expr, bool) {
	// lru.Cache.Get moves the entry to the front of its list, so a lookup
	// needs the exclusive lock too.
	exprCacheMu.Lock()
	defer exprCacheMu.Unlock()

	if cached, ok := exprCache.Get(src); ok {
		if e, valid := cached.(*Expr); valid {
			return e, true
		}
	}
	return nil, false
}

func setCachedExpr(src string, e *Expr) {
	exprCacheMu.Lock()
	defer exprCacheMu.Unlock()

	exprCache.Add(src, e)
}

// Compile tokenizes and parses src into a reusable Expr, consulting the
// package-level LRU cache first. Lexical and syntactic failures surface as
// a *parser.Error.
func Compile(src string) (*Expr, error) {
	if e, ok := getCachedExpr(src); ok {
		return e, nil
	}
	root, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	e := &Expr{src: src, root: root}
	setCachedExpr(src, e)
	return e, nil
}

// Evaluate compiles expression and evaluates it against doc with
// contextNode as the initial context node. functions and variables may be
// nil when the expression calls no functions and references no variables.
func Evaluate(expression string, doc *document.Document, contextNode document.Handle, functions map[string]Function, variables map[string]Value) (Value, error) {
	e, err := Compile(expression)
	if err != nil {
		return Value{}, err
	}
	return e.Evaluate(NewContext(doc, contextNode, functions, variables))
}
