package xpath

import "github.com/sxdgo/xpath/document"

// Function is a callable installed in a Context's function table. The
// evaluator resolves function-call expressions by name against this table;
// registration of the XPath 1.0 core library is a separate concern (see the
// stdfunc package). Arguments arrive already evaluated, in order.
type Function func(ctx *Context, args []Value) (Value, error)

// Context is the evaluation context: the document, the current node, a
// 1-based position within the current step's node list, that list's size,
// and the function and variable tables. Contexts are copied, not shared
// mutably, when descending into sub-evaluations; the tables are held by
// reference and treated as immutable for the duration of an evaluation.
type Context struct {
	Doc       *document.Document
	Node      document.Handle
	Position  int
	Size      int
	Functions map[string]Function
	Variables map[string]Value
}

// NewContext returns a context positioned at node with size 1, the shape a
// top-level evaluation starts from.
func NewContext(doc *document.Document, node document.Handle, functions map[string]Function, variables map[string]Value) *Context {
	return &Context{
		Doc:       doc,
		Node:      node,
		Position:  1,
		Size:      1,
		Functions: functions,
		Variables: variables,
	}
}

// NewContextFor returns a fresh copy of c with the given size and position
// zero; the caller advances it with Next before each sub-evaluation.
func (c *Context) NewContextFor(size int) *Context {
	sub := *c
	sub.Size = size
	sub.Position = 0
	return &sub
}

// Next sets the current node and advances the 1-based position.
func (c *Context) Next(node document.Handle) {
	c.Node = node
	c.Position++
}
