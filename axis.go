package xpath

import (
	"github.com/sxdgo/xpath/document"
	"github.com/sxdgo/xpath/internal/ast"
)

// principalNodeType reports the node kind an axis is biased toward when
// the node test is an unqualified name: attribute for the attribute axis,
// element for all others.
func principalNodeType(axis ast.Axis) document.Kind {
	if axis == ast.Attribute {
		return document.KindAttribute
	}
	return document.KindElement
}

// matchesTest reports whether h passes test under the given principal node
// type. Structural tests (node(), text(), comment(),
// processing-instruction()) match by kind; a name test matches only nodes
// of the principal type whose name equals the tested name, with "*"
// matching any node of the principal type.
func matchesTest(doc *document.Document, test ast.NodeTest, principal document.Kind, h document.Handle) bool {
	switch test.Kind {
	case ast.TestNode:
		return true
	case ast.TestText:
		return doc.Kind(h) == document.KindText
	case ast.TestComment:
		return doc.Kind(h) == document.KindComment
	case ast.TestPI:
		if doc.Kind(h) != document.KindPI {
			return false
		}
		return !test.PIHasTarget || doc.Name(h) == test.PITarget
	case ast.TestName:
		if doc.Kind(h) != principal {
			return false
		}
		if test.Name == "*" {
			return true
		}
		name := test.Name
		if test.Prefix != "" {
			name = test.Prefix + ":" + test.Name
		}
		return doc.Name(h) == name
	}
	return false
}

// selectAxis appends to out every node reachable from node along axis that
// passes test, in the axis's traversal order: document order for
// child/descendant, the single node for self/parent, and first-set order
// for attributes.
func selectAxis(doc *document.Document, axis ast.Axis, node document.Handle, test ast.NodeTest, out *Nodeset) {
	principal := principalNodeType(axis)
	appendIf := func(h document.Handle) {
		if matchesTest(doc, test, principal, h) {
			out.Append(h)
		}
	}

	switch axis {
	case ast.Self:
		appendIf(node)
	case ast.Parent:
		if p, ok := doc.Parent(node); ok {
			appendIf(p)
		}
	case ast.Child:
		for _, c := range doc.Children(node) {
			appendIf(c)
		}
	case ast.Descendant:
		descend(doc, node, appendIf)
	case ast.DescendantOrSelf:
		appendIf(node)
		descend(doc, node, appendIf)
	case ast.Attribute:
		for _, a := range doc.Attributes(node) {
			appendIf(a)
		}
	}
}

// descend walks node's children in DFS pre-order, excluding node itself
// and excluding attributes.
func descend(doc *document.Document, node document.Handle, visit func(document.Handle)) {
	for _, c := range doc.Children(node) {
		visit(c)
		descend(doc, c, visit)
	}
}
