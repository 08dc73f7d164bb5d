package document

import "sort"

// position assigns each node a monotonically increasing document-order key
// by walking the tree in pre-order, visiting an element's attributes
// immediately after the element itself (XPath considers attributes to
// follow their owning element but precede its children for ordering
// purposes).
func (d *Document) position() map[Handle]int {
	pos := make(map[Handle]int, len(d.nodes))
	n := 0
	var walk func(h Handle)
	walk = func(h Handle) {
		pos[h] = n
		n++
		for _, a := range d.Attributes(h) {
			pos[a] = n
			n++
		}
		for _, c := range d.Children(h) {
			walk(c)
		}
	}
	walk(d.Root())
	return pos
}

// Order reports whether a precedes b in document order. Exposed for callers
// that need a document-ordered, de-duplicated node set — the union operator
// itself does not call this, see DESIGN.md.
func (d *Document) Order(a, b Handle) bool {
	pos := d.position()
	return pos[a] < pos[b]
}

// SortDocumentOrder returns a copy of handles sorted into document order.
func (d *Document) SortDocumentOrder(handles []Handle) []Handle {
	pos := d.position()
	out := make([]Handle, len(handles))
	copy(out, handles)
	sort.SliceStable(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out
}

// Dedup returns a copy of handles with duplicate handles removed, preserving
// the first occurrence's position.
func Dedup(handles []Handle) []Handle {
	seen := make(map[Handle]bool, len(handles))
	out := make([]Handle, 0, len(handles))
	for _, h := range handles {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}
