package document

import "testing"

func TestAppendChildReparents(t *testing.T) {
	d := New()
	a := d.NewElement("a")
	b := d.NewElement("b")
	child := d.NewText("x")

	d.AppendChild(a, child)
	if got := d.Children(a); len(got) != 1 || got[0] != child {
		t.Fatalf("expected child under a, got %v", got)
	}

	d.AppendChild(b, child)
	if got := d.Children(a); len(got) != 0 {
		t.Fatalf("expected a to lose child, got %v", got)
	}
	if got := d.Children(b); len(got) != 1 || got[0] != child {
		t.Fatalf("expected child under b, got %v", got)
	}
	p, ok := d.Parent(child)
	if !ok || p != b {
		t.Fatalf("expected parent b, got %v ok=%v", p, ok)
	}
}

func TestSetAttributeUpdatesInPlace(t *testing.T) {
	d := New()
	e := d.NewElement("e")
	h1 := d.SetAttribute(e, "id", "1")
	h2 := d.SetAttribute(e, "id", "2")

	if h1 != h2 {
		t.Fatalf("expected same handle on update, got %v != %v", h1, h2)
	}
	if len(d.Attributes(e)) != 1 {
		t.Fatalf("expected exactly one attribute, got %d", len(d.Attributes(e)))
	}
	if d.Value(h1) != "2" {
		t.Fatalf("expected updated value, got %q", d.Value(h1))
	}
}

func TestAttributeParentIsOwningElement(t *testing.T) {
	d := New()
	e := d.NewElement("e")
	a := d.SetAttribute(e, "id", "1")

	p, ok := d.Parent(a)
	if !ok || p != e {
		t.Fatalf("expected attribute parent to be owning element, got %v ok=%v", p, ok)
	}
	// attributes are not part of the child sequence
	for _, c := range d.Children(e) {
		if c == a {
			t.Fatalf("attribute handle leaked into child sequence")
		}
	}
}

func TestStringValueConcatenatesDescendantText(t *testing.T) {
	d := New()
	root := d.Root()
	a := d.NewElement("a")
	d.AppendChild(root, a)
	b1 := d.NewElement("b")
	d.AppendChild(a, b1)
	d.AppendChild(b1, d.NewText("hello "))
	d.AppendChild(a, d.NewText("world"))

	if got := d.StringValue(a); got != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", got)
	}
}

func TestOrderAndDedup(t *testing.T) {
	d := New()
	root := d.Root()
	a := d.NewElement("a")
	d.AppendChild(root, a)
	b := d.NewElement("b")
	d.AppendChild(a, b)
	c := d.NewElement("c")
	d.AppendChild(a, c)

	if !d.Order(b, c) {
		t.Fatalf("expected b before c in document order")
	}
	if d.Order(c, b) {
		t.Fatalf("expected c not before b")
	}

	dup := []Handle{b, c, b}
	deduped := Dedup(dup)
	if len(deduped) != 2 {
		t.Fatalf("expected 2 unique handles, got %d", len(deduped))
	}
}
