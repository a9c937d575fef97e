package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttrOrder(t *testing.T) {
	e := NewElement("rect")
	e.SetAttr("x", "10")
	e.SetAttr("y", "20")
	e.SetAttr("width", "30")
	e.SetAttr("x", "11")
	want := []Attr{{"x", "11"}, {"y", "20"}, {"width", "30"}}
	if d := cmp.Diff(want, e.Attrs); d != "" {
		t.Errorf("attrs (-want +got):\n%s", d)
	}
	if v, ok := e.Attr("y"); !ok || v != "20" {
		t.Errorf("Attr(y) = %q, %v", v, ok)
	}
	if !e.RemoveAttr("y") {
		t.Error("RemoveAttr(y) = false")
	}
	if e.HasAttr("y") {
		t.Error("y still present after removal")
	}
	if e.RemoveAttr("nope") {
		t.Error("RemoveAttr(nope) = true")
	}
}

func TestWhitespaceOnly(t *testing.T) {
	e := NewElement("g")
	e.AddChild(Text("  \n\t "))
	e.AddChild(Comment("note"))
	if !e.IsWhitespaceOnly() {
		t.Error("whitespace+comment element reported non-empty")
	}
	e.AddChild(Text("content"))
	if e.IsWhitespaceOnly() {
		t.Error("element with content reported whitespace-only")
	}
	e2 := NewElement("g")
	e2.AddChild(NewElement("rect"))
	if e2.IsWhitespaceOnly() {
		t.Error("element with child element reported whitespace-only")
	}
}

func TestDocumentInvariant(t *testing.T) {
	d := New()
	if d.Root == nil || d.Root.Name != "svg" {
		t.Fatalf("fresh document root = %#v", d.Root)
	}
}

func TestClone(t *testing.T) {
	d := New()
	d.Version = "1.0"
	d.Prologue = append(d.Prologue, Comment("hdr"))
	d.Root.SetAttr("viewBox", "0 0 10 10")
	d.Root.SetNamespace("", "http://www.w3.org/2000/svg")
	child := NewElement("path")
	child.SetAttr("d", "M0 0")
	d.Root.AddChild(child)
	d.Root.AddChild(Text("t"))

	c := d.Clone()
	if diff := cmp.Diff(d, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}
	// mutation of the clone must not leak back
	c.Root.ChildElements()[0].SetAttr("d", "M1 1")
	if v, _ := d.Root.ChildElements()[0].Attr("d"); v != "M0 0" {
		t.Errorf("original mutated through clone: d=%q", v)
	}
}
