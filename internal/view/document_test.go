package view

import (
	"errors"
	"testing"

	"github.com/hylla/lanes/internal/dnd"
)

func TestMountClonesTemplateIntoHost(t *testing.T) {
	doc := NewDocument()
	form, err := doc.Mount(TemplateProjectInput, RootID, true, "user-input")
	if err != nil {
		t.Fatalf("Mount(input) error = %v", err)
	}
	active, err := doc.Mount(TemplateProjectList, RootID, false, "active-projects")
	if err != nil {
		t.Fatalf("Mount(active) error = %v", err)
	}
	if _, err := doc.Mount(TemplateProjectList, RootID, false, "finished-projects"); err != nil {
		t.Fatalf("Mount(finished) error = %v", err)
	}
	other, err := doc.Mount(TemplateProjectInput, RootID, true, "second-input")
	if err != nil {
		t.Fatalf("Mount(second) error = %v", err)
	}

	children := doc.Root().Children()
	ids := make([]string, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	want := []string{"second-input", "user-input", "active-projects", "finished-projects"}
	if len(ids) != len(want) {
		t.Fatalf("unexpected children %v", ids)
	}
	for idx := range want {
		if ids[idx] != want[idx] {
			t.Fatalf("unexpected children %v", ids)
		}
	}

	if doc.ByID("active-projects") != active || doc.ByID("user-input") != form || doc.ByID("second-input") != other {
		t.Fatal("expected ByID to return mounted nodes")
	}
	active.Query("h2").SetText("changed")
	fresh, _ := doc.Mount(TemplateProjectList, RootID, false, "third")
	if fresh.Query("h2").Text() != "" {
		t.Fatal("expected mounts to be independent copies of the template")
	}
}

func TestMountMissingAnchor(t *testing.T) {
	doc := NewDocument()
	if _, err := doc.Mount("nope", RootID, false, "x"); !errors.Is(err, ErrMissingAnchor) {
		t.Fatalf("expected ErrMissingAnchor for template, got %v", err)
	}
	if _, err := doc.Mount(TemplateSingleProject, "missing-list", false, "x"); !errors.Is(err, ErrMissingAnchor) {
		t.Fatalf("expected ErrMissingAnchor for host, got %v", err)
	}
	if _, err := NewEmptyDocument().Mount(TemplateProjectList, RootID, false, "x"); !errors.Is(err, ErrMissingAnchor) {
		t.Fatalf("expected ErrMissingAnchor on empty document, got %v", err)
	}
}

func TestNodeClassesAndClear(t *testing.T) {
	list := NewNode("ul", NewNode("li").WithID("a"), NewNode("li").WithID("b"))
	list.AddClass("droppable")
	list.AddClass("droppable")
	if !list.HasClass("droppable") {
		t.Fatal("expected class to be set")
	}
	list.RemoveClass("droppable")
	list.RemoveClass("droppable")
	if list.HasClass("droppable") {
		t.Fatal("expected class to be removed")
	}

	a := list.Find("a")
	list.Clear()
	if len(list.Children()) != 0 || a.Parent() != nil {
		t.Fatal("expected Clear to detach children")
	}
}

func TestDispatchBubblesToAncestors(t *testing.T) {
	doc := NewDocument()
	section, _ := doc.Mount(TemplateProjectList, RootID, false, "active-projects")
	ul := section.Query("ul")
	ul.ID = "active-projects-list"
	card, _ := doc.Mount(TemplateSingleProject, "active-projects-list", false, "i1")

	var seen []string
	section.On(dnd.TypeDragOver, func(ev *dnd.Event) { seen = append(seen, "section:"+ev.Target) })
	card.On(dnd.TypeDragOver, func(ev *dnd.Event) { seen = append(seen, "card:"+ev.Target) })

	card.Dispatch(dnd.NewEvent(dnd.TypeDragOver, dnd.NewTransfer()))
	if len(seen) != 2 || seen[0] != "card:i1" || seen[1] != "section:i1" {
		t.Fatalf("unexpected dispatch order %v", seen)
	}
	if !section.Contains(card) || card.Contains(section) {
		t.Fatal("unexpected containment")
	}
}

func TestAttachRunsLifecycleInOrder(t *testing.T) {
	c := &lifecycleProbe{}
	Attach(c)
	if len(c.calls) != 2 || c.calls[0] != "configure" || c.calls[1] != "render" {
		t.Fatalf("unexpected lifecycle %v", c.calls)
	}
}

type lifecycleProbe struct {
	calls []string
}

func (p *lifecycleProbe) Configure()     { p.calls = append(p.calls, "configure") }
func (p *lifecycleProbe) RenderContent() { p.calls = append(p.calls, "render") }
