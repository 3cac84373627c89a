package view

import "fmt"

// Template and host ids used by the board.
const (
	RootID = "app"

	TemplateProjectInput  = "project-input"
	TemplateProjectList   = "project-list"
	TemplateSingleProject = "single-project"
)

// Document owns the attached node tree and the template registry.
type Document struct {
	root      *Node
	templates map[string]*Node
}

// NewDocument returns a document with the root host and the board templates.
func NewDocument() *Document {
	d := &Document{
		root:      NewNode("div").WithID(RootID),
		templates: map[string]*Node{},
	}
	d.RegisterTemplate(TemplateProjectInput, NewNode("form",
		NewNode("div",
			NewNode("label").WithText("Title"),
			NewNode("input").WithID("title"),
		),
		NewNode("div",
			NewNode("label").WithText("Description"),
			NewNode("textarea").WithID("description"),
		),
		NewNode("div",
			NewNode("label").WithText("People"),
			NewNode("input").WithID("people"),
		),
		NewNode("button").WithText("ADD PROJECT"),
	))
	d.RegisterTemplate(TemplateProjectList, NewNode("section",
		NewNode("header", NewNode("h2")),
		NewNode("ul"),
	))
	d.RegisterTemplate(TemplateSingleProject, NewNode("li",
		NewNode("h2"),
		NewNode("h3"),
		NewNode("p"),
	))
	return d
}

// NewEmptyDocument returns a document with a root host but no templates.
func NewEmptyDocument() *Document {
	return &Document{
		root:      NewNode("div").WithID(RootID),
		templates: map[string]*Node{},
	}
}

// RegisterTemplate stores content under id, replacing any previous template.
func (d *Document) RegisterTemplate(id string, content *Node) {
	d.templates[id] = content
}

// Root returns the document root host.
func (d *Document) Root() *Node {
	return d.root
}

// ByID returns the attached node with id, or nil.
func (d *Document) ByID(id string) *Node {
	return d.root.Find(id)
}

// Mount clones templateID, gives the copy newID, and attaches it to hostID at
// the start or end of the host's children.
func (d *Document) Mount(templateID, hostID string, atStart bool, newID string) (*Node, error) {
	tmpl, ok := d.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", templateID, ErrMissingAnchor)
	}
	host := d.ByID(hostID)
	if host == nil {
		return nil, fmt.Errorf("host %q: %w", hostID, ErrMissingAnchor)
	}
	el := tmpl.clone()
	el.ID = newID
	if atStart {
		host.PrependChild(el)
	} else {
		host.AppendChild(el)
	}
	return el, nil
}
