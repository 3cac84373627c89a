package widget

import (
	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/view"
)

// InvalidInputNotice is shown when a submission fails validation.
const InvalidInputNotice = "Invalid input, please try again!"

// InputForm collects title, description, and people for a new item.
type InputForm struct {
	board       Board
	element     *view.Node
	title       *view.Node
	description *view.Node
	people      *view.Node
	opts        options
}

// NewInputForm mounts the form at the start of the root host.
func NewInputForm(doc *view.Document, board Board, opts ...Option) (*InputForm, error) {
	el, err := doc.Mount(view.TemplateProjectInput, view.RootID, true, "user-input")
	if err != nil {
		return nil, err
	}
	f := &InputForm{
		board:       board,
		element:     el,
		title:       el.Find("title"),
		description: el.Find("description"),
		people:      el.Find("people"),
		opts:        buildOptions(opts),
	}
	view.Attach(f)
	return f, nil
}

// Configure has nothing to bind; submission is driven by the caller.
func (f *InputForm) Configure() {}

// RenderContent has no dynamic content.
func (f *InputForm) RenderContent() {}

// SetValues replaces the raw field values.
func (f *InputForm) SetValues(title, description, people string) {
	f.title.SetText(title)
	f.description.SetText(description)
	f.people.SetText(people)
}

// Values returns the raw field values.
func (f *InputForm) Values() (title, description, people string) {
	return f.title.Text(), f.description.Text(), f.people.Text()
}

// Submit validates the fields and creates an item. On failure the fields are
// kept and the returned error wraps app.ErrInvalidInput.
func (f *InputForm) Submit() (string, error) {
	title, description, people := f.Values()
	in, err := app.ParseItemInput(title, description, people)
	if err != nil {
		f.opts.logger.Debug("input rejected", "err", err)
		return "", err
	}
	id := f.board.Create(in.Title, in.Description, in.People)
	f.Clear()
	return id, nil
}

// Clear empties every field.
func (f *InputForm) Clear() {
	f.SetValues("", "", "")
}

// Element returns the form node.
func (f *InputForm) Element() *view.Node {
	return f.element
}
