package render

import "github.com/colonyops/folio/internal/core/document"

// Export wraps a template for final output. Editing affordances are never
// drawn and any excluded span left by the template is dropped.
type Export struct {
	Base Renderer
}

func (e Export) ID() document.TemplateID { return e.Base.ID() }

func (e Export) Render(in Input) Frame {
	in.Editing = false
	return e.Base.Render(in).WithoutExcluded()
}
