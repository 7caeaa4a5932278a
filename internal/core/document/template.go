package document

// TemplateID names the visual template a document is rendered with. The id
// travels with the document; totals and block order do not depend on it.
type TemplateID string

const (
	TemplateClassic TemplateID = "classic"
	TemplateModern  TemplateID = "modern"
)

// TemplateIDs lists the built-in templates.
var TemplateIDs = []TemplateID{TemplateClassic, TemplateModern}

// IsValid reports whether id is a built-in template.
func (id TemplateID) IsValid() bool {
	switch id {
	case TemplateClassic, TemplateModern:
		return true
	}
	return false
}
