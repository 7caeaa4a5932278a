package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/folio/internal/core/document"
)

// builder accumulates lines. Spans added inside region carry its target.
type builder struct {
	width  int
	lines  []Line
	target *document.ClickTarget
}

func newBuilder(width int) *builder {
	return &builder{width: width}
}

// region runs fn with every span it adds pointing at t.
func (b *builder) region(t document.ClickTarget, fn func()) {
	prev := b.target
	b.target = &t
	fn()
	b.target = prev
}

func (b *builder) span(style lipgloss.Style, text string) Span {
	return Span{Text: text, Style: style, Target: b.target}
}

func (b *builder) raw(text string) Span {
	return Span{Text: text, Target: b.target, Raw: true}
}

// affordance returns an excluded span. Affordances only ever end a line or
// fill it, so dropping them never shifts content.
func (b *builder) affordance(style lipgloss.Style, text string) Span {
	return Span{Text: text, Style: style, Target: b.target, Exclude: true}
}

func (b *builder) pad(n int) Span {
	return Span{Text: strings.Repeat(" ", max(0, n)), Target: b.target}
}

func (b *builder) line(spans ...Span) {
	b.lines = append(b.lines, Line(spans))
}

func (b *builder) blank() {
	b.lines = append(b.lines, Line{})
}

// text adds s wrapped to the frame width, one line per row.
func (b *builder) text(style lipgloss.Style, s string) {
	for _, l := range wrap(s, b.width) {
		b.line(b.span(style, l))
	}
}

// aligned adds a single line aligned within the frame width.
func (b *builder) aligned(style lipgloss.Style, s string, align document.Align) {
	b.line(b.span(style, fit(s, b.width, align)))
}

// rule adds a horizontal rule across the frame.
func (b *builder) rule(style lipgloss.Style) {
	b.line(b.span(style, strings.Repeat("─", max(0, b.width))))
}

// columns merges two column blocks side by side. Shorter sides are padded;
// left padding keeps the target of the left side.
func (b *builder) columns(left, right []Line, leftWidth int) {
	n := max(len(left), len(right))
	for i := range n {
		var row Line
		var target *document.ClickTarget
		if i < len(left) {
			row = append(row, left[i]...)
			if len(left[i]) > 0 {
				target = left[i][0].Target
			}
		}
		gap := leftWidth - row.Width()
		if gap > 0 {
			row = append(row, Span{Text: strings.Repeat(" ", gap), Target: target})
		}
		if i < len(right) {
			row = append(row, right[i]...)
		}
		b.lines = append(b.lines, row)
	}
}

func (b *builder) frame() Frame {
	return Frame{Lines: b.lines, Width: b.width}
}

// sub returns a builder for a column of width w sharing the current target.
func (b *builder) sub(w int) *builder {
	return &builder{width: w, target: b.target}
}
