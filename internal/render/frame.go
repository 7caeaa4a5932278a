// Package render turns a document snapshot into a read-only, clickable text
// view. Every region of the view that maps to an editable part of the
// document carries a click target; editing affordances are marked so the
// export view can drop them.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/folio/internal/core/document"
)

// Span is a run of text on a single line.
type Span struct {
	Text   string
	Style  lipgloss.Style
	Target *document.ClickTarget
	// Exclude marks editing affordances that export output omits.
	Exclude bool
	// Raw spans already carry ANSI styling and are written as is.
	Raw bool
}

// Width returns the display width of the span.
func (s Span) Width() int {
	return ansi.StringWidth(s.Text)
}

// Line is a row of spans.
type Line []Span

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += s.Width()
	}
	return w
}

// Frame is a rendered document.
type Frame struct {
	Lines []Line
	Width int
}

// String renders the frame with styles applied.
func (f Frame) String() string {
	var sb strings.Builder
	for i, line := range f.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range line {
			if s.Raw {
				sb.WriteString(s.Text)
				continue
			}
			sb.WriteString(s.Style.Render(s.Text))
		}
	}
	return sb.String()
}

// Plain renders the frame without any styling. Trailing spaces are trimmed.
func (f Frame) Plain() string {
	lines := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		var sb strings.Builder
		for _, s := range line {
			sb.WriteString(ansi.Strip(s.Text))
		}
		lines[i] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// HitTest returns the click target under the cell at column x of line y.
func (f Frame) HitTest(x, y int) (document.ClickTarget, bool) {
	if y < 0 || y >= len(f.Lines) || x < 0 {
		return document.ClickTarget{}, false
	}
	col := 0
	for _, s := range f.Lines[y] {
		w := s.Width()
		if x < col+w {
			if s.Target == nil {
				return document.ClickTarget{}, false
			}
			return *s.Target, true
		}
		col += w
	}
	return document.ClickTarget{}, false
}

// WithoutExcluded returns a copy of f without editing affordances. Lines that
// only held excluded spans are dropped.
func (f Frame) WithoutExcluded() Frame {
	out := Frame{Width: f.Width, Lines: make([]Line, 0, len(f.Lines))}
	for _, line := range f.Lines {
		kept := make(Line, 0, len(line))
		dropped := false
		for _, s := range line {
			if s.Exclude {
				dropped = true
				continue
			}
			kept = append(kept, s)
		}
		if dropped && len(kept) == 0 {
			continue
		}
		out.Lines = append(out.Lines, kept)
	}
	return out
}

// Targets returns the distinct click targets in the frame in first-seen order.
func (f Frame) Targets() []document.ClickTarget {
	var out []document.ClickTarget
	seen := map[document.ClickTarget]bool{}
	for _, line := range f.Lines {
		for _, s := range line {
			if s.Target == nil || seen[*s.Target] {
				continue
			}
			seen[*s.Target] = true
			out = append(out, *s.Target)
		}
	}
	return out
}
