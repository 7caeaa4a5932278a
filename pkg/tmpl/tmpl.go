// Package tmpl renders user supplied text templates such as invoice number
// formats and export commands.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// shellQuote returns a shell-safe quoted string. It wraps the string in single
// quotes and escapes any existing single quotes using the '\" technique.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// pad left-pads n with zeros to width digits.
func pad(width, n int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func formatDate(layout string, t time.Time) string {
	return t.Format(layout)
}

var funcs = template.FuncMap{
	"shq":   shellQuote,
	"join":  strings.Join,
	"pad":   pad,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"date":  formatDate,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: Shell-quote a string for safe use in shell commands
//   - join: Join string slice with separator (e.g., join .Args " ")
//   - pad: Zero-pad a number (e.g., pad 4 .Seq → 0007)
//   - upper, lower: Change the case of a string
//   - date: Format a time with a Go layout (e.g., date "2006-01" .Date)
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
