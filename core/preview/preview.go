// Package preview implements the live-preview Markdown renderer.
//
// Rendering is a fixed, ordered chain of pattern substitutions over the
// escaped input text:
//
//  1. escape & < >
//  2. headings, longest marker first (###### down to #)
//  3. bold **x**
//  4. italic *x* (after bold, which consumes the double markers)
//  5. inline code `x`
//  6. links [label](url)
//  7. list items "- x", then adjacent lists are merged
//  8. a single trailing newline becomes <br>
//
// The result is trimmed. Unmatched markers stay in the output as literal
// (escaped) text. Escaping runs once, so rendering already rendered output
// escapes the tags of the first pass.
package preview

import (
	"regexp"
	"strings"
)

// Placeholder is returned for empty or whitespace-only input.
const Placeholder = "<em>Live preview will appear here...</em>"

// Rule is one substitution step of the renderer.
type Rule struct {
	Name    string
	pattern *regexp.Regexp
	repl    string
}

// Pattern returns the rule's regular expression source.
func (r Rule) Pattern() string {
	return r.pattern.String()
}

// Apply runs the rule over s, replacing every match.
func (r Rule) Apply(s string) string {
	return r.pattern.ReplaceAllString(s, r.repl)
}

func rule(name, pattern, repl string) Rule {
	return Rule{Name: name, pattern: regexp.MustCompile(pattern), repl: repl}
}

// Capture groups use [^\r\n] instead of "." so a span never runs across a
// line break, whatever the line ending.
var rules = []Rule{
	rule("escape-amp", `&`, "&amp;"),
	rule("escape-lt", `<`, "&lt;"),
	rule("escape-gt", `>`, "&gt;"),

	rule("h6", `(?m)^###### ([^\r\n]*)`, "<h6>${1}</h6>"),
	rule("h5", `(?m)^##### ([^\r\n]*)`, "<h5>${1}</h5>"),
	rule("h4", `(?m)^#### ([^\r\n]*)`, "<h4>${1}</h4>"),
	rule("h3", `(?m)^### ([^\r\n]*)`, "<h3>${1}</h3>"),
	rule("h2", `(?m)^## ([^\r\n]*)`, "<h2>${1}</h2>"),
	rule("h1", `(?m)^# ([^\r\n]*)`, "<h1>${1}</h1>"),

	rule("bold", `\*\*([^\r\n]*?)\*\*`, "<strong>${1}</strong>"),
	rule("italic", `\*([^\r\n]*?)\*`, "<em>${1}</em>"),
	rule("code", "`([^\r\n]*?)`", "<code>${1}</code>"),
	rule("link", `\[([^\r\n]*?)\]\(([^\r\n]*?)\)`, `<a href="${2}" target="_blank" rel="noopener">${1}</a>`),

	rule("list-item", `(?m)^- ([^\r\n]*)`, "<ul><li>${1}</li></ul>"),
	rule("list-merge", `</ul>\s*<ul>`, ""),

	rule("trailing-newline", `\n\z`, "<br>"),
}

// Rules returns the substitution rules in the order they are applied.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Render converts note text into an HTML fragment. It never fails.
func Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return Placeholder
	}
	html := text
	for _, r := range rules {
		html = r.Apply(html)
	}
	return strings.TrimSpace(html)
}

// Renderer is the core.Previewer backed by Render.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts note text into an HTML fragment.
func (r *Renderer) Render(text string) string {
	return Render(text)
}
