// Package toolbar builds the Markdown snippets inserted by the editor's
// formatting buttons.
package toolbar

import (
	"fmt"
	"strings"
)

// Action is a formatting button.
type Action string

const (
	Bold   Action = "bold"
	Italic Action = "italic"
	Header Action = "header"
	List   Action = "list"
	Code   Action = "code"
	Link   Action = "link"
)

// Actions lists the known actions in toolbar order.
var Actions = []Action{Bold, Italic, Header, List, Code, Link}

// LinkPlaceholderURL is the URL inserted by the link action.
const LinkPlaceholderURL = "https://example.com"

// ParseAction validates an action name.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown toolbar action %q", name)
}

// Snippet returns the text inserted for action around the selected text.
// An empty selection is replaced by the action's default text; an unknown
// action returns the selection unchanged.
func Snippet(action Action, selected string) string {
	or := func(def string) string {
		if selected == "" {
			return def
		}
		return selected
	}
	switch action {
	case Bold:
		return "**" + or("bold text") + "**"
	case Italic:
		return "*" + or("italic text") + "*"
	case Header:
		return "# " + or("Header")
	case List:
		return "- " + or("List item")
	case Code:
		return "`" + or("code") + "`"
	case Link:
		return "[" + or("link text") + "](" + LinkPlaceholderURL + ")"
	default:
		return selected
	}
}

// Apply replaces the selection [start, end) of text, counted in runes, with
// the action's snippet. It returns the new text and the caret position just
// after the inserted snippet. Offsets are clamped to the text and swapped
// when reversed.
func Apply(text string, start, end int, action Action) (string, int) {
	runes := []rune(text)
	start = clamp(start, len(runes))
	end = clamp(end, len(runes))
	if start > end {
		start, end = end, start
	}

	insert := []rune(Snippet(action, string(runes[start:end])))
	out := make([]rune, 0, len(runes)-(end-start)+len(insert))
	out = append(out, runes[:start]...)
	out = append(out, insert...)
	out = append(out, runes[end:]...)
	return string(out), start + len(insert)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
