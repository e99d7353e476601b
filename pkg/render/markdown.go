package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Markdown renders a primitive stream as a Markdown document: groups become headings
// or bold captions, lists become nested bullets and widgets describe the expected answer.
func Markdown(ops []domain.Op) string {
	var b strings.Builder
	depth := 0  // list nesting
	groups := 0 // group nesting
	item := false

	indent := func() string {
		if depth <= 1 {
			return ""
		}
		return strings.Repeat("  ", depth-1)
	}
	line := func(text string) {
		if item {
			b.WriteString(indent() + "- " + text + "\n")
			item = false
			return
		}
		b.WriteString(indent() + "  " + text + "\n")
	}

	for _, op := range ops {
		switch op.Kind {
		case domain.OpOpenGroup:
			groups++
			if op.Text == "" {
				continue
			}
			if depth == 0 {
				b.WriteString(strings.Repeat("#", min(groups+1, 6)) + " " + op.Text + "\n\n")
			} else {
				line("**" + op.Text + "**")
			}
		case domain.OpCloseGroup:
			groups--
		case domain.OpOpenList:
			depth++
		case domain.OpCloseList:
			depth--
			if depth == 0 {
				b.WriteString("\n")
			}
		case domain.OpOpenItem:
			item = true
		case domain.OpCloseItem:
			item = false
		case domain.OpText:
			line(op.Text)
		case domain.OpChoice:
			codes := make([]string, len(op.Options))
			for i, o := range op.Options {
				codes[i] = fmt.Sprintf("`%s` %s", o.Code, o.Label)
			}
			line(fmt.Sprintf("**%s**: choose one of %s", op.Field, strings.Join(codes, ", ")))
		case domain.OpEntry:
			line(fmt.Sprintf("**%s**: _enter a value_", op.Field))
		}
	}
	return b.String()
}
