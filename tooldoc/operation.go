package tooldoc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonwraymond/toolalgo/catalog"
)

// FromOperation builds the doc entry of a declared operation. Input
// nicknames and aliases are folded into Notes; each declared example keeps
// its expected result as a JSON ResultHint.
func FromOperation(op catalog.Operation) DocEntry {
	var notes strings.Builder
	notes.WriteString(op.Notes)
	for _, p := range op.Inputs {
		if notes.Len() > 0 {
			notes.WriteByte('\n')
		}
		req := "optional"
		if p.Required {
			req = "required"
		}
		label := p.Name
		if p.Nickname != "" {
			label += " [" + p.Nickname + "]"
		}
		fmt.Fprintf(&notes, "%s (%s %s): %s", label, req, p.Kind, p.Description)
	}
	if len(op.Aliases) > 0 {
		fmt.Fprintf(&notes, "\nAlso callable as: %s", strings.Join(op.Aliases, ", "))
	}

	entry := DocEntry{
		Summary: op.Description,
		Notes:   strings.TrimSpace(notes.String()),
	}
	for i, ex := range op.Examples {
		hint := ""
		if ex.Result != nil {
			if b, err := json.Marshal(ex.Result); err == nil {
				hint = string(b)
			}
		}
		entry.Examples = append(entry.Examples, ToolExample{
			ID:         fmt.Sprintf("%s-%d", op.Name, i+1),
			Title:      ex.Title,
			Args:       ex.Args,
			ResultHint: hint,
		})
	}
	return entry
}
