// Package terms builds the final terms and conditions list of a document.
package terms

import (
	"strings"

	"quotegen/internal/domain"
)

// Assemble returns the fixed terms whose index-aligned flag is true, followed
// by the non-blank custom terms. A fixed term without a flag is excluded.
func Assemble(fixed []string, included []bool, custom []string) []string {
	out := make([]string, 0, len(fixed)+len(custom))
	for i, text := range fixed {
		if i < len(included) && included[i] {
			out = append(out, text)
		}
	}
	for _, text := range custom {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

// FromSelection assembles a TermsSelection.
func FromSelection(sel domain.TermsSelection) []string {
	fixed := make([]string, len(sel.Fixed))
	included := make([]bool, len(sel.Fixed))
	for i, ft := range sel.Fixed {
		fixed[i] = ft.Text
		included[i] = ft.Included
	}
	return Assemble(fixed, included, sel.Custom)
}

// NewSelection returns a selection with every fixed term included and one
// empty custom row ready for editing.
func NewSelection(fixed []string) domain.TermsSelection {
	sel := domain.TermsSelection{Custom: []string{""}}
	for _, text := range fixed {
		sel.Fixed = append(sel.Fixed, domain.FixedTerm{Text: text, Included: true})
	}
	return sel
}
