// Package validator checks a draft for completeness before it may enter review.
package validator

import (
	"quotegen/internal/domain"
)

// Engine runs the required-field rules enabled by a capability set.
type Engine struct {
	lineRules   []*requiredFieldRule
	headerRules []*requiredFieldRule
}

// NewEngine creates an Engine for caps.
func NewEngine(caps domain.Capabilities) *Engine {
	e := &Engine{}
	for _, r := range lineRules() {
		if r.applies(caps) {
			e.lineRules = append(e.lineRules, r)
		}
	}
	for _, r := range headerRules() {
		if r.applies(caps) {
			e.headerRules = append(e.headerRules, r)
		}
	}
	return e
}

// Validate returns every violation in reporting order: each line in index
// order, then the header fields. Header fields are only checked once all
// lines pass. An empty result means the draft may advance.
func (e *Engine) Validate(d *domain.DraftDocument) []Violation {
	var out []Violation
	for i := range d.Lines {
		for _, r := range e.lineRules {
			if v, ok := r.checkLine(i, &d.Lines[i]); !ok {
				out = append(out, v)
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, r := range e.headerRules {
		if v, ok := r.checkHeader(d); !ok {
			out = append(out, v)
		}
	}
	return out
}

// First returns the violation surfaced to the operator, if any.
func (e *Engine) First(d *domain.DraftDocument) (Violation, bool) {
	vs := e.Validate(d)
	if len(vs) == 0 {
		return Violation{}, false
	}
	return vs[0], true
}
