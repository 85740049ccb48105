package validator

import (
	"fmt"
	"strings"
)

// Violation is a single missing-field finding on a draft.
type Violation struct {
	RuleKey   string `json:"ruleKey"`
	FieldPath string `json:"fieldPath"`
	Field     string `json:"field"`
	Line      int    `json:"line,omitempty"`
	Message   string `json:"message"`
}

func (v Violation) Error() string { return v.Message }

// blank reports whether s is empty after trimming surrounding whitespace.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func lineMessage(line int, field string) string {
	return fmt.Sprintf("Material %d: %s is required.", line, field)
}

func headerMessage(field string) string {
	return fmt.Sprintf("%s is required.", field)
}
