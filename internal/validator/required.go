package validator

import (
	"fmt"

	"quotegen/internal/domain"
)

// requiredFieldRule checks that a field is present as text.
// Numeric fields are not parsed here.
type requiredFieldRule struct {
	ruleKey     string
	fieldName   string
	fieldPath   string
	applies     func(domain.Capabilities) bool
	extract     func(*domain.DraftDocument) string
	extractLine func(*domain.MaterialLine) string
}

func always(domain.Capabilities) bool { return true }

func withDiscountTax(c domain.Capabilities) bool { return c.HasDiscountTax }

func withTaxID(c domain.Capabilities) bool { return c.HasTaxID }

func (r *requiredFieldRule) checkLine(idx int, line *domain.MaterialLine) (Violation, bool) {
	if !blank(r.extractLine(line)) {
		return Violation{}, true
	}
	return Violation{
		RuleKey:   r.ruleKey,
		FieldPath: fmt.Sprintf("materials[%d].%s", idx, r.fieldPath),
		Field:     r.fieldName,
		Line:      idx + 1,
		Message:   lineMessage(idx+1, r.fieldName),
	}, false
}

func (r *requiredFieldRule) checkHeader(d *domain.DraftDocument) (Violation, bool) {
	if !blank(r.extract(d)) {
		return Violation{}, true
	}
	return Violation{
		RuleKey:   r.ruleKey,
		FieldPath: r.fieldPath,
		Field:     r.fieldName,
		Message:   headerMessage(r.fieldName),
	}, false
}

// lineRules are evaluated per material line, in this order.
func lineRules() []*requiredFieldRule {
	return []*requiredFieldRule{
		{
			ruleKey: "req.line.description", fieldName: "Description", fieldPath: "description",
			applies: always, extractLine: func(l *domain.MaterialLine) string { return l.Description },
		},
		{
			ruleKey: "req.line.hsn", fieldName: "HSN", fieldPath: "hsn",
			applies: always, extractLine: func(l *domain.MaterialLine) string { return l.HSN },
		},
		{
			ruleKey: "req.line.qty", fieldName: "Quantity", fieldPath: "qty",
			applies: always, extractLine: func(l *domain.MaterialLine) string { return l.Quantity },
		},
		{
			ruleKey: "req.line.unit_price", fieldName: "Unit Price", fieldPath: "unitPrice",
			applies: always, extractLine: func(l *domain.MaterialLine) string { return l.UnitPrice },
		},
		{
			ruleKey: "req.line.discount", fieldName: "Discount", fieldPath: "discount",
			applies: withDiscountTax, extractLine: func(l *domain.MaterialLine) string { return l.Discount },
		},
		{
			ruleKey: "req.line.taxes", fieldName: "Taxes", fieldPath: "taxes",
			applies: withDiscountTax, extractLine: func(l *domain.MaterialLine) string { return l.Tax },
		},
	}
}

// headerRules are evaluated after every line passes.
func headerRules() []*requiredFieldRule {
	return []*requiredFieldRule{
		{
			ruleKey: "req.customer_name", fieldName: "Customer Name", fieldPath: "customerName",
			applies: always, extract: func(d *domain.DraftDocument) string { return d.CustomerName },
		},
		{
			ruleKey: "req.place", fieldName: "Place", fieldPath: "place",
			applies: always, extract: func(d *domain.DraftDocument) string { return d.Place },
		},
		{
			ruleKey: "req.gstin", fieldName: "GSTIN", fieldPath: "gstin",
			applies: withTaxID, extract: func(d *domain.DraftDocument) string { return d.GSTIN },
		},
	}
}
