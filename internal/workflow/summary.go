package workflow

import (
	"github.com/shopspring/decimal"

	"quotegen/internal/amountwords"
	"quotegen/internal/domain"
	"quotegen/internal/pricing"
	"quotegen/internal/terms"
)

func (m *Machine) surchargeRaw(d *domain.DraftDocument) string {
	if !m.cfg.Capabilities.HasSurcharge {
		return ""
	}
	return d.Surcharge
}

func (m *Machine) assembleTerms(sel domain.TermsSelection) []string {
	if !m.cfg.Capabilities.HasFixedTermsChecklist {
		sel.Fixed = nil
	}
	return terms.FromSelection(sel)
}

// summarize computes the review figures for a frozen document. Line amounts
// are recomputed from the raw fields rather than trusted from the draft.
func (m *Machine) summarize(doc *domain.SubmittedDocument) (*domain.ReviewSummary, pricing.Totals) {
	amounts := make([]decimal.Decimal, len(doc.Lines))
	lineAmounts := make([]domain.Money, len(doc.Lines))
	for i := range doc.Lines {
		amounts[i] = m.calc.Compute(&doc.Lines[i])
		lineAmounts[i] = domain.NewMoney(amounts[i])
	}

	totals := m.agg.Aggregate(amounts, m.surchargeRaw(&doc.DraftDocument))

	summary := &domain.ReviewSummary{
		LineAmounts:   lineAmounts,
		UntaxedAmount: domain.NewMoney(totals.Untaxed),
		SGST:          domain.NewMoney(totals.SGST),
		CGST:          domain.NewMoney(totals.CGST),
		Total:         domain.NewMoney(totals.Total),
		TotalInWords:  amountwords.Rupees(totals.Total),
		Terms:         m.assembleTerms(doc.Terms),
	}
	if m.cfg.Capabilities.HasSurcharge {
		charge := domain.NewMoney(totals.Surcharge)
		summary.InstallationCharge = &charge
	}
	return summary, totals
}
