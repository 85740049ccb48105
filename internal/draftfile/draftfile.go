// Package draftfile reads and writes document drafts as YAML (or JSON) files
// so a document can be prepared offline and replayed through the workflow.
package draftfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"quotegen/internal/domain"
	"quotegen/internal/workflow"
)

// Line is one material row of a draft file.
type Line struct {
	Description string `yaml:"description"`
	HSN         string `yaml:"hsn"`
	Qty         string `yaml:"qty"`
	UnitPrice   string `yaml:"unitPrice"`
	Discount    string `yaml:"discount,omitempty"`
	Taxes       string `yaml:"taxes,omitempty"`
}

// File is the on-disk form of a draft. Empty header fields keep the workflow
// defaults when applied.
type File struct {
	CustomerName       string `yaml:"customerName"`
	Place              string `yaml:"place"`
	Date               string `yaml:"date,omitempty"`
	GSTIN              string `yaml:"gstin,omitempty"`
	InstallationCharge string `yaml:"installationCharge,omitempty"`
	PaymentTerm        string `yaml:"paymentTerm,omitempty"`
	Materials          []Line `yaml:"materials"`

	// FixedTerms holds inclusion flags for the configured fixed terms, by index.
	FixedTerms []bool   `yaml:"fixedTerms,omitempty"`
	Terms      []string `yaml:"terms,omitempty"`
}

// Decode parses a draft. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("draft file is empty")
		}
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return &f, nil
}

// Read decodes the draft file at path.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading draft file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	return enc.Close()
}

// FromDraft converts a workflow draft to its file form.
func FromDraft(d domain.DraftDocument) *File {
	f := &File{
		CustomerName:       d.CustomerName,
		Place:              d.Place,
		Date:               d.Date,
		GSTIN:              d.GSTIN,
		InstallationCharge: d.Surcharge,
		PaymentTerm:        d.PaymentTerm,
		Materials:          make([]Line, len(d.Lines)),
		Terms:              append([]string(nil), d.Terms.Custom...),
	}
	for i, l := range d.Lines {
		f.Materials[i] = Line{
			Description: l.Description,
			HSN:         l.HSN,
			Qty:         l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Taxes:       l.Tax,
		}
	}
	for _, ft := range d.Terms.Fixed {
		f.FixedTerms = append(f.FixedTerms, ft.Included)
	}
	return f
}

// Apply replays f onto a fresh session of m, one edit at a time, so every
// rule an interactive operator is held to applies here too. The returned
// session is still in the editing state.
func Apply(m *workflow.Machine, f *File) (workflow.Session, error) {
	s := m.New()

	header := workflow.HeaderUpdate{
		CustomerName: &f.CustomerName,
		Place:        &f.Place,
	}
	if f.Date != "" {
		header.Date = &f.Date
	}
	if f.GSTIN != "" {
		header.GSTIN = &f.GSTIN
	}
	if f.InstallationCharge != "" {
		header.Surcharge = &f.InstallationCharge
	}
	if f.PaymentTerm != "" {
		header.PaymentTerm = &f.PaymentTerm
	}
	s, err := m.UpdateHeader(s, header)
	if err != nil {
		return s, fmt.Errorf("header: %w", err)
	}

	for i, l := range f.Materials {
		if i >= len(s.Draft.Lines) {
			if s, err = m.AddLine(s); err != nil {
				return s, err
			}
		}
		fields := []struct {
			field domain.LineField
			value string
		}{
			{domain.LineFieldDescription, l.Description},
			{domain.LineFieldHSN, l.HSN},
			{domain.LineFieldQuantity, l.Qty},
			{domain.LineFieldUnitPrice, l.UnitPrice},
			{domain.LineFieldDiscount, l.Discount},
			{domain.LineFieldTax, l.Taxes},
		}
		for _, fv := range fields {
			if s, err = m.UpdateLine(s, i, fv.field, fv.value); err != nil {
				return s, fmt.Errorf("material %d %s: %w", i+1, fv.field, err)
			}
		}
	}

	// A fresh session starts with one empty line; drop it when the file has none.
	for len(s.Draft.Lines) > len(f.Materials) {
		if s, err = m.RemoveLine(s, len(s.Draft.Lines)-1); err != nil {
			return s, err
		}
	}

	for i, text := range f.Terms {
		if i >= len(s.Draft.Terms.Custom) {
			if s, err = m.AddTerm(s); err != nil {
				return s, err
			}
		}
		if s, err = m.SetTerm(s, i, text); err != nil {
			return s, fmt.Errorf("term %d: %w", i+1, err)
		}
	}

	for i, included := range f.FixedTerms {
		if s, err = m.SetFixedTerm(s, i, included); err != nil {
			return s, fmt.Errorf("fixed term %d: %w", i+1, err)
		}
	}

	return s, nil
}
