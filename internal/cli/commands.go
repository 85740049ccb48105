package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quotegen/internal/csvexport"
	"quotegen/internal/domain"
	"quotegen/internal/draftfile"
	"quotegen/internal/pdfdoc"
	"quotegen/internal/submitter"
	"quotegen/internal/workflow"
)

func newInitCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an empty draft for the configured document kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.machine(nil)
			if err != nil {
				return err
			}
			f := draftfile.FromDraft(m.New().Draft)
			if out == "" {
				return draftfile.Encode(cmd.OutOrStdout(), f)
			}
			var buf bytes.Buffer
			if err := draftfile.Encode(&buf, f); err != nil {
				return err
			}
			return os.WriteFile(out, buf.Bytes(), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the draft to a file instead of stdout")
	return cmd
}

func newReviewCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "review DRAFT",
		Short: "Validate a draft and print its computed summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.machine(nil)
			if err != nil {
				return err
			}
			s, err := a.reviewed(m, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s.Summary)
			}
			printSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "render DRAFT",
		Short: "Review a draft and render it as a PDF or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "pdf" && format != "csv" {
				return fmt.Errorf("unsupported format %q (want pdf or csv)", format)
			}

			m, err := a.machine(nil)
			if err != nil {
				return err
			}
			s, err := a.reviewed(m, args[0])
			if err != nil {
				return err
			}
			payload, err := m.Payload(s)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if format == "pdf" {
				err = pdfdoc.NewRenderer(a.pdfTitle()).Render(&buf, payload)
			} else {
				err = writeCSV(&buf, payload)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.TrimSuffix(csvexport.BuildFilename(payload.QuotationNo, payload.RecipientName), ".csv") + "." + format
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", out, payload.QuotationNo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default <number>_<customer>.<format>)")
	cmd.Flags().StringVar(&format, "format", "pdf", "Output format: pdf or csv")
	return cmd
}

func newSubmitCmd(a *app) *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "submit DRAFT",
		Short: "Review a draft and send it to the document service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider != "" {
				a.cfg.Submitter.Provider = provider
			}
			if a.cfg.Submitter.PDFTitle == "" {
				a.cfg.Submitter.PDFTitle = a.pdfTitle()
			}

			registerProviders()
			sub, err := submitter.NewSubmitter(&a.cfg.Submitter)
			if err != nil {
				return err
			}
			m, err := a.machine(sub)
			if err != nil {
				return err
			}
			s, err := a.reviewed(m, args[0])
			if err != nil {
				return err
			}

			s, err = m.Submit(cmd.Context(), s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s\n", s.Submission.DocumentNumber)
			if len(s.Submission.Response) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.Submission.Response)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "Submitter provider (http, noop or pdf); overrides QUOTEGEN_SUBMITTER_PROVIDER")
	return cmd
}

func printSummary(w io.Writer, s workflow.Session) {
	doc, sum := s.Snapshot, s.Summary
	fmt.Fprintf(w, "Customer:  %s, %s\n", doc.CustomerName, doc.Place)
	if doc.GSTIN != "" {
		fmt.Fprintf(w, "GSTIN:     %s\n", doc.GSTIN)
	}
	fmt.Fprintf(w, "Date:      %s\n", doc.Date)
	for i, line := range doc.Lines {
		fmt.Fprintf(w, "  %d. %-24s %12s\n", i+1, line.Description, sum.LineAmounts[i].StringFixed(2))
	}
	if sum.InstallationCharge != nil {
		fmt.Fprintf(w, "Installation:  %s\n", sum.InstallationCharge.StringFixed(2))
	}
	fmt.Fprintf(w, "Untaxed:   %s\n", sum.UntaxedAmount.StringFixed(2))
	fmt.Fprintf(w, "SGST:      %s\n", sum.SGST.StringFixed(2))
	fmt.Fprintf(w, "CGST:      %s\n", sum.CGST.StringFixed(2))
	fmt.Fprintf(w, "Total:     %s\n", sum.Total.StringFixed(2))
	fmt.Fprintf(w, "           %s\n", sum.TotalInWords)
	for _, t := range sum.Terms {
		fmt.Fprintf(w, "  - %s\n", t)
	}
}

func writeCSV(w io.Writer, payload *domain.InvoicePayload) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteItems(payload.Items); err != nil {
		return err
	}
	if err := cw.WriteSummary(payload); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
