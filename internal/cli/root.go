// Package cli implements quotegenctl, a command line front end that drives the
// document workflow from draft files instead of an interactive session.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quotegen/internal/config"
	"quotegen/internal/draftfile"
	"quotegen/internal/port"
	"quotegen/internal/submitter"
	"quotegen/internal/submitter/httpapi"
	"quotegen/internal/submitter/noop"
	"quotegen/internal/submitter/pdffile"
	"quotegen/internal/workflow"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type app struct {
	cfg     *config.Config
	kind    string
	verbose bool
	now     func() time.Time
}

// NewRootCommand builds the quotegenctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "quotegenctl",
		Short: "Review, render and submit invoices and quotations from draft files",
		Long: `quotegenctl replays a YAML or JSON draft through the same edit, review and
submit workflow the HTTP API uses.

Example Usage:
  quotegenctl init > draft.yaml
  quotegenctl review draft.yaml
  quotegenctl render draft.yaml --out quote.pdf
  quotegenctl submit draft.yaml --provider pdf`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.kind, "kind", "", "Document kind (invoice or quotation); overrides QUOTEGEN_DOCUMENT_KIND")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newInitCmd(a),
		newReviewCmd(a),
		newRenderCmd(a),
		newSubmitCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.kind != "" {
		cfg.Document.Kind = a.kind
	}
	if !a.verbose {
		log.SetOutput(io.Discard)
	}
	a.cfg = cfg
	return nil
}

// machine builds a workflow machine for the configured document kind.
func (a *app) machine(sub port.DocumentSubmitter) (*workflow.Machine, error) {
	wfCfg, err := a.cfg.Document.WorkflowConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid document config: %w", err)
	}
	return workflow.NewMachine(wfCfg, sub, workflow.WithClock(a.now)), nil
}

// reviewed loads a draft file and takes it through review.
func (a *app) reviewed(m *workflow.Machine, path string) (workflow.Session, error) {
	f, err := draftfile.Read(path)
	if err != nil {
		return workflow.Session{}, err
	}
	s, err := draftfile.Apply(m, f)
	if err != nil {
		return s, err
	}
	return m.Review(s)
}

func (a *app) pdfTitle() string {
	if a.cfg.Submitter.PDFTitle != "" {
		return a.cfg.Submitter.PDFTitle
	}
	return a.cfg.Document.Title()
}

func registerProviders() {
	submitter.RegisterProvider("http", func(c *config.SubmitterConfig) (port.DocumentSubmitter, error) {
		return httpapi.NewSubmitter(c), nil
	})
	submitter.RegisterProvider("noop", func(_ *config.SubmitterConfig) (port.DocumentSubmitter, error) {
		return noop.NewNoopSubmitter(), nil
	})
	submitter.RegisterProvider("pdf", func(c *config.SubmitterConfig) (port.DocumentSubmitter, error) {
		return pdffile.NewSubmitter(c), nil
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quotegenctl %s\n", Version)
		},
	}
}
