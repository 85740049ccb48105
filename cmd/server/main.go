package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"quotegen/internal/config"
	"quotegen/internal/handler"
	"quotegen/internal/pdfdoc"
	"quotegen/internal/port"
	"quotegen/internal/reference"
	"quotegen/internal/router"
	"quotegen/internal/service"
	"quotegen/internal/submitter"
	"quotegen/internal/submitter/httpapi"
	"quotegen/internal/submitter/noop"
	"quotegen/internal/submitter/pdffile"
	"quotegen/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reference data
	var refSource port.ReferenceSource
	if cfg.Reference.XLSXPath != "" {
		refSource = reference.NewXLSXSource(cfg.Reference.XLSXPath)
	}
	catalog, err := reference.Load(ctx, refSource)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	pdfTitle := cfg.Submitter.PDFTitle
	if pdfTitle == "" {
		pdfTitle = cfg.Document.Title()
		cfg.Submitter.PDFTitle = pdfTitle
	}

	// Document submitter
	submitter.RegisterProvider("http", func(c *config.SubmitterConfig) (port.DocumentSubmitter, error) {
		return httpapi.NewSubmitter(c), nil
	})
	submitter.RegisterProvider("noop", func(_ *config.SubmitterConfig) (port.DocumentSubmitter, error) {
		return noop.NewNoopSubmitter(), nil
	})
	submitter.RegisterProvider("pdf", func(c *config.SubmitterConfig) (port.DocumentSubmitter, error) {
		return pdffile.NewSubmitter(c), nil
	})
	docSubmitter, err := submitter.NewSubmitter(&cfg.Submitter)
	if err != nil {
		return fmt.Errorf("failed to initialize submitter: %w", err)
	}

	// Workflow
	wfCfg, err := cfg.Document.WorkflowConfig()
	if err != nil {
		return fmt.Errorf("invalid document config: %w", err)
	}
	machine := workflow.NewMachine(wfCfg, docSubmitter)
	log.Printf("Document kind %s (prefix %s, capabilities %+v), submitter %s",
		cfg.Document.DocumentKind(), wfCfg.DocumentPrefix, wfCfg.Capabilities, cfg.Submitter.Provider)

	// Initialize services
	sessionSvc := service.NewSessionService(machine)
	sweeper := service.NewSessionSweeper(sessionSvc, service.SessionSweeperConfig{
		IdleTimeout:   cfg.Session.IdleTimeout,
		SweepInterval: cfg.Session.SweepInterval,
	})
	go sweeper.Start(ctx)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc, pdfdoc.NewRenderer(pdfTitle))
	referenceH := handler.NewReferenceHandler(catalog)
	healthH := handler.NewHealthHandler(catalog)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, sessionH, referenceH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
