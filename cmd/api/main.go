package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ebolat/ekstre/internal/accounts"
	"github.com/ebolat/ekstre/internal/api/handlers"
	"github.com/ebolat/ekstre/internal/api/middleware"
	"github.com/ebolat/ekstre/internal/archive"
	"github.com/ebolat/ekstre/internal/config"
	infraFS "github.com/ebolat/ekstre/internal/infra/firestore"
	"github.com/ebolat/ekstre/internal/ingest"
	"github.com/ebolat/ekstre/internal/jobs"
	"github.com/ebolat/ekstre/internal/jobs/inmemory"
	"github.com/ebolat/ekstre/internal/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Archive.Bucket == "" {
		log.Warn().Msg("No archive bucket configured - raw paste archival disabled")
	}

	ctx := context.Background()

	fsClient, err := infraFS.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer fsClient.Close()

	store := infraFS.NewStore(fsClient)
	registry := accounts.NewRegistry(store, nil)

	var archiver ingest.RawArchiver
	if cfg.Archive.Bucket != "" {
		archiver = archive.NewGCSArchiver(cfg.Archive.Bucket, nil)
	}
	ingestSvc := ingest.NewService(store, archiver, nil)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.Jobs.QueueSize, cfg.Jobs.Workers, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		ingestJob, ok := job.(*jobs.IngestJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", ingestJob.JobID).
			Str("account_id", ingestJob.AccountID).
			Str("bank_type", string(ingestJob.BankType)).
			Msg("Processing ingest job")

		result, err := ingestSvc.Ingest(ctx, ingestJob.UserID, ingestJob.AccountID, ingestJob.BankType, ingestJob.RawText)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", ingestJob.JobID).
				Str("account_id", ingestJob.AccountID).
				Msg("Ingest failed")

			// A paste with no parseable records will never succeed on
			// retry.
			if errors.Is(err, ingest.ErrNoTransactions) {
				return jobs.Permanent(err)
			}
			return err
		}

		ingestJob.Written = result.Written

		log.Info().
			Str("job_id", ingestJob.JobID).
			Int("parsed", result.Parsed).
			Int("written", result.Written).
			Msg("Ingest completed")

		return nil
	}

	go func() {
		log.Info().Int("workers", cfg.Jobs.Workers).Msg("Starting job worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Initialize handlers
	ingestHandler := handlers.NewIngestHandler(registry, jobQueue, log)
	accountsHandler := handlers.NewAccountsHandler(registry, log)
	transactionsHandler := handlers.NewTransactionsHandler(store, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	mux := http.NewServeMux()

	// Ingest endpoint
	mux.HandleFunc("/api/ingest", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ingestHandler.EnqueueIngest(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Accounts endpoints
	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			accountsHandler.ListAccounts(w, r)
		case http.MethodPost:
			accountsHandler.CreateAccount(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/accounts/", func(w http.ResponseWriter, r *http.Request) {
		accountID := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
		if accountID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Account ID is required")
			return
		}

		switch r.Method {
		case http.MethodGet:
			accountsHandler.GetAccount(w, r, accountID)
		case http.MethodPut:
			accountsHandler.UpdateAccount(w, r, accountID)
		case http.MethodDelete:
			accountsHandler.DeleteAccount(w, r, accountID)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Transactions endpoints
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			transactionID := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
			if transactionID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
				return
			}
			transactionsHandler.DeleteTransaction(w, r, transactionID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Jobs endpoints
	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}
	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Server exited")
}
