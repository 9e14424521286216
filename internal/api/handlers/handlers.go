package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ebolat/ekstre/internal/accounts"
	"github.com/ebolat/ekstre/internal/api/middleware"
	"github.com/ebolat/ekstre/internal/jobs"
	"github.com/ebolat/ekstre/internal/ledger"
	"github.com/ebolat/ekstre/internal/parser"
)

// TransactionStore is the slice of the transaction store the API serves
// from.
type TransactionStore interface {
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]*ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// IngestHandler handles statement ingestion endpoints.
type IngestHandler struct {
	registry  *accounts.Registry
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(registry *accounts.Registry, publisher jobs.Publisher, log zerolog.Logger) *IngestHandler {
	return &IngestHandler{
		registry:  registry,
		publisher: publisher,
		log:       log,
	}
}

// EnqueueIngest handles POST /api/ingest
func (h *IngestHandler) EnqueueIngest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"user_id"`
		AccountID string `json:"account_id"`
		BankType  string `json:"bank_type"`
		RawText   string `json:"raw_text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AccountID == "" || req.RawText == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account_id and raw_text are required")
		return
	}

	bankType, err := parser.ParseBankType(req.BankType)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	// Reject pastes against unknown accounts before queueing.
	if _, err := h.registry.Get(ctx, req.AccountID); err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}

	job := &jobs.IngestJob{
		UserID:    req.UserID,
		AccountID: req.AccountID,
		BankType:  bankType,
		RawText:   req.RawText,
	}

	if err := h.publisher.PublishIngest(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue ingest job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue ingest job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("account_id", req.AccountID).
		Str("bank_type", string(bankType)).
		Msg("Ingest job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id":     job.JobID,
		"account_id": req.AccountID,
		"status":     string(job.Status),
	})
}

// AccountsHandler handles bank account registry endpoints.
type AccountsHandler struct {
	registry *accounts.Registry
	log      zerolog.Logger
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(registry *accounts.Registry, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{
		registry: registry,
		log:      log,
	}
}

// CreateAccount handles POST /api/accounts
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"user_id"`
		BankName    string `json:"bank_name"`
		AccountName string `json:"account_name"`
		IBAN        string `json:"iban"`
		Currency    string `json:"currency"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.registry.Create(r.Context(), accounts.CreateParams{
		UserID:      req.UserID,
		BankName:    req.BankName,
		AccountName: req.AccountName,
		IBAN:        req.IBAN,
		Currency:    req.Currency,
	})
	if err != nil {
		var verr *accounts.ValidationError
		if errors.As(err, &verr) {
			middleware.WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.log.Error().Err(err).Msg("Failed to create account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, account)
}

// ListAccounts handles GET /api/accounts
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	accs, err := h.registry.List(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	if accs == nil {
		accs = []*ledger.Account{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accs,
		"count":    len(accs),
	})
}

// GetAccount handles GET /api/accounts/{id}
func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	account, err := h.registry.Get(r.Context(), accountID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, account)
}

// UpdateAccount handles PUT /api/accounts/{id}
func (h *AccountsHandler) UpdateAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	var req struct {
		BankName    *string `json:"bank_name"`
		AccountName *string `json:"account_name"`
		IBAN        *string `json:"iban"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.registry.Update(r.Context(), accountID, accounts.UpdateParams{
		BankName:    req.BankName,
		AccountName: req.AccountName,
		IBAN:        req.IBAN,
	})
	if err != nil {
		var verr *accounts.ValidationError
		if errors.As(err, &verr) {
			middleware.WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.log.Error().Err(err).Str("account_id", accountID).Msg("Failed to update account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/accounts/{id}
func (h *AccountsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	deleted, err := h.registry.Delete(r.Context(), accountID)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", accountID).Msg("Failed to delete account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	h.log.Info().
		Str("account_id", accountID).
		Int("deleted_transactions", deleted).
		Msg("Account deleted")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"account_id":           accountID,
		"deleted_transactions": deleted,
	})
}

// TransactionsHandler handles transaction endpoints.
type TransactionsHandler struct {
	store TransactionStore
	log   zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(store TransactionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		store: store,
		log:   log,
	}
}

// ListTransactions handles GET /api/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	txs, err := h.store.ListTransactionsByAccount(r.Context(), accountID)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", accountID).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	if txs == nil {
		txs = []*ledger.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, transactionID string) {
	if err := h.store.DeleteTransaction(r.Context(), transactionID); err != nil {
		h.log.Error().Err(err).Str("transaction_id", transactionID).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"transaction_id": transactionID,
		"status":         "deleted",
	})
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		AccountID: query.Get("account_id"),
		Status:    jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
