package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Dan9191/ledger-service/internal/models"
	"github.com/Dan9191/ledger-service/internal/repository"
	"github.com/Dan9191/ledger-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	contentTypeText = "text/plain; charset=UTF-8"
	contentTypeJSON = "application/json; charset=UTF-8"
)

// LedgerService is the part of service.Service the handlers call
type LedgerService interface {
	SetupDatabase(ctx context.Context) service.Result
	DropDatabase(ctx context.Context) service.Result
	TestDatabase(ctx context.Context) (repository.Connectivity, service.Result)
	SeedAll(ctx context.Context) (*service.SeedReport, error)
	CreateAccount(ctx context.Context, body []byte) service.Result
	CreateStatement(ctx context.Context, body []byte) service.Result
	CreateTransactionType(ctx context.Context, body []byte) service.Result
	CreateTransaction(ctx context.Context, body []byte) service.Result
	FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionDocument, *models.ErrorDocument)
}

type Handler struct {
	svc LedgerService
	log *logrus.Logger
}

func NewHandler(svc LedgerService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register attaches the ledger routes to r
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/hi", h.Hi).Methods(http.MethodGet)
	r.HandleFunc("/db", h.Database).Methods(http.MethodPost)
	r.HandleFunc("/accounts/create", h.CreateAccount).Methods(http.MethodPost)
	r.HandleFunc("/statements/create", h.CreateStatement).Methods(http.MethodPost)
	r.HandleFunc("/transactions/type/create", h.CreateTransactionType).Methods(http.MethodPost)
	r.HandleFunc("/transactions/create", h.CreateTransaction).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{accountId}/transactions", h.FindTransactionsByAccount).Methods(http.MethodGet)
}

// Hi answers with a plain-text greeting
func (h *Handler) Hi(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Hi from the ledger service!")
}

type databaseRequest struct {
	Action string `json:"action"`
}

// Database runs a schema or seed action named in the request body
func (h *Handler) Database(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var req databaseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeText(w, http.StatusBadRequest, "Failed to parse request. Error: "+err.Error())
		return
	}

	ctx := queryContext(r)
	switch req.Action {
	case "setup":
		writeResult(w, h.svc.SetupDatabase(ctx))
	case "drop":
		writeResult(w, h.svc.DropDatabase(ctx))
	case "fill":
		report, err := h.svc.SeedAll(ctx)
		if err != nil {
			writeText(w, http.StatusInternalServerError, report.String())
			return
		}
		writeText(w, http.StatusOK, report.String())
	case "test":
		_, result := h.svc.TestDatabase(ctx)
		writeResult(w, result)
	case "":
		writeText(w, http.StatusBadRequest, "Action is missing")
	default:
		writeText(w, http.StatusBadRequest, "Unknown action: "+req.Action)
	}
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.CreateAccount)
}

// CreateStatement handles statement creation
func (h *Handler) CreateStatement(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.CreateStatement)
}

// CreateTransactionType handles transaction type creation
func (h *Handler) CreateTransactionType(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.CreateTransactionType)
}

// CreateTransaction handles transaction creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.CreateTransaction)
}

// FindTransactionsByAccount lists the transactions booked on an own account number
func (h *Handler) FindTransactionsByAccount(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["accountId"]

	docs, errDoc := h.svc.FindTransactionsByAccount(queryContext(r), accountNumber)
	if errDoc != nil {
		h.writeJSON(w, http.StatusInternalServerError, errDoc)
		return
	}
	h.writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, fn func(context.Context, []byte) service.Result) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	writeResult(w, fn(queryContext(r), body))
}

// queryContext keeps the request values but drops its cancellation, so a
// client that goes away does not abort the database work already started.
func queryContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		writeText(w, http.StatusBadRequest, "Request body is missing")
		return nil, false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Warnf("Failed to read request body: %v", err)
		writeText(w, http.StatusBadRequest, "Failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		writeText(w, http.StatusBadRequest, "Request body is missing")
		return nil, false
	}
	return body, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func writeResult(w http.ResponseWriter, result service.Result) {
	writeText(w, statusFor(result.Kind), result.Message)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

func statusFor(kind service.ResultKind) int {
	switch kind {
	case service.Success:
		return http.StatusOK
	case service.MalformedInput:
		return http.StatusBadRequest
	case service.ValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
