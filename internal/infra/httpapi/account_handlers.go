package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"subscription_notifier/internal/app"
	"subscription_notifier/internal/domain/account"

	"github.com/go-chi/chi/v5"
)

type AccountHandler struct {
	accountSvc *app.AccountService
}

func NewAccountHandler(accountSvc *app.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

type accountRequest struct {
	Service        string `json:"service"`
	AccountType    string `json:"account_type"`
	Status         string `json:"status"`
	ExpirationDate string `json:"expiration_date,omitempty"` // YYYY-MM-DD, optional
}

type accountResponse struct {
	ID             int64  `json:"id"`
	Service        string `json:"service"`
	AccountType    string `json:"account_type,omitempty"`
	Status         string `json:"status"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

func toAccountResponse(a *account.Account) accountResponse {
	resp := accountResponse{
		ID:      a.ID,
		Service: a.Service,
		Status:  a.Status,
	}
	if a.AccountType.Valid {
		resp.AccountType = a.AccountType.String
	}
	if a.ExpirationDate.Valid {
		resp.ExpirationDate = a.ExpirationDate.Time.Format("2006-01-02")
	}
	return resp
}

func accountFromRequest(req accountRequest, a *account.Account) error {
	a.Service = req.Service
	a.Status = req.Status
	a.AccountType = sql.NullString{String: req.AccountType, Valid: req.AccountType != ""}
	if req.ExpirationDate != "" {
		exp, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return err
		}
		a.ExpirationDate = sql.NullTime{Time: exp, Valid: true}
	} else {
		a.ExpirationDate = sql.NullTime{}
	}
	return nil
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Service == "" {
		respondError(w, http.StatusBadRequest, "service is required")
		return
	}

	a := &account.Account{}
	if err := accountFromRequest(req, a); err != nil {
		respondError(w, http.StatusBadRequest, "expiration_date must be YYYY-MM-DD")
		return
	}
	if err := h.accountSvc.Add(r.Context(), a); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	respondJSON(w, http.StatusCreated, toAccountResponse(a))
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountSvc.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	a, err := h.accountSvc.Get(r.Context(), id)
	if err != nil {
		if err == account.ErrNotFound {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get account")
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.accountSvc.Get(r.Context(), id)
	if err != nil {
		if err == account.ErrNotFound {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get account")
		return
	}

	if req.Service == "" {
		req.Service = a.Service
	}
	if req.Status == "" {
		req.Status = a.Status
	}
	if err := accountFromRequest(req, a); err != nil {
		respondError(w, http.StatusBadRequest, "expiration_date must be YYYY-MM-DD")
		return
	}
	if err := h.accountSvc.Update(r.Context(), a); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update account")
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := h.accountSvc.Delete(r.Context(), id); err != nil {
		if err == account.ErrNotFound {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
