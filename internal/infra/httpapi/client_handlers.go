package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"subscription_notifier/internal/app"
	"subscription_notifier/internal/domain/client"

	"github.com/go-chi/chi/v5"
)

type ClientHandler struct {
	clientSvc *app.ClientService
}

func NewClientHandler(clientSvc *app.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

type clientRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	ExpirationDate string `json:"expiration_date"` // YYYY-MM-DD
	Active         *bool  `json:"active,omitempty"`
}

type clientResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	ExpirationDate string `json:"expiration_date"`
	Active         bool   `json:"active"`
}

func toClientResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Service:        c.Service,
		ExpirationDate: c.ExpirationDate.Format("2006-01-02"),
		Active:         c.Active,
	}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Phone == "" || req.Service == "" {
		respondError(w, http.StatusBadRequest, "name, phone and service are required")
		return
	}
	exp, err := time.Parse("2006-01-02", req.ExpirationDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "expiration_date must be YYYY-MM-DD")
		return
	}

	c, err := h.clientSvc.Add(r.Context(), req.Name, req.Phone, req.Service, exp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create client")
		return
	}
	respondJSON(w, http.StatusCreated, toClientResponse(c))
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientSvc.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	c, err := h.clientSvc.Get(r.Context(), id)
	if err != nil {
		if err == client.ErrNotFound {
			respondError(w, http.StatusNotFound, "client not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	respondJSON(w, http.StatusOK, toClientResponse(c))
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.clientSvc.Get(r.Context(), id)
	if err != nil {
		if err == client.ErrNotFound {
			respondError(w, http.StatusNotFound, "client not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get client")
		return
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.Service != "" {
		c.Service = req.Service
	}
	if req.ExpirationDate != "" {
		exp, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "expiration_date must be YYYY-MM-DD")
			return
		}
		c.ExpirationDate = exp
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := h.clientSvc.Update(r.Context(), c); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update client")
		return
	}
	respondJSON(w, http.StatusOK, toClientResponse(c))
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	if err := h.clientSvc.Delete(r.Context(), id); err != nil {
		if err == client.ErrNotFound {
			respondError(w, http.StatusNotFound, "client not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ImportCSV accepts a multipart upload under the "file" field with columns
// name,phone,service,expiration_date. Bad rows are skipped.
func (h *ClientHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	f, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer f.Close()

	count, err := h.clientSvc.ImportCSV(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"imported": count,
		"message":  fmt.Sprintf("Import fini: %d kliyan ajoute.", count),
	})
}
