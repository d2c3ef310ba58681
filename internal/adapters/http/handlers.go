package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) syncOrders(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RunSync(r.Context())
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, report)
}

func (h *Handler) syncBrands(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.SyncBrands(r.Context())
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, report)
}

func (h *Handler) listCommissions(w http.ResponseWriter, r *http.Request) {
	affiliateID, ok := parseOptionalUUID(r.URL.Query().Get("affiliate_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid affiliate_id")
		return
	}
	limit := parseIntDefault(r.URL.Query().Get("limit"), 0)

	items, err := h.service.ListCommissions(r.Context(), affiliateID, limit)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"commissions": items})
}

func (h *Handler) commissionTotals(w http.ResponseWriter, r *http.Request) {
	affiliateID, ok := parseOptionalUUID(r.URL.Query().Get("affiliate_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid affiliate_id")
		return
	}

	totals, err := h.service.GetCommissionTotals(r.Context(), affiliateID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, totals)
}

func (h *Handler) deleteCommission(w http.ResponseWriter, r *http.Request) {
	commissionID, err := uuid.Parse(chi.URLParam(r, "commission_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid commission_id")
		return
	}
	if err := h.service.DeleteCommission(r.Context(), commissionID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "Commission deleted successfully")
}

func parseOptionalUUID(raw string) (*uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func parseIntDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
