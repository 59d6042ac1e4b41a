// Package handler wires the registry service to HTTP routes.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"namereg/internal/registry/service"
	"namereg/pkg/platform/httputil"
)

// Handler exposes registry operations over HTTP.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New constructs an HTTP handler around the registry service.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the caller-facing routes. The router is expected to run
// the auth middleware so the caller identity is present in the context.
func (h *Handler) Register(r chi.Router) {
	r.Post("/domains", h.claimDomain)
	r.Get("/domains", h.listOwnedDomains)
	r.Post("/domains/{domainID}/transfer", h.transferOwnership)
	r.Get("/domains/{domainID}/claimed", h.isClaimed)
	r.Get("/holders/{accountID}/count", h.holdingCount)
}

// RegisterAdmin mounts the admin routes; guard them with the admin token
// middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/registry", h.registryStats)
	r.Get("/events", h.recentEvents)
}

func (h *Handler) claimDomain(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	err := h.svc.Claim(r.Context(), service.ClaimInput{
		Name:       req.Name,
		OfferState: req.OfferState,
		OfferPrice: req.OfferPrice,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"name": req.Name,
	})
}

func (h *Handler) transferOwnership(w http.ResponseWriter, r *http.Request) {
	domainID, err := parseDomainID(chi.URLParam(r, "domainID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.svc.TransferOwnership(r.Context(), domainID, req.NewHolder); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"domain_id":  domainID,
		"new_holder": req.NewHolder,
	})
}

func (h *Handler) listOwnedDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.OwnedDomains(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"domains": domains,
	})
}

func (h *Handler) isClaimed(w http.ResponseWriter, r *http.Request) {
	domainID, err := parseDomainID(chi.URLParam(r, "domainID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"domain_id": domainID,
		"claimed":   h.svc.IsClaimed(r.Context(), domainID),
	})
}

func (h *Handler) holdingCount(w http.ResponseWriter, r *http.Request) {
	holder := chi.URLParam(r, "accountID")
	count, err := h.svc.HoldingCount(r.Context(), holder)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"holder": holder,
		"count":  count,
	})
}

func (h *Handler) registryStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}

func (h *Handler) recentEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	events, err := h.svc.RecentEvents(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "load recent events", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
	})
}
