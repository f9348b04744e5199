package http

import (
	"net/http"

	"helicharter-portal/internal/contact"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/notification"
)

func (h *Handler) listHelicopters(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Catalog.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *Handler) addHelicopter(w http.ResponseWriter, r *http.Request) {
	var req domain.AddHelicopterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	listing, err := h.Catalog.Add(r.Context(), bearer(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

func (h *Handler) deleteHelicopter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Catalog.Delete(r.Context(), bearer(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) registerPushToken(w http.ResponseWriter, r *http.Request) {
	var req domain.FCMTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	role := domain.RoleClient
	if s := sessionFrom(r.Context()); s.IsAdmin() {
		role = domain.RoleAdmin
	}
	if err := h.Push.Register(r.Context(), bearer(r), req.Token, role); err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "notifications enabled"})
}

// routeNotification tells the service worker where a clicked notification leads
func (h *Handler) routeNotification(w http.ResponseWriter, r *http.Request) {
	var payload domain.PushPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, notification.Target(payload))
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var e contact.Enquiry
	if err := decodeJSON(r, &e); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Contact.Submit(r.Context(), e); err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"message": "Thanks, we will be in touch shortly."})
}
