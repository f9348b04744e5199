package http

import (
	"net/http"

	"helicharter-portal/internal/domain"
)

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	msgs, err := h.Chat.ListMessages(r.Context(), bearer(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	msg, err := h.Chat.SendMessage(r.Context(), bearer(r), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Chat.MarkMessagesRead(r.Context(), bearer(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Chat.UnreadCount(r.Context(), bearer(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, count)
}
