package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/postgres"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/service"
	httpmw "github.com/Gawron97/petBuddy-backend-sub000/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	chatSvc *service.ChatService
}

func NewHandler(chat *service.ChatService) *Handler {
	return &Handler{chatSvc: chat}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /chat/{id}/messages?after=&limit=
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || chatID <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid chat id"})
		return
	}
	email := httpmw.EmailFromCtx(r.Context())
	if email == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing user email"})
		return
	}

	after := r.URL.Query().Get("after")
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	items, next, err := h.chatSvc.History(r.Context(), chatID, email, after, limit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotParticipant):
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "not a participant"})
			return
		case errors.Is(err, postgres.ErrInvalidCursor):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_cursor"})
			return
		default:
			slog.Error("handler.GetChatHistory:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
	}

	resp := ChatHistoryResponse{Items: make([]ChatMessageItem, 0, len(items)), NextCursor: next}
	for _, m := range items {
		resp.Items = append(resp.Items, ChatMessageItem{
			ID:          m.ID,
			ChatID:      m.ChatID,
			SenderEmail: m.SenderEmail,
			Content:     m.Content,
			CreatedAt:   m.CreatedAt.Truncate(time.Millisecond),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
