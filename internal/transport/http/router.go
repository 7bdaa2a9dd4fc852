package http

import (
	"net/http"
	"time"

	httpmw "github.com/Gawron97/petBuddy-backend-sub000/internal/transport/http/middleware"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint; auth travels in query params, not headers
	r.Get("/ws/chat/{id}", wsServer.HandleChat)

	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/chat/{id}", func(cr chi.Router) {
			cr.Get("/messages", h.GetChatHistory)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
