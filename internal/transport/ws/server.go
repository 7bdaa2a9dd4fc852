package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type ChatSvc interface {
	Room(ctx context.Context, chatID int64) (*domain.ChatRoom, error)
	SaveMessage(ctx context.Context, chatID int64, senderEmail, content string) (*domain.ChatMessage, error)
}

type NotifySvc interface {
	RegisterConnection(ctx context.Context, chatID int64, username, connectionID, zone string) (bool, error)
	UpdateTimeZone(ctx context.Context, chatID int64, username, connectionID, zone string)
	Dispatch(ctx context.Context, chatID int64, ev service.Event)
	DispatchWith(ctx context.Context, chatID int64, ev service.Event, onDelivered func(username string))
	OnDisconnect(ctx context.Context, chatID int64, username, connectionID string) error
}

type Server struct {
	upgrader  websocket.Upgrader
	hub       *Hub
	chatSvc   ChatSvc
	notifySvc NotifySvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, chat ChatSvc, notify NotifySvc) *Server {
	return &Server{
		hub:       hub,
		chatSvc:   chat,
		notifySvc: notify,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

func (s *Server) SetPingInterval(d time.Duration) {
	if d > 0 {
		s.pingEvery = d
	}
}

// WS endpoint: GET /ws/chat/{id}?access_token=...&email=...&tz=Europe/Warsaw
// Token validation is the gateway's job; this service only needs the
// authenticated identity to match one of the room's two participants.
func (s *Server) HandleChat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accessToken := strings.TrimSpace(q.Get("access_token"))
	email := strings.TrimSpace(q.Get("email"))
	if accessToken == "" || email == "" {
		http.Error(w, "missing access_token or email", http.StatusUnauthorized)
		return
	}
	chatID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || chatID <= 0 {
		http.Error(w, "invalid chat id", http.StatusBadRequest)
		return
	}
	zone := strings.TrimSpace(q.Get("tz"))
	if zone == "" {
		zone = strings.TrimSpace(r.Header.Get("X-Timezone"))
	}

	room, err := s.chatSvc.Room(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			http.Error(w, "chat not found", http.StatusNotFound)
			return
		}
		slog.Error("ws chat lookup failed", "chat", chatID, "err", err)
		http.Error(w, "chat lookup failed", http.StatusInternalServerError)
		return
	}
	if !room.HasParticipant(email) {
		http.Error(w, "not a participant", http.StatusForbidden)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "chat", chatID, "err", err)
		return
	}

	c := newChatConn(conn, chatID, email)
	s.hub.Add(c)

	firstJoin, err := s.notifySvc.RegisterConnection(r.Context(), chatID, email, c.id, zone)
	if err != nil {
		slog.Warn("ws register failed", "chat", chatID, "user", email, "err", err)
		s.hub.Remove(c.id)
		_ = c.Close()
		return
	}
	if firstJoin {
		s.notifySvc.Dispatch(r.Context(), chatID, service.JoinedEvent(email))
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	// The request context may already be dead once the peer is gone; cleanup
	// still has to run, so it gets its own bounded context.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.hub.Remove(c.id)
	if err := s.notifySvc.OnDisconnect(ctx, chatID, email, c.id); err != nil {
		slog.Debug("ws disconnect cleanup failed", "chat", chatID, "user", email, "err", err)
	}
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "chat", chatID, "user", email, "err", err)
	}
}

func (s *Server) readLoop(ctx context.Context, c *chatConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}

		switch f.Type {
		case TypeMessage:
			var p MessagePayload
			if json.Unmarshal(f.Payload, &p) != nil {
				continue
			}
			msg, err := s.chatSvc.SaveMessage(ctx, c.chatID, c.email, p.Content)
			if err != nil {
				if !errors.Is(err, domain.ErrMessageEmpty) {
					slog.Warn("ws message save failed", "chat", c.chatID, "user", c.email, "err", err)
				}
				continue
			}
			s.notifySvc.DispatchWith(ctx, c.chatID, service.MessageEvent(*msg), func(username string) {
				slog.Debug("message delivered", "chat", c.chatID, "msg", msg.ID, "to", username)
			})
		case TypeTimezone:
			var p TimezonePayload
			if json.Unmarshal(f.Payload, &p) != nil {
				continue
			}
			s.notifySvc.UpdateTimeZone(ctx, c.chatID, c.email, c.id, p.TimeZone)
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *chatConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type chatConn struct {
	conn   *websocket.Conn
	id     string
	chatID int64
	email  string
	sendMu chan struct{}
	closed chan struct{}
}

func newChatConn(c *websocket.Conn, chatID int64, email string) *chatConn {
	return &chatConn{
		conn:   c,
		id:     uuid.NewString(),
		chatID: chatID,
		email:  email,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *chatConn) Send(ev service.Event) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(ev)
}

func (c *chatConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *chatConn) ConnectionID() string { return c.id }
