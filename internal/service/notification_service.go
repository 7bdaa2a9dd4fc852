package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/presence"
)

// Pusher is the physical per-connection push channel, implemented by the
// websocket hub. Push errors mean a single connection missed an event; they
// never abort the fan-out.
type Pusher interface {
	Push(connectionID string, ev Event) error
}

// ChatNotificationService fans chat events out to every live connection of a
// room and keeps the presence registry in sync with subscribe/disconnect
// signals coming from the transport.
type ChatNotificationService struct {
	registry *presence.Registry
	pusher   Pusher
	defZone  *time.Location
}

func NewChatNotificationService(registry *presence.Registry, pusher Pusher, defaultZone *time.Location) *ChatNotificationService {
	if defaultZone == nil {
		defaultZone = time.Local
	}
	return &ChatNotificationService{
		registry: registry,
		pusher:   pusher,
		defZone:  defaultZone,
	}
}

// RegisterConnection stores a presence record for the subscriber. This is
// the only place fresh records are built; re-subscribing with the same
// (username, connectionID) just refreshes the stored zone. firstJoin is true
// when this registration took the room from untracked/empty to occupied.
func (s *ChatNotificationService) RegisterConnection(ctx context.Context, chatID int64, username, connectionID, zone string) (firstJoin bool, err error) {
	conn := presence.NewConnection(username, connectionID, s.parseZone(zone))
	return s.registry.Put(ctx, chatID, conn)
}

// UpdateTimeZone patches the stored record's zone, best-effort: an empty or
// unparseable zone keeps the prior value, an unknown connection is ignored.
func (s *ChatNotificationService) UpdateTimeZone(ctx context.Context, chatID int64, username, connectionID, zone string) {
	if zone == "" {
		return
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		slog.Debug("ignoring invalid time zone", "chat", chatID, "user", username, "zone", zone)
		return
	}

	rec := s.registry.FindConnection(chatID, username, connectionID)
	if rec == nil {
		return
	}
	if _, err := s.registry.Put(ctx, chatID, rec.WithTimeZone(loc)); err != nil {
		slog.Debug("time zone update skipped", "chat", chatID, "user", username, "err", err)
	}
}

// Dispatch pushes the event to every connection currently present in the
// room. See DispatchWith.
func (s *ChatNotificationService) Dispatch(ctx context.Context, chatID int64, ev Event) {
	s.DispatchWith(ctx, chatID, ev, nil)
}

// DispatchWith pushes the event to every connection currently present in the
// room, working off a snapshot so concurrent subscribes and disconnects do
// not tear the loop. Message events are cloned per recipient with CreatedAt
// rendered in that recipient's stored zone; joined/left go out verbatim.
// onDelivered fires once per distinct username that got at least one push.
func (s *ChatNotificationService) DispatchWith(_ context.Context, chatID int64, ev Event, onDelivered func(username string)) {
	room := s.registry.Find(chatID)
	if room == nil {
		return
	}

	delivered := make(map[string]struct{}, 2)
	for _, rec := range room.Connections() {
		out := ev
		if ev.Type == EventMessage && ev.Content != nil {
			content := *ev.Content
			content.CreatedAt = content.CreatedAt.In(rec.TimeZone)
			out.Content = &content
		}

		if err := s.pusher.Push(rec.ConnectionID, out); err != nil {
			slog.Warn("push failed", "chat", chatID, "user", rec.Username, "conn", rec.ConnectionID, "err", err)
			continue
		}
		if onDelivered != nil {
			if _, ok := delivered[rec.Username]; !ok {
				delivered[rec.Username] = struct{}{}
				onDelivered(rec.Username)
			}
		}
	}
}

// OnDisconnect removes the connection and, when it was the user's last live
// connection to the room, announces the leave to whoever is still present.
// Closing one of several open tabs stays silent.
func (s *ChatNotificationService) OnDisconnect(ctx context.Context, chatID int64, username, connectionID string) error {
	removed, err := s.registry.RemoveIfExists(ctx, chatID, username, connectionID)
	if err != nil {
		return err
	}
	if removed == nil {
		return nil
	}

	room := s.registry.Find(chatID)
	if room == nil || room.Contains(username) {
		// room pruned entirely, or the user still has other tabs open
		return nil
	}
	s.Dispatch(ctx, chatID, LeftEvent(username))
	return nil
}

func (s *ChatNotificationService) parseZone(zone string) *time.Location {
	if zone == "" {
		return s.defZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		slog.Debug("falling back to default time zone", "zone", zone)
		return s.defZone
	}
	return loc
}
