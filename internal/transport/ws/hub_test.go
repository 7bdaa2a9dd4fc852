package ws

import (
	"errors"
	"testing"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/service"
)

type fakeConn struct {
	id   string
	sent []service.Event
}

func (c *fakeConn) Send(ev service.Event) error { c.sent = append(c.sent, ev); return nil }
func (c *fakeConn) Close() error                { return nil }
func (c *fakeConn) ConnectionID() string        { return c.id }

func TestHubPush(t *testing.T) {
	h := NewHub()
	c := &fakeConn{id: "s1"}
	h.Add(c)

	if err := h.Push("s1", service.JoinedEvent("a@mail.com")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0].Type != service.EventJoined {
		t.Fatalf("expected one joined event, got %v", c.sent)
	}
}

func TestHubPush_UnknownConnection(t *testing.T) {
	h := NewHub()

	err := h.Push("nope", service.JoinedEvent("a@mail.com"))
	if !errors.Is(err, domain.ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}
}

func TestHubRemove(t *testing.T) {
	h := NewHub()
	c := &fakeConn{id: "s1"}
	h.Add(c)
	h.Remove("s1")

	if err := h.Push("s1", service.LeftEvent("a@mail.com")); !errors.Is(err, domain.ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound after remove, got %v", err)
	}
}
