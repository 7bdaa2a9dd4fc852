package presence

import (
	"errors"
	"testing"
	"time"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
)

func TestRoomPut_ClaimsSlotsAndRejectsThirdUser(t *testing.T) {
	room := NewRoomPresence()

	if err := room.Put(NewConnection("a@mail.com", "s1", time.UTC)); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if !room.Contains("a@mail.com") {
		t.Fatal("a should be present")
	}
	if room.IsPopulated() {
		t.Fatal("room must not be populated with one user")
	}

	if err := room.Put(NewConnection("b@mail.com", "s2", time.UTC)); err != nil {
		t.Fatalf("put b: %v", err)
	}
	if !room.IsPopulated() {
		t.Fatal("room should be populated with two users")
	}

	err := room.Put(NewConnection("c@mail.com", "s3", time.UTC))
	if !errors.Is(err, domain.ErrChatFull) {
		t.Fatalf("expected ErrChatFull, got %v", err)
	}
	// slots unchanged after the capacity violation
	if !room.Contains("a@mail.com") || !room.Contains("b@mail.com") || room.Contains("c@mail.com") {
		t.Fatal("slots changed after rejected put")
	}
}

func TestRoomPut_IdempotentUpsertKeepsLatestZone(t *testing.T) {
	room := NewRoomPresence()
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	if err := room.Put(NewConnection("a@mail.com", "s1", time.UTC)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := room.Put(NewConnection("a@mail.com", "s1", warsaw)); err != nil {
		t.Fatalf("re-put: %v", err)
	}

	if got := room.FirstSlotConnections(); got != 1 {
		t.Fatalf("expected 1 connection after re-subscribe, got %d", got)
	}
	rec, err := room.Get("a@mail.com", "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.TimeZone != warsaw {
		t.Fatalf("expected latest zone %v, got %v", warsaw, rec.TimeZone)
	}
}

func TestRoomGet_UnknownConnection(t *testing.T) {
	room := NewRoomPresence()
	_ = room.Put(NewConnection("a@mail.com", "s1", time.UTC))

	if _, err := room.Get("a@mail.com", "nope"); !errors.Is(err, domain.ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}
	if _, err := room.Get("b@mail.com", "s1"); !errors.Is(err, domain.ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound for unknown user, got %v", err)
	}
}

func TestRoomRemoveIfExists_VacatesSlotOnLastConnection(t *testing.T) {
	room := NewRoomPresence()
	_ = room.Put(NewConnection("a@mail.com", "s1", time.UTC))
	_ = room.Put(NewConnection("a@mail.com", "s3", time.UTC))

	if got := room.FirstSlotConnections(); got != 2 {
		t.Fatalf("expected 2 connections, got %d", got)
	}

	if rec := room.RemoveIfExists("a@mail.com", "s1"); rec == nil {
		t.Fatal("expected removed record for s1")
	}
	if !room.Contains("a@mail.com") {
		t.Fatal("a still has s3, slot must stay occupied")
	}

	if rec := room.RemoveIfExists("a@mail.com", "s3"); rec == nil {
		t.Fatal("expected removed record for s3")
	}
	if room.Contains("a@mail.com") {
		t.Fatal("slot should be vacated after last connection")
	}
	if !room.IsEmpty() {
		t.Fatal("room should be empty")
	}

	// redundant disconnects are a no-op, not an error
	if rec := room.RemoveIfExists("a@mail.com", "s3"); rec != nil {
		t.Fatalf("expected nil on duplicate remove, got %+v", rec)
	}
}

func TestRoomVacatedSlot_ReclaimableByNewUser(t *testing.T) {
	room := NewRoomPresence()
	_ = room.Put(NewConnection("a@mail.com", "s1", time.UTC))
	_ = room.Put(NewConnection("b@mail.com", "s2", time.UTC))
	room.RemoveIfExists("a@mail.com", "s1")

	if err := room.Put(NewConnection("c@mail.com", "s3", time.UTC)); err != nil {
		t.Fatalf("vacated slot should accept a new user: %v", err)
	}
	if !room.Contains("c@mail.com") || !room.Contains("b@mail.com") {
		t.Fatal("expected b and c present")
	}
}

func TestRoomConnections_SnapshotIsDetached(t *testing.T) {
	room := NewRoomPresence()
	_ = room.Put(NewConnection("a@mail.com", "s1", time.UTC))
	_ = room.Put(NewConnection("b@mail.com", "s2", time.UTC))

	snap := room.Connections()
	if len(snap) != 2 {
		t.Fatalf("expected 2 records in snapshot, got %d", len(snap))
	}

	room.RemoveIfExists("a@mail.com", "s1")
	room.RemoveIfExists("b@mail.com", "s2")

	if len(snap) != 2 {
		t.Fatalf("snapshot must be unaffected by later mutation, got %d", len(snap))
	}
	if got := len(room.Connections()); got != 0 {
		t.Fatalf("fresh snapshot should be empty, got %d", got)
	}
}
