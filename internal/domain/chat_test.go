package domain

import "testing"

func TestChatRoomParticipants(t *testing.T) {
	room := ChatRoom{
		ID:             1,
		ClientEmail:    "client@mail.com",
		CaretakerEmail: "caretaker@mail.com",
	}

	if !room.HasParticipant("client@mail.com") || !room.HasParticipant("caretaker@mail.com") {
		t.Fatal("both parties must be participants")
	}
	if room.HasParticipant("other@mail.com") {
		t.Fatal("stranger must not be a participant")
	}

	if got := room.OtherParticipant("client@mail.com"); got != "caretaker@mail.com" {
		t.Fatalf("expected caretaker, got %q", got)
	}
	if got := room.OtherParticipant("caretaker@mail.com"); got != "client@mail.com" {
		t.Fatalf("expected client, got %q", got)
	}
	if got := room.OtherParticipant("other@mail.com"); got != "" {
		t.Fatalf("expected empty for stranger, got %q", got)
	}
}
