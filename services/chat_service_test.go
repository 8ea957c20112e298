package services

import (
	"testing"

	"quickbite/entity"
)

func TestChatAccessFollowsTheOrder(t *testing.T) {
	f := newOrderFixture(t, nil)
	chat := NewChatService(f.db)
	out := f.place(t, "")

	// the order's student talks
	msg, err := chat.SendMessage(out.RoomID, f.student.ID, entity.RoleStudent, "is it ready yet?")
	if err != nil {
		t.Fatalf("student send: %v", err)
	}
	if msg.SenderID != f.student.ID {
		t.Fatalf("sender = %d, want %d", msg.SenderID, f.student.ID)
	}

	// the store owner answers
	if _, err := chat.SendMessage(out.RoomID, f.owner.ID, entity.RoleStaff, "five more minutes"); err != nil {
		t.Fatalf("owner send: %v", err)
	}

	// a bystander does neither
	stranger := entity.User{Email: "lurker@x.com", Role: entity.RoleStudent}
	mustCreate(t, f.db, &stranger)
	if _, err := chat.SendMessage(out.RoomID, stranger.ID, entity.RoleStudent, "hello?"); err != ErrForbidden {
		t.Fatalf("stranger send: got %v, want ErrForbidden", err)
	}
	if _, err := chat.GetMessages(out.RoomID, stranger.ID, entity.RoleStudent, 0); err != ErrForbidden {
		t.Fatalf("stranger read: got %v, want ErrForbidden", err)
	}

	msgs, err := chat.GetMessages(out.RoomID, f.student.ID, entity.RoleStudent, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}

	// since-cursor returns only what came after
	newer, err := chat.GetMessages(out.RoomID, f.student.ID, entity.RoleStudent, msgs[0].ID)
	if err != nil {
		t.Fatalf("read since: %v", err)
	}
	if len(newer) != 1 {
		t.Fatalf("since count = %d, want 1", len(newer))
	}
}

func TestChatUnknownRoom(t *testing.T) {
	f := newOrderFixture(t, nil)
	chat := NewChatService(f.db)

	if _, err := chat.SendMessage(4242, f.student.ID, entity.RoleStudent, "anyone?"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
