package data

import (
	"testing"

	"github.com/aarondl/ircengine/irc"
)

func TestChannelCreate(t *testing.T) {
	ch := CreateChannel("#CHAN")
	if ch.GetName() != "#chan" {
		t.Errorf("GetName() = %q, want #chan", ch.GetName())
	}
	if ch.GetTopic() != "" {
		t.Errorf("GetTopic() = %q, want empty", ch.GetTopic())
	}
	if ch.Modes == nil {
		t.Error("Modes should not be nil")
	}
}

func TestChannelTopic(t *testing.T) {
	ch := CreateChannel("#chan")
	ch.SetTopic("topic")
	if ch.GetTopic() != "topic" {
		t.Errorf("GetTopic() = %q, want topic", ch.GetTopic())
	}
}

func TestChannelBans(t *testing.T) {
	ch := CreateChannel("#chan")
	ch.SetBans([]string{"ban1", "ban2"})

	got := ch.GetBanmasks()
	if len(got) != 2 || got[0] != "ban1" || got[1] != "ban2" {
		t.Fatalf("GetBanmasks() = %v", got)
	}

	if !ch.HasBanmask("ban2") {
		t.Error("expected ban2 present")
	}
	ch.DeleteBanmask("ban2")
	if ch.HasBanmask("ban2") {
		t.Error("ban2 should have been removed")
	}

	ch.AddBan("ban2")
	if !ch.HasBanmask("ban2") {
		t.Error("ban2 should have been re-added")
	}
	ch.AddBan("ban2")
	if len(ch.GetBanmasks()) != 2 {
		t.Error("AddBan should not duplicate an existing mask")
	}
}

func TestChannelIsBanned(t *testing.T) {
	ch := CreateChannel("#chan")
	ch.SetBans([]string{"*!*@host.com", "nick!*@*"})

	cases := []struct {
		hostmask string
		want     bool
	}{
		{"nick!user@host", true},
		{"notnick!user@host", false},
		{"notnick!user@host.com", true},
	}

	for _, tc := range cases {
		h := irc.ParseHostmask(tc.hostmask)
		if got := ch.IsBanned(h); got != tc.want {
			t.Errorf("IsBanned(%q) = %v, want %v", tc.hostmask, got, tc.want)
		}
	}
}

func TestChannelRoles(t *testing.T) {
	ch := CreateChannel("#chan")

	ch.MoveToRole("alice", Op)
	if role, ok := ch.RoleOf("alice"); !ok || role != Op {
		t.Fatalf("RoleOf(alice) = %v, %v; want ops, true", role, ok)
	}

	ch.MoveToRole("alice", Voice)
	if role, ok := ch.RoleOf("alice"); !ok || role != Voice {
		t.Fatalf("RoleOf(alice) after promotion change = %v, %v; want voices, true", role, ok)
	}
	if members := ch.Members(Op); len(members) != 0 {
		t.Errorf("alice should have been removed from ops, got %v", members)
	}

	ch.RenameNick("alice", "alice2")
	if _, ok := ch.RoleOf("alice"); ok {
		t.Error("old nick should no longer hold a role")
	}
	if role, ok := ch.RoleOf("alice2"); !ok || role != Voice {
		t.Fatalf("RoleOf(alice2) = %v, %v; want voices, true", role, ok)
	}

	ch.RemoveNick("alice2")
	if _, ok := ch.RoleOf("alice2"); ok {
		t.Error("alice2 should hold no role after RemoveNick")
	}
}
