package client

import (
	"testing"
	"time"

	"github.com/aarondl/ircengine/data"
	"github.com/aarondl/ircengine/event"
	"github.com/aarondl/ircengine/transport"
)

func newTestEngine(t *testing.T) (*Engine, *transport.Fake) {
	t.Helper()
	fake := transport.NewFake()
	e := New(WithSendInterval(5 * time.Millisecond))
	if err := e.Connect(fake, "nick", "user", "host.example", "Real Name", ""); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return e, fake
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestEngineConnectSendsHandshakeNow(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	waitFor(t, func() bool { return len(fake.Sent()) >= 2 })

	sent := fake.Sent()
	if sent[0] != "NICK nick" {
		t.Errorf("sent[0] = %q, want NICK nick", sent[0])
	}
	if sent[1] != "USER user user host.example :Real Name" {
		t.Errorf("sent[1] = %q, want USER line", sent[1])
	}
}

func TestEnginePrivmsgFiresMessageAndReady(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	var got event.MessagePayload
	msgCh := make(chan struct{}, 1)
	e.Bus.On(event.Message, func(ev event.Event) {
		got = ev.Payload.(event.MessagePayload)
		msgCh <- struct{}{}
	})

	readyCh := make(chan struct{}, 1)
	e.Bus.Once(event.Ready, func(event.Event) { readyCh <- struct{}{} })

	fake.Feed(":alice!a@host PRIVMSG nick :hello there")

	<-msgCh
	<-readyCh

	if got.From != "alice" || got.Target != "nick" || got.Text != "hello there" {
		t.Errorf("got = %+v", got)
	}
	if !e.State.Ready() {
		t.Error("State.Ready() should be true after first PRIVMSG")
	}
}

func TestEngineCTCPActionSplit(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	actionCh := make(chan event.ActionPayload, 1)
	e.Bus.On(event.Action, func(ev event.Event) { actionCh <- ev.Payload.(event.ActionPayload) })

	fake.Feed(":bob!b@host PRIVMSG #chan :\x01ACTION waves\x01")

	select {
	case a := <-actionCh:
		if a.Text != "waves" {
			t.Errorf("Action.Text = %q, want waves", a.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Action event")
	}
}

func TestEngineJoinCreatesChannelAndRequestsBans(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	botJoinCh := make(chan struct{}, 1)
	e.Bus.Once(event.BotJoin, func(event.Event) { botJoinCh <- struct{}{} })

	fake.Feed(":nick!user@host JOIN #chan")
	<-botJoinCh

	if ch := e.State.GetChannel("#chan"); ch == nil {
		t.Fatal("expected #chan to exist after BotJoin")
	} else if role, ok := ch.RoleOf("nick"); !ok || role != data.Member {
		t.Errorf("RoleOf(nick) = %v, %v; want members, true", role, ok)
	}

	waitFor(t, func() bool {
		for _, s := range fake.Sent() {
			if s == "MODE #chan +b" {
				return true
			}
		}
		return false
	})
}

func TestEngineModePromotesToOp(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	joinCh := make(chan struct{}, 2)
	e.Bus.On(event.BotJoin, func(event.Event) { joinCh <- struct{}{} })
	e.Bus.On(event.Join, func(event.Event) { joinCh <- struct{}{} })

	fake.Feed(":nick!user@host JOIN #chan")
	<-joinCh
	fake.Feed(":alice!a@host JOIN #chan")
	<-joinCh

	modeCh := make(chan struct{}, 1)
	e.Bus.Once(event.Mode, func(event.Event) { modeCh <- struct{}{} })
	fake.Feed(":op!o@host MODE #chan +o alice")
	<-modeCh

	ch := e.State.GetChannel("#chan")
	if role, ok := ch.RoleOf("alice"); !ok || role != data.Op {
		t.Fatalf("RoleOf(alice) = %v, %v; want ops, true", role, ok)
	}
}

func TestEngineNickChangeMovesRoleAcrossChannels(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	joinCh := make(chan struct{}, 1)
	e.Bus.On(event.Join, func(event.Event) { joinCh <- struct{}{} })
	fake.Feed(":nick!user@host JOIN #chan")
	fake.Feed(":alice!a@host JOIN #chan")
	<-joinCh

	nickCh := make(chan struct{}, 1)
	e.Bus.Once(event.NickChange, func(event.Event) { nickCh <- struct{}{} })
	fake.Feed(":alice!a@host NICK :alice2")
	<-nickCh

	ch := e.State.GetChannel("#chan")
	if _, ok := ch.RoleOf("alice"); ok {
		t.Error("old nick alice should hold no role")
	}
	if _, ok := ch.RoleOf("alice2"); !ok {
		t.Error("new nick alice2 should have inherited the role")
	}
}

func TestEngineQuitEmitsQuitPartAndRemovesFromChannel(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	joinCh := make(chan struct{}, 1)
	e.Bus.On(event.Join, func(event.Event) { joinCh <- struct{}{} })
	fake.Feed(":nick!user@host JOIN #chan")
	fake.Feed(":alice!a@host JOIN #chan")
	<-joinCh

	quitPartCh := make(chan event.QuitPartPayload, 1)
	e.Bus.Once(event.QuitPart, func(ev event.Event) { quitPartCh <- ev.Payload.(event.QuitPartPayload) })

	fake.Feed(":alice!a@host QUIT :bye")

	select {
	case qp := <-quitPartCh:
		if qp.Who != "alice" || qp.Channel != "#chan" {
			t.Errorf("QuitPart = %+v", qp)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for QuitPart")
	}

	ch := e.State.GetChannel("#chan")
	if _, ok := ch.RoleOf("alice"); ok {
		t.Error("alice should have been removed from the channel")
	}
}

func TestEngineMotdFiresReadyOnEnd(t *testing.T) {
	e, fake := newTestEngine(t)
	defer e.Disconnect("")

	readyCh := make(chan struct{}, 1)
	e.Bus.Once(event.Ready, func(event.Event) { readyCh <- struct{}{} })
	motdCh := make(chan event.MOTDPayload, 1)
	e.Bus.Once(event.MOTD, func(ev event.Event) { motdCh <- ev.Payload.(event.MOTDPayload) })

	fake.Feed(":irc.example.org 372 nick :Welcome line one")
	fake.Feed(":irc.example.org 376 nick :End of MOTD")

	select {
	case m := <-motdCh:
		if m.Text != "Welcome line one" {
			t.Errorf("MOTD.Text = %q", m.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for MOTD")
	}
	<-readyCh
}
