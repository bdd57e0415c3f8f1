package client

import (
	"strings"

	"github.com/aarondl/ircengine/event"
	"github.com/aarondl/ircengine/irc"
)

// Whois sends a WHOIS for nick and blocks until the matching Whois event
// (318's End-of-WHOIS, filtered by nickname) arrives. There is no built-in
// timeout — callers needing one should wrap this in their own select with a
// time.After.
func (e *Engine) Whois(nick string) (event.WhoisPayload, error) {
	ch := make(chan event.WhoisPayload, 1)

	id := e.Bus.OnceFilter(event.Whois, func(ev event.Event) bool {
		return strings.EqualFold(ev.Payload.(event.WhoisPayload).Nick, nick)
	}, func(ev event.Event) {
		ch <- ev.Payload.(event.WhoisPayload)
	})

	if err := e.sched.Send(irc.WHOIS+" "+nick, false); err != nil {
		e.Bus.Off(event.Whois, id)
		return event.WhoisPayload{}, err
	}

	return <-ch, nil
}

// IsUserOn sends ISON for name and resolves true iff name is present in the
// next IsOn event.
func (e *Engine) IsUserOn(name string) (bool, error) {
	ch := make(chan bool, 1)

	e.Bus.Once(event.IsOn, func(ev event.Event) {
		payload := ev.Payload.(event.IsOnPayload)
		for _, n := range payload.Nicks {
			if strings.EqualFold(n, name) {
				ch <- true
				return
			}
		}
		ch <- false
	})

	if err := e.sched.Send(irc.ISON+" "+name, false); err != nil {
		return false, err
	}

	return <-ch, nil
}

// GetServerVersion sends VERSION (optionally targeted at a specific
// server) and resolves with the next ServerVersion event.
func (e *Engine) GetServerVersion(target string) (event.ServerVersionPayload, error) {
	ch := make(chan event.ServerVersionPayload, 1)

	e.Bus.Once(event.ServerVersion, func(ev event.Event) {
		ch <- ev.Payload.(event.ServerVersionPayload)
	})

	line := irc.VERSION
	if target != "" {
		line += " " + target
	}
	if err := e.sched.Send(line, false); err != nil {
		return event.ServerVersionPayload{}, err
	}

	return <-ch, nil
}

// GetChannelTopic sends TOPIC for channel and resolves with the Topic
// event whose channel name matches. A mismatched Topic event (e.g. from an
// unrelated channel) does not consume the subscription.
func (e *Engine) GetChannelTopic(channel string) (event.TopicPayload, error) {
	ch := make(chan event.TopicPayload, 1)

	id := e.Bus.OnceFilter(event.Topic, func(ev event.Event) bool {
		return strings.EqualFold(ev.Payload.(event.TopicPayload).Channel, channel)
	}, func(ev event.Event) {
		ch <- ev.Payload.(event.TopicPayload)
	})

	if err := e.sched.Send(irc.TOPIC+" "+channel, false); err != nil {
		e.Bus.Off(event.Topic, id)
		return event.TopicPayload{}, err
	}

	return <-ch, nil
}
