package client

import (
	"strconv"

	"github.com/aarondl/ircengine/irc"
)

// topicLen returns the server-advertised TOPICLEN, or 0 (no limit enforced)
// if the server never advertised one.
func (e *Engine) topicLen() int {
	e.State.mu.RLock()
	raw, ok := e.State.support.Raw["TOPICLEN"]
	e.State.mu.RUnlock()
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// SetChannelTopic sends a TOPIC change for channel, rejecting with
// irc.TopicTooLongError against the server-advertised TOPICLEN (if any)
// before anything is sent.
func (e *Engine) SetChannelTopic(channel, topic string) error {
	if max := e.topicLen(); max > 0 && len(topic) > max {
		return irc.TopicTooLongError{Length: len(topic), Max: max}
	}
	return e.sched.Send(irc.TOPIC+" "+channel+" :"+topic, false)
}

// RefreshUserList sends a NAMES request for channel, which the engine's
// RPL_NAMREPLY handler uses to repopulate the channel's role sets.
func (e *Engine) RefreshUserList(channel string) error {
	return e.sched.Send(irc.NAMES+" "+channel, false)
}

// Wallops sends a WALLOPS message, queued like any other outbound line.
func (e *Engine) Wallops(msg string) error {
	return e.sched.Send(irc.WALLOPS+" :"+msg, false)
}
