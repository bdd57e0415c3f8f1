/*
Package client implements the Protocol Engine / State Machine and the
Request/Response Bridge: it consumes parsed irc.Messages, maintains
connection-lifetime state, emits semantic events on the event.Bus, and
turns multi-numeric server transactions into single-shot results.
*/
package client

import (
	"strings"
	"sync"

	"github.com/aarondl/ircengine/data"
	"github.com/aarondl/ircengine/irc"
)

// State is the client-side connection state: own nickname, readiness,
// connection/error flags, accumulated MOTD, server capabilities, the
// channels the bot is on (with per-channel role membership), and in-flight
// WHOIS transactions.
type State struct {
	mu sync.RWMutex

	nick      string
	ready     bool
	connected bool
	errored   bool

	motd strings.Builder

	support *irc.Support

	channels map[string]*data.Channel
	whois    map[string]*data.WhoisBuilder

	metadata map[string]interface{}
}

// NewState returns a freshly initialized State, ready for a new connection.
func NewState() *State {
	return &State{
		support:  irc.NewSupport(),
		channels: make(map[string]*data.Channel),
		whois:    make(map[string]*data.WhoisBuilder),
		metadata: make(map[string]interface{}),
	}
}

// reset clears the per-connection transient fields, keeping caller metadata
// across reconnects.
func (s *State) reset(nick string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nick = nick
	s.ready = false
	s.connected = true
	s.errored = false
	s.motd.Reset()
	s.support = irc.NewSupport()
	s.channels = make(map[string]*data.Channel)
	s.whois = make(map[string]*data.WhoisBuilder)
}

// Nickname returns the bot's current nickname.
func (s *State) Nickname() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nick
}

func (s *State) setNickname(nick string) {
	s.mu.Lock()
	s.nick = nick
	s.mu.Unlock()
}

// Ready reports whether the Ready event has fired for this connection.
func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Connected reports whether the connection is currently live.
func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Errored reports whether the connection ended (or is ending) due to a
// server ERROR line or a transport failure.
func (s *State) Errored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errored
}

// MOTD returns the accumulated message-of-the-day text.
func (s *State) MOTD() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.motd.String()
}

// Supported returns the raw ISUPPORT key/value map.
func (s *State) Supported() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.support.Raw))
	for k, v := range s.support.Raw {
		out[k] = v
	}
	return out
}

// GetChannel returns the named channel, or nil if the bot is not on it.
func (s *State) GetChannel(name string) *data.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channels[strings.ToLower(name)]
}

// Metadata returns the opaque per-key caller metadata value, if set.
func (s *State) Metadata(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.metadata[key]
	return v, ok
}

// SetMetadata stores an opaque caller value, persisted across reconnects.
func (s *State) SetMetadata(key string, value interface{}) {
	s.mu.Lock()
	s.metadata[key] = value
	s.mu.Unlock()
}

func (s *State) isChannel(target string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.support.IsChannel(target)
}

func (s *State) rolePrefixes() map[rune]rune {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.support.RolePrefixes()
}
