package client

import (
	"time"

	"gopkg.in/inconshreveable/log15.v2"

	"github.com/aarondl/ircengine/event"
	"github.com/aarondl/ircengine/irc"
	"github.com/aarondl/ircengine/parse"
	"github.com/aarondl/ircengine/transport"
)

// DefaultSendInterval is the Send Scheduler's default pacing interval.
const DefaultSendInterval = 100 * time.Millisecond

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's log15.Logger.
func WithLogger(logger log15.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

// WithSendInterval overrides the Send Scheduler's drain interval.
func WithSendInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// Engine is the Protocol Engine / State Machine: it owns the connection
// lifecycle, maintains State, and drives the Event Bus from parsed
// irc.Messages.
type Engine struct {
	State *State
	Bus   *event.Bus

	writer irc.Writer

	conn  transport.Conn
	sched *transport.Scheduler

	log      log15.Logger
	interval time.Duration

	username, realname, password string

	disconnectReason string

	done chan struct{}
}

// New creates an Engine. Connect must be called before it does anything
// useful.
func New(opts ...Option) *Engine {
	e := &Engine{
		State:    NewState(),
		interval: DefaultSendInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = log15.New()
		e.log.SetHandler(log15.DiscardHandler())
	}
	e.Bus = event.NewBus(e.log)
	return e
}

// Writer exposes the outbound Writer helper bound to this connection's Send
// Scheduler, valid only while connected.
func (e *Engine) Writer() irc.Writer {
	return e.writer
}

// Connect wires conn into the engine, starts the Send Scheduler, performs
// the handshake (PASS/NICK/USER, all sent with now=true), and begins the
// read loop. nick becomes the engine's working nickname; it changes only
// when a NICK line for it arrives. ERR_NICKNAMEINUSE (433) only emits
// NickInUse — retrying with an alternate nickname is the caller's
// responsibility. host
// is the client-reported hostname used in the USER line; most servers
// ignore it in favor of a reverse DNS lookup, but it is still required on
// the wire.
func (e *Engine) Connect(conn transport.Conn, nick, username, host, realname, password string) error {
	e.conn = conn
	e.username = username
	e.realname = realname
	e.password = password
	e.disconnectReason = ""

	e.State.reset(nick)

	e.sched = transport.NewScheduler(conn, e.interval, e.log, e.onLineSent)
	e.writer = irc.Helper{Writer: schedWriter{e.sched}}
	e.sched.Start()

	e.done = make(chan struct{})
	go e.loop()

	e.Bus.Publish(event.Event{Kind: event.Connect, Time: time.Now(), Payload: event.ConnectPayload{}})

	if password != "" {
		if err := e.sched.Send(irc.PASS+" "+password, true); err != nil {
			return err
		}
	}
	if err := e.sched.Send(irc.NICK+" "+nick, true); err != nil {
		return err
	}
	if err := e.sched.Send(irc.USER+" "+username+" "+username+" "+host+" :"+realname, true); err != nil {
		return err
	}

	return nil
}

// Disconnect sends a QUIT (synchronously, bypassing the queue) and tears
// down the transport. reason is used as the QUIT message; it may be empty.
func (e *Engine) Disconnect(reason string) error {
	e.disconnectReason = reason
	if e.sched != nil {
		_ = e.sched.Send(irc.QUIT+" :"+reason, true)
		e.sched.Stop()
	}
	var err error
	if e.conn != nil {
		err = e.conn.Close()
	}
	e.State.mu.Lock()
	e.State.connected = false
	e.State.mu.Unlock()
	return err
}

// Send enqueues (or, with now=true, writes immediately) a raw wire line.
func (e *Engine) Send(line string, now bool) error {
	return e.sched.Send(line, now)
}

func (e *Engine) onLineSent(line string) {
	e.Bus.Publish(event.Event{Kind: event.LineSent, Time: time.Now(), Payload: event.LinePayload{Line: line}})
}

// loop reads decoded lines off the transport, parses them, and dispatches
// them until the connection's Incoming channel closes. If the channel
// closed because of a transport-level failure (rather than a deliberate
// Close), that failure is surfaced as an ErrorEvent and marks the
// connection errored before the Disconnect event fires.
func (e *Engine) loop() {
	defer close(e.done)

	for line := range e.conn.Incoming() {
		e.Bus.Publish(event.Event{Kind: event.LineReceive, Time: time.Now(), Payload: event.LinePayload{Line: line}})

		msg, err := parse.Parse(line)
		if err != nil {
			e.log.Warn("discarding malformed line", "line", line, "err", err)
			continue
		}

		e.dispatch(msg)
	}

	transportErr := e.conn.Err()

	e.State.mu.Lock()
	e.State.connected = false
	if transportErr != nil {
		e.State.errored = true
	}
	e.State.mu.Unlock()

	if transportErr != nil {
		e.log.Error("transport closed with error", "err", transportErr)
		e.publish(event.Error, event.ErrorPayload{Type: "transport", Err: transportErr})
	}

	e.Bus.Publish(event.Event{Kind: event.Disconnect, Time: time.Now(), Payload: event.DisconnectPayload{Reason: e.disconnectReason}})
}

// Wait blocks until the read loop has exited (the connection closed).
func (e *Engine) Wait() {
	if e.done != nil {
		<-e.done
	}
}

// schedWriter adapts a *transport.Scheduler to io.Writer so irc.Helper can
// sit on top of it: every Write is one already-formatted wire line with no
// CRLF, queued through the scheduler rather than written directly.
type schedWriter struct {
	sched *transport.Scheduler
}

func (w schedWriter) Write(p []byte) (int, error) {
	if err := w.sched.Send(string(p), false); err != nil {
		return 0, err
	}
	return len(p), nil
}
