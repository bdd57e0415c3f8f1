package transport

import (
	"bufio"
	"crypto/tls"
	"net"
	"strings"
	"sync"

	"github.com/aarondl/ircengine/irc"
)

// TCP is a Conn backed by a net.Conn, optionally wrapped in TLS. A
// background siphon goroutine reads lines off the socket into Incoming;
// outbound pacing is the Send Scheduler's job, not this type's.
type TCP struct {
	conn net.Conn

	incoming chan string

	closeOnce sync.Once
	closed    chan struct{}

	mu               sync.Mutex
	err              error
	intentionalClose bool
}

// Dial connects to addr (host:port). If useTLS is true the connection is
// wrapped with tls.Client using tlsConfig (nil is accepted, yielding
// Go's default TLS configuration).
func Dial(addr string, useTLS bool, tlsConfig *tls.Config) (*TCP, error) {
	var conn net.Conn
	var err error

	if useTLS {
		conn, err = tls.Dial("tcp", addr, tlsConfig)
	} else {
		conn, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return nil, irc.WrapTransportError(err, "dial "+addr)
	}

	return newTCP(conn), nil
}

func newTCP(conn net.Conn) *TCP {
	t := &TCP{
		conn:     conn,
		incoming: make(chan string),
		closed:   make(chan struct{}),
	}
	go t.siphon()
	return t
}

// Send writes line plus the wire terminator to the socket.
func (t *TCP) Send(line string) error {
	_, err := t.conn.Write([]byte(line + "\r\n"))
	if err != nil {
		return irc.WrapTransportError(err, "write")
	}
	return nil
}

// Incoming returns the channel of lines read from the socket.
func (t *TCP) Incoming() <-chan string {
	return t.incoming
}

// Close closes the underlying socket and stops the siphon goroutine. A
// read error observed afterward (the socket closing out from under the
// siphon) is not reported via Err — this is a deliberate close, not a
// transport failure.
func (t *TCP) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.intentionalClose = true
		t.mu.Unlock()
		close(t.closed)
		err = t.conn.Close()
	})
	return err
}

// Err returns the error that caused Incoming to close, or nil if it closed
// because Close was called. A peer closing the socket (EOF) is reported as
// an error too.
func (t *TCP) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// siphon reads lines off the socket and forwards them to incoming until
// the connection errors or is closed.
func (t *TCP) siphon() {
	defer close(t.incoming)

	reader := bufio.NewReader(t.conn)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if len(line) > 0 {
			select {
			case t.incoming <- line:
			case <-t.closed:
				return
			}
		}
		if err != nil {
			t.mu.Lock()
			if !t.intentionalClose {
				t.err = irc.WrapTransportError(err, "read")
			}
			t.mu.Unlock()
			return
		}
	}
}

var _ Conn = (*TCP)(nil)
