package transport

import "sync"

// Fake is an in-memory Conn for engine/scheduler tests.
type Fake struct {
	mu     sync.Mutex
	sent   []string
	in     chan string
	closed bool
	err    error
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{in: make(chan string, 64)}
}

// Send records line as sent.
func (f *Fake) Send(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFakeClosed
	}
	f.sent = append(f.sent, line)
	return nil
}

// Incoming returns the channel a test can feed lines into via Feed.
func (f *Fake) Incoming() <-chan string {
	return f.in
}

// Feed pushes line into the Incoming channel, as if the server had sent it.
func (f *Fake) Feed(line string) {
	f.in <- line
}

// Close marks the fake closed and closes the incoming channel.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	close(f.in)
	return nil
}

// Fail simulates a transport-level read failure: it records err and closes
// the incoming channel, the way TCP's siphon does on a real read error.
func (f *Fake) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.err = err
	close(f.in)
}

// Err returns the error passed to Fail, or nil if the fake was closed
// cleanly via Close.
func (f *Fake) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Sent returns a snapshot of every line passed to Send so far, in order.
func (f *Fake) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

// ErrFakeClosed is returned by Send once the Fake has been closed.
var ErrFakeClosed = fakeClosedError{}

type fakeClosedError struct{}

func (fakeClosedError) Error() string { return "transport: fake connection closed" }

var _ Conn = (*Fake)(nil)
