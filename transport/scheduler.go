package transport

import (
	"sync"
	"time"

	"gopkg.in/inconshreveable/log15.v2"

	"github.com/aarondl/ircengine/irc"
)

// Scheduler paces outbound lines at a fixed interval, draining one queued
// line per tick. A send-now bypass lets handshake and time-sensitive lines
// skip the queue entirely.
type Scheduler struct {
	conn     Conn
	interval time.Duration
	queue    Queue
	log      log15.Logger

	mu      sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	stopped chan struct{}

	onSent func(line string)
}

// NewScheduler creates a Scheduler that drains onto conn at interval.
// onSent, if non-nil, is invoked after every successful write (queued or
// send-now) so the engine can emit LineSent.
func NewScheduler(conn Conn, interval time.Duration, logger log15.Logger, onSent func(line string)) *Scheduler {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Scheduler{
		conn:     conn,
		interval: interval,
		log:      logger,
		onSent:   onSent,
	}
}

// Start begins the periodic drain. It is started on successful connect and
// must be paired with Stop on disconnect.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})

	go s.run(s.ticker, s.stop, s.stopped)
}

// Stop cancels the periodic drain.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	ticker := s.ticker
	stop := s.stop
	stopped := s.stopped
	s.ticker = nil
	s.mu.Unlock()

	if ticker == nil {
		return
	}
	close(stop)
	<-stopped
	ticker.Stop()
}

func (s *Scheduler) run(ticker *time.Ticker, stop, stopped chan struct{}) {
	defer close(stopped)
	for {
		select {
		case <-ticker.C:
			line, ok := s.queue.Dequeue()
			if !ok {
				continue
			}
			if err := s.conn.Send(line); err != nil {
				s.log.Error("transport write failed", "err", err)
				continue
			}
			if s.onSent != nil {
				s.onSent(line)
			}
		case <-stop:
			return
		}
	}
}

// Send enqueues line, or with now=true writes it immediately bypassing the
// queue. Lines over the 510-byte wire limit are rejected with
// irc.LineTooLongError without touching the queue or transport.
func (s *Scheduler) Send(line string, now bool) error {
	if len(line) > irc.MaxLineLength {
		s.log.Debug("rejecting oversized line", "length", len(line))
		return irc.LineTooLongError{Length: len(line)}
	}

	if !now {
		s.queue.Enqueue(line)
		return nil
	}

	if err := s.conn.Send(line); err != nil {
		return err
	}
	if s.onSent != nil {
		s.onSent(line)
	}
	return nil
}

// QueueLen reports how many lines are currently queued, for diagnostics.
func (s *Scheduler) QueueLen() int {
	return s.queue.Len()
}
