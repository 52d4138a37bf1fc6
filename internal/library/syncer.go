package library

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/mailbox"
)

// ErrSyncerClosed is returned by requests made after Close.
var ErrSyncerClosed = errors.New("library syncer closed")

const (
	// DefaultPollInterval is how often pending change signals are checked.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultQuietWindow is how long the directory must stay quiet before a
	// burst of change signals triggers a reconciliation.
	DefaultQuietWindow = 500 * time.Millisecond

	subscriberBuffer = 1
)

// Changed is delivered to subscribers after a signal-driven reconciliation.
type Changed struct {
	Index *Index
}

type scanResult struct {
	idx *Index
	err error
}

// message is either a change signal (reply nil) or an explicit scan request.
type message struct {
	reply chan scanResult
}

// SyncerOptions tune the debounce loop.
type SyncerOptions struct {
	PollInterval time.Duration
	QuietWindow  time.Duration
	Logger       *log.Logger
}

// Syncer owns a Reconciler and runs every reconciliation on one goroutine.
// Change signals are debounced; explicit scans run as soon as they are
// dequeued. Both share one queue, so reconciliations never overlap.
type Syncer struct {
	rec    *Reconciler
	inbox  *mailbox.Mailbox[message]
	poll   time.Duration
	quiet  time.Duration
	logger *log.Logger
	done   chan struct{}

	subsMu sync.Mutex
	subs   []chan Changed
}

// NewSyncer starts the reconciliation loop.
func NewSyncer(rec *Reconciler, opts SyncerOptions) *Syncer {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	quiet := opts.QuietWindow
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Syncer{
		rec:    rec,
		inbox:  mailbox.New[message](),
		poll:   poll,
		quiet:  quiet,
		logger: logger,
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Notify records that the directory changed. It never blocks and reports
// false once the syncer is closed.
func (s *Syncer) Notify() bool {
	return s.inbox.Send(message{})
}

// Scan reconciles now and returns the resulting index.
func (s *Syncer) Scan(ctx context.Context) (*Index, error) {
	reply := make(chan scanResult, 1)
	if !s.inbox.Send(message{reply: reply}) {
		return nil, ErrSyncerClosed
	}

	select {
	case res := <-reply:
		return res.idx, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		// The loop may have answered just before exiting.
		select {
		case res := <-reply:
			return res.idx, res.err
		default:
			return nil, ErrSyncerClosed
		}
	}
}

// Subscribe returns a channel receiving Changed events. A subscriber that
// falls behind only ever sees the most recent event. The channel is closed
// when the syncer stops.
func (s *Syncer) Subscribe() <-chan Changed {
	ch := make(chan Changed, subscriberBuffer)

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	select {
	case <-s.done:
		close(ch)
	default:
		s.subs = append(s.subs, ch)
	}
	return ch
}

// Close stops accepting requests and waits for queued ones to finish.
func (s *Syncer) Close() {
	s.inbox.Close()
	<-s.done
}

func (s *Syncer) run() {
	defer s.closeSubscribers()
	defer close(s.done)

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	var (
		pending    bool
		lastSignal time.Time
	)
	for {
		select {
		case msg, ok := <-s.inbox.Recv():
			if !ok {
				return
			}
			if msg.reply != nil {
				idx, err := s.rec.Reconcile()
				msg.reply <- scanResult{idx: idx, err: err}
				continue
			}
			pending = true
			lastSignal = time.Now()

		case <-ticker.C:
			if !pending || time.Since(lastSignal) < s.quiet {
				continue
			}
			pending = false
			idx, err := s.rec.Reconcile()
			if err != nil {
				s.logger.Error("library reconciliation failed", "err", err)
				continue
			}
			s.publish(Changed{Index: idx})
		}
	}
}

// publish delivers ev to every subscriber, replacing a stale undelivered
// event when a subscriber's buffer is full.
func (s *Syncer) publish(ev Changed) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		ev := Changed{Index: ev.Index.Clone()}
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Syncer) closeSubscribers() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}
