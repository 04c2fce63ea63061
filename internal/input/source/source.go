// Package source turns blocking terminal input into an ordered stream of
// editor events.
//
// A Source runs two producer goroutines. The poll goroutine blocks on the
// backend's PollEvent, decodes each raw event into a key.Event and sends
// it on a bounded channel. The tick goroutine sends a Tick event at a fixed
// rate so the consumer wakes up even when nobody types. Sends block when
// the channel is full; events are never dropped or coalesced.
package source

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/renderer/backend"
)

// ErrClosed is returned by Next once the backend has shut down and every
// queued event has been delivered.
var ErrClosed = errors.New("input source closed")

const (
	// DefaultTickRate is the liveness tick interval.
	DefaultTickRate = 250 * time.Millisecond

	// DefaultBufferSize is the event channel capacity.
	DefaultBufferSize = 256
)

// Event is one item delivered to the editor loop. Exactly one of Tick,
// Resize or a key press is represented; for ticks and resizes Key is
// KindOther.
type Event struct {
	Key key.Event

	// Tick marks a liveness event with no payload.
	Tick bool

	// Resize marks a terminal size change.
	Resize        bool
	Width, Height int
}

// Source produces events from a backend.
type Source struct {
	backend  backend.Backend
	tickRate time.Duration
	bufSize  int

	events   chan Event
	done     chan struct{}
	pollDone chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// Option configures a Source.
type Option func(*Source)

// WithTickRate sets the tick interval.
func WithTickRate(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.tickRate = d
		}
	}
}

// WithBufferSize sets the event channel capacity.
func WithBufferSize(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.bufSize = n
		}
	}
}

// New creates a source reading from b. Call Start to begin producing.
func New(b backend.Backend, opts ...Option) *Source {
	s := &Source{
		backend:  b,
		tickRate: DefaultTickRate,
		bufSize:  DefaultBufferSize,
		done:     make(chan struct{}),
		pollDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make(chan Event, s.bufSize)
	return s
}

// Start launches the producer goroutines. Calling Start more than once
// has no effect.
func (s *Source) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(2)
		go s.poll()
		go s.tick()

		// The channel has two senders, so it is closed only after both exit.
		go func() {
			s.wg.Wait()
			close(s.events)
		}()
	})
}

// Events returns the receive half of the event channel.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Next blocks until the next event is available. It returns ErrClosed when
// the source is exhausted and ctx.Err() if ctx is done first.
func (s *Source) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-s.events:
		if !ok {
			return Event{}, ErrClosed
		}
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Stop releases blocked senders and stops the tick goroutine.
//
// Note: PollEvent is blocking, so the poll goroutine only exits once the
// backend is shut down. Callers should call backend.Shutdown() as well.
func (s *Source) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// poll reads raw events until the backend closes.
func (s *Source) poll() {
	defer s.wg.Done()
	defer close(s.pollDone)

	for {
		raw := s.backend.PollEvent()

		var ev Event
		switch raw.Type {
		case backend.EventClosed:
			return
		case backend.EventResize:
			ev = Event{Key: key.Other(), Resize: true, Width: raw.Width, Height: raw.Height}
		default:
			ev = Event{Key: key.Decode(raw)}
		}

		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// tick emits Tick events until the source stops or polling ends.
func (s *Source) tick() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-s.done:
			return
		case <-s.pollDone:
			return
		}

		select {
		case s.events <- Event{Key: key.Other(), Tick: true}:
		case <-s.done:
			return
		case <-s.pollDone:
			return
		}
	}
}
