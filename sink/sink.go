// Package sink buffers the samples of a composition into frames and hands
// them to a real-time audio callback, blocking the producer while too many
// frames are waiting to be played.
package sink

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/composer-audio/composer"
)

// Default sizes used by speaker outputs.
const (
	DefaultFrameSize   = 2048
	DefaultMaxUnplayed = 3
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("sink closed")

// Sink collects samples written one at a time into frames of frameSize.
// Full frames are queued for Read; Write blocks while more than maxUnplayed
// frames are queued, so the queue never holds more than maxUnplayed+1
// frames.
//
// Write and Flush must be called from a single goroutine. Read may be called
// concurrently from another, typically an audio callback; it never blocks on
// the producer and never allocates.
type Sink struct {
	frameSize   int
	maxUnplayed int

	current *[]int32
	pool    sync.Pool

	mu   sync.Mutex
	ring []*[]int32
	head int
	n    int
	// offset into the frame at head that Read has already copied
	offset int

	played    chan struct{}
	closed    chan struct{}
	closeOnce sync.Once

	underruns atomic.Uint64
	reported  uint64
}

// New returns a sink. Values below 1 are replaced with the defaults.
func New(frameSize, maxUnplayed int) *Sink {
	if frameSize < 1 {
		frameSize = DefaultFrameSize
	}
	if maxUnplayed < 1 {
		maxUnplayed = DefaultMaxUnplayed
	}
	s := &Sink{
		frameSize:   frameSize,
		maxUnplayed: maxUnplayed,
		ring:        make([]*[]int32, maxUnplayed+1),
		played:      make(chan struct{}, 1),
		closed:      make(chan struct{}),
	}
	s.pool.New = func() any {
		f := make([]int32, 0, frameSize)
		return &f
	}
	s.current = s.pool.Get().(*[]int32)
	return s
}

// Write adds a sample to the current frame, queueing the frame when it is
// full.
func (s *Sink) Write(p composer.Playable) error {
	*s.current = append(*s.current, int32(p))
	if len(*s.current) < s.frameSize {
		return nil
	}
	return s.push()
}

// Flush queues the current frame even if it is not full.
func (s *Sink) Flush() error {
	if len(*s.current) == 0 {
		return nil
	}
	return s.push()
}

func (s *Sink) push() error {
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	for s.Queued() > s.maxUnplayed {
		select {
		case <-s.played:
		case <-s.closed:
			return ErrClosed
		}
	}
	s.mu.Lock()
	s.ring[(s.head+s.n)%len(s.ring)] = s.current
	s.n++
	s.mu.Unlock()
	s.current = s.pool.Get().(*[]int32)
	*s.current = (*s.current)[:0]
	s.reportUnderruns()
	return nil
}

func (s *Sink) reportUnderruns() {
	u := s.underruns.Load()
	if u == s.reported {
		return
	}
	log.Printf("sink: audio callback ran out of samples %d times", u-s.reported)
	s.reported = u
}

// Queued returns the number of frames waiting to be read, including a
// partially read one.
func (s *Sink) Queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Read copies queued samples into dst in the order they were written and
// returns how many were copied. Fully read frames are released and the
// producer is notified. If the queue runs dry before dst is full, the
// shortfall is counted as an underrun and the rest of dst is left untouched.
func (s *Sink) Read(dst []int32) int {
	copied := 0
	released := false
	s.mu.Lock()
	for copied < len(dst) && s.n > 0 {
		f := s.ring[s.head]
		c := copy(dst[copied:], (*f)[s.offset:])
		copied += c
		s.offset += c
		if s.offset == len(*f) {
			s.ring[s.head] = nil
			s.head = (s.head + 1) % len(s.ring)
			s.n--
			s.offset = 0
			s.pool.Put(f)
			released = true
		}
	}
	s.mu.Unlock()
	if copied < len(dst) {
		s.underruns.Add(1)
	}
	if released {
		TrySend(s.played, struct{}{})
	}
	return copied
}

// Underruns returns how many reads found too few samples queued.
func (s *Sink) Underruns() uint64 {
	return s.underruns.Load()
}

// Drain waits until every queued frame has been read, giving up after
// timeout passes without a frame being played.
func (s *Sink) Drain(timeout time.Duration) bool {
	for s.Queued() > 0 {
		if _, ok := TimeoutReceive(s.played, timeout); !ok {
			return false
		}
	}
	return true
}

// Close releases a producer blocked in Write. Writes that complete a frame
// after Close fail with ErrClosed.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

// TrySend is a helper function to send a value to a channel if it is not
// full. It is guaranteed to be non-blocking. Return true if the value was
// sent, false otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received from a channel, or times
// out after t. ok is false if the timeout occurred.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
