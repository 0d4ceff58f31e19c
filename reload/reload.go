// Package reload rebuilds the root player of a composition when its
// composition file changes, off the audio path.
package reload

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

type (
	// Loader builds a root player from the text of a composition file.
	Loader interface {
		LoadPlayer(text []byte) (composer.Player, error)
	}

	// LoaderFunc adapts a function to a Loader.
	LoaderFunc func(text []byte) (composer.Player, error)

	// Supervisor polls a composition file. When its content changes, the
	// file is rebuilt and the new player is left in a slot for the driver to
	// Take.
	Supervisor struct {
		path     string
		interval time.Duration
		loader   Loader

		hash   uint64
		hashed bool

		mu      sync.Mutex
		pending composer.Player

		loads atomic.Int64
	}
)

func (f LoaderFunc) LoadPlayer(text []byte) (composer.Player, error) { return f(text) }

// New returns a supervisor for the file at path. An interval of zero
// disables polling in Run.
func New(path string, interval time.Duration, loader Loader) *Supervisor {
	return &Supervisor{path: path, interval: interval, loader: loader}
}

// Seed records text as already loaded, so polling only rebuilds after the
// file differs from it.
func (s *Supervisor) Seed(text []byte) {
	s.hash, s.hashed = spec.Hash(text), true
}

// Poll reads the file once and rebuilds it if its content differs from the
// last attempt, reporting whether a new player was built. The hash is
// recorded before building, so content that failed to build is not retried
// until it changes.
func (s *Supervisor) Poll() (bool, error) {
	text, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("could not read %v: %w", s.path, err)
	}
	h := spec.Hash(text)
	if s.hashed && h == s.hash {
		return false, nil
	}
	s.hash, s.hashed = h, true
	s.loads.Add(1)
	p, err := s.loader.LoadPlayer(text)
	if err != nil {
		return false, fmt.Errorf("could not rebuild %v: %w", s.path, err)
	}
	s.mu.Lock()
	s.pending = p
	s.mu.Unlock()
	return true, nil
}

// Run polls every interval until ctx is done. Failures are logged and the
// previous player keeps playing.
func (s *Supervisor) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rebuilt, err := s.Poll()
			if err != nil {
				log.Printf("reload: %v", err)
			} else if rebuilt {
				log.Printf("reload: rebuilt %v", s.path)
			}
		}
	}
}

// Take returns the rebuilt player waiting in the slot and clears it. It
// never blocks: if the slot is being written, Take reports nothing and the
// driver tries again at its next boundary.
func (s *Supervisor) Take() (composer.Player, bool) {
	if !s.mu.TryLock() {
		return nil, false
	}
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p, p != nil
}

// Loads returns how many times the file has been built.
func (s *Supervisor) Loads() int {
	return int(s.loads.Load())
}
