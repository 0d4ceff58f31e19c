package reload_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/reload"
)

type constant composer.Playable

func (c constant) Play(composer.State) composer.Playable { return composer.Playable(c) }

var errBroken = errors.New("broken")

func loader(built *[]string) reload.LoaderFunc {
	return func(text []byte) (composer.Player, error) {
		*built = append(*built, string(text))
		if string(text) == "broken" {
			return nil, errBroken
		}
		return constant(len(text)), nil
	}
}

func write(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSameContentBuildsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.yml")
	var built []string
	s := reload.New(path, 0, loader(&built))
	write(t, path, "abc")
	for i := 0; i < 2; i++ {
		if _, err := s.Poll(); err != nil {
			t.Fatal(err)
		}
	}
	if s.Loads() != 1 {
		t.Fatalf("got: %v loads expected: 1", s.Loads())
	}
	p, ok := s.Take()
	if !ok || p.Play(composer.State{}) != 3 {
		t.Fatalf("got: %v, %v expected the rebuilt player", p, ok)
	}
	if _, ok := s.Take(); ok {
		t.Fatalf("slot should be empty after Take")
	}
}

func TestSeedSkipsInitialContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.yml")
	var built []string
	s := reload.New(path, 0, loader(&built))
	write(t, path, "abc")
	s.Seed([]byte("abc"))
	if rebuilt, err := s.Poll(); err != nil || rebuilt {
		t.Fatalf("got: %v, %v expected no rebuild", rebuilt, err)
	}
	write(t, path, "abcd")
	if rebuilt, err := s.Poll(); err != nil || !rebuilt {
		t.Fatalf("got: %v, %v expected a rebuild", rebuilt, err)
	}
}

func TestFailureIsNotRetried(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.yml")
	var built []string
	s := reload.New(path, 0, loader(&built))
	write(t, path, "broken")
	if _, err := s.Poll(); !errors.Is(err, errBroken) {
		t.Fatalf("got: %v expected: %v", err, errBroken)
	}
	if _, err := s.Poll(); err != nil {
		t.Fatalf("unchanged broken file should be skipped, got: %v", err)
	}
	if _, ok := s.Take(); ok {
		t.Fatalf("failed build should leave the slot empty")
	}
	write(t, path, "fixed")
	if _, err := s.Poll(); err != nil {
		t.Fatal(err)
	}
	if len(built) != 2 {
		t.Fatalf("got: %v builds expected: 2", built)
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.yml")
	var built []string
	s := reload.New(path, time.Millisecond, loader(&built))
	write(t, path, "abc")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	deadline := time.After(5 * time.Second)
	for {
		if p, ok := s.Take(); ok {
			if got := p.Play(composer.State{}); got != 3 {
				t.Fatalf("got: %v expected: 3", got)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("supervisor did not rebuild the file")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
	if s.Loads() != 1 {
		t.Fatalf("got: %v loads expected: 1", s.Loads())
	}
}

func TestZeroIntervalNeverRuns(t *testing.T) {
	var built []string
	s := reload.New("does-not-exist", 0, loader(&built))
	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run should return at once with a zero interval")
	}
}
