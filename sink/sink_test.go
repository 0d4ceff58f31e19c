package sink_test

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/sink"
)

func TestReadIsFIFO(t *testing.T) {
	s := sink.New(4, 3)
	for i := 0; i < 10; i++ {
		if err := s.Write(composer.Playable(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	var got []int32
	buf := make([]int32, 3)
	for len(got) < 10 {
		n := s.Read(buf)
		if n == 0 {
			t.Fatalf("ran out of samples after %v", got)
		}
		got = append(got, buf[:n]...)
	}
	for i, v := range got {
		if v != int32(i) {
			t.Fatalf("got: %v expected samples in write order", got)
		}
	}
	if s.Queued() != 0 {
		t.Fatalf("got: %v frames queued expected: 0", s.Queued())
	}
}

func TestUnderrun(t *testing.T) {
	s := sink.New(4, 3)
	buf := make([]int32, 8)
	if n := s.Read(buf); n != 0 {
		t.Fatalf("got: %v expected: 0", n)
	}
	for i := 0; i < 4; i++ {
		s.Write(1)
	}
	if n := s.Read(buf); n != 4 {
		t.Fatalf("got: %v expected: 4", n)
	}
	if u := s.Underruns(); u != 2 {
		t.Fatalf("got: %v underruns expected: 2", u)
	}
}

func TestBackpressure(t *testing.T) {
	const maxUnplayed = 3
	s := sink.New(16, maxUnplayed)
	done := make(chan struct{})
	var wg sync.WaitGroup
	var exceeded error
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]int32, 16)
		for {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
			}
			if q := s.Queued(); q > maxUnplayed+1 && exceeded == nil {
				exceeded = errors.New("queue too long in consumer")
			}
			s.Read(buf)
		}
	}()
	for i := 0; i < 16*50; i++ {
		if err := s.Write(composer.Playable(i)); err != nil {
			t.Fatal(err)
		}
		if q := s.Queued(); q > maxUnplayed+1 {
			t.Fatalf("got: %v frames queued expected at most: %v", q, maxUnplayed+1)
		}
	}
	close(done)
	wg.Wait()
	if exceeded != nil {
		t.Fatal(exceeded)
	}
}

func TestCloseReleasesProducer(t *testing.T) {
	s := sink.New(1, 1)
	s.Write(1)
	s.Write(2)
	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Close()
	}()
	if err := s.Write(3); !errors.Is(err, sink.ErrClosed) {
		t.Fatalf("got: %v expected: %v", err, sink.ErrClosed)
	}
}

func TestDrain(t *testing.T) {
	s := sink.New(2, 3)
	s.Write(1)
	s.Write(2)
	if s.Drain(10 * time.Millisecond) {
		t.Fatalf("drain of an unread sink should time out")
	}
	go func() {
		buf := make([]int32, 2)
		s.Read(buf)
	}()
	if !s.Drain(time.Second) {
		t.Fatalf("drain should succeed once the frame is read")
	}
}

func TestInt16Reader(t *testing.T) {
	s := sink.New(2, 3)
	s.Write(math.MaxInt32)
	s.Write(math.MinInt32)
	s.Write(1 << 16)
	s.Flush()
	// two samples per pass, so the read spans three passes
	r := sink.NewInt16Reader(s, 2)
	p := make([]byte, 10)
	n, err := r.Read(p)
	if err != nil || n != 10 {
		t.Fatalf("got: %v, %v expected: 10, nil", n, err)
	}
	for i, expected := range []int16{math.MaxInt16, math.MinInt16, 1, 0, 0} {
		if got := int16(binary.LittleEndian.Uint16(p[2*i:])); got != expected {
			t.Fatalf("sample %v got: %v expected: %v", i, got, expected)
		}
	}
}

func TestInt16ReaderDoesNotAllocate(t *testing.T) {
	r := sink.NewInt16Reader(sink.New(4, 3), 4)
	p := make([]byte, 64)
	if allocs := testing.AllocsPerRun(100, func() { r.Read(p) }); allocs != 0 {
		t.Fatalf("got: %v allocations expected: 0", allocs)
	}
}
