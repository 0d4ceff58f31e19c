//go:build portaudio

package outputs

import (
	"fmt"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/viterin/vek/vek32"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/sink"
)

// PortAudioSpeaker plays the composition through a PortAudio callback
// stream.
type PortAudioSpeaker struct {
	sink    *sink.Sink
	stream  *portaudio.Stream
	scratch []int32
	drain   time.Duration
}

func NewPortAudioSpeaker(c *composer.Consts, frameSize, maxUnplayed int) (composer.Output, error) {
	if frameSize < 1 {
		frameSize = sink.DefaultFrameSize
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("cannot initialize portaudio: %w", err)
	}
	s := &PortAudioSpeaker{
		sink:    sink.New(frameSize, maxUnplayed),
		scratch: make([]int32, frameSize),
		drain:   2*time.Duration(float64(frameSize)/c.SampleHz*float64(time.Second)) + time.Second,
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, c.SampleHz, frameSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("cannot open portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("cannot start portaudio stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

// process runs on the PortAudio thread. It converts through the scratch
// buffer sized at creation and must not allocate.
func (s *PortAudioSpeaker) process(out []float32) {
	for done := 0; done < len(out); {
		buf := s.scratch[:min(len(out)-done, len(s.scratch))]
		n := s.sink.Read(buf)
		clear(buf[n:])
		for i, v := range buf {
			out[done+i] = float32(v)
		}
		done += len(buf)
	}
	vek32.MulNumber_Inplace(out, 1/float32(math.MaxInt32))
}

func (s *PortAudioSpeaker) Write(p composer.Playable) error {
	return s.sink.Write(p)
}

func (s *PortAudioSpeaker) Close() error {
	if err := s.sink.Flush(); err == nil {
		s.sink.Drain(s.drain)
	}
	s.sink.Close()
	err := s.stream.Stop()
	s.stream.Close()
	portaudio.Terminate()
	if err != nil {
		return fmt.Errorf("cannot stop portaudio stream: %w", err)
	}
	return nil
}
