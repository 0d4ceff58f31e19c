package outputs

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/sink"
)

// oto allows a single context per process, so it is shared by every speaker.
var (
	otoMu   sync.Mutex
	otoCtx  *oto.Context
	otoRate int
)

func otoContext(rate int) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()
	if otoCtx != nil {
		if rate != otoRate {
			return nil, fmt.Errorf("audio device already opened at %v Hz, cannot reopen at %v Hz", otoRate, rate)
		}
		return otoCtx, nil
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	otoCtx, otoRate = ctx, rate
	return ctx, nil
}

// Speaker plays the composition on the default audio device. Samples are
// buffered in a sink that the device pulls from.
type Speaker struct {
	sink   *sink.Sink
	player *oto.Player
	drain  time.Duration
}

// NewSpeaker opens the audio device at the sample rate of c.
func NewSpeaker(c *composer.Consts, frameSize, maxUnplayed int) (*Speaker, error) {
	ctx, err := otoContext(int(c.SampleHz))
	if err != nil {
		return nil, err
	}
	s := sink.New(frameSize, maxUnplayed)
	player := ctx.NewPlayer(sink.NewInt16Reader(s, frameSize))
	player.SetBufferSize(frameSize * 2)
	player.Play()
	frameTime := time.Duration(float64(frameSize) / c.SampleHz * float64(time.Second))
	return &Speaker{sink: s, player: player, drain: 2*frameTime + time.Second}, nil
}

func (s *Speaker) Write(p composer.Playable) error {
	return s.sink.Write(p)
}

// Close plays what is still queued and releases the device.
func (s *Speaker) Close() error {
	if err := s.sink.Flush(); err == nil {
		s.sink.Drain(s.drain)
	}
	s.sink.Close()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
