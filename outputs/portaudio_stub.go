//go:build !portaudio

package outputs

import (
	"errors"

	"github.com/composer-audio/composer"
)

func NewPortAudioSpeaker(c *composer.Consts, frameSize, maxUnplayed int) (composer.Output, error) {
	return nil, errors.New("portaudio output not supported in this build; rebuild with -tags portaudio")
}
