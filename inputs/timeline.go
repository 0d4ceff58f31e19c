package inputs

import (
	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

// Timeline plays a looping pattern of events. Each character of the pattern
// lasts one event duration; '_' is off and any other character is on.
type Timeline struct {
	pattern  []bool
	duration composer.Time
}

// NewTimeline parses events into a timeline.
func NewTimeline(events string, duration composer.Time) (*Timeline, error) {
	if events == "" {
		return nil, &spec.BadValueError{Field: "events", Value: events, Reason: "must not be empty"}
	}
	if duration.IsZero() {
		return nil, &spec.BadValueError{Field: "event-duration", Value: duration.String(), Reason: "must be longer than zero"}
	}
	t := &Timeline{duration: duration}
	for _, r := range events {
		t.pattern = append(t.pattern, r != '_')
	}
	return t, nil
}

func (t *Timeline) Get(s composer.State) bool {
	d := t.duration.Ticks(s.Consts)
	if d == 0 {
		d = 1
	}
	return t.pattern[(s.Tick()/d)%uint64(len(t.pattern))]
}
