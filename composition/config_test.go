package composition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/composition"
	"github.com/composer-audio/composer/spec"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.config")
	c, err := composition.LoadConfig(missing, false)
	if err != nil || c.SampleHz != composer.DefaultConsts().SampleHz {
		t.Fatalf("got: %v, %v expected the defaults", c, err)
	}
	if _, err := composition.LoadConfig(missing, true); err == nil {
		t.Fatalf("a required config must exist")
	}
	path := filepath.Join(dir, "composer.config")
	if err := os.WriteFile(path, []byte("consts: {beats-per-minute: 90}"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = composition.LoadConfig(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if c.BeatsPerMinute != 90 {
		t.Fatalf("got: %v expected: 90", c.BeatsPerMinute)
	}

	// the document's consts apply on top of the config
	l := &composition.Loader{Reader: spec.YAMLReader{}, Consts: c}
	comp, err := l.Load([]byte("{consts: {beats-per-bar: 3}, players: {name: empty}}"))
	if err != nil {
		t.Fatal(err)
	}
	if comp.Consts.BeatsPerMinute != 90 || comp.Consts.BeatsPerBar != 3 {
		t.Fatalf("got: %v bpm %v beats per bar expected: 90, 3", comp.Consts.BeatsPerMinute, comp.Consts.BeatsPerBar)
	}
}
