package version_test

import (
	"strings"
	"testing"

	"github.com/composer-audio/composer/version"
)

func TestString(t *testing.T) {
	old := version.Version
	defer func() { version.Version = old }()
	version.Version = "v1.2.3"
	if got := version.String(); !strings.HasPrefix(got, "composer v1.2.3") {
		t.Fatalf("got: %v expected prefix: composer v1.2.3", got)
	}
}
