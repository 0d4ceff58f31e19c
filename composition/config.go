package composition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/spec"
)

// DefaultConfigPath is where the command line tools look for a config file.
const DefaultConfigPath = "./composer.config"

// LoadConfig reads the constants in the consts document of the YAML config
// file at path, over the defaults. A missing file is an error only if
// required.
func LoadConfig(path string, required bool) (*composer.Consts, error) {
	c := composer.DefaultConsts()
	text, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	s, err := spec.ParseYAMLSpec(text)
	if err != nil {
		return nil, fmt.Errorf("config %v: %w", path, err)
	}
	doc, ok, err := spec.ConsumeOptional[*spec.Spec](s, "consts")
	if err != nil {
		return nil, fmt.Errorf("config %v: %w", path, err)
	}
	if ok {
		if c, err = c.Override(doc); err != nil {
			return nil, fmt.Errorf("config %v: consts: %w", path, err)
		}
	}
	if err := s.EnsureAllUsed(); err != nil {
		return nil, fmt.Errorf("config %v: %w", path, err)
	}
	return c, nil
}
