package storemask

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config carries every path the pipeline works against. Components take
// it as an explicit parameter, nothing reads ambient process state.
type Config struct {
	// Root is the directory holding one subdirectory per named view.
	Root string `yaml:"root"`
	// Store is the package store directory the views filter.
	Store string `yaml:"store"`
	// Name selects the view instance to operate on.
	Name string `yaml:"-"`
	// Roots are the package paths whose closure stays visible.
	Roots []string `yaml:"-"`
	// Debug enables debug logging.
	Debug bool `yaml:"-"`
}

// DefaultConfig returns the built in defaults.
func DefaultConfig() Config {
	return Config{
		Root:  DefaultRoot,
		Store: DefaultStore,
	}
}

// LoadConfig reads the YAML file at path on top of the defaults. A
// missing file is only an error when the path was given explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Store == "" {
		cfg.Store = DefaultStore
	}
	return cfg, nil
}
