// Package config loads the .html-indexer configuration file and compiles its
// pattern lists into path predicates.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/htmlindexer/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".html-indexer"

// File mirrors the on-disk configuration document. The documented format is
// JSON; a document that does not start with "{" is read as YAML.
type File struct {
	NoOverwrite PatternList `json:"noOverwrite" yaml:"noOverwrite"`
	Ignore      PatternList `json:"ignore" yaml:"ignore"`
	Prune       PatternList `json:"prune,omitempty" yaml:"prune,omitempty"`
	Readme      bool        `json:"readme,omitempty" yaml:"readme,omitempty"`
	Template    string      `json:"template,omitempty" yaml:"template,omitempty"`
}

// Config is a loaded configuration with compiled matchers.
type Config struct {
	File

	// Source is the path the configuration was read from, empty for defaults.
	Source string

	noOverwrite *Matcher
	ignore      *Matcher
	prune       *Matcher
}

// Default returns a new configuration with no patterns. Each call builds a
// fresh value.
func Default() *Config {
	return &Config{
		File: File{NoOverwrite: PatternList{}, Ignore: PatternList{}},
	}
}

// New compiles f into a Config.
func New(f File) (*Config, error) {
	cfg := &Config{File: f}
	var err error
	if cfg.noOverwrite, err = Compile("noOverwrite", f.NoOverwrite); err != nil {
		return nil, err
	}
	if cfg.ignore, err = Compile("ignore", f.Ignore); err != nil {
		return nil, err
	}
	if cfg.prune, err = Compile("prune", f.Prune); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration at path. A missing file yields Default(); a
// malformed or unreadable file, or an invalid pattern, is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	// #nosec G304 -- the configuration path is chosen by the user.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "read configuration").
			Fatal().
			WithContext("config", path).
			Build()
	}

	f, err := decode(data)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "parse configuration").
			Fatal().
			WithContext("config", path).
			Build()
	}

	if f.Template != "" && !filepath.IsAbs(f.Template) {
		f.Template = filepath.Join(filepath.Dir(path), f.Template)
	}

	cfg, err := New(f)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "compile configuration patterns").
			Fatal().
			WithContext("config", path).
			Build()
	}
	cfg.Source = path
	return cfg, nil
}

func decode(data []byte) (File, error) {
	var f File
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return f, nil
	}
	if trimmed[0] == '{' {
		err := json.Unmarshal(trimmed, &f)
		return f, err
	}
	err := yaml.Unmarshal(trimmed, &f)
	return f, err
}

// IsProtected reports whether an existing output at path must not be rewritten.
func (c *Config) IsProtected(path string) bool {
	return c.noOverwrite.Match(path)
}

// IsExcluded reports whether path is excluded from listings and traversal.
func (c *Config) IsExcluded(path string) bool {
	return c.ignore.Match(path)
}

// IsPruned reports whether traversal must stop below the directory at path.
func (c *Config) IsPruned(path string) bool {
	return c.prune.Match(path)
}

// ExampleJSON is the configuration written by Init and shown in help output.
const ExampleJSON = `{
  "noOverwrite": ["^index\\.html$", "^docs/index\\.html$"],
  "ignore": ["(^|/)\\.git($|/)", "(^|/)node_modules($|/)", "(^|/)\\.html-indexer$"],
  "prune": ["^vendor$"],
  "readme": false
}
`

// Init writes the example configuration to path.
func Init(path string, force bool) error {
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("config", path).
			Build()
	}
	if err := os.WriteFile(path, []byte(ExampleJSON), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration").
			Fatal().
			WithContext("config", path).
			Build()
	}
	return nil
}
