package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ikanago/toysh/pkg/editor"
)

// FileConfig represents a toysh config.toml file.
type FileConfig struct {
	// Prompt is printed before the input line. It may contain newlines and
	// ANSI escape codes.
	Prompt string `toml:"prompt"`

	// EOLMark is shown in reverse video when a command's output did not end
	// in a newline. An empty string disables it.
	EOLMark string `toml:"eol_mark"`

	// PollInterval is how long the editor waits for a key before checking
	// for shutdown, e.g. "100ms".
	PollInterval time.Duration `toml:"poll_interval"`

	// ExitOnEOF ends the session when Ctrl-D is pressed on an empty line.
	ExitOnEOF bool `toml:"exit_on_eof"`
}

func DefaultFileConfig() FileConfig {
	return FileConfig{
		Prompt:       " $ ",
		EOLMark:      "$",
		PollInterval: editor.DefaultPollInterval,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/toysh/config.toml or the
// platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "toysh", "config.toml"), nil
}

// LoadConfig reads the config file at path over the defaults. With an empty
// path the default location is used, and a missing file there is not an
// error.
func LoadConfig(path string) (FileConfig, error) {
	config := DefaultFileConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			slog.Debug("no user config dir", "error", err)
			return config, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultFileConfig(), nil
		}
		return FileConfig{}, errors.Wrapf(err, "parsing %s", path)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "file", path, "key", key.String())
	}

	if config.PollInterval < 0 {
		return FileConfig{}, errors.Errorf("%s: poll_interval must not be negative, got %s", path, config.PollInterval)
	}
	return config, nil
}

// EditorOptions converts the file config into session options.
func (c FileConfig) EditorOptions() editor.Options {
	return editor.Options{
		Prompt:       c.Prompt,
		EOLMark:      c.EOLMark,
		PollInterval: c.PollInterval,
		ExitOnEOF:    c.ExitOnEOF,
	}
}
