package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = ".gitree.toml"

type TreeConfig struct {
	PreserveExpansion bool `toml:"preserve_expansion"`
	Indent            int  `toml:"indent"`
}

type GitConfig struct {
	Remote      string   `toml:"remote"`
	Exclude     []string `toml:"exclude"`
	AuthorName  string   `toml:"author_name"`
	AuthorEmail string   `toml:"author_email"`
}

type Config struct {
	LogFile  string     `toml:"log_file"`
	LogLevel string     `toml:"log_level"`
	Tree     TreeConfig `toml:"tree"`
	Git      GitConfig  `toml:"git"`
}

func Default() Config {
	return Config{
		LogFile:  filepath.Join(os.TempDir(), "gitree.log"),
		LogLevel: "info",
		Tree:     TreeConfig{PreserveExpansion: false, Indent: 2},
		Git:      GitConfig{Remote: "origin"},
	}
}

// Load reads explicit when it is set. Otherwise it tries the repository's
// .gitree.toml, then the user config directory. A missing file yields the
// defaults.
func Load(explicit, repoDir string) (Config, error) {
	if explicit != "" {
		return loadFile(explicit)
	}
	candidates := []string{filepath.Join(repoDir, fileName)}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "gitree", "config.toml"))
	}
	for _, path := range candidates {
		_, err := os.Stat(path)
		if err == nil {
			return loadFile(path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}
	return Default(), nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Tree.Indent < 0 {
		cfg.Tree.Indent = 0
	}
	if cfg.Git.Remote == "" {
		cfg.Git.Remote = "origin"
	}
	return cfg, nil
}
