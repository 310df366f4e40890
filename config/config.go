package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"
)

const (
	MinChunkWidth = 1
	MaxChunkWidth = 64
)

const (
	DefaultConfigDirName  = ".bitstream"
	DefaultConfigFileName = "config.yaml"
	DefaultLogLevel       = "info"
	DefaultChunkWidth     = 13
)

var DefaultConfigFile = filepath.Join(smutil.GetUserHomeDirectory(), DefaultConfigDirName, DefaultConfigFileName)

type Config struct {
	LogLevel string `mapstructure:"log-level"`

	// Layout is the path of a YAML field layout used by `read`.
	Layout string `mapstructure:"layout"`

	// Workspace makes the CLI hand a caller-owned workspace to every stream
	// instead of letting the stream allocate.
	Workspace bool `mapstructure:"workspace"`

	// ChunkWidth is the field width `copy` re-packs data with.
	ChunkWidth uint `mapstructure:"chunk"`

	// CheckSpace enables the free disk space check before `copy`.
	CheckSpace bool `mapstructure:"check-space"`
}

func (cfg *Config) Validate() error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `LogLevel`; given: %q: %w", cfg.LogLevel, err)
	}

	if cfg.ChunkWidth < MinChunkWidth {
		return fmt.Errorf("invalid `ChunkWidth`; expected: >= %d, given: %d", MinChunkWidth, cfg.ChunkWidth)
	}

	if cfg.ChunkWidth > MaxChunkWidth {
		return fmt.Errorf("invalid `ChunkWidth`; expected: <= %d, given: %d", MaxChunkWidth, cfg.ChunkWidth)
	}

	return nil
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		ChunkWidth: DefaultChunkWidth,
		CheckSpace: true,
	}
}
