package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/draughts/internal/apperror"
)

const (
	ModeTerminal = "terminal"
	ModeConsole  = "console"
	ModeSnapshot = "snapshot"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"DRAUGHTS_LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"DRAUGHTS_LOG_FILE" env-default:"draughts.log"`
	Mode     string `yaml:"mode" env:"DRAUGHTS_MODE" env-default:"terminal"`
	Render   Render `yaml:"render"`
}

type Render struct {
	SquareSize   int    `yaml:"square-size" env:"DRAUGHTS_SQUARE_SIZE" env-default:"64"`
	ThemePath    string `yaml:"theme-path" env:"DRAUGHTS_THEME_PATH"`
	AssetDir     string `yaml:"asset-dir" env:"DRAUGHTS_ASSET_DIR"`
	SnapshotPath string `yaml:"snapshot-path" env:"DRAUGHTS_SNAPSHOT_PATH" env-default:"draughts.png"`
}

// MustLoad - load all configurations in config.yml file, or from the
// environment alone when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, config.validate()
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return config, config.validate()
}

func (that *Config) validate() error {
	if that.Render.SquareSize <= 0 {
		return fmt.Errorf("%w: render.square-size must be positive, got %d", apperror.ErrInvalidConfig, that.Render.SquareSize)
	}

	return nil
}
