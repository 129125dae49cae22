package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised by the CLI.
const (
	EnvDBPath     = "WHALE_DB"
	EnvConfigPath = "WHALE_CONFIG"
	EnvLogPath    = "WHALE_LOG"
	EnvFPS        = "WHALE_FPS"
)

// Env holds overrides read from the process environment.
// Zero values mean "not set".
type Env struct {
	DBPath     string
	ConfigPath string
	LogPath    string
	FPS        int
}

// LoadEnv merges the given .env files into the process environment
// (existing variables win) and returns the recognised overrides.
// Missing files are ignored; a malformed file is reported.
func LoadEnv(files ...string) (Env, error) {
	var loadErr error
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			loadErr = errors.Join(loadErr, err)
		}
	}

	env := Env{
		DBPath:     os.Getenv(EnvDBPath),
		ConfigPath: os.Getenv(EnvConfigPath),
		LogPath:    os.Getenv(EnvLogPath),
	}
	if v := os.Getenv(EnvFPS); v != "" {
		if fps, err := strconv.Atoi(v); err == nil && fps > 0 {
			env.FPS = fps
		}
	}
	return env, loadErr
}
