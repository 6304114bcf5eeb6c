// Package config handles seedtool configuration.
//
// Precedence, lowest first: built-in defaults, the seedtool.conf file,
// command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config holds runtime settings. None of these change the BIP39 math;
// they only shape input handling, output and logging.
type Config struct {
	DataDir string `conf:"datadir"`

	Wordlist WordlistConfig
	Hex      HexConfig
	Shell    ShellConfig
	Backup   BackupConfig
	Log      LogConfig
}

// WordlistConfig selects the wordlist source.
type WordlistConfig struct {
	File string `conf:"wordlist.file"` // empty = embedded BIP39 English
}

// HexConfig holds hex decoding settings.
type HexConfig struct {
	Strip string `conf:"hex.strip"` // prefix or all
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	Hidden bool `conf:"shell.hidden"` // read words without echo on a terminal
}

// BackupConfig holds Argon2id parameters for sealed backups.
type BackupConfig struct {
	Memory      uint32 `conf:"backup.memory"` // KiB
	Iterations  uint32 `conf:"backup.iterations"`
	Parallelism uint8  `conf:"backup.parallelism"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.seedtool
//	macOS:   ~/Library/Application Support/Seedtool
//	Windows: %APPDATA%\Seedtool
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".seedtool"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Seedtool")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Seedtool")
		}
		return filepath.Join(home, "AppData", "Roaming", "Seedtool")
	default:
		return filepath.Join(home, ".seedtool")
	}
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "seedtool.conf")
}
