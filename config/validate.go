package config

import (
	"fmt"

	"github.com/Klingon-tech/seedkit/internal/backup"
	"github.com/Klingon-tech/seedkit/internal/log"
	"github.com/Klingon-tech/seedkit/pkg/mnemonic"
)

// Validate checks config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := mnemonic.ParseHexStripMode(cfg.Hex.Strip); err != nil {
		return fmt.Errorf("hex.strip: %w", err)
	}
	params := backup.Params{
		Memory:      cfg.Backup.Memory,
		Iterations:  cfg.Backup.Iterations,
		Parallelism: cfg.Backup.Parallelism,
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, error or off")
	}
	return nil
}
