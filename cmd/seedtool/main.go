// seedtool is an offline tool for 24-word BIP39 mnemonics: validate,
// recover the last word, and convert to and from compact hex.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/seedkit/config"
	"github.com/Klingon-tech/seedkit/internal/backup"
	"github.com/Klingon-tech/seedkit/internal/log"
	"github.com/Klingon-tech/seedkit/internal/shell"
	"github.com/Klingon-tech/seedkit/pkg/mnemonic"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	cfg, flags, err := config.Load(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			config.PrintUsage(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		config.PrintUsage(stderr)
		return 1
	}
	if flags.Help {
		config.PrintUsage(stdout)
		return 0
	}
	if flags.Version {
		fmt.Fprintf(stdout, "seedtool version %s\n", config.Version)
		return 0
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fmt.Fprintf(stderr, "Error: init logging: %v\n", err)
		return 1
	}

	cmd := "shell"
	var cmdArgs []string
	if len(flags.Args) > 0 {
		cmd = flags.Args[0]
		cmdArgs = flags.Args[1:]
	}

	switch cmd {
	case "help":
		config.PrintUsage(stdout)
		return 0
	case "init-config":
		return cmdInitConfig(cfg, stdout, stderr)
	}

	wl, err := loadWordlist(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "[!] Failed to load wordlist: %v\n", err)
		return 1
	}

	if cmd == "wordlist" {
		fmt.Fprintf(stdout, "words:       %d\n", wl.Len())
		fmt.Fprintf(stdout, "english:     %v\n", wl.IsEnglish())
		fmt.Fprintf(stdout, "fingerprint: %s\n", wl.Fingerprint())
		return 0
	}

	strip, _ := mnemonic.ParseHexStripMode(cfg.Hex.Strip) // checked by config.Validate
	codec := mnemonic.NewCodec(wl, mnemonic.WithHexStripMode(strip))
	sh := shell.New(codec, shell.NewPrompter(stdin, stdout), stdout, shell.Config{
		HideWords: cfg.Shell.Hidden,
		Backup: backup.Params{
			Memory:      cfg.Backup.Memory,
			Iterations:  cfg.Backup.Iterations,
			Parallelism: cfg.Backup.Parallelism,
		},
	})

	if cmd == "shell" {
		if err := sh.Run(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if !isCommand(cmd) {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", cmd)
		config.PrintUsage(stderr)
		return 1
	}
	if err := sh.Exec(cmd, strings.Join(cmdArgs, " ")); err != nil {
		if !errors.Is(err, shell.ErrInvalidMnemonic) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadWordlist returns the configured wordlist, or the built-in English
// list when none is configured.
func loadWordlist(cfg *config.Config) (*mnemonic.Wordlist, error) {
	var (
		wl     *mnemonic.Wordlist
		err    error
		source = "builtin"
	)
	if cfg.Wordlist.File != "" {
		source = cfg.Wordlist.File
		wl, err = mnemonic.LoadWordlistFile(cfg.Wordlist.File)
		if err != nil {
			return nil, err
		}
	} else {
		wl = mnemonic.English()
	}

	ev := log.Wordlist.Info()
	if !wl.IsEnglish() {
		ev = log.Wordlist.Warn()
	}
	ev.Str("source", source).
		Int("words", wl.Len()).
		Bool("english", wl.IsEnglish()).
		Str("fingerprint", wl.Fingerprint()).
		Msg("wordlist loaded")
	return wl, nil
}

func isCommand(name string) bool {
	for _, c := range shell.Commands() {
		if c == name {
			return true
		}
	}
	return false
}

func cmdInitConfig(cfg *config.Config, stdout, stderr io.Writer) int {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		fmt.Fprintf(stderr, "Error: create data dir: %v\n", err)
		return 1
	}
	path := cfg.ConfigFile()
	if err := config.WriteDefaultConfig(path); err != nil {
		fmt.Fprintf(stderr, "Error: write config: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return 0
}
