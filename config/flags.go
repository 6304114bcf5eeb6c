package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Version is the seedtool release.
const Version = "0.1.0"

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	DataDir string
	Config  string

	// Wordlist
	Wordlist string

	// Hex
	HexStrip string

	// Shell
	Hidden bool

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args (command and its arguments)
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetHidden  bool
	SetLogJSON bool
}

// ParseFlags parses global flags from args (without the program name).
// Parsing stops at the first non-flag argument, which starts the command.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("seedtool", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	// Core
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	fs.StringVar(&f.Wordlist, "wordlist", "", "Wordlist file (2048 lines)")
	fs.StringVar(&f.HexStrip, "hex-strip", "", "0x removal: prefix or all")
	fs.BoolVar(&f.Hidden, "hidden", false, "Read words without echo")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.SetHidden = isFlagSet(fs, "hidden")
	f.SetLogJSON = isFlagSet(fs, "log-json")
	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.Wordlist != "" {
		cfg.Wordlist.File = f.Wordlist
	}
	if f.HexStrip != "" {
		cfg.Hex.Strip = strings.ToLower(f.HexStrip)
	}
	if f.SetHidden {
		cfg.Shell.Hidden = f.Hidden
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	usage := `seedtool - offline 24-word BIP39 toolkit

Usage:
  seedtool [options] [command] [words...]

Commands:
  shell           Interactive menu (default)
  validate        Check a 24-word mnemonic's checksum
  last-word       Compute the 24th word from the first 23
  candidates      List all 8 valid 24th words for the first 23
  rebuild         Rebuild a valid mnemonic from 23 or 24 words
  encode-hex      Encode 24 words as 72 hex characters
  decode-hex      Decode 72 hex characters back to 24 words
  seal            Encrypt a mnemonic with a passphrase
  open            Decrypt a sealed backup
  wordlist        Show the wordlist fingerprint
  init-config     Write a default config file

  Words may be given as arguments; otherwise they are prompted for.

Options:
  --help, -h      Show this help message
  --version, -v   Show version information
  --datadir       Data directory (default: ~/.seedtool)
  --config, -c    Config file path (default: <datadir>/seedtool.conf)
  --wordlist      Wordlist file, 2048 lines (default: built-in English)
  --hex-strip     How "0x" is removed from hex: prefix (default) or all
  --hidden        Read words without echo on a terminal
  --log-level     debug, info, warn (default), error, off
  --log-file      Also write JSON logs to this file
  --log-json      Output logs as JSON

Security:
  Run offline on a trusted machine. Never paste real seeds on an online
  computer.
`
	fmt.Fprint(w, usage)
}

// Load builds configuration from defaults, the config file and args.
func Load(args []string) (*Config, *Flags, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := Default()
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	// Apply flags (highest precedence)
	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, flags, nil
}
