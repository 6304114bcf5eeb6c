// Package shell implements the interactive seedtool menu and the
// one-shot commands behind it.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Klingon-tech/seedkit/internal/backup"
	"github.com/Klingon-tech/seedkit/internal/log"
	"github.com/Klingon-tech/seedkit/pkg/mnemonic"
)

// ErrInvalidMnemonic is returned by the validate command for a mnemonic
// whose checksum does not match.
var ErrInvalidMnemonic = errors.New("mnemonic checksum is invalid")

// Shell runs seedtool commands against a codec.
type Shell struct {
	codec     *mnemonic.Codec
	prompt    Prompter
	out       io.Writer
	hideWords bool
	params    backup.Params
}

// Config holds Shell settings.
type Config struct {
	HideWords bool          // prompt for words and hex without echo
	Backup    backup.Params // Argon2id parameters for seal
}

// New returns a shell that prompts through p and prints results to out.
func New(codec *mnemonic.Codec, p Prompter, out io.Writer, cfg Config) *Shell {
	return &Shell{
		codec:     codec,
		prompt:    p,
		out:       out,
		hideWords: cfg.HideWords,
		params:    cfg.Backup,
	}
}

type command struct {
	name  string
	title string
	run   func(s *Shell, input string) error
}

var commands = []command{
	{"validate", "Validate a 24-word mnemonic", (*Shell).validate},
	{"last-word", "Compute the 24th word from the first 23", (*Shell).lastWord},
	{"rebuild", "Rebuild a valid 24-word mnemonic", (*Shell).rebuild},
	{"encode-hex", "Encode 24 words to compact hex", (*Shell).encodeHex},
	{"decode-hex", "Decode hex back to 24 words", (*Shell).decodeHex},
	{"seal", "Seal a 24-word mnemonic with a passphrase", (*Shell).seal},
	{"open", "Open a sealed backup", (*Shell).open},
	{"candidates", "", (*Shell).candidates}, // CLI only
}

// menuSize is the number of commands shown in the menu.
const menuSize = 7

// Commands lists the names accepted by Exec.
func Commands() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return names
}

// Exec runs one command by name. A non-empty input is used instead of
// prompting for the command's words or hex; passphrases are always
// prompted for.
func (s *Shell) Exec(name, input string) error {
	for _, c := range commands {
		if c.name == name {
			err := c.run(s, input)
			log.Shell.Debug().Str("command", name).Bool("ok", err == nil).Msg("command finished")
			return err
		}
	}
	return fmt.Errorf("unknown command %q", name)
}

// Run shows the menu until the user quits or input ends. Command failures
// are printed and the loop continues.
func (s *Shell) Run() error {
	log.Shell.Info().Int("wordlist_size", s.codec.Wordlist().Len()).Msg("shell started")
	for {
		s.printMenu()
		choice, err := s.prompt.Ask(fmt.Sprintf("> Select (1-%d or Q): ", menuSize))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.ToLower(choice)
		if choice == "q" || choice == "quit" || choice == "exit" {
			fmt.Fprintln(s.out, "Bye.")
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > menuSize {
			fmt.Fprintln(s.out, "[!] Invalid selection.")
			continue
		}

		err = s.Exec(commands[n-1].name, "")
		switch {
		case err == nil, errors.Is(err, ErrInvalidMnemonic):
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out, "Bye.")
			return nil
		default:
			fmt.Fprintf(s.out, "[!] Error: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n=== BIP39 Offline Tool ===")
	for i, c := range commands[:menuSize] {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, c.title)
	}
	fmt.Fprintln(s.out, "Q) Quit")
}

// askWords returns normalized words from input, or prompts for them.
func (s *Shell) askWords(input, prompt string) ([]string, error) {
	if input == "" {
		var err error
		if s.hideWords {
			input, err = s.prompt.AskHidden(prompt)
		} else {
			input, err = s.prompt.Ask(prompt)
		}
		if err != nil {
			return nil, err
		}
	}
	return mnemonic.NormalizeWords(input), nil
}

func (s *Shell) validate(input string) error {
	words, err := s.askWords(input, "Enter 24 words (space-separated):\n> ")
	if err != nil {
		return err
	}
	ok, err := s.codec.Validate(words)
	if err != nil {
		return err
	}
	if !ok {
		if len(words) != mnemonic.MnemonicWords {
			fmt.Fprintf(s.out, "✖ Invalid! (got %d words, want %d)\n", len(words), mnemonic.MnemonicWords)
		} else {
			fmt.Fprintln(s.out, "✖ Invalid!")
		}
		return ErrInvalidMnemonic
	}
	fmt.Fprintln(s.out, "✔ Valid.")
	return nil
}

func (s *Shell) lastWord(input string) error {
	words, err := s.askWords(input, "Enter the first 23 words (space-separated):\n> ")
	if err != nil {
		return err
	}
	last, err := s.codec.GuessLastWord(words)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "24th word: %s\n", last)
	return nil
}

func (s *Shell) candidates(input string) error {
	words, err := s.askWords(input, "Enter the first 23 words (space-separated):\n> ")
	if err != nil {
		return err
	}
	all, err := s.codec.CandidateLastWords(words)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Valid 24th words:")
	for tail, w := range all {
		fmt.Fprintf(s.out, "  %03b %s\n", tail, w)
	}
	return nil
}

func (s *Shell) rebuild(input string) error {
	words, err := s.askWords(input, "Enter 23 or 24 words (space-separated):\n> ")
	if err != nil {
		return err
	}
	out, err := s.codec.Rebuild(words)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Valid 24-word mnemonic:\n%s\n", strings.Join(out, " "))
	return nil
}

func (s *Shell) encodeHex(input string) error {
	words, err := s.askWords(input, "Enter 24 words (space-separated):\n> ")
	if err != nil {
		return err
	}
	h, err := s.codec.EncodeHex(words)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Hex (%d chars):\n%s\n", len(h), h)
	return nil
}

func (s *Shell) decodeHex(input string) error {
	if input == "" {
		var err error
		prompt := "Enter hex (72 chars, each word = 3 hex chars):\n> "
		if s.hideWords {
			input, err = s.prompt.AskHidden(prompt)
		} else {
			input, err = s.prompt.Ask(prompt)
		}
		if err != nil {
			return err
		}
	}
	words, err := s.codec.DecodeMnemonicHex(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "24 words:\n%s\n", strings.Join(words, " "))
	return nil
}

func (s *Shell) seal(input string) error {
	words, err := s.askWords(input, "Enter 24 words (space-separated):\n> ")
	if err != nil {
		return err
	}
	// Fail on a bad mnemonic before asking for a passphrase.
	if _, err := s.codec.Entropy(words); err != nil {
		return err
	}

	pass, err := s.prompt.AskHidden("Passphrase: ")
	if err != nil {
		return err
	}
	if pass == "" {
		return fmt.Errorf("passphrase must not be empty")
	}
	confirm, err := s.prompt.AskHidden("Confirm passphrase: ")
	if err != nil {
		return err
	}
	if pass != confirm {
		return fmt.Errorf("passphrases do not match")
	}

	armored, err := backup.SealMnemonic(s.codec, words, []byte(pass), s.params)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Sealed backup:\n%s\n", armored)
	return nil
}

func (s *Shell) open(input string) error {
	if input == "" {
		var err error
		input, err = s.prompt.Ask("Enter sealed backup (seed1:...):\n> ")
		if err != nil {
			return err
		}
	}
	pass, err := s.prompt.AskHidden("Passphrase: ")
	if err != nil {
		return err
	}
	words, err := backup.OpenMnemonic(s.codec, input, []byte(pass))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "24 words:\n%s\n", strings.Join(words, " "))
	return nil
}
