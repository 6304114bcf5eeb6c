package mnemonic

import (
	"fmt"
	"strconv"
	"strings"
)

// HexDigitsPerWord is the number of hex digits encoding one word index.
const HexDigitsPerWord = 3

// tailBits is the number of entropy bits carried by the final word.
const tailBits = BitsPerWord - ChecksumBits

// HexStripMode controls how "0x" markers are removed before decoding hex.
type HexStripMode int

const (
	// StripPrefix removes a single leading "0x".
	StripPrefix HexStripMode = iota
	// StripAll removes every "0x" substring, as older tools did.
	StripAll
)

// ParseHexStripMode parses "prefix" or "all".
func ParseHexStripMode(s string) (HexStripMode, error) {
	switch s {
	case "prefix", "":
		return StripPrefix, nil
	case "all":
		return StripAll, nil
	default:
		return StripPrefix, fmt.Errorf("unknown hex strip mode %q (want prefix or all)", s)
	}
}

func (m HexStripMode) String() string {
	if m == StripAll {
		return "all"
	}
	return "prefix"
}

// Codec validates, repairs and re-encodes 24-word mnemonics against a
// wordlist. A Codec is immutable and safe for concurrent use.
type Codec struct {
	wl    *Wordlist
	strip HexStripMode
}

// Option configures a Codec.
type Option func(*Codec)

// WithHexStripMode sets how DecodeHex removes "0x" markers.
func WithHexStripMode(m HexStripMode) Option {
	return func(c *Codec) { c.strip = m }
}

// NewCodec returns a codec backed by wl.
func NewCodec(wl *Wordlist, opts ...Option) *Codec {
	c := &Codec{wl: wl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wordlist returns the codec's wordlist.
func (c *Codec) Wordlist() *Wordlist {
	return c.wl
}

// Validate reports whether words form a 24-word mnemonic with a correct
// checksum. A wrong word count is reported as false, not as an error;
// an unknown word is an *UnknownWordError.
func (c *Codec) Validate(words []string) (bool, error) {
	if len(words) != MnemonicWords {
		return false, nil
	}
	indices, err := c.wl.resolve(words)
	if err != nil {
		return false, err
	}
	entropy, claimed := split(PackIndices(indices))
	return Checksum(entropy) == claimed, nil
}

// GuessLastWord computes the final word for the first 23 words of a
// mnemonic. Each of the 8 values of the 3 missing entropy bits yields a
// candidate; the first one that validates end to end is returned.
func (c *Codec) GuessLastWord(first23 []string) (string, error) {
	if len(first23) != MnemonicWords-1 {
		return "", wordCountError(len(first23), "23")
	}
	indices, err := c.wl.resolve(first23)
	if err != nil {
		return "", err
	}
	known := PackIndices(indices)

	candidate := make([]string, MnemonicWords)
	copy(candidate, first23)
	for tail := uint32(0); tail < 1<<tailBits; tail++ {
		last := lastIndex(known, tail)
		if last >= WordlistSize {
			continue
		}
		candidate[MnemonicWords-1] = c.wl.Word(last)
		ok, err := c.Validate(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate[MnemonicWords-1], nil
		}
	}
	return "", ErrNoValidWord
}

// CandidateLastWords returns every final word that completes first23 with a
// valid checksum, ordered by the 3 entropy bits the word carries. There is
// exactly one candidate per tail value, so 8 in total.
func (c *Codec) CandidateLastWords(first23 []string) ([]string, error) {
	if len(first23) != MnemonicWords-1 {
		return nil, wordCountError(len(first23), "23")
	}
	indices, err := c.wl.resolve(first23)
	if err != nil {
		return nil, err
	}
	known := PackIndices(indices)

	out := make([]string, 0, 1<<tailBits)
	for tail := uint32(0); tail < 1<<tailBits; tail++ {
		out = append(out, c.wl.Word(lastIndex(known, tail)))
	}
	return out, nil
}

// Rebuild returns a valid 24-word mnemonic from 23 or 24 words. A supplied
// 24th word is discarded and recomputed.
func (c *Codec) Rebuild(words []string) ([]string, error) {
	if len(words) != MnemonicWords && len(words) != MnemonicWords-1 {
		return nil, wordCountError(len(words), "23 or 24")
	}
	first23 := words[:MnemonicWords-1]
	last, err := c.GuessLastWord(first23)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, MnemonicWords)
	out = append(out, first23...)
	return append(out, last), nil
}

// EncodeHex returns the 72-character hex form of a 24-word mnemonic:
// each word index as 3 lowercase hex digits. No checksum is checked.
func (c *Codec) EncodeHex(words []string) (string, error) {
	if len(words) != MnemonicWords {
		return "", wordCountError(len(words), "24")
	}
	indices, err := c.wl.resolve(words)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(indices) * HexDigitsPerWord)
	for _, idx := range indices {
		fmt.Fprintf(&sb, "%03x", idx)
	}
	return sb.String(), nil
}

// DecodeHex maps 3-digit hex groups back to words. It accepts any number
// of groups; use DecodeMnemonicHex to require a full mnemonic.
func (c *Codec) DecodeHex(s string) ([]string, error) {
	s = c.normalizeHex(s)
	if len(s)%HexDigitsPerWord != 0 {
		return nil, &MalformedHexError{Length: len(s)}
	}
	words := make([]string, 0, len(s)/HexDigitsPerWord)
	for i := 0; i < len(s); i += HexDigitsPerWord {
		group := s[i : i+HexDigitsPerWord]
		v, err := strconv.ParseUint(group, 16, 16)
		if err != nil {
			return nil, &MalformedHexError{Group: group, Length: len(s)}
		}
		if v >= WordlistSize {
			return nil, &IndexOutOfRangeError{Value: int(v), Position: i / HexDigitsPerWord}
		}
		words = append(words, c.wl.Word(WordIndex(v)))
	}
	return words, nil
}

// DecodeMnemonicHex decodes hex that must hold exactly 24 word indices.
func (c *Codec) DecodeMnemonicHex(s string) ([]string, error) {
	words, err := c.DecodeHex(s)
	if err != nil {
		return nil, err
	}
	if len(words) != MnemonicWords {
		return nil, fmt.Errorf("%w: hex holds %d word indices, want %d",
			ErrInvalidInput, len(words), MnemonicWords)
	}
	return words, nil
}

// Entropy returns the 256-bit entropy of a valid 24-word mnemonic.
func (c *Codec) Entropy(words []string) ([EntropySize]byte, error) {
	var entropy [EntropySize]byte
	if len(words) != MnemonicWords {
		return entropy, wordCountError(len(words), "24")
	}
	indices, err := c.wl.resolve(words)
	if err != nil {
		return entropy, err
	}
	entropy, claimed := split(PackIndices(indices))
	if Checksum(entropy) != claimed {
		return [EntropySize]byte{}, ErrChecksum
	}
	return entropy, nil
}

// FromEntropy returns the 24-word mnemonic for entropy.
func (c *Codec) FromEntropy(entropy [EntropySize]byte) []string {
	bits := &BitBuffer{}
	for _, b := range entropy {
		bits.WriteBits(uint32(b), 8)
	}
	bits.WriteBits(uint32(Checksum(entropy)), ChecksumBits)

	words := make([]string, MnemonicWords)
	for i := range words {
		var idx WordIndex
		for j := 0; j < BitsPerWord; j++ {
			idx = idx<<1 | WordIndex(bits.Bit(i*BitsPerWord+j))
		}
		words[i] = c.wl.Word(idx)
	}
	return words
}

func (c *Codec) normalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if c.strip == StripAll {
		return strings.ReplaceAll(s, "0x", "")
	}
	return strings.TrimPrefix(s, "0x")
}

// lastIndex completes the 253 known entropy bits with tail and returns the
// index of the final word: tail in the top 3 bits, checksum in the low 8.
func lastIndex(known *BitBuffer, tail uint32) WordIndex {
	bits := known.Clone()
	bits.WriteBits(tail, tailBits)

	var entropy [EntropySize]byte
	copy(entropy[:], bits.Bytes())
	return WordIndex(tail)<<ChecksumBits | WordIndex(Checksum(entropy))
}

// split separates a packed 264-bit mnemonic into entropy and checksum.
func split(bits *BitBuffer) ([EntropySize]byte, byte) {
	var entropy [EntropySize]byte
	raw := bits.Bytes()
	copy(entropy[:], raw[:EntropySize])
	return entropy, raw[EntropySize]
}
