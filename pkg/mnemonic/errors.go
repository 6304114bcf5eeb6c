package mnemonic

import (
	"errors"
	"fmt"
)

// Mnemonic errors. Typed errors below match these via errors.Is.
var (
	ErrUnknownWord     = errors.New("unknown BIP39 word")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMalformedHex    = errors.New("malformed hex")
	ErrIndexOutOfRange = errors.New("word index out of range 0..2047")
	ErrNoValidWord     = errors.New("no valid final word")
	ErrWordlist        = errors.New("invalid wordlist")
	ErrChecksum        = errors.New("checksum mismatch")
)

// UnknownWordError reports a word that is not in the wordlist.
type UnknownWordError struct {
	Word     string
	Position int // zero-based position in the input
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("unknown BIP39 word %q at position %d", e.Word, e.Position+1)
}

// Is reports whether target is ErrUnknownWord.
func (e *UnknownWordError) Is(target error) bool {
	return target == ErrUnknownWord
}

// MalformedHexError reports hex input that cannot be split into 3-digit groups.
type MalformedHexError struct {
	Group  string // offending group, empty for length errors
	Length int
}

func (e *MalformedHexError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("hex length %d is not a multiple of %d", e.Length, HexDigitsPerWord)
	}
	return fmt.Sprintf("invalid hex group %q", e.Group)
}

// Is reports whether target is ErrMalformedHex.
func (e *MalformedHexError) Is(target error) bool {
	return target == ErrMalformedHex
}

// IndexOutOfRangeError reports a decoded group outside the wordlist.
type IndexOutOfRangeError struct {
	Value    int
	Position int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d (0x%03x) at group %d out of range 0..%d",
		e.Value, e.Value, e.Position+1, WordlistSize-1)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// WordlistError reports a wordlist that cannot back a codec.
type WordlistError struct {
	Reason string
	Err    error
}

func (e *WordlistError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wordlist: %s: %v", e.Reason, e.Err)
	}
	return "wordlist: " + e.Reason
}

// Is reports whether target is ErrWordlist.
func (e *WordlistError) Is(target error) bool {
	return target == ErrWordlist
}

func (e *WordlistError) Unwrap() error {
	return e.Err
}

// wordCountError wraps ErrInvalidInput with the offending count.
func wordCountError(got int, want string) error {
	return fmt.Errorf("%w: got %d words, want %s", ErrInvalidInput, got, want)
}
