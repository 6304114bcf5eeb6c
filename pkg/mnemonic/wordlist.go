package mnemonic

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
	"github.com/zeebo/blake3"
)

// WordlistSize is the number of words in a BIP39 wordlist.
const WordlistSize = 1 << BitsPerWord

// WordIndex is the 11-bit position of a word in the wordlist.
type WordIndex uint16

// Wordlist is an immutable 2048-word dictionary with a reverse index.
// It is safe for concurrent use.
type Wordlist struct {
	words []string
	index map[string]WordIndex
}

// NewWordlist builds a wordlist from exactly 2048 distinct, non-empty words.
// The input slice is copied.
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordlistSize {
		return nil, &WordlistError{Reason: fmt.Sprintf("expected %d words, got %d", WordlistSize, len(words))}
	}
	wl := &Wordlist{
		words: make([]string, WordlistSize),
		index: make(map[string]WordIndex, WordlistSize),
	}
	for i, w := range words {
		if w == "" {
			return nil, &WordlistError{Reason: fmt.Sprintf("empty word at line %d", i+1)}
		}
		if prev, dup := wl.index[w]; dup {
			return nil, &WordlistError{
				Reason: fmt.Sprintf("duplicate word %q at lines %d and %d", w, int(prev)+1, i+1),
			}
		}
		wl.words[i] = w
		wl.index[w] = WordIndex(i)
	}
	return wl, nil
}

// English returns the official BIP39 English wordlist.
func English() *Wordlist {
	wl, err := NewWordlist(wordlists.English)
	if err != nil {
		panic("embedded English wordlist: " + err.Error())
	}
	return wl
}

// LoadWordlist reads one word per line. Surrounding whitespace is trimmed
// and blank lines are skipped.
func LoadWordlist(r io.Reader) (*Wordlist, error) {
	words := make([]string, 0, WordlistSize)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, &WordlistError{Reason: "read", Err: err}
	}
	return NewWordlist(words)
}

// LoadWordlistFile reads a wordlist from path.
func LoadWordlistFile(path string) (*Wordlist, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &WordlistError{Reason: "file not found: " + path, Err: err}
		}
		return nil, &WordlistError{Reason: "open " + path, Err: err}
	}
	defer f.Close()
	return LoadWordlist(f)
}

// Word returns the word at idx. It panics if idx is out of range.
func (wl *Wordlist) Word(idx WordIndex) string {
	return wl.words[idx]
}

// Index looks up a word. The second result is false if the word is absent.
func (wl *Wordlist) Index(word string) (WordIndex, bool) {
	idx, ok := wl.index[word]
	return idx, ok
}

// Len returns the number of words (always 2048).
func (wl *Wordlist) Len() int {
	return len(wl.words)
}

// Words returns a copy of the ordered word list.
func (wl *Wordlist) Words() []string {
	out := make([]string, len(wl.words))
	copy(out, wl.words)
	return out
}

// Fingerprint returns the hex BLAKE3-256 of the newline-joined words.
// Two machines holding the same list print the same fingerprint.
func (wl *Wordlist) Fingerprint() string {
	h := blake3.New()
	for _, w := range wl.words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IsEnglish reports whether the list matches the BIP39 English wordlist.
func (wl *Wordlist) IsEnglish() bool {
	if len(wordlists.English) != len(wl.words) {
		return false
	}
	for i, w := range wordlists.English {
		if wl.words[i] != w {
			return false
		}
	}
	return true
}

// resolve maps words to indices, reporting the first unknown word.
func (wl *Wordlist) resolve(words []string) ([]WordIndex, error) {
	indices := make([]WordIndex, len(words))
	for i, w := range words {
		idx, ok := wl.index[w]
		if !ok {
			return nil, &UnknownWordError{Word: w, Position: i}
		}
		indices[i] = idx
	}
	return indices, nil
}
