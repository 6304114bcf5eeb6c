package mnemonic

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip39"
)

const (
	legalWinner = "legal winner thank year wave sausage worth useful legal winner thank year " +
		"wave sausage worth useful legal winner thank year wave sausage worth title"
	legalWinnerHex = "3fb7df6fe7f77bf5fd7ef77f3fb7df6fe7f77bf5fd7ef77f3fb7df6fe7f77bf5fd7ef717"

	abandonArt = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
		"abandon abandon art"
	zooVote = "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo " +
		"zoo zoo zoo vote"
)

func newTestCodec(opts ...Option) *Codec {
	return NewCodec(English(), opts...)
}

func TestValidate(t *testing.T) {
	c := newTestCodec()
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{"legal winner", legalWinner, true},
		{"abandon art", abandonArt, true},
		{"zoo vote", zooVote, true},
		{"wrong checksum", strings.Replace(abandonArt, " art", " abandon", 1), false},
		{"23 words", strings.TrimSuffix(abandonArt, " art"), false},
		{"25 words", abandonArt + " art", false},
		{"12-word BIP39", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Validate(strings.Fields(tt.mnemonic))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if got != tt.valid {
				t.Errorf("Validate() = %v, want %v", got, tt.valid)
			}
			if n := len(strings.Fields(tt.mnemonic)); n == 24 && got != bip39.IsMnemonicValid(tt.mnemonic) {
				t.Errorf("Validate() = %v disagrees with go-bip39", got)
			}
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	c := newTestCodec()
	words := strings.Fields(legalWinner)
	first, err1 := c.Validate(words)
	second, err2 := c.Validate(words)
	if first != second || err1 != err2 {
		t.Errorf("Validate() not deterministic: (%v, %v) then (%v, %v)", first, err1, second, err2)
	}
}

func TestValidate_ChecksumSensitivity(t *testing.T) {
	c := newTestCodec()
	words := strings.Fields(legalWinner)
	candidates, err := c.CandidateLastWords(words[:23])
	if err != nil {
		t.Fatalf("CandidateLastWords() error: %v", err)
	}
	allowed := make(map[string]bool, len(candidates))
	for _, w := range candidates {
		allowed[w] = true
	}

	// One valid final word per value of the 3 tail entropy bits.
	valid := 0
	for _, last := range c.Wordlist().Words() {
		words[23] = last
		ok, err := c.Validate(words)
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if ok {
			valid++
			if !allowed[last] {
				t.Errorf("%q validates but is not a candidate", last)
			}
		}
	}
	if valid != 8 {
		t.Errorf("valid final words = %d, want 8", valid)
	}
}

func TestUnknownWord(t *testing.T) {
	c := newTestCodec()
	words := strings.Fields(legalWinner)
	words[5] = "zzzzz"

	check := func(t *testing.T, err error) {
		t.Helper()
		if !errors.Is(err, ErrUnknownWord) {
			t.Fatalf("error = %v, want ErrUnknownWord", err)
		}
		var uw *UnknownWordError
		if !errors.As(err, &uw) {
			t.Fatalf("error %T is not *UnknownWordError", err)
		}
		if uw.Word != "zzzzz" || uw.Position != 5 {
			t.Errorf("UnknownWordError = {%q, %d}, want {zzzzz, 5}", uw.Word, uw.Position)
		}
	}

	t.Run("validate", func(t *testing.T) {
		_, err := c.Validate(words)
		check(t, err)
	})
	t.Run("encode hex", func(t *testing.T) {
		_, err := c.EncodeHex(words)
		check(t, err)
	})
	t.Run("guess last word", func(t *testing.T) {
		_, err := c.GuessLastWord(words[:23])
		check(t, err)
	})
	t.Run("rebuild", func(t *testing.T) {
		_, err := c.Rebuild(words)
		check(t, err)
	})
}

func TestGuessLastWord(t *testing.T) {
	c := newTestCodec()

	t.Run("abandon", func(t *testing.T) {
		words := strings.Fields(abandonArt)
		got, err := c.GuessLastWord(words[:23])
		if err != nil {
			t.Fatalf("GuessLastWord() error: %v", err)
		}
		if got != "art" {
			t.Errorf("GuessLastWord() = %q, want art", got)
		}
	})

	t.Run("legal winner returns lowest tail", func(t *testing.T) {
		words := strings.Fields(legalWinner)
		got, err := c.GuessLastWord(words[:23])
		if err != nil {
			t.Fatalf("GuessLastWord() error: %v", err)
		}
		if want := c.Wordlist().Word(0x041); got != want {
			t.Errorf("GuessLastWord() = %q, want %q", got, want)
		}
		ok, err := c.Validate(append(words[:23:23], got))
		if err != nil || !ok {
			t.Errorf("guessed mnemonic does not validate: %v, %v", ok, err)
		}
	})

	t.Run("wrong count", func(t *testing.T) {
		for _, n := range []int{0, 22, 24} {
			words := strings.Fields(legalWinner + " title")[:n]
			if _, err := c.GuessLastWord(words); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("GuessLastWord(%d words) error = %v, want ErrInvalidInput", n, err)
			}
		}
	})
}

func TestCandidateLastWords(t *testing.T) {
	c := newTestCodec()
	words := strings.Fields(legalWinner)

	got, err := c.CandidateLastWords(words[:23])
	if err != nil {
		t.Fatalf("CandidateLastWords() error: %v", err)
	}
	want := []WordIndex{0x041, 0x1a4, 0x2ec, 0x3bb, 0x4fe, 0x524, 0x62e, 0x717}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, idx := range want {
		if got[i] != c.Wordlist().Word(idx) {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], c.Wordlist().Word(idx))
		}
	}
	if got[7] != "title" {
		t.Errorf("candidate for tail 7 = %q, want title", got[7])
	}
}

func TestGuessLastWord_Recovery(t *testing.T) {
	c := newTestCodec()
	for i := 0; i < 32; i++ {
		raw, err := bip39.NewEntropy(EntropyBits)
		if err != nil {
			t.Fatalf("NewEntropy() error: %v", err)
		}
		var entropy [EntropySize]byte
		copy(entropy[:], raw)
		tail := int(entropy[EntropySize-1] & 0x07)

		words := c.FromEntropy(entropy)
		candidates, err := c.CandidateLastWords(words[:23])
		if err != nil {
			t.Fatalf("CandidateLastWords() error: %v", err)
		}
		if candidates[tail] != words[23] {
			t.Errorf("candidate[%d] = %q, want %q", tail, candidates[tail], words[23])
		}

		// With the tail bits cleared the lowest-tail guess is the original word.
		entropy[EntropySize-1] &^= 0x07
		words = c.FromEntropy(entropy)
		got, err := c.GuessLastWord(words[:23])
		if err != nil {
			t.Fatalf("GuessLastWord() error: %v", err)
		}
		if got != words[23] {
			t.Errorf("GuessLastWord() = %q, want %q", got, words[23])
		}
	}
}

func TestRebuild(t *testing.T) {
	c := newTestCodec()
	words := strings.Fields(abandonArt)

	t.Run("23 words", func(t *testing.T) {
		got, err := c.Rebuild(words[:23])
		if err != nil {
			t.Fatalf("Rebuild() error: %v", err)
		}
		if strings.Join(got, " ") != abandonArt {
			t.Errorf("Rebuild() = %q, want %q", strings.Join(got, " "), abandonArt)
		}
	})

	t.Run("24 words, last replaced", func(t *testing.T) {
		in := append(words[:23:23], "zoo")
		got, err := c.Rebuild(in)
		if err != nil {
			t.Fatalf("Rebuild() error: %v", err)
		}
		if got[23] != "art" {
			t.Errorf("Rebuild() last = %q, want art", got[23])
		}
		if in[23] != "zoo" {
			t.Error("Rebuild() mutated its input")
		}
	})

	t.Run("wrong count", func(t *testing.T) {
		for _, n := range []int{0, 12, 22} {
			if _, err := c.Rebuild(words[:n]); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Rebuild(%d words) error = %v, want ErrInvalidInput", n, err)
			}
		}
		if _, err := c.Rebuild(append(words, "art")); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Rebuild(25 words) error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestEncodeHex(t *testing.T) {
	c := newTestCodec()

	got, err := c.EncodeHex(strings.Fields(legalWinner))
	if err != nil {
		t.Fatalf("EncodeHex() error: %v", err)
	}
	if got != legalWinnerHex {
		t.Errorf("EncodeHex() = %s, want %s", got, legalWinnerHex)
	}

	got, err = c.EncodeHex(strings.Fields(zooVote))
	if err != nil {
		t.Fatalf("EncodeHex() error: %v", err)
	}
	if want := strings.Repeat("7ff", 23) + "7af"; got != want {
		t.Errorf("EncodeHex() = %s, want %s", got, want)
	}

	if _, err := c.EncodeHex(strings.Fields(legalWinner)[:23]); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("EncodeHex(23 words) error = %v, want ErrInvalidInput", err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := newTestCodec()
	for _, m := range []string{legalWinner, abandonArt, zooVote} {
		words := strings.Fields(m)
		h, err := c.EncodeHex(words)
		if err != nil {
			t.Fatalf("EncodeHex() error: %v", err)
		}
		if len(h) != 72 {
			t.Errorf("len(EncodeHex()) = %d, want 72", len(h))
		}
		back, err := c.DecodeHex(h)
		if err != nil {
			t.Fatalf("DecodeHex() error: %v", err)
		}
		if strings.Join(back, " ") != m {
			t.Errorf("round trip = %q, want %q", strings.Join(back, " "), m)
		}
	}
}

func TestDecodeHex(t *testing.T) {
	c := newTestCodec()
	tests := []struct {
		name  string
		input string
		words string
		err   error
	}{
		{"single group", "000", "abandon", nil},
		{"uppercase and spaces", "  7FF001 ", "zoo ability", nil},
		{"leading 0x", "0x7ff", "zoo", nil},
		{"empty", "", "", nil},
		{"bad digit", "abz", "", ErrMalformedHex},
		{"short", "ab", "", ErrMalformedHex},
		{"sign", "+01", "", ErrMalformedHex},
		{"overflow", "fff", "", ErrIndexOutOfRange},
		{"first out of range", "8007ff", "", ErrIndexOutOfRange},
		{"inner 0x rejected", "7ff0x7ff", "", ErrMalformedHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DecodeHex(tt.input)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("DecodeHex(%q) error = %v, want %v", tt.input, err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeHex(%q) error: %v", tt.input, err)
			}
			if strings.Join(got, " ") != tt.words {
				t.Errorf("DecodeHex(%q) = %q, want %q", tt.input, strings.Join(got, " "), tt.words)
			}
		})
	}
}

func TestDecodeHex_Errors(t *testing.T) {
	c := newTestCodec()

	_, err := c.DecodeHex("7ff800")
	var oor *IndexOutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("error %T is not *IndexOutOfRangeError", err)
	}
	if oor.Value != 0x800 || oor.Position != 1 {
		t.Errorf("IndexOutOfRangeError = {%d, %d}, want {2048, 1}", oor.Value, oor.Position)
	}

	_, err = c.DecodeHex("00g")
	var mh *MalformedHexError
	if !errors.As(err, &mh) {
		t.Fatalf("error %T is not *MalformedHexError", err)
	}
	if mh.Group != "00g" {
		t.Errorf("MalformedHexError.Group = %q, want 00g", mh.Group)
	}
}

func TestDecodeHex_StripAll(t *testing.T) {
	c := newTestCodec(WithHexStripMode(StripAll))
	got, err := c.DecodeHex("0x7ff0x001")
	if err != nil {
		t.Fatalf("DecodeHex() error: %v", err)
	}
	if strings.Join(got, " ") != "zoo ability" {
		t.Errorf("DecodeHex() = %v, want [zoo ability]", got)
	}
}

func TestDecodeMnemonicHex(t *testing.T) {
	c := newTestCodec()
	got, err := c.DecodeMnemonicHex("0x" + legalWinnerHex)
	if err != nil {
		t.Fatalf("DecodeMnemonicHex() error: %v", err)
	}
	if strings.Join(got, " ") != legalWinner {
		t.Errorf("DecodeMnemonicHex() = %q", strings.Join(got, " "))
	}

	if _, err := c.DecodeMnemonicHex(legalWinnerHex[:69]); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("23 groups error = %v, want ErrInvalidInput", err)
	}
	if _, err := c.DecodeMnemonicHex("ab"); !errors.Is(err, ErrMalformedHex) {
		t.Errorf("short hex error = %v, want ErrMalformedHex", err)
	}
}

func TestEntropy(t *testing.T) {
	c := newTestCodec()

	got, err := c.Entropy(strings.Fields(legalWinner))
	if err != nil {
		t.Fatalf("Entropy() error: %v", err)
	}
	if !bytes.Equal(got[:], bytes.Repeat([]byte{0x7f}, EntropySize)) {
		t.Errorf("Entropy() = %x, want 7f repeated", got)
	}

	want, err := bip39.EntropyFromMnemonic(zooVote)
	if err != nil {
		t.Fatalf("go-bip39 EntropyFromMnemonic() error: %v", err)
	}
	got, err = c.Entropy(strings.Fields(zooVote))
	if err != nil {
		t.Fatalf("Entropy() error: %v", err)
	}
	if !bytes.Equal(got[:], want) {
		t.Errorf("Entropy() = %x, want %x", got, want)
	}

	bad := strings.Fields(zooVote)
	bad[23] = "zoo"
	if _, err := c.Entropy(bad); !errors.Is(err, ErrChecksum) {
		t.Errorf("Entropy(bad checksum) error = %v, want ErrChecksum", err)
	}
}

func TestFromEntropy(t *testing.T) {
	c := newTestCodec()
	var entropy [EntropySize]byte
	for i := range entropy {
		entropy[i] = byte(i*31 + 5)
	}

	want, err := bip39.NewMnemonic(entropy[:])
	if err != nil {
		t.Fatalf("go-bip39 NewMnemonic() error: %v", err)
	}
	if got := strings.Join(c.FromEntropy(entropy), " "); got != want {
		t.Errorf("FromEntropy() = %q, want %q", got, want)
	}

	back, err := c.Entropy(c.FromEntropy(entropy))
	if err != nil {
		t.Fatalf("Entropy() error: %v", err)
	}
	if back != entropy {
		t.Errorf("Entropy(FromEntropy(e)) = %x, want %x", back, entropy)
	}
}

func TestNormalizeWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Legal, WINNER thank ", "legal winner thank"},
		{"a,,b", "a b"},
		{"\tone\ntwo", "one two"},
		{"", ""},
		{" , ", ""},
	}
	for _, tt := range tests {
		if got := strings.Join(NormalizeWords(tt.in), " "); got != tt.want {
			t.Errorf("NormalizeWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHexStripMode(t *testing.T) {
	for in, want := range map[string]HexStripMode{"": StripPrefix, "prefix": StripPrefix, "all": StripAll} {
		got, err := ParseHexStripMode(in)
		if err != nil || got != want {
			t.Errorf("ParseHexStripMode(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseHexStripMode("some"); err == nil {
		t.Error("ParseHexStripMode(some) should fail")
	}
}
