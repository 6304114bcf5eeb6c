// Package mnemonic converts 24-word BIP39 mnemonics to and from their
// 264-bit entropy+checksum form, recovers a missing final word, and
// encodes word indices as compact hex (3 digits per word).
//
// A Codec carries its Wordlist explicitly; there is no package-level
// wordlist state. All operations are pure and bounded.
package mnemonic
