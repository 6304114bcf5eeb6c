package mnemonic

// BitsPerWord is the width of one word index.
const BitsPerWord = 11

// BitBuffer is an append-only big-endian bit string.
// The zero value is an empty buffer ready to use.
type BitBuffer struct {
	buf []byte
	n   int // bits written
}

// PackIndices concatenates each index as an 11-bit big-endian field,
// preserving input order.
func PackIndices(indices []WordIndex) *BitBuffer {
	b := &BitBuffer{buf: make([]byte, 0, (len(indices)*BitsPerWord+7)/8)}
	for _, idx := range indices {
		b.WriteBits(uint32(idx), BitsPerWord)
	}
	return b
}

// WriteBits appends the low width bits of v, most significant first.
// Width must be in 0..32.
func (b *BitBuffer) WriteBits(v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		if b.n%8 == 0 {
			b.buf = append(b.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			b.buf[b.n/8] |= 0x80 >> uint(b.n%8)
		}
		b.n++
	}
}

// Len returns the number of bits written.
func (b *BitBuffer) Len() int {
	return b.n
}

// Bit returns the bit at position i (0 is the most significant).
func (b *BitBuffer) Bit(i int) uint8 {
	return b.buf[i/8] >> uint(7-i%8) & 1
}

// Bytes returns the bits as big-endian bytes. A trailing partial byte is
// right-padded with zero bits. The result is a copy.
func (b *BitBuffer) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Clone returns an independent copy of the buffer.
func (b *BitBuffer) Clone() *BitBuffer {
	return &BitBuffer{buf: b.Bytes(), n: b.n}
}

// String renders the buffer as '0'/'1' characters.
func (b *BitBuffer) String() string {
	s := make([]byte, b.n)
	for i := range s {
		s[i] = '0' + b.Bit(i)
	}
	return string(s)
}
