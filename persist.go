package bramble

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// persistSeed is mixed with the user key to start the first pass.
const persistSeed = int32(-0x1503708b) // 0xeafc8f75 as int32

// ErrCorruptInts is returned when saved data is not a whole number of
// 32-bit integers.
var ErrCorruptInts = errors.New("bramble: corrupt int array")

// nextMask advances the pass mask. The right shift is arithmetic.
func nextMask(m int32) int32 { return m<<1 ^ m>>1 }

// EncodeInts obfuscates a with key and returns a new slice. Two chained XOR
// passes run front to back; the second leaves the last element alone, which
// seeds it. This only keeps casual eyes off saved values.
func EncodeInts(a []int32, key int32) []int32 {
	out := make([]int32, len(a))
	copy(out, a)
	if len(out) == 0 {
		return out
	}
	mask, chain := persistSeed^key, int32(0)
	for i := range out {
		chain = out[i] ^ mask ^ chain
		out[i] = chain
		mask = nextMask(mask)
	}
	mask, chain = chain, 0
	for i := 0; i < len(out)-1; i++ {
		chain = out[i] ^ mask ^ chain
		out[i] = chain
		mask = nextMask(mask)
	}
	return out
}

// DecodeInts reverses EncodeInts with the same key and returns a new slice.
func DecodeInts(a []int32, key int32) []int32 {
	out := make([]int32, len(a))
	copy(out, a)
	if len(out) == 0 {
		return out
	}
	mask, chain := out[len(out)-1], int32(0)
	for i := 0; i < len(out)-1; i++ {
		enc := out[i]
		out[i] = enc ^ chain ^ mask
		chain = enc
		mask = nextMask(mask)
	}
	mask, chain = persistSeed^key, 0
	for i := range out {
		enc := out[i]
		out[i] = enc ^ chain ^ mask
		chain = enc
		mask = nextMask(mask)
	}
	return out
}

// SerializeInts writes a as big-endian 32-bit integers in standard base64.
func SerializeInts(a []int32) string {
	var buf bytes.Buffer
	buf.Grow(4 * len(a))
	// Writing to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.BigEndian, a)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DeserializeInts reads the output of SerializeInts. An empty string gives
// a nil slice.
func DeserializeInts(s string) ([]int32, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bramble: decode int array: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptInts, len(raw))
	}
	a := make([]int32, len(raw)/4)
	for i := range a {
		a[i] = int32(binary.BigEndian.Uint32(raw[4*i:]))
	}
	return a, nil
}

// SaveInts encodes a with key and writes it to w as one base64 line.
func SaveInts(w io.Writer, a []int32, key int32) error {
	if _, err := io.WriteString(w, SerializeInts(EncodeInts(a, key))+"\n"); err != nil {
		return fmt.Errorf("bramble: save int array: %w", err)
	}
	return nil
}

// LoadInts reads what SaveInts wrote and decodes it with key. Nothing saved
// gives a nil slice.
func LoadInts(r io.Reader, key int32) ([]int32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bramble: load int array: %w", err)
	}
	a, err := DeserializeInts(string(bytes.TrimSpace(data)))
	if err != nil || a == nil {
		return nil, err
	}
	return DecodeInts(a, key), nil
}
