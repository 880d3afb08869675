// Package hash provides the hash primitive dependencies fold their state into.
//
// Dependencies only ever call Update; finalization belongs to the caller that
// owns the digest (module build hash, chunk content hash). The default Digest
// is xxhash64, the same non-cryptographic function bundlers use for
// content-addressed file names. It detects change; it is not a security
// primitive.
package hash

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hash is the update-only view of a running digest.
type Hash interface {
	Update(p []byte)
}

// fieldSeparator terminates every field so adjacent fields cannot alias
// ("ab"+"c" and "a"+"bc" hash differently).
const fieldSeparator = 0x00

// Digest is an xxhash64 running digest.
type Digest struct {
	d *xxhash.Digest
}

// New creates an empty Digest.
func New() *Digest {
	return &Digest{d: xxhash.New()}
}

// Update folds p into the digest.
func (d *Digest) Update(p []byte) {
	_, _ = d.d.Write(p)
}

// UpdateString folds s into the digest without copying.
func (d *Digest) UpdateString(s string) {
	_, _ = d.d.WriteString(s)
}

// Sum64 returns the current digest value.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Hex returns the current digest as 16 lowercase hex characters.
func (d *Digest) Hex() string {
	return fmt.Sprintf("%016x", d.d.Sum64())
}

// Reset clears the digest.
func (d *Digest) Reset() {
	d.d.Reset()
}

// String writes s as one field.
func String(h Hash, s string) {
	buf := make([]byte, 0, len(s)+1)
	buf = append(buf, s...)
	buf = append(buf, fieldSeparator)
	h.Update(buf)
}

// Int writes v as one decimal field.
func Int(h Hash, v int) {
	buf := strconv.AppendInt(make([]byte, 0, 21), int64(v), 10)
	buf = append(buf, fieldSeparator)
	h.Update(buf)
}
