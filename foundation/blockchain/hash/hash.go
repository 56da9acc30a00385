// Package hash provides the content hashing used for transactions, block
// headers and merkle nodes.
package hash

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroHash represents the previous hash of the genesis block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Style defines how the raw digest bytes are rendered into a string.
type Style uint8

// Set of rendering styles.
const (
	// Compact renders every byte as lowercase hex without zero padding, so a
	// byte value of 5 becomes "5" and not "05". The rendered length varies
	// between 32 and 64 characters. This is the ledger's native rendering and
	// the proof of work difficulty check depends on it.
	Compact Style = iota

	// Padded renders the conventional fixed width 64 character hex string.
	Padded
)

// ParseStyle converts the configuration name of a style into a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", "compact":
		return Compact, nil
	case "padded":
		return Padded, nil
	}

	return Compact, fmt.Errorf("unknown hash style %q", name)
}

// String implements the fmt.Stringer interface.
func (s Style) String() string {
	switch s {
	case Padded:
		return "padded"
	default:
		return "compact"
	}
}

// Hash returns a unique string for the value. The value is marshaled to
// compact JSON with fields in declaration order and the SHA-256 digest of
// those bytes is rendered using the style.
func (s Style) Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	digest := sha256.Sum256(data)
	return Render(digest[:], s)
}

// =============================================================================

// Hash returns the compact rendered hash for the value.
func Hash(value any) string {
	return Compact.Hash(value)
}

// Render converts the digest into its string form for the given style.
func Render(digest []byte, style Style) string {
	if style == Padded {
		return common.Bytes2Hex(digest)
	}

	var b strings.Builder
	b.Grow(len(digest) * 2)
	for _, v := range digest {
		b.WriteString(strconv.FormatUint(uint64(v), 16))
	}

	return b.String()
}
