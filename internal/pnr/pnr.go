// Package pnr generates passenger name record codes from a constrained
// alphanumeric alphabet. Generation is pure: no persistence access, so
// uniqueness is the caller's job (check against storage, retry on collision).
package pnr

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const (
	// DefaultLength is the number of random characters in a plain code.
	DefaultLength = 6

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// unambiguousAlphabet drops visually confusable characters (0, O, 1, I).
	unambiguousAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	minLength = 6
	maxLength = 12
)

// Generate returns a 6-character code drawn from A-Z0-9.
func Generate() string {
	return random(alphabet, DefaultLength)
}

// GenerateWithDate prefixes the random code with the current DDMMYY date.
func GenerateWithDate() string {
	return time.Now().Format("020106") + random(alphabet, DefaultLength)
}

// GenerateWithPrefix prepends an airline prefix, truncated to 3 characters
// and normalized. The result always passes IsValid.
func GenerateWithPrefix(prefix string) string {
	p := Normalize(prefix)
	if len(p) > 3 {
		p = p[:3]
	}
	return p + random(alphabet, DefaultLength)
}

// GenerateUnambiguous returns a 6-character code that avoids 0/O and 1/I.
func GenerateUnambiguous() string {
	return random(unambiguousAlphabet, DefaultLength)
}

// Normalize trims surrounding whitespace and uppercases, matching what is
// applied to user-typed codes before any lookup.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValid reports whether the normalized code is 6-12 alphanumeric
// characters. It is independent of which generator produced the code, since
// users may also type a PNR manually.
func IsValid(s string) bool {
	n := Normalize(s)
	if len(n) < minLength || len(n) > maxLength {
		return false
	}
	for _, r := range n {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func random(alphabet string, length int) string {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken;
			// fall back to a time-derived index rather than panic.
			b.WriteByte(alphabet[int(time.Now().UnixNano())%len(alphabet)])
			continue
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String()
}
