// Package randid generates short random identifiers for items, blocks and
// custom fields.
package randid

import (
	"crypto/rand"
	"math/big"
)

// DefaultLength is the id length used for document parts.
const DefaultLength = 8

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate returns a random lowercase alphanumeric string of length n.
func Generate(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		v, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic("randid: crypto/rand failed: " + err.Error())
		}
		b[i] = alphabet[v.Int64()]
	}
	return string(b)
}

// New returns an id of DefaultLength. It satisfies document.IDFunc.
func New() string {
	return Generate(DefaultLength)
}
