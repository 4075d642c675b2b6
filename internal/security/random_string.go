package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// ReferenceAlphabet leaves out characters guests tend to misread over the
// phone (0/O, 1/I).
const ReferenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errGroupShape     = errors.New("groups and group size must be positive")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// GroupedCode builds PREFIX-XXXX-XXXX style codes from ReferenceAlphabet.
// An empty prefix yields just the dash-joined groups.
func GroupedCode(prefix string, groups int, groupSize int) (string, error) {
	if groups <= 0 || groupSize <= 0 {
		return "", errGroupShape
	}

	raw, err := RandomString(groups*groupSize, ReferenceAlphabet)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, groups+1)
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		parts = append(parts, strings.ToUpper(prefix))
	}
	for index := 0; index < groups; index++ {
		parts = append(parts, raw[index*groupSize:(index+1)*groupSize])
	}
	return strings.Join(parts, "-"), nil
}
