package qrtoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultBytes é a entropia de cada token de fase.
const DefaultBytes = 16

type Generator interface {
	Generate() (string, error)
}

// RandomHex gera tokens hexadecimais a partir de crypto/rand.
type RandomHex struct {
	Bytes int
}

func New() RandomHex {
	return RandomHex{Bytes: DefaultBytes}
}

func (g RandomHex) Generate() (string, error) {
	n := g.Bytes
	if n < DefaultBytes {
		n = DefaultBytes
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("qrtoken: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
