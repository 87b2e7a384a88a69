package qrtoken

import (
	"encoding/hex"
	"testing"
)

func TestGenerateLengthAndEncoding(t *testing.T) {
	tok, err := New().Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(tok) != 2*DefaultBytes {
		t.Fatalf("len=%d, want %d", len(tok), 2*DefaultBytes)
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Fatalf("token is not hex: %v", err)
	}
}

func TestGenerateNeverBelowMinimum(t *testing.T) {
	tok, err := RandomHex{Bytes: 4}.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(tok) != 2*DefaultBytes {
		t.Fatalf("len=%d, want %d", len(tok), 2*DefaultBytes)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	g := New()
	for i := 0; i < 1000; i++ {
		tok, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token %s", tok)
		}
		seen[tok] = struct{}{}
	}
}
