package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(got) != DefaultLength {
			t.Fatalf("Generate() length = %d, want %d", len(got), DefaultLength)
		}
		for _, c := range got {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("Generate() produced %q outside alphabet", c)
			}
		}
		if seen[got] {
			t.Fatalf("Generate() repeated %q within 100 draws", got)
		}
		seen[got] = true
	}
}

func TestGenerateNonPositiveLength(t *testing.T) {
	got, err := Generate(0)
	if err != nil {
		t.Fatalf("Generate(0) error: %v", err)
	}
	if len(got) != DefaultLength {
		t.Errorf("Generate(0) length = %d, want default %d", len(got), DefaultLength)
	}
}

func TestNewScanID(t *testing.T) {
	scanID := NewScanID()
	if !strings.HasPrefix(scanID, PrefixScan+"_") {
		t.Errorf("NewScanID() = %q, want %q prefix", scanID, PrefixScan+"_")
	}
	if len(scanID) != len(PrefixScan)+1+DefaultLength {
		t.Errorf("NewScanID() length = %d, want %d", len(scanID), len(PrefixScan)+1+DefaultLength)
	}
}
