package domain

import "testing"

func TestIsEmptyValue(t *testing.T) {
	empty := []string{"", "   ", "nan", "NaN", " NONE ", "null"}
	for _, s := range empty {
		if !IsEmptyValue(s) {
			t.Errorf("IsEmptyValue(%q) = false, want true", s)
		}
	}

	filled := []string{"0", "depot", "nanette street 4", "none street"}
	for _, s := range filled {
		if IsEmptyValue(s) {
			t.Errorf("IsEmptyValue(%q) = true, want false", s)
		}
	}
}

func TestHashAddress(t *testing.T) {
	// sha256("a")
	want := "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb"
	if got := HashAddress("a"); got != want {
		t.Fatalf("HashAddress(\"a\") = %q, want %q", got, want)
	}

	if HashAddress("  12 Main St  ") != HashAddress("12 Main St") {
		t.Fatal("hash must ignore surrounding whitespace")
	}

	if HashAddress("12 Main St") == HashAddress("12 main st") {
		t.Fatal("hash must be case sensitive")
	}

	if len(HashAddress("anything")) != 64 {
		t.Fatal("hash must be a 64-char hex digest")
	}
}
