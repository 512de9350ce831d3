package domain

import "testing"

func TestGenerateCodeFormat(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode failed: %v", err)
		}

		if len(code) != CodeLength {
			t.Fatalf("expected %d digits, got %q", CodeLength, code)
		}

		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}

		seen[code] = true
	}

	// 100 draws from a space of a million collapsing to one value would mean
	// the generator is broken, not unlucky.
	if len(seen) < 2 {
		t.Fatalf("expected distinct codes, got %d unique", len(seen))
	}
}
