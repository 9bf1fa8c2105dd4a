package magiclink

import (
	"regexp"
	"testing"
)

func TestGenerateTokenString(t *testing.T) {
	// 24 bytes base32 encoded without padding
	tokenRule := regexp.MustCompile(`^[a-z2-7]{39}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := GenerateTokenString()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if !tokenRule.MatchString(token) {
			t.Fatalf("unexpected token format: %q", token)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}
