package slug_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/backoffice/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Acme Inc.", 0, "acme-inc"},
		{"  Smith & Sons  ", 0, "smith-and-sons"},
		{"Café Müller", 0, "cafe-muller"},
		{"Straße Łódź", 0, "strasse-lodz"},
		{"Ørsted A/S", 0, "orsted-a-s"},
		{"---", 0, ""},
		{"東京", 0, ""},
		{"Globex Corporation", 6, "globex"},
		{"Globex Corporation", 7, "globex"},
		{"Globex Corporation", 9, "globex-co"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.Make(tt.in, tt.maxLen), "input %q", tt.in)
	}
}

func TestMakeProperties(t *testing.T) {
	t.Parallel()

	valid := regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "in")
		maxLen := rapid.IntRange(0, 64).Draw(t, "maxLen")

		got := slug.Make(in, maxLen)
		if !valid.MatchString(got) {
			t.Fatalf("Make(%q) = %q is not a slug", in, got)
		}
		if maxLen > 0 && len(got) > maxLen {
			t.Fatalf("Make(%q, %d) = %q exceeds limit", in, maxLen, got)
		}
	})
}

func TestWithSuffix(t *testing.T) {
	t.Parallel()

	got := slug.WithSuffix("acme", 6, 63)
	assert.Regexp(t, `^acme-[a-z0-9]{6}$`, got)
	assert.NotEqual(t, got, slug.WithSuffix("acme", 6, 63))

	long := strings.Repeat("a", 63)
	got = slug.WithSuffix(long, 6, 63)
	assert.Len(t, got, 63)
	assert.Regexp(t, `^a+-[a-z0-9]{6}$`, got)

	assert.Regexp(t, `^[a-z0-9]{4}$`, slug.WithSuffix("", 4, 0))
}
