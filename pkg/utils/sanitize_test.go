package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"string trims and collapses", SanitizeString, "  Ana \t Maria  Cruz ", "Ana Maria Cruz"},
		{"string keeps markup characters", SanitizeString, ` Books & "Tuition" <2026> `, `Books & "Tuition" <2026>`},
		{"string drops control chars", SanitizeString, "Grant\x00\x07 Fund", "Grant Fund"},
		{"text keeps line breaks", SanitizeText, " First line\r\nSecond\tline \n", "First line\nSecond\tline"},
		{"text keeps markup characters", SanitizeText, "For <b>future</b> engineers & artists", "For <b>future</b> engineers & artists"},
		{"email lower-cases and strips", SanitizeEmail, " <b>User</b>@Example.COM\n", "user@example.com"},
		{"phone keeps digits and punctuation", SanitizePhone, " +63 (912)  345-6789 ext<br>", "+63 (912) 345-6789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestSanitizers_Idempotent(t *testing.T) {
	for _, in := range []string{"Books & Tuition", "  A &amp; B  ", "Line one\r\nLine <two>"} {
		once := SanitizeString(in)
		assert.Equal(t, once, SanitizeString(once), in)

		text := SanitizeText(in)
		assert.Equal(t, text, SanitizeText(text), in)
	}
}

func TestSanitizeOptional(t *testing.T) {
	assert.Nil(t, SanitizeOptional(nil))

	in := "  merit  based "
	out := SanitizeOptional(&in)
	if assert.NotNil(t, out) {
		assert.Equal(t, "merit based", *out)
	}
}
