package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForm(t *testing.T) {
	rules := []Rule{
		{Field: "name", Tag: "required", Message: "Name required"},
		{Field: "name", Tag: "max=5", Message: "Name too long"},
		{Field: "code", Tag: "len=2"},
	}

	tests := []struct {
		name   string
		values map[string]string
		want   []string
	}{
		{"all_valid", map[string]string{"name": "Poem", "code": "ab"}, nil},
		{"empty_name", map[string]string{"name": "", "code": "ab"}, []string{"Name required"}},
		{"long_name", map[string]string{"name": "Poetry", "code": "ab"}, []string{"Name too long"}},
		{"collects_all", map[string]string{"name": "Poetry", "code": "abc"}, []string{"Name too long", "Must be exactly 2 characters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateForm(tt.values, rules)

			var got []string
			for _, e := range errs {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateForm_KeepsValue(t *testing.T) {
	errs := ValidateForm(map[string]string{"name": "toolong"}, []Rule{{Field: "name", Tag: "max=3"}})
	require.Len(t, errs, 1)

	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "toolong", errs[0].Value)
	assert.Equal(t, "Maximum length is 3", errs[0].Message)
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "Sci&#x2F;Fi &amp; &lt;b&gt;Fantasy&lt;&#x2F;b&gt;", EscapeHTML("Sci/Fi & <b>Fantasy</b>"))
	assert.Equal(t, "&quot;Noir&quot; &#x27;s &#96;x&#96; a&#x5C;b", EscapeHTML(`"Noir" 's `+"`x`"+` a\b`))
	assert.Equal(t, "Poetry", EscapeHTML("Poetry"))
}

func TestFormatValidationErrors(t *testing.T) {
	out := FormatValidationErrors([]FieldError{
		{Field: "name", Message: "Genre name required"},
		{Field: "name", Message: "too long"},
	})
	assert.Equal(t, 2, strings.Count(out, "name:"))
}
