package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNameBounds(t *testing.T) {
	rs := NewRuleSet()

	for n := 0; n <= 102; n++ {
		value := strings.Repeat("a", n)
		result := rs.Validate(FieldName, value)

		if n < 2 || n > 100 {
			assert.False(t, result.Valid, "length %d should be invalid", n)
		} else {
			assert.True(t, result.Valid, "length %d should be valid", n)
		}
	}

	short := rs.Validate(FieldName, "A")
	assert.Equal(t, "Name must be at least 2 characters", short.Message)
	assert.Equal(t, ErrorNameTooShort, short.Code)

	long := rs.Validate(FieldName, strings.Repeat("a", 101))
	assert.Equal(t, "Name must be less than 100 characters", long.Message)
	assert.Equal(t, ErrorNameTooLong, long.Code)
}

func TestValidateTrimsWhitespace(t *testing.T) {
	rs := NewRuleSet()

	result := rs.Validate(FieldName, "   A   ")
	assert.False(t, result.Valid)

	result = rs.Validate(FieldName, "  Al  ")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	rs := NewRuleSet()

	// two runes, six bytes
	result := rs.Validate(FieldName, "日本")
	assert.True(t, result.Valid)

	result = rs.Validate(FieldName, strings.Repeat("é", 100))
	assert.True(t, result.Valid)
}

func TestValidateEmail(t *testing.T) {
	rs := NewRuleSet()

	tests := []struct {
		value   string
		valid   bool
		code    ErrorCode
		message string
	}{
		{"a@b.c", true, ErrorNone, ""},
		{"al@x.com", true, ErrorNone, ""},
		{"", false, ErrorEmailRequired, "Email is required"},
		{"   ", false, ErrorEmailRequired, "Email is required"},
		{"not-an-email", false, ErrorEmailInvalid, "Please enter a valid email"},
		{"a@b", false, ErrorEmailInvalid, "Please enter a valid email"},
		{"a b@c.d", false, ErrorEmailInvalid, "Please enter a valid email"},
		{"a@@b.c", false, ErrorEmailInvalid, "Please enter a valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := rs.Validate(FieldEmail, tt.value)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.code, result.Code)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestValidateSubjectAndMessage(t *testing.T) {
	rs := NewRuleSet()

	tests := []struct {
		name    string
		field   Field
		value   string
		valid   bool
		message string
	}{
		{"subject too short", FieldSubject, "Hi", false, "Subject must be at least 3 characters"},
		{"subject minimum", FieldSubject, "Hey", true, ""},
		{"subject maximum", FieldSubject, strings.Repeat("s", 200), true, ""},
		{"subject too long", FieldSubject, strings.Repeat("s", 201), false, "Subject must be less than 200 characters"},
		{"message too short", FieldMessage, "too short", false, "Message must be at least 10 characters"},
		{"message minimum", FieldMessage, "ten chars!", true, ""},
		{"message maximum", FieldMessage, strings.Repeat("m", 1000), true, ""},
		{"message too long", FieldMessage, strings.Repeat("m", 1001), false, "Message must be less than 1000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rs.Validate(tt.field, tt.value)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.message, result.Message)
			assert.Equal(t, tt.field, result.Field)
		})
	}
}

func TestValidateUnknownFieldIsValid(t *testing.T) {
	rs := NewRuleSet()

	result := rs.Validate(FieldHoneypot, "anything at all")
	assert.True(t, result.Valid)
}

func TestValidateIsRepeatable(t *testing.T) {
	rs := NewRuleSet()

	first := rs.Validate(FieldMessage, "short")
	second := rs.Validate(FieldMessage, "short")
	assert.Equal(t, first, second)
}

func TestValidateAllKeepsDeclarationOrder(t *testing.T) {
	rs := NewRuleSet()

	results := rs.ValidateAll(map[Field]string{
		FieldName:    "Al",
		FieldEmail:   "broken",
		FieldSubject: "x",
		FieldMessage: "This is a ten+ char message.",
	})
	require.Len(t, results, len(Fields))

	for i, field := range Fields {
		assert.Equal(t, field, results[i].Field)
	}

	first, ok := FirstInvalid(results)
	require.True(t, ok)
	assert.Equal(t, FieldEmail, first.Field)
}

func TestFirstInvalidAllValid(t *testing.T) {
	rs := NewRuleSet()

	results := rs.ValidateAll(map[Field]string{
		FieldName:    "Al",
		FieldEmail:   "al@x.com",
		FieldSubject: "Hi there",
		FieldMessage: "This is a ten+ char message.",
	})

	_, ok := FirstInvalid(results)
	assert.False(t, ok)
}

func TestFieldErrorID(t *testing.T) {
	assert.Equal(t, "email-error", FieldEmail.ErrorID())
	assert.Equal(t, "Subject", FieldSubject.Label())
}

func TestMaxLength(t *testing.T) {
	assert.Equal(t, 100, MaxLength(FieldName))
	assert.Equal(t, 0, MaxLength(FieldEmail))
	assert.Equal(t, 200, MaxLength(FieldSubject))
	assert.Equal(t, 1000, MaxLength(FieldMessage))
	assert.Equal(t, 0, MaxLength(FieldHoneypot))

	rs := NewRuleSet()
	assert.True(t, rs.Validate(FieldSubject, strings.Repeat("s", MaxLength(FieldSubject))).Valid)
	assert.False(t, rs.Validate(FieldSubject, strings.Repeat("s", MaxLength(FieldSubject)+1)).Valid)
}

func TestNormalizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "I'm writing about your talk & slides.",
		Normalize("  <script>alert(1)</script>I'm writing about your <b>talk</b> & slides.  "))
	assert.Equal(t, "al@x.com", Normalize("al@x.com"))
	assert.Equal(t, "line one\nline two", Normalize("line one\nline two"))
}

func TestValidateCountsValueWithoutMarkup(t *testing.T) {
	rs := NewRuleSet()

	r := rs.Validate(FieldMessage, "<script>alert('hello there')</script>")
	require.False(t, r.Valid)
	assert.Equal(t, ErrorMessageTooShort, r.Code)

	r = rs.Validate(FieldName, "<i>Al</i>")
	assert.True(t, r.Valid)
}
