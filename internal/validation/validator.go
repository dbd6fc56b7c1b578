package validation

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	markupPolicy = bluemonday.StrictPolicy()
)

// Normalize returns the value that is validated and sent for a field:
// markup stripped, entities unescaped and surrounding whitespace trimmed.
func Normalize(value string) string {
	return strings.TrimSpace(html.UnescapeString(markupPolicy.Sanitize(value)))
}

const (
	nameMin    = 2
	nameMax    = 100
	subjectMin = 3
	subjectMax = 200
	messageMin = 10
	messageMax = 1000
)

// MaxLength returns the longest accepted value for field, or 0 when the
// field has no upper bound.
func MaxLength(field Field) int {
	switch field {
	case FieldName:
		return nameMax
	case FieldSubject:
		return subjectMax
	case FieldMessage:
		return messageMax
	default:
		return 0
	}
}

// Rule validates a trimmed field value
type Rule func(value string) Result

// RuleSet maps each form field to its validation rule
type RuleSet struct {
	rules map[Field]Rule
}

// NewRuleSet creates the rule set used by the contact form
func NewRuleSet() *RuleSet {
	return &RuleSet{
		rules: map[Field]Rule{
			FieldName:    validateName,
			FieldEmail:   validateEmail,
			FieldSubject: validateSubject,
			FieldMessage: validateMessage,
		},
	}
}

// Validate runs the rule for field against the normalized value. Fields
// without a rule are always valid.
func (rs *RuleSet) Validate(field Field, value string) Result {
	rule, ok := rs.rules[field]
	if !ok {
		return valid(field)
	}
	return rule(Normalize(value))
}

// ValidateAll validates every field in declaration order
func (rs *RuleSet) ValidateAll(values map[Field]string) []Result {
	results := make([]Result, 0, len(Fields))
	for _, field := range Fields {
		results = append(results, rs.Validate(field, values[field]))
	}
	return results
}

// FirstInvalid returns the first failing result in declaration order
func FirstInvalid(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Valid {
			return r, true
		}
	}
	return Result{}, false
}

func validateName(value string) Result {
	n := utf8.RuneCountInString(value)
	if n < nameMin {
		return invalid(FieldName, ErrorNameTooShort, "Name must be at least 2 characters")
	}
	if n > nameMax {
		return invalid(FieldName, ErrorNameTooLong, "Name must be less than 100 characters")
	}
	return valid(FieldName)
}

func validateEmail(value string) Result {
	if value == "" {
		return invalid(FieldEmail, ErrorEmailRequired, "Email is required")
	}
	if !emailPattern.MatchString(value) {
		return invalid(FieldEmail, ErrorEmailInvalid, "Please enter a valid email")
	}
	return valid(FieldEmail)
}

func validateSubject(value string) Result {
	n := utf8.RuneCountInString(value)
	if n < subjectMin {
		return invalid(FieldSubject, ErrorSubjectTooShort, "Subject must be at least 3 characters")
	}
	if n > subjectMax {
		return invalid(FieldSubject, ErrorSubjectTooLong, "Subject must be less than 200 characters")
	}
	return valid(FieldSubject)
}

func validateMessage(value string) Result {
	n := utf8.RuneCountInString(value)
	if n < messageMin {
		return invalid(FieldMessage, ErrorMessageTooShort, "Message must be at least 10 characters")
	}
	if n > messageMax {
		return invalid(FieldMessage, ErrorMessageTooLong, "Message must be less than 1000 characters")
	}
	return valid(FieldMessage)
}
