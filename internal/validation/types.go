package validation

// Field identifies one of the contact form inputs
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldSubject  Field = "subject"
	FieldMessage  Field = "message"
	FieldHoneypot Field = "honey"
)

// Fields lists the validated fields in declaration order. The honeypot is
// not part of it.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Label returns the human readable label for a field
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldSubject:
		return "Subject"
	case FieldMessage:
		return "Message"
	default:
		return string(f)
	}
}

// ErrorID is the identifier the inline error for this field is published
// under, so the message stays associated with its input.
func (f Field) ErrorID() string {
	return string(f) + "-error"
}

// ErrorCode represents specific validation error types
type ErrorCode int

const (
	ErrorNone ErrorCode = iota
	ErrorNameTooShort
	ErrorNameTooLong
	ErrorEmailRequired
	ErrorEmailInvalid
	ErrorSubjectTooShort
	ErrorSubjectTooLong
	ErrorMessageTooShort
	ErrorMessageTooLong
)

// Result is the outcome of validating a single field value
type Result struct {
	Field   Field
	Valid   bool
	Code    ErrorCode
	Message string
}

func valid(field Field) Result {
	return Result{Field: field, Valid: true, Code: ErrorNone}
}

func invalid(field Field, code ErrorCode, message string) Result {
	return Result{Field: field, Valid: false, Code: code, Message: message}
}
