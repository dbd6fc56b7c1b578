package form

import (
	"time"

	"rhystmorgan/folioterm/internal/validation"
)

// Phase is the submission phase of the form
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

const (
	eventValidate = "validate"
	eventReject   = "reject"
	eventRefail   = "refail"
	eventSubmit   = "submit"
	eventSucceed  = "succeed"
	eventFail     = "fail"
	eventReset    = "reset"
)

// SubmissionOutcome reports what HandleSubmit did with a submit request
type SubmissionOutcome int

const (
	// OutcomeSubmitted means the transport call is in flight
	OutcomeSubmitted SubmissionOutcome = iota
	// OutcomeInvalid means at least one field failed validation
	OutcomeInvalid
	// OutcomeSpamDropped means the honeypot was filled in
	OutcomeSpamDropped
	// OutcomeBusy means a previous submission has not finished its cycle
	OutcomeBusy
)

func (o SubmissionOutcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSpamDropped:
		return "spam_dropped"
	case OutcomeBusy:
		return "busy"
	default:
		return "unknown"
	}
}

type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

const (
	LabelSubmit  = "Send Message"
	LabelSending = "Sending..."
	LabelSent    = "Message Sent! ✓"

	MessageSuccess = "Thank you for your message! I'll get back to you soon."
	MessageFailure = "Sorry, there was an error sending your message. Please try again or email me directly."
)

// UI is everything the controller needs from whatever renders the form.
type UI interface {
	FieldValue(field validation.Field) string
	HoneypotValue() string
	// SetFieldError annotates a field; an empty message clears the
	// annotation and marks the field valid.
	SetFieldError(field validation.Field, message string)
	SetSubmitEnabled(enabled bool)
	SetSubmitLabel(label string)
	SetStatus(kind StatusKind, text string)
	FocusField(field validation.Field)
	ResetFields()
}

// Scheduler runs continuations on the UI event loop. Post and After
// callbacks must never run concurrently with each other or with the
// caller of the controller.
type Scheduler interface {
	Now() time.Time
	Post(fn func())
	After(d time.Duration, fn func()) (cancel func())
}

// Observer receives submission telemetry
type Observer interface {
	SubmitHandled(outcome SubmissionOutcome)
	SubmitFinished(id string, elapsed time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) SubmitHandled(SubmissionOutcome)             {}
func (noopObserver) SubmitFinished(string, time.Duration, error) {}

type Config struct {
	// SuccessDisplay is how long the success state stays visible before
	// the form resets itself.
	SuccessDisplay time.Duration
	// SubmitTimeout bounds a single transport call
	SubmitTimeout time.Duration
}

const (
	DefaultSuccessDisplay = 3 * time.Second
	DefaultSubmitTimeout  = 10 * time.Second
)
