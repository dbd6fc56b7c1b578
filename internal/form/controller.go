package form

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"rhystmorgan/folioterm/internal/transport"
	"rhystmorgan/folioterm/internal/validation"
)

// Controller owns one contact form and its submission cycle. It is driven
// from a single event loop and is not safe for concurrent use; transport
// completions and timers come back through the Scheduler.
type Controller struct {
	ui        UI
	rules     *validation.RuleSet
	transport transport.Transport
	scheduler Scheduler
	observer  Observer
	logger    *zap.SugaredLogger
	config    Config

	fsm     *fsm.FSM
	results map[validation.Field]validation.Result

	// in-flight submission and pending reset
	inflightID   string
	cancelSubmit context.CancelFunc
	cancelReset  func()
	closed       bool
}

func NewController(ui UI, t transport.Transport, scheduler Scheduler, config Config, logger *zap.SugaredLogger) *Controller {
	if config.SuccessDisplay <= 0 {
		config.SuccessDisplay = DefaultSuccessDisplay
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = DefaultSubmitTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Controller{
		ui:        ui,
		rules:     validation.NewRuleSet(),
		transport: t,
		scheduler: scheduler,
		observer:  noopObserver{},
		logger:    logger,
		config:    config,
		results:   make(map[validation.Field]validation.Result),
	}

	c.fsm = fsm.NewFSM(
		string(PhaseIdle),
		fsm.Events{
			{Name: eventValidate, Src: []string{string(PhaseIdle), string(PhaseFailed)}, Dst: string(PhaseValidating)},
			{Name: eventReject, Src: []string{string(PhaseValidating)}, Dst: string(PhaseIdle)},
			{Name: eventRefail, Src: []string{string(PhaseValidating)}, Dst: string(PhaseFailed)},
			{Name: eventSubmit, Src: []string{string(PhaseValidating)}, Dst: string(PhaseSubmitting)},
			{Name: eventSucceed, Src: []string{string(PhaseSubmitting)}, Dst: string(PhaseSuccess)},
			{Name: eventFail, Src: []string{string(PhaseSubmitting)}, Dst: string(PhaseFailed)},
			{Name: eventReset, Src: []string{string(PhaseSuccess)}, Dst: string(PhaseIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debugf("Contact form %s: %s -> %s", e.Event, e.Src, e.Dst)
			},
		},
	)

	c.ui.SetSubmitLabel(LabelSubmit)
	c.ui.SetSubmitEnabled(true)

	return c
}

// SetObserver installs a telemetry observer
func (c *Controller) SetObserver(o Observer) {
	if o == nil {
		o = noopObserver{}
	}
	c.observer = o
}

// Phase returns the current submission phase
func (c *Controller) Phase() Phase {
	return Phase(c.fsm.Current())
}

// FieldResult returns the last validation result recorded for field
func (c *Controller) FieldResult(field validation.Field) (validation.Result, bool) {
	r, ok := c.results[field]
	return r, ok
}

// IsFieldInvalid reports whether field currently carries an error annotation
func (c *Controller) IsFieldInvalid(field validation.Field) bool {
	r, ok := c.results[field]
	return ok && !r.Valid
}

// ValidateField checks the current value of field and updates its
// annotation to match. It returns whether the field is valid.
func (c *Controller) ValidateField(field validation.Field) bool {
	result := c.rules.Validate(field, c.ui.FieldValue(field))
	c.results[field] = result

	if result.Valid {
		c.ui.SetFieldError(field, "")
	} else {
		c.ui.SetFieldError(field, result.Message)
	}

	return result.Valid
}

// HandleBlur validates a field the user just left
func (c *Controller) HandleBlur(field validation.Field) {
	c.ValidateField(field)
}

// HandleInput re-validates a field while it is being corrected. Fields
// that are not marked invalid are left alone so first-time typing is not
// interrupted.
func (c *Controller) HandleInput(field validation.Field) {
	if c.IsFieldInvalid(field) {
		c.ValidateField(field)
	}
}

// HandleSubmit runs the submit pipeline: honeypot check, full validation
// and, when everything passes, an asynchronous transport call.
func (c *Controller) HandleSubmit(ctx context.Context) SubmissionOutcome {
	outcome := c.handleSubmit(ctx)
	c.observer.SubmitHandled(outcome)
	return outcome
}

func (c *Controller) handleSubmit(ctx context.Context) SubmissionOutcome {
	if c.closed {
		return OutcomeBusy
	}

	if c.ui.HoneypotValue() != "" {
		c.logger.Debug("Honeypot filled in, dropping submission")
		return OutcomeSpamDropped
	}

	from := c.Phase()
	if !c.fsm.Can(eventValidate) {
		c.logger.Debugf("Submit ignored while %s", from)
		return OutcomeBusy
	}
	c.fire(ctx, eventValidate)

	var firstInvalid validation.Field
	allValid := true
	for _, field := range validation.Fields {
		if !c.ValidateField(field) && allValid {
			firstInvalid = field
			allValid = false
		}
	}

	if !allValid {
		c.ui.FocusField(firstInvalid)
		if from == PhaseFailed {
			c.fire(ctx, eventRefail)
		} else {
			c.fire(ctx, eventReject)
		}
		return OutcomeInvalid
	}

	submission := c.collect()
	c.fire(ctx, eventSubmit)

	c.ui.SetSubmitEnabled(false)
	c.ui.SetSubmitLabel(LabelSending)
	c.ui.SetStatus(StatusNone, "")

	c.start(ctx, submission)
	return OutcomeSubmitted
}

func (c *Controller) collect() transport.Submission {
	value := func(field validation.Field) string {
		return validation.Normalize(c.ui.FieldValue(field))
	}
	return transport.Submission{
		ID:      uuid.NewString(),
		Name:    value(validation.FieldName),
		Email:   value(validation.FieldEmail),
		Subject: value(validation.FieldSubject),
		Message: value(validation.FieldMessage),
	}
}

func (c *Controller) start(ctx context.Context, submission transport.Submission) {
	submitCtx, cancel := context.WithTimeout(ctx, c.config.SubmitTimeout)
	c.inflightID = submission.ID
	c.cancelSubmit = cancel
	started := c.scheduler.Now()

	c.logger.Infof("Sending contact submission %s", submission.ID)

	go func() {
		defer cancel()
		err := c.transport.Submit(submitCtx, submission)
		c.scheduler.Post(func() {
			c.finish(submission.ID, started, err)
		})
	}()
}

func (c *Controller) finish(id string, started time.Time, err error) {
	if c.closed || id != c.inflightID {
		return
	}
	c.inflightID = ""
	c.cancelSubmit = nil

	elapsed := c.scheduler.Now().Sub(started)
	c.observer.SubmitFinished(id, elapsed, err)

	ctx := context.Background()

	if err != nil {
		c.logger.Warnf("Contact submission %s failed after %v: %v", id, elapsed, err)
		c.fire(ctx, eventFail)
		c.ui.SetStatus(StatusError, MessageFailure)
		c.ui.SetSubmitLabel(LabelSubmit)
		c.ui.SetSubmitEnabled(true)
		return
	}

	c.logger.Infof("Contact submission %s delivered in %v", id, elapsed)
	c.fire(ctx, eventSucceed)
	c.ui.SetSubmitLabel(LabelSent)
	c.ui.SetStatus(StatusSuccess, MessageSuccess)
	c.cancelReset = c.scheduler.After(c.config.SuccessDisplay, c.resetAfterSuccess)
}

func (c *Controller) resetAfterSuccess() {
	if c.closed || c.Phase() != PhaseSuccess {
		return
	}
	c.cancelReset = nil

	c.ui.ResetFields()
	for _, field := range validation.Fields {
		c.ui.SetFieldError(field, "")
	}
	c.results = make(map[validation.Field]validation.Result)

	c.ui.SetStatus(StatusNone, "")
	c.ui.SetSubmitLabel(LabelSubmit)
	c.ui.SetSubmitEnabled(true)
	c.fire(context.Background(), eventReset)
}

// Close abandons any in-flight submission and pending reset. The form
// cannot be submitted afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.cancelSubmit != nil {
		c.cancelSubmit()
		c.cancelSubmit = nil
	}
	if c.cancelReset != nil {
		c.cancelReset()
		c.cancelReset = nil
	}
}

func (c *Controller) fire(ctx context.Context, event string) {
	if err := c.fsm.Event(ctx, event); err != nil {
		// only reachable through a programming error in the transition table
		c.logger.Errorf("Contact form transition %s from %s failed: %v", event, c.fsm.Current(), err)
	}
}
