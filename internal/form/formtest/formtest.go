// Package formtest provides in-memory collaborators for driving a
// form.Controller without a terminal.
package formtest

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"rhystmorgan/folioterm/internal/form"
	"rhystmorgan/folioterm/internal/transport"
	"rhystmorgan/folioterm/internal/validation"
)

// UI records everything the controller does to the form
type UI struct {
	Values   map[validation.Field]string
	Honeypot string

	Errors        map[validation.Field]string
	SubmitEnabled bool
	SubmitLabel   string
	StatusKind    form.StatusKind
	StatusText    string
	Focused       validation.Field
	FocusCount    int
	ResetCount    int

	EnabledHistory []bool
	LabelHistory   []string
}

func NewUI(values map[validation.Field]string) *UI {
	if values == nil {
		values = make(map[validation.Field]string)
	}
	return &UI{
		Values: values,
		Errors: make(map[validation.Field]string),
	}
}

func (u *UI) FieldValue(field validation.Field) string { return u.Values[field] }
func (u *UI) HoneypotValue() string                    { return u.Honeypot }

func (u *UI) SetFieldError(field validation.Field, message string) {
	if message == "" {
		delete(u.Errors, field)
		return
	}
	u.Errors[field] = message
}

func (u *UI) SetSubmitEnabled(enabled bool) {
	u.SubmitEnabled = enabled
	u.EnabledHistory = append(u.EnabledHistory, enabled)
}

func (u *UI) SetSubmitLabel(label string) {
	u.SubmitLabel = label
	u.LabelHistory = append(u.LabelHistory, label)
}

func (u *UI) SetStatus(kind form.StatusKind, text string) {
	u.StatusKind = kind
	u.StatusText = text
}

func (u *UI) FocusField(field validation.Field) {
	u.Focused = field
	u.FocusCount++
}

func (u *UI) ResetFields() {
	u.Values = make(map[validation.Field]string)
	u.Honeypot = ""
	u.ResetCount++
}

// ValidValues returns a set of values that pass every rule
func ValidValues() map[validation.Field]string {
	return map[validation.Field]string{
		validation.FieldName:    "Al",
		validation.FieldEmail:   "al@x.com",
		validation.FieldSubject: "Hi there",
		validation.FieldMessage: "This is a ten+ char message.",
	}
}

type timer struct {
	id int
	at time.Time
	fn func()
}

// Scheduler is a manually driven form.Scheduler. Posted callbacks are
// queued until the test runs them and timers only fire on Advance.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []timer
	nextID int
	posted chan func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		now:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		posted: make(chan func(), 16),
	}
}

func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Scheduler) Post(fn func()) {
	s.posted <- fn
}

func (s *Scheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.timers = append(s.timers, timer{id: id, at: s.now.Add(d), fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, t := range s.timers {
			if t.id == id {
				s.timers = append(s.timers[:i], s.timers[i+1:]...)
				return
			}
		}
	}
}

// PendingTimers returns the number of timers that have not fired
func (s *Scheduler) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Advance moves the clock forward and runs every timer that became due
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)

	var due, remaining []timer
	for _, t := range s.timers {
		if !t.at.After(s.now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.timers = remaining
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fn()
	}
}

// RunNext waits for the next posted callback and runs it on the calling
// goroutine.
func (s *Scheduler) RunNext(t testing.TB) {
	t.Helper()

	select {
	case fn := <-s.posted:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a posted callback")
	}
}

// Idle reports whether nothing has been posted
func (s *Scheduler) Idle() bool {
	return len(s.posted) == 0
}

// Transport records submissions and answers with a configurable error.
// When Hold is set, Submit blocks until Release is called or the context
// ends.
type Transport struct {
	mu      sync.Mutex
	calls   []transport.Submission
	err     error
	hold    chan struct{}
	started chan struct{}
}

func NewTransport(err error) *Transport {
	return &Transport{err: err, started: make(chan struct{}, 16)}
}

// Hold makes subsequent calls block until Release
func (tr *Transport) Hold() *Transport {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.hold = make(chan struct{})
	return tr
}

func (tr *Transport) Release() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.hold != nil {
		close(tr.hold)
		tr.hold = nil
	}
}

func (tr *Transport) SetError(err error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.err = err
}

func (tr *Transport) Submit(ctx context.Context, s transport.Submission) error {
	tr.mu.Lock()
	tr.calls = append(tr.calls, s)
	hold := tr.hold
	err := tr.err
	tr.mu.Unlock()

	tr.started <- struct{}{}

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Calls returns the submissions received so far
func (tr *Transport) Calls() []transport.Submission {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]transport.Submission, len(tr.calls))
	copy(out, tr.calls)
	return out
}

// AwaitStarted waits until a Submit call has begun
func (tr *Transport) AwaitStarted(t testing.TB) {
	t.Helper()

	select {
	case <-tr.started:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the transport to be called")
	}
}
