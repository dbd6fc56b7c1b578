package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/folioterm/internal/form"
	"rhystmorgan/folioterm/internal/transport"
	"rhystmorgan/folioterm/internal/utils"
	"rhystmorgan/folioterm/internal/validation"
)

type formFocus int

const (
	focusName formFocus = iota
	focusEmail
	focusSubject
	focusMessage
	focusSubmit
	focusCount
)

const (
	defaultInputWidth = 48
	messageHeight     = 5
)

var focusFields = map[formFocus]validation.Field{
	focusName:    validation.FieldName,
	focusEmail:   validation.FieldEmail,
	focusSubject: validation.FieldSubject,
	focusMessage: validation.FieldMessage,
}

// ContactFormOptions configures a ContactFormModel
type ContactFormOptions struct {
	Config        form.Config
	ReducedMotion bool
	Logger        *zap.SugaredLogger
	Observer      form.Observer
}

// ContactFormModel renders the contact form and implements form.UI for
// its controller.
type ContactFormModel struct {
	ctx        context.Context
	controller *form.Controller
	scheduler  *Scheduler

	// Inputs
	name    textinput.Model
	email   textinput.Model
	subject textinput.Model
	message textarea.Model
	focus   formFocus

	// never rendered or focusable; only automated input can fill it
	honeypot string

	// Controller-driven state
	errors        map[validation.Field]string
	submitEnabled bool
	submitLabel   string
	statusKind    form.StatusKind
	statusText    string

	// UI state
	spinner       spinner.Model
	reducedMotion bool
	keys          formKeyMap
	help          help.Model
	width         int
	height        int

	// commands queued by form.UI calls, returned from the next Update
	pending []tea.Cmd
}

func NewContactFormModel(ctx context.Context, t transport.Transport, opts ContactFormOptions) *ContactFormModel {
	m := &ContactFormModel{
		ctx:           ctx,
		scheduler:     NewScheduler(),
		name:          newTextInput("Your name", validation.MaxLength(validation.FieldName)),
		email:         newTextInput("you@example.com", 0),
		subject:       newTextInput("What is this about?", validation.MaxLength(validation.FieldSubject)),
		message:       newMessageArea(),
		errors:        make(map[validation.Field]string),
		reducedMotion: opts.ReducedMotion,
		keys:          defaultFormKeyMap(),
		help:          help.New(),
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))

	m.controller = form.NewController(m, t, m.scheduler, opts.Config, opts.Logger)
	if opts.Observer != nil {
		m.controller.SetObserver(opts.Observer)
	}

	m.name.Focus()
	return m
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = defaultInputWidth
	if limit > 0 {
		// allow one extra rune so the too-long message can be seen
		ti.CharLimit = limit + 1
	}
	return ti
}

func newMessageArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Your message"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = validation.MaxLength(validation.FieldMessage) + 1
	ta.SetWidth(defaultInputWidth)
	ta.SetHeight(messageHeight)
	return ta
}

func (m *ContactFormModel) Init() tea.Cmd {
	return tea.Batch(m.scheduler.Listen(), textinput.Blink)
}

// Close abandons any in-flight submission and stops delivering scheduled
// callbacks.
func (m *ContactFormModel) Close() {
	m.controller.Close()
	m.scheduler.Close()
}

// Phase returns the controller's submission phase
func (m *ContactFormModel) Phase() form.Phase {
	return m.controller.Phase()
}

// IsInvalid reports whether field is currently annotated as invalid
func (m *ContactFormModel) IsInvalid(field validation.Field) bool {
	_, ok := m.errors[field]
	return ok
}

// DescribedBy returns the id of the error element describing field, or ""
// when the field is valid.
func (m *ContactFormModel) DescribedBy(field validation.Field) string {
	if !m.IsInvalid(field) {
		return ""
	}
	return field.ErrorID()
}

// Status returns the current status message and its kind
func (m *ContactFormModel) Status() (form.StatusKind, string) {
	return m.statusKind, m.statusText
}

// SubmitLabel returns the current submit button text
func (m *ContactFormModel) SubmitLabel() string {
	return m.submitLabel
}

// SubmitEnabled reports whether the submit button accepts presses
func (m *ContactFormModel) SubmitEnabled() bool {
	return m.submitEnabled
}

// FocusedField returns the field with input focus, or "" when the submit
// button is focused.
func (m *ContactFormModel) FocusedField() validation.Field {
	return focusFields[m.focus]
}

// form.UI

func (m *ContactFormModel) FieldValue(field validation.Field) string {
	switch field {
	case validation.FieldName:
		return m.name.Value()
	case validation.FieldEmail:
		return m.email.Value()
	case validation.FieldSubject:
		return m.subject.Value()
	case validation.FieldMessage:
		return m.message.Value()
	case validation.FieldHoneypot:
		return m.honeypot
	default:
		return ""
	}
}

func (m *ContactFormModel) HoneypotValue() string {
	return m.honeypot
}

func (m *ContactFormModel) SetFieldError(field validation.Field, message string) {
	if message == "" {
		delete(m.errors, field)
		return
	}
	m.errors[field] = message
}

func (m *ContactFormModel) SetSubmitEnabled(enabled bool) {
	m.submitEnabled = enabled
}

func (m *ContactFormModel) SetSubmitLabel(label string) {
	m.submitLabel = label
}

func (m *ContactFormModel) SetStatus(kind form.StatusKind, text string) {
	m.statusKind = kind
	m.statusText = text
}

func (m *ContactFormModel) FocusField(field validation.Field) {
	for f, candidate := range focusFields {
		if candidate == field {
			m.setFocus(f)
			return
		}
	}
}

func (m *ContactFormModel) ResetFields() {
	m.name.Reset()
	m.email.Reset()
	m.subject.Reset()
	m.message.Reset()
	m.honeypot = ""
	m.setFocus(focusName)
}

func (m *ContactFormModel) Update(msg tea.Msg) (*ContactFormModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		cmds = append(cmds, m.scheduler.Listen())

	case spinner.TickMsg:
		// the tick loop ends once nothing is pending
		if m.controller.Phase() == form.PhaseSubmitting && !m.reducedMotion {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	default:
		cmds = append(cmds, m.updateFocused(msg))
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil

	return m, tea.Batch(cmds...)
}

func (m *ContactFormModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return nil

	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case msg.Type == tea.KeyEnter && m.focus == focusSubmit:
		return m.submit()

	case msg.Type == tea.KeyEnter && m.focus != focusMessage:
		m.moveFocus(1)
		return nil
	}

	return m.updateFocused(msg)
}

func (m *ContactFormModel) submit() tea.Cmd {
	if !m.submitEnabled {
		return nil
	}

	outcome := m.controller.HandleSubmit(m.ctx)
	if outcome == form.OutcomeSubmitted && !m.reducedMotion {
		return m.spinner.Tick
	}
	return nil
}

// updateFocused forwards msg to the focused input and re-validates the
// field if its value changed.
func (m *ContactFormModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	field, isField := focusFields[m.focus]
	before := ""
	if isField {
		before = m.FieldValue(field)
	}

	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusSubject:
		m.subject, cmd = m.subject.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	}

	if isField && m.FieldValue(field) != before {
		m.controller.HandleInput(field)
	}

	return cmd
}

func (m *ContactFormModel) moveFocus(delta int) {
	if field, ok := focusFields[m.focus]; ok {
		m.controller.HandleBlur(field)
	}

	next := (int(m.focus) + delta + int(focusCount)) % int(focusCount)
	m.setFocus(formFocus(next))
}

func (m *ContactFormModel) setFocus(f formFocus) {
	m.name.Blur()
	m.email.Blur()
	m.subject.Blur()
	m.message.Blur()

	m.focus = f

	var cmd tea.Cmd
	switch f {
	case focusName:
		cmd = m.name.Focus()
	case focusEmail:
		cmd = m.email.Focus()
	case focusSubject:
		cmd = m.subject.Focus()
	case focusMessage:
		cmd = m.message.Focus()
	}
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *ContactFormModel) resize() {
	width := defaultInputWidth
	if m.width > 0 && m.width-12 < width {
		width = max(m.width-12, 16)
	}

	m.name.Width = width
	m.email.Width = width
	m.subject.Width = width
	m.message.SetWidth(width)
	m.help.Width = m.width
}

func (m *ContactFormModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Lavender)).
		Padding(1, 3)

	var content strings.Builder

	content.WriteString(titleStyle.Render("Get in Touch"))
	content.WriteString("\n")
	content.WriteString(subtitleStyle.Render("Send me a message and I'll get back to you."))
	content.WriteString("\n\n")

	content.WriteString(m.renderField(focusName, m.name.View()))
	content.WriteString(m.renderField(focusEmail, m.email.View()))
	content.WriteString(m.renderField(focusSubject, m.subject.View()))
	content.WriteString(m.renderField(focusMessage, m.message.View()))

	content.WriteString(m.renderSubmit())

	if status := m.renderStatus(); status != "" {
		content.WriteString("\n\n")
		content.WriteString(status)
	}

	content.WriteString("\n\n")
	content.WriteString(m.help.View(m.keys))

	return containerStyle.Render(content.String())
}

func (m *ContactFormModel) renderField(f formFocus, input string) string {
	field := focusFields[f]

	header := labelStyle.Render(field.Label())
	if limit := validation.MaxLength(field); limit > 0 {
		header += "  " + counterStyle.Render(utils.FormatCharCount(m.FieldValue(field), limit))
	}

	box := inputStyle
	switch {
	case m.IsInvalid(field):
		box = box.BorderForeground(lipgloss.Color(utils.Colours.Red))
	case m.focus == f:
		box = box.BorderForeground(lipgloss.Color(utils.Colours.Lavender))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(box.Render(input))
	b.WriteString("\n")
	if msg, ok := m.errors[field]; ok {
		b.WriteString(errorStyle.Render(utils.FormatFieldError(msg)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m *ContactFormModel) renderSubmit() string {
	label := m.submitLabel
	if m.controller.Phase() == form.PhaseSubmitting && !m.reducedMotion {
		label = m.spinner.View() + " " + label
	}

	style := buttonStyle
	switch {
	case !m.submitEnabled:
		style = buttonDisabledStyle
	case m.focus == focusSubmit:
		style = buttonFocusedStyle
	}
	return style.Render(label)
}

func (m *ContactFormModel) renderStatus() string {
	switch m.statusKind {
	case form.StatusSuccess:
		return successStyle.Render(utils.TruncateString(m.statusText, 120))
	case form.StatusError:
		return statusErrorStyle.Render(utils.TruncateString(m.statusText, 120))
	default:
		return ""
	}
}
