package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/folioterm/internal/transport"
)

type AppModel struct {
	width  int
	height int

	contactForm *ContactFormModel
}

func NewAppModel(ctx context.Context, t transport.Transport, opts ContactFormOptions) *AppModel {
	return &AppModel{
		contactForm: NewContactFormModel(ctx, t, opts),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return m.contactForm.Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, m.contactForm.keys.Quit) {
			m.Shutdown()
			return m, tea.Quit
		}
	}

	m.contactForm, cmd = m.contactForm.Update(msg)
	return m, cmd
}

func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.contactForm.View())
}

// ContactForm returns the hosted form
func (m *AppModel) ContactForm() *ContactFormModel {
	return m.contactForm
}

// Shutdown abandons any in-flight submission
func (m *AppModel) Shutdown() {
	m.contactForm.Close()
}
