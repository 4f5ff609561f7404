package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

type browserModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

// NewBrowser returns a Bubble Tea model that scrolls through an
// annotated listing.
func NewBrowser(title, content string) tea.Model {
	return &browserModel{title: title, content: content}
}

// RunBrowser shows the listing full-screen until the user quits.
func RunBrowser(title, content string) error {
	p := tea.NewProgram(NewBrowser(title, content), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive view: %w", err)
	}
	return nil
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := 1
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *browserModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := titleStyle.Render(m.title)
	footer := footerStyle.Render(fmt.Sprintf("%3.0f%%  ↑/↓ scroll · q quit", m.vp.ScrollPercent()*100))
	return header + "\n" + m.vp.View() + "\n" + footer
}
