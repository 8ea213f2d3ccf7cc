// Package tui provides terminal UI components.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 48

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("254"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// OutcomeMsg reports one completed fetch to the progress display.
type OutcomeMsg struct {
	Failed bool
}

// ProgressModel renders a progress bar for a running batch fetch.
type ProgressModel struct {
	bar    progress.Model
	total  int
	done   int
	failed int
}

// NewProgress creates a progress display for a batch of the given size.
func NewProgress(total int) ProgressModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = defaultBarWidth
	return ProgressModel{
		bar:   bar,
		total: total,
	}
}

// Done returns the number of completed fetches.
func (m ProgressModel) Done() int { return m.done }

// Failed returns the number of failed fetches.
func (m ProgressModel) Failed() int { return m.failed }

func (m ProgressModel) Init() tea.Cmd {
	if m.total <= 0 {
		return tea.Quit
	}
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OutcomeMsg:
		m.done++
		if msg.Failed {
			m.failed++
		}
		if m.done >= m.total {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 0 && width < defaultBarWidth {
			m.bar.Width = width
		}
		return m, nil

	case tea.KeyMsg:
		// The display can be dismissed; the batch itself keeps running.
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m ProgressModel) View() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}

	counts := countStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total))
	line := labelStyle.Render("Fetching structures ") + counts
	if m.failed > 0 {
		line += failedStyle.Render(fmt.Sprintf(" (%d failed)", m.failed))
	}

	return line + "\n" + m.bar.ViewAs(percent) + "\n"
}

// RunProgress drives the progress display until one OutcomeMsg per batch
// entry has arrived on events. It blocks until the display exits.
func RunProgress(total int, events <-chan OutcomeMsg) error {
	p := tea.NewProgram(NewProgress(total))
	go func() {
		for ev := range events {
			p.Send(ev)
		}
	}()
	_, err := p.Run()
	return err
}
