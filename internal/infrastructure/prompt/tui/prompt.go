// Package tui is the interactive terminal SelectionPrompt.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6BCB77"))
	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD479"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

// labelItem is one roster label in the list.
type labelItem string

func (i labelItem) Title() string       { return string(i) }
func (i labelItem) Description() string { return "" }
func (i labelItem) FilterValue() string { return string(i) }

// model shows a single page and finishes on the first decision.
type model struct {
	req     ports.SelectionRequest
	list    list.Model
	result  ports.Selection
	done    bool
	aborted bool
}

func newModel(req ports.SelectionRequest) model {
	items := make([]list.Item, len(req.Labels))
	for i, label := range req.Labels {
		items[i] = labelItem(label)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 60, len(items)+2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	if req.Suggested >= 0 && req.Suggested < len(items) {
		l.Select(req.Suggested)
	}

	return model{req: req, list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.req.Labels) == 0 {
				return m, nil
			}
			m.result = ports.Selection{Action: ports.SelectPick, Index: m.list.Index()}
			m.done = true
			return m, tea.Quit
		case "esc", "n", "right":
			m.result = ports.Selection{Action: ports.SelectNextPage}
			m.done = true
			return m, tea.Quit
		case "x":
			m.result = ports.Selection{Action: ports.SelectNone}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Couldn't match %q. Who is it?", m.req.Name)))
	b.WriteString("\n")
	b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d of %d", m.req.Page+1, m.req.Pages)))
	b.WriteString("\n")
	if m.req.Hint != "" {
		b.WriteString(hintStyle.Render(m.req.Hint))
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: pick  n/esc: next page  x: none of these  q: abort"))
	return b.String()
}

// Prompt runs one bubbletea program per page.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// New creates a Prompt reading keys from in and drawing to out.
func New(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// Select implements ports.SelectionPrompt.
func (p *Prompt) Select(ctx context.Context, req ports.SelectionRequest) (ports.Selection, error) {
	program := tea.NewProgram(
		newModel(req),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ports.Selection{}, ctxErr
	}
	if err != nil {
		return ports.Selection{}, fmt.Errorf("running prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return ports.Selection{}, fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.aborted || !m.done {
		return ports.Selection{}, ports.ErrPromptAborted
	}
	return m.result, nil
}
