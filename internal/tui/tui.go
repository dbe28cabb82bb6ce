package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/commit-game/internal/engine"
)

// Options tunes the front end.
type Options struct {
	// AllowResolve lets the player dismiss an interference with ctrl+r.
	AllowResolve bool
}

type model struct {
	session   *engine.Session
	opts      Options
	textInput textinput.Model
	viewport  viewport.Model
	bugs      progress.Model
	state     engine.State
	views     []engine.RuleView
	status    string
	err       error
	width     int
	height    int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	passStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3FB950")).
			Foreground(lipgloss.Color("#D2F4D3")).
			PaddingLeft(1)

	failStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F85149")).
			Foreground(lipgloss.Color("#FFD8D3")).
			PaddingLeft(1)

	conflictStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#D29922")).
			Foreground(lipgloss.Color("#F8E3A1")).
			PaddingLeft(1)

	reviewStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#58A6FF")).
			Foreground(lipgloss.Color("#CAE8FF")).
			PaddingLeft(1)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3FB950")).
			Bold(true)

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F85149"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

func NewModel(session *engine.Session, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "feat: ..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	st := session.State()
	m := model{
		session:   session,
		opts:      opts,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		bugs:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		state:     st,
		views:     session.Engine().View(st),
	}
	m.viewport.SetContent(m.renderRules())
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// evaluatedMsg carries the outcome of one input change.
type evaluatedMsg struct {
	state engine.State
	views []engine.RuleView
	err   error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.session.Submit() {
				m.status = winStyle.Render("Congratulations! Your TypeScript commit message is absurdly perfect!")
			} else {
				m.status = blockedStyle.Render(m.blockedReason())
			}
			return m, nil

		case tea.KeyCtrlR:
			if m.opts.AllowResolve && m.state.Interference != nil {
				m.state = m.session.ResolveInterference()
				m.status = ""
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-12, 3)
		m.refresh()
		return m, nil

	case evaluatedMsg:
		if errors.Is(msg.err, engine.ErrSuperseded) {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.state.Input != m.textInput.Value() {
			return m, nil
		}
		m.err = nil
		m.state = msg.state
		m.views = msg.views
		m.status = ""
		m.refresh()
		return m, nil
	}

	before := m.textInput.Value()
	m.textInput, cmd = m.textInput.Update(msg)
	if value := m.textInput.Value(); value != before {
		return m, tea.Batch(cmd, m.evaluate(value))
	}
	return m, cmd
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderRules())
}

func (m model) blockedReason() string {
	switch {
	case m.state.Interference != nil:
		return "Submit blocked: resolve the " + interferenceTitle(m.state.Interference.Kind) + " first."
	default:
		return fmt.Sprintf("Submit blocked: %d of %d rules satisfied.", len(m.state.Satisfied), m.state.Total)
	}
}

func (m model) View() string {
	header := titleStyle.Render("The TypeScript Commit Log Game")
	prompt := "Enter your TypeScript commit message:\n" + m.textInput.View()

	sections := []string{header, "", prompt, "", m.viewport.View()}

	if in := m.renderInterference(); in != "" {
		sections = append(sections, in)
	}
	if m.err != nil {
		sections = append(sections, blockedStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.status != "" {
		sections = append(sections, "", m.status)
	}

	help := "Enter: submit commit • Esc: quit"
	if m.opts.AllowResolve {
		help += " • ctrl+r: resolve interference"
	}
	sections = append(sections, "", helpStyle.Render(help))

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m model) renderRules() string {
	cards := make([]string, 0, len(m.views))
	for _, v := range m.views {
		cards = append(cards, m.renderRule(v))
	}
	return strings.Join(cards, "\n")
}

func (m model) renderRule(v engine.RuleView) string {
	style, mark := failStyle, "✗"
	if v.Satisfied {
		style, mark = passStyle, "✓"
	}

	body := fmt.Sprintf("%s Rule %d\n%s", mark, v.Rule.ID, v.Rule.Description)
	if v.Rule.Color != "" {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(v.Rule.Color)).Render("          ")
		body += "\n" + swatch
	}
	if v.Rule.ProgressMax > 0 {
		body += fmt.Sprintf("\n%s %d/%d", m.bugs.ViewAs(v.Fraction()), v.Progress, v.Rule.ProgressMax)
	}

	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(body)
}

func (m model) renderInterference() string {
	in := m.state.Interference
	if in == nil {
		return ""
	}
	style := conflictStyle
	if in.Kind == engine.KindCodeReview {
		style = reviewStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(interferenceTitle(in.Kind) + "\n" + in.Message)
}

func interferenceTitle(kind engine.Kind) string {
	if kind == engine.KindCodeReview {
		return "Code Review"
	}
	return "Git Conflict"
}

// evaluate reserves the input's place in line right away, on the Update
// goroutine, and defers only the rule evaluation to the returned Cmd.
func (m model) evaluate(input string) tea.Cmd {
	ticket := m.session.Begin(context.Background(), input)
	return func() tea.Msg {
		st, err := m.session.Commit(ticket)
		return evaluatedMsg{state: st, views: m.session.Engine().View(st), err: err}
	}
}

func Run(session *engine.Session, opts Options) error {
	p := tea.NewProgram(NewModel(session, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
