// Package tui is the terminal presenter for the panel: four toggle keys, the
// gate lamps and the umbrella output.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/umbrella-gate/internal/display"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
)

// Panel is the slice of panel.Panel the terminal UI drives.
type Panel interface {
	Snapshot() domain.Evaluation
	Toggle(in domain.Input, source string) domain.Evaluation
}

// EvaluationMsg delivers an evaluation made by another adapter.
type EvaluationMsg domain.Evaluation

// Observer returns a panel observer that forwards evaluations to a running
// program. Sends happen off the panel lock so a busy UI never blocks other
// adapters; the model drops anything older than what it already shows.
func Observer(send func(tea.Msg)) func(domain.Evaluation) {
	return func(ev domain.Evaluation) {
		go send(EvaluationMsg(ev))
	}
}

type keyMap struct {
	Rain    key.Binding
	Drizzle key.Binding
	Wind    key.Binding
	Time    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rain, k.Drizzle, k.Wind, k.Time, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Rain:    key.NewBinding(key.WithKeys("r", "1"), key.WithHelp("r", "rain")),
		Drizzle: key.NewBinding(key.WithKeys("d", "2"), key.WithHelp("d", "drizzle")),
		Wind:    key.NewBinding(key.WithKeys("w", "3"), key.WithHelp("w", "wind")),
		Time:    key.NewBinding(key.WithKeys("t", "4"), key.WithHelp("t", "day/night")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the panel.
type Model struct {
	panel   Panel
	current domain.Evaluation
	keys    keyMap
	help    help.Model
	styles  Styles
}

// New creates a model showing the panel's current evaluation.
func New(p Panel) Model {
	return Model{
		panel:   p,
		current: p.Snapshot(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
	}
}

// Current returns the evaluation the model is showing.
func (m Model) Current() domain.Evaluation { return m.current }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case EvaluationMsg:
		m.show(domain.Evaluation(msg))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rain):
			m.toggle(domain.InputRain)
		case key.Matches(msg, m.keys.Drizzle):
			m.toggle(domain.InputDrizzle)
		case key.Matches(msg, m.keys.Wind):
			m.toggle(domain.InputWind)
		case key.Matches(msg, m.keys.Time):
			m.toggle(domain.InputTime)
		}
	}
	return m, nil
}

func (m *Model) toggle(in domain.Input) {
	m.show(m.panel.Toggle(in, domain.SourceTerminal))
}

// show replaces the displayed evaluation unless ev is older.
func (m *Model) show(ev domain.Evaluation) {
	if ev.Sequence >= m.current.Sequence {
		m.current = ev
	}
}

func (m Model) View() string {
	v := display.Build(m.current)
	s := m.styles

	var inputs strings.Builder
	inputs.WriteString(s.Section.Render("INPUTS"))
	for i, l := range v.Inputs {
		inputs.WriteString("\n")
		inputs.WriteString(fmt.Sprintf("%s %s %s %s",
			s.Key.Render("["+m.keyFor(i)+"]"),
			l.Icon,
			s.Label.Render(l.Label),
			m.lamp(l.On, l.Bit),
		))
	}

	var gates strings.Builder
	gates.WriteString(s.Section.Render("LOGIC GATES"))
	for _, l := range v.Gates {
		gates.WriteString("\n")
		gates.WriteString(fmt.Sprintf("%s %s %s",
			s.Gate.Render(l.Gate),
			s.GateLabel.Render(l.Key+"  "+l.Label),
			m.lamp(l.On, l.Bit),
		))
	}

	outStyle := s.ReminderOff
	if v.Output.On {
		outStyle = s.ReminderOn
	}
	output := s.Section.Render("OUTPUT") + "\n" +
		fmt.Sprintf("%s  %s  %s", v.Output.Icon, outStyle.Render(v.Output.Text), m.lamp(v.Output.On, v.Output.Bit))

	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("☂ Umbrella Reminder Logic"),
		s.Box.Render(inputs.String()),
		s.Box.Render(gates.String()),
		s.Box.Render(output),
		m.help.View(m.keys),
	)
	return body + "\n"
}

func (m Model) keyFor(i int) string {
	bindings := []key.Binding{m.keys.Rain, m.keys.Drizzle, m.keys.Wind, m.keys.Time}
	return bindings[i].Help().Key
}

func (m Model) lamp(on bool, bit string) string {
	if on {
		return m.styles.LampOn.Render("● " + bit)
	}
	return m.styles.LampOff.Render("○ " + bit)
}
