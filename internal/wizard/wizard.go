// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wizard is the interactive terminal front end for the decision
// engine. It walks the question tree one answer at a time and emits the
// finished style document when the tree is exhausted.
package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meshintel/styleforge/internal/intent"
	"github.com/meshintel/styleforge/internal/synth"
	"github.com/meshintel/styleforge/pkg/types"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// answered is one breadcrumb in the session history.
type answered struct {
	question string
	choice   string
}

// Model runs the wizard loop. Construct it with New and hand it to a
// bubbletea program; after the program exits, Document returns the
// emitted YAML (nil when the user quit early).
type Model struct {
	in      types.StyleIntent
	pkg     types.DecisionPackage
	history []types.StyleIntent
	trail   []answered
	cursor  int

	done     bool
	quitting bool
	err      error
	doc      []byte
}

// New starts a wizard session from an empty intent.
func New() Model {
	return FromIntent(types.StyleIntent{})
}

// FromIntent starts a session from a pre-filled intent, e.g. answers
// loaded from a file.
func FromIntent(in types.StyleIntent) Model {
	m := Model{in: in}
	m.pkg = intent.Decide(in)
	if m.pkg.Question == nil {
		m.finish()
	}
	return m
}

// Document returns the emitted style document, or nil if the session
// did not complete.
func (m Model) Document() []byte { return m.doc }

// Intent returns the accumulated answers.
func (m Model) Intent() types.StyleIntent { return m.in }

// Err returns the first error the session hit, if any.
func (m Model) Err() error { return m.err }

// Aborted reports whether the user quit before finishing.
func (m Model) Aborted() bool { return m.quitting && !m.done }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Back):
		m.undo()

	case m.done:
		// Any other key on the summary screen exits.
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.pkg.Previews)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.Select):
		return m.selectCurrent()
	}

	return m, nil
}

func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	if m.pkg.Question == nil || m.cursor >= len(m.pkg.Previews) {
		return m, nil
	}
	choice := m.pkg.Previews[m.cursor]

	m.history = append(m.history, m.in)
	if err := intent.Merge(&m.in, choice.ChoiceValue); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.trail = append(m.trail, answered{
		question: m.pkg.Question.Text,
		choice:   choice.Label,
	})

	m.pkg = intent.Decide(m.in)
	m.cursor = 0
	if m.pkg.Question == nil {
		m.finish()
	}
	return m, nil
}

// undo steps back to the intent before the last answer.
func (m *Model) undo() {
	if len(m.history) == 0 {
		return
	}
	m.in = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.trail = m.trail[:len(m.trail)-1]
	m.pkg = intent.Decide(m.in)
	m.cursor = 0
	m.done = false
	m.doc = nil
}

func (m *Model) finish() {
	m.done = true
	doc, err := synth.EmitYAML(synth.ToStyle(m.in))
	if err != nil {
		m.err = err
		return
	}
	m.doc = doc
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.done {
		return m.summaryView()
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("styleforge"))
	b.WriteString("\n\n")

	for _, a := range m.trail {
		b.WriteString(styleTrail.Render(fmt.Sprintf("%s %s", a.question, a.choice)))
		b.WriteString("\n")
	}
	if len(m.trail) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(styleQuestion.Render(m.pkg.Question.Text))
	b.WriteString("\n")
	if m.pkg.Question.Description != "" {
		b.WriteString(styleDescription.Render(m.pkg.Question.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, p := range m.pkg.Previews {
		if i == m.cursor {
			b.WriteString(styleSelected.Render("> " + p.Label))
		} else {
			b.WriteString(styleOption.Render("  " + p.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("↑/↓ move · enter select · esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) summaryView() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("styleforge"))
	b.WriteString("\n\n")
	b.WriteString(styleQuestion.Render("Your style is ready."))
	b.WriteString("\n\n")

	if len(m.pkg.MissingFields) > 0 {
		b.WriteString(styleDescription.Render(
			"Left at defaults: " + strings.Join(m.pkg.MissingFields, ", ")))
		b.WriteString("\n\n")
	}

	b.WriteString(styleDocument.Render(strings.TrimRight(string(m.doc), "\n")))
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("esc back · any other key to finish"))
	b.WriteString("\n")
	return b.String()
}
