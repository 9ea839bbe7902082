package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StepModel - Interactive insertion replay
// =============================================================================

// StepModel is the bubbletea model that replays an insertion one action at
// a time. Cursor -1 shows the tree before the insertion.
type StepModel struct {
	Label  int
	Before *rbtree.Tree
	Steps  []rbtree.Step
	Cursor int
}

// newStepModel creates a step model positioned before the first action.
func newStepModel(label int, before *rbtree.Tree, steps []rbtree.Step) StepModel {
	return StepModel{Label: label, Before: before, Steps: steps, Cursor: -1}
}

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.Cursor < len(m.Steps)-1 {
				m.Cursor++
			}
		case "left", "h", "p":
			if m.Cursor > -1 {
				m.Cursor--
			}
		case "home", "g":
			m.Cursor = -1
		case "end", "G":
			m.Cursor = len(m.Steps) - 1
		}
	}
	return m, nil
}

// current returns the tree to draw and the index to mark.
func (m StepModel) current() (*rbtree.Tree, int) {
	if m.Cursor < 0 || m.Cursor >= len(m.Steps) {
		return m.Before, rbtree.None
	}
	s := m.Steps[m.Cursor]
	if s.Tree == nil {
		return m.Before, rbtree.None
	}
	return s.Tree, s.Node
}

func (m StepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Insert %d", m.Label)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ step  g/G first/last  q quit"))
	b.WriteString("\n\n")

	t, mark := m.current()
	b.WriteString(drawTree(t, mark))
	b.WriteString("\n\n")

	for i, s := range m.Steps {
		text := fmt.Sprintf("%2d  %s", i+1, s.Action)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + text))
		} else if i < m.Cursor {
			b.WriteString(listNormalStyle.Render("  " + text))
		} else {
			b.WriteString(listDimStyle.Render("  " + text))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Steps))))

	return b.String()
}
