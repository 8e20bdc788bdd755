package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chisel.dev/chisel/internal/graph"
	"chisel.dev/chisel/internal/output"
)

// GraphAction is what the user asked for when leaving the graph view.
type GraphAction int

const (
	// ActionNone means the view was closed without requesting a rewrite.
	ActionNone GraphAction = iota
	// ActionSquash squashes the selected commits.
	ActionSquash
	// ActionDrop drops the selected commits.
	ActionDrop
	// ActionMove moves the selected commits before a chosen anchor.
	ActionMove
)

// GraphResult carries the user's choice out of the interactive graph.
type GraphResult struct {
	Action   GraphAction
	Selected []string
	// Anchor is the move target hash, empty for a move to the tip.
	Anchor string
}

// InsertionAnchor converts a row picked as "move before" into the anchor
// the rewrite engine expects. Rows read newest-first while replay runs
// oldest-first, so placing commits above a row means inserting them after
// that row in replay order: the engine anchor is the row's first-parent
// child, or empty when the row is the tip. A hash outside the first-parent
// chain is returned unchanged and left to the engine to reject.
func InsertionAnchor(nodes []*graph.Node, hash string) string {
	byHash := make(map[string]*graph.Node, len(nodes))
	tip := ""
	for _, node := range nodes {
		if node.IsUncommitted() {
			continue
		}
		if tip == "" {
			tip = node.Hash
		}
		byHash[node.Hash] = node
	}

	child := ""
	for cur := tip; cur != ""; {
		if cur == hash {
			return child
		}
		node := byHash[cur]
		if node == nil || len(node.Parents) == 0 {
			break
		}
		child = cur
		cur = node.Parents[0]
	}
	return hash
}

type graphKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Squash key.Binding
	Drop   key.Binding
	Move   key.Binding
	Accept key.Binding
	Quit   key.Binding
}

func (k graphKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Squash, k.Drop, k.Move, k.Quit}
}

func (k graphKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Squash, k.Drop, k.Move},
		{k.Accept, k.Quit},
	}
}

var defaultGraphKeys = graphKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	Squash: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "squash"),
	),
	Drop: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "drop"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm anchor"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q", "esc"),
		key.WithHelp("q/esc", "quit"),
	),
}

type graphStyles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	anchor   lipgloss.Style
	dim      lipgloss.Style
}

func newGraphStyles() graphStyles {
	return graphStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		anchor:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// graphModel is the bubbletea model for the interactive commit graph.
// Selection works on rows; the uncommitted row can never be selected.
type graphModel struct {
	nodes    []*graph.Node
	rows     []string
	cursor   int
	selected map[int]bool

	// pickingAnchor is set after a move was requested; the next enter
	// confirms the row under the cursor as the anchor.
	pickingAnchor bool

	result   GraphResult
	canceled bool

	height int
	offset int

	styles graphStyles
	keys   graphKeyMap
	help   help.Model
}

func newGraphModel(nodes []*graph.Node, palette *output.Palette) graphModel {
	return graphModel{
		nodes:    nodes,
		rows:     output.RenderRows(nodes, palette),
		selected: make(map[int]bool),
		height:   20,
		styles:   newGraphStyles(),
		keys:     defaultGraphKeys,
		help:     help.New(),
	}
}

func (m graphModel) Init() tea.Cmd {
	return nil
}

func (m graphModel) selectedHashes() []string {
	var hashes []string
	for i, node := range m.nodes {
		if m.selected[i] {
			hashes = append(hashes, node.Hash)
		}
	}
	return hashes
}

func (m graphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Height > 6 {
			m.height = msg.Height - 6
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.canceled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Toggle):
			if m.pickingAnchor {
				break
			}
			if m.nodes[m.cursor].IsUncommitted() {
				break
			}
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}

		case key.Matches(msg, m.keys.Squash):
			if len(m.selected) >= 2 {
				m.result = GraphResult{Action: ActionSquash, Selected: m.selectedHashes()}
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Drop):
			if len(m.selected) > 0 {
				m.result = GraphResult{Action: ActionDrop, Selected: m.selectedHashes()}
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Move):
			if len(m.selected) > 0 {
				m.pickingAnchor = true
			}

		case key.Matches(msg, m.keys.Accept):
			if !m.pickingAnchor {
				break
			}
			if m.nodes[m.cursor].IsUncommitted() {
				break
			}
			m.result = GraphResult{
				Action:   ActionMove,
				Selected: m.selectedHashes(),
				Anchor:   m.nodes[m.cursor].Hash,
			}
			return m, tea.Quit
		}
	}

	// Keep the cursor inside the visible window.
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}

	return m, nil
}

func (m graphModel) View() string {
	var b strings.Builder

	title := "Commit Graph"
	if m.pickingAnchor {
		title = "Commit Graph - pick the commit to move before, enter to confirm"
	}
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		cursor := "  "
		row := m.rows[i]
		switch {
		case i == m.cursor && m.pickingAnchor:
			cursor = m.styles.anchor.Render("▸ ")
		case i == m.cursor:
			cursor = m.styles.cursor.Render("▸ ")
		}
		if m.selected[i] {
			row = m.styles.selected.Render("✓ ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, row))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// NewGraphModel creates a tea.Model for the graph view.
func NewGraphModel(nodes []*graph.Node, palette *output.Palette) tea.Model {
	return newGraphModel(nodes, palette)
}

// RunGraphView runs the interactive graph and returns the user's choice.
// A plain quit returns ActionNone without an error.
func RunGraphView(nodes []*graph.Node, palette *output.Palette) (*GraphResult, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return nil, err
	}

	m := newGraphModel(nodes, palette)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	res := finalModel.(graphModel)
	if res.canceled {
		return &GraphResult{Action: ActionNone}, nil
	}
	return &res.result, nil
}
