package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"chisel.dev/chisel/internal/git"
	"chisel.dev/chisel/internal/graph"
	"chisel.dev/chisel/internal/output"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testGraphModel() graphModel {
	nodes := graph.Layout([]*git.Commit{
		git.NewUncommittedNode("c3"),
		{Hash: "c3", Parents: []string{"c2"}, Subject: "three"},
		{Hash: "c2", Parents: []string{"c1"}, Subject: "two"},
		{Hash: "c1", Subject: "one"},
	})
	return newGraphModel(nodes, output.NewPalette(false))
}

func step(t *testing.T, m tea.Model, msg tea.Msg) graphModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(graphModel)
}

func TestGraphViewSelection(t *testing.T) {
	m := testGraphModel()

	t.Run("uncommitted row cannot be selected", func(t *testing.T) {
		got := step(t, m, tea.KeyMsg{Type: tea.KeySpace})
		require.Empty(t, got.selectedHashes())
	})

	t.Run("toggle selects and deselects", func(t *testing.T) {
		got := step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		got = step(t, got, tea.KeyMsg{Type: tea.KeySpace})
		require.Equal(t, []string{"c3"}, got.selectedHashes())

		got = step(t, got, tea.KeyMsg{Type: tea.KeySpace})
		require.Empty(t, got.selectedHashes())
	})
}

func TestGraphViewActions(t *testing.T) {
	select2 := func() graphModel {
		m := testGraphModel()
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
		return m
	}

	t.Run("squash needs two selected commits", func(t *testing.T) {
		m := testGraphModel()
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m = step(t, m, keyRune('s'))
		require.Equal(t, ActionNone, m.result.Action)

		m = select2()
		m = step(t, m, keyRune('s'))
		require.Equal(t, ActionSquash, m.result.Action)
		require.ElementsMatch(t, []string{"c3", "c2"}, m.result.Selected)
	})

	t.Run("drop needs one selected commit", func(t *testing.T) {
		m := testGraphModel()
		m = step(t, m, keyRune('d'))
		require.Equal(t, ActionNone, m.result.Action)

		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m = step(t, m, keyRune('d'))
		require.Equal(t, ActionDrop, m.result.Action)
		require.Equal(t, []string{"c3"}, m.result.Selected)
	})

	t.Run("move asks for an anchor", func(t *testing.T) {
		m := testGraphModel()
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m = step(t, m, keyRune('m'))
		require.True(t, m.pickingAnchor)

		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.Equal(t, ActionMove, m.result.Action)
		require.Equal(t, []string{"c3"}, m.result.Selected)
		require.Equal(t, "c2", m.result.Anchor)
	})

	t.Run("quit cancels", func(t *testing.T) {
		m := testGraphModel()
		m = step(t, m, keyRune('q'))
		require.True(t, m.canceled)
	})
}

func TestInsertionAnchor(t *testing.T) {
	// Display order is newest-first; the first-parent chain is m1, c2, c1
	// with x1 hanging off the merge.
	nodes := graph.Layout([]*git.Commit{
		git.NewUncommittedNode("m1"),
		{Hash: "m1", Parents: []string{"c2", "x1"}, Subject: "merge"},
		{Hash: "x1", Parents: []string{"c1"}, Subject: "side"},
		{Hash: "c2", Parents: []string{"c1"}, Subject: "work"},
		{Hash: "c1", Subject: "first"},
	})

	t.Run("before the tip means the newest position", func(t *testing.T) {
		require.Empty(t, InsertionAnchor(nodes, "m1"))
	})

	t.Run("before a row becomes its first-parent child", func(t *testing.T) {
		require.Equal(t, "m1", InsertionAnchor(nodes, "c2"))
	})

	t.Run("follows the first-parent chain past side branches", func(t *testing.T) {
		require.Equal(t, "c2", InsertionAnchor(nodes, "c1"))
	})

	t.Run("off-chain rows pass through unchanged", func(t *testing.T) {
		require.Equal(t, "x1", InsertionAnchor(nodes, "x1"))
		require.Equal(t, "zz", InsertionAnchor(nodes, "zz"))
	})
}
