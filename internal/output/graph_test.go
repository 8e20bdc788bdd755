package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chisel.dev/chisel/internal/git"
	"chisel.dev/chisel/internal/graph"
)

func plain() *Palette { return NewPalette(false) }

func layoutOf(commits ...*git.Commit) []*graph.Node {
	return graph.Layout(commits)
}

func TestRenderRowsLinear(t *testing.T) {
	nodes := layoutOf(
		&git.Commit{Hash: "c2c2c2c2c2", Parents: []string{"c1c1c1c1c1"}, Subject: "second"},
		&git.Commit{Hash: "c1c1c1c1c1", Subject: "first"},
	)

	rows := RenderRows(nodes, plain())
	require.Len(t, rows, 2)
	require.Equal(t, "●  c2c2c2c second", rows[0])
	require.Equal(t, "●  c1c1c1c first", rows[1])
}

func TestRenderRowsMerge(t *testing.T) {
	nodes := layoutOf(
		&git.Commit{Hash: "m1", Parents: []string{"c2", "x1"}, Subject: "merge"},
		&git.Commit{Hash: "x1", Parents: []string{"c1"}, Subject: "side"},
		&git.Commit{Hash: "c2", Parents: []string{"c1"}, Subject: "base work"},
		&git.Commit{Hash: "c1", Subject: "first"},
	)

	rows := RenderRows(nodes, plain())
	require.Len(t, rows, 4)
	require.Equal(t, "●─╮  m1 merge", rows[0])
	require.Equal(t, "│ ●  x1 side", rows[1])
	require.Equal(t, "●─┤  c2 base work", rows[2])
	require.Equal(t, "  ●  c1 first", rows[3])
}

func TestRenderRowsForkBend(t *testing.T) {
	nodes := layoutOf(
		&git.Commit{Hash: "b1", Parents: []string{"c1"}, Subject: "top"},
		&git.Commit{Hash: "a1", Parents: []string{"c1"}, Subject: "side"},
		&git.Commit{Hash: "c1", Subject: "shared base"},
	)

	rows := RenderRows(nodes, plain())
	require.Len(t, rows, 3)
	require.Equal(t, "●    b1 top", rows[0])
	require.Equal(t, "├─●  a1 side", rows[1])
	require.Equal(t, "●    c1 shared base", rows[2])
}

func TestRenderRowsDecorations(t *testing.T) {
	nodes := layoutOf(&git.Commit{
		Hash:    "abc1234567",
		Subject: "tip",
		Refs: []git.Ref{
			{Name: "main", Kind: git.RefBranch, Head: true},
			{Name: "origin/main", Kind: git.RefRemote},
			{Name: "v1.0.0", Kind: git.RefTag},
		},
	})

	rows := RenderRows(nodes, plain())
	require.Equal(t, "●  abc1234 (HEAD -> main, origin/main, tag: v1.0.0) tip", rows[0])
}

func TestRenderRowsUncommitted(t *testing.T) {
	nodes := layoutOf(
		git.NewUncommittedNode("c1"),
		&git.Commit{Hash: "c1", Subject: "first"},
	)

	rows := RenderRows(nodes, plain())
	require.Equal(t, "○  Uncommitted changes", rows[0])
	require.True(t, strings.HasPrefix(rows[1], "●  c1"))
}

func TestRenderGraphEndsWithNewline(t *testing.T) {
	nodes := layoutOf(&git.Commit{Hash: "c1", Subject: "first"})
	require.True(t, strings.HasSuffix(RenderGraph(nodes, plain()), "\n"))
}

func TestPaletteDisabledPassesThrough(t *testing.T) {
	p := NewPalette(false)
	require.Equal(t, "text", p.Lane(3, "text"))
	require.Equal(t, "text", p.Hash("text"))
	require.Equal(t, "text", p.Ref("text"))
	require.Equal(t, "text", p.Dim("text"))
}
