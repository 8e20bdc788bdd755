package output

import (
	"strings"

	"chisel.dev/chisel/internal/git"
	"chisel.dev/chisel/internal/graph"
)

const (
	glyphCommit      = "●"
	glyphUncommitted = "○"
	glyphLine        = "│"
	glyphCross       = "─"
	glyphMergeRight  = "╮"
	glyphMergeLeft   = "╭"
	glyphJoinRight   = "┤"
	glyphJoinLeft    = "├"
)

// RenderRows renders one line per laid-out node: the lane cells followed by
// the abbreviated hash, decorations, and subject.
func RenderRows(nodes []*graph.Node, palette *Palette) []string {
	width := graph.Width(nodes)
	rows := make([]string, 0, len(nodes))
	for _, node := range nodes {
		rows = append(rows, renderRow(node, width, palette))
	}
	return rows
}

// RenderGraph renders the whole graph as a single string.
func RenderGraph(nodes []*graph.Node, palette *Palette) string {
	return strings.Join(RenderRows(nodes, palette), "\n") + "\n"
}

func renderRow(node *graph.Node, width int, palette *Palette) string {
	glyphs := make([]string, width)
	colors := make([]int, width)
	for i := range glyphs {
		glyphs[i] = " "
		colors[i] = -1
	}

	for _, pt := range node.PassThrough {
		glyphs[pt.Lane] = glyphLine
		colors[pt.Lane] = pt.ColorLane
	}

	// crossed marks the inter-lane gaps a merge or fork connector runs
	// through. A connector landing on an occupied lane joins its line.
	crossed := make(map[int]int)
	for _, conn := range node.Connections {
		if conn.ToLane == conn.FromLane {
			continue
		}
		lo, hi := conn.FromLane, conn.ToLane
		end, join := glyphMergeRight, glyphJoinRight
		if conn.ToLane < conn.FromLane {
			lo, hi = conn.ToLane, conn.FromLane
			end, join = glyphMergeLeft, glyphJoinLeft
		}
		for gap := lo; gap < hi; gap++ {
			crossed[gap] = conn.ColorLane
		}
		for lane := lo + 1; lane < hi; lane++ {
			if glyphs[lane] == " " {
				glyphs[lane] = glyphCross
				colors[lane] = conn.ColorLane
			}
		}
		switch glyphs[conn.ToLane] {
		case " ", glyphCross:
			glyphs[conn.ToLane] = end
			colors[conn.ToLane] = conn.ColorLane
		case glyphLine:
			glyphs[conn.ToLane] = join
			colors[conn.ToLane] = conn.ColorLane
		}
	}

	glyph := glyphCommit
	if node.IsUncommitted() {
		glyph = glyphUncommitted
	}
	glyphs[node.Lane] = glyph
	colors[node.Lane] = node.ColorLane

	var b strings.Builder
	for i := 0; i < width; i++ {
		cell := glyphs[i]
		if colors[i] >= 0 {
			cell = palette.Lane(colors[i], cell)
		}
		b.WriteString(cell)
		if i < width-1 {
			gap := " "
			if colorLane, ok := crossed[i]; ok {
				gap = palette.Lane(colorLane, glyphCross)
			}
			b.WriteString(gap)
		}
	}

	b.WriteString("  ")
	if node.IsUncommitted() {
		b.WriteString(palette.Dim(node.Subject))
		return b.String()
	}

	b.WriteString(palette.Hash(node.ShortHash()))
	if decorations := formatRefs(node.Refs, palette); decorations != "" {
		b.WriteString(" ")
		b.WriteString(decorations)
	}
	b.WriteString(" ")
	b.WriteString(node.Subject)
	return b.String()
}

// formatRefs rebuilds a decoration list in git's own notation.
func formatRefs(refs []git.Ref, palette *Palette) string {
	if len(refs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		name := ref.Name
		switch {
		case ref.Head && ref.Name != "HEAD":
			name = "HEAD -> " + ref.Name
		case ref.Kind == git.RefTag:
			name = "tag: " + ref.Name
		}
		parts = append(parts, name)
	}
	return palette.Ref("(" + strings.Join(parts, ", ") + ")")
}
