// Package output renders the commit graph and other user-facing text.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// CHISEL_COLORS defines the color palette for graph lane visualization
var CHISEL_COLORS = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// DetectColor reports whether stdout should receive colored output.
func DetectColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Palette styles graph elements. A disabled palette passes text through
// unchanged.
type Palette struct {
	enabled bool
}

// NewPalette creates a palette. enabled usually comes from DetectColor and
// the repository config.
func NewPalette(enabled bool) *Palette {
	return &Palette{enabled: enabled}
}

func laneHex(colorLane int) string {
	rgb := CHISEL_COLORS[colorLane%len(CHISEL_COLORS)]
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// Lane colors text with the palette color for the given color lane.
func (p *Palette) Lane(colorLane int, text string) string {
	if !p.enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(laneHex(colorLane))).Render(text)
}

// Hash styles an abbreviated commit hash.
func (p *Palette) Hash(text string) string {
	if !p.enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(text)
}

// Ref styles a branch or tag decoration.
func (p *Palette) Ref(text string) string {
	if !p.enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Render(text)
}

// Dim styles secondary text like dates and authors.
func (p *Palette) Dim(text string) string {
	if !p.enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(text)
}
