// Package overlay splices a foreground pane into a background view while
// keeping the background visible around it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment and sizing inside the host surface.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
}

// Centered is the default dialog placement.
func Centered() Placement {
	return Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}
}

// Compose renders foreground atop background on a width x height surface.
// Background cells outside the overlay bounds stay visible.
func Compose(background string, width, height int, foreground string, p Placement) string {
	lines := surface(background, width, height)
	if foreground == "" {
		return strings.Join(lines, "\n")
	}

	fg := strings.Split(foreground, "\n")
	ow := p.Width
	if ow <= 0 {
		for _, line := range fg {
			if w := lipgloss.Width(line); w > ow {
				ow = w
			}
		}
	}
	oh := p.Height
	if oh <= 0 {
		oh = len(fg)
	}
	if ow <= 0 || oh <= 0 {
		return strings.Join(lines, "\n")
	}
	if ow > width {
		ow = width
	}
	if oh > height {
		oh = height
	}

	x, y := offsets(width, height, ow, oh, p)
	for row := 0; row < oh; row++ {
		dest := y + row
		if dest < 0 || dest >= len(lines) {
			continue
		}
		line := ""
		if row < len(fg) {
			line = fg[row]
		}
		lines[dest] = cut(lines[dest], 0, x) + pad(line, ow) + cut(lines[dest], x+ow, width)
	}
	return strings.Join(lines, "\n")
}

// Offsets reports where the overlay's top-left cell lands, for tests and for
// callers that position related chrome.
func Offsets(width, height int, p Placement) (int, int) {
	ow := p.Width
	if ow > width {
		ow = width
	}
	oh := p.Height
	if oh > height {
		oh = height
	}
	return offsets(width, height, ow, oh, p)
}

func offsets(width, height, ow, oh int, p Placement) (int, int) {
	h := p.Horizontal
	if h == 0 {
		h = lipgloss.Center
	}
	v := p.Vertical
	if v == 0 {
		v = lipgloss.Center
	}

	x := p.MarginX
	switch h {
	case lipgloss.Right:
		x = width - ow - p.MarginX
	case lipgloss.Center:
		x = (width - ow) / 2
	}
	y := p.MarginY
	switch v {
	case lipgloss.Bottom:
		y = height - oh - p.MarginY
	case lipgloss.Center:
		y = (height - oh) / 2
	}

	return clamp(x, 0, width-ow), clamp(y, 0, height-oh)
}

func surface(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		return truncate.String(s, uint(width))
	}
	return s + strings.Repeat(" ", width-w)
}

// cut returns the cells of s between display columns from and to. Wide runes
// that straddle a boundary are dropped rather than split.
func cut(s string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if max := lipgloss.Width(s); to > max {
		to = max
	}
	if from >= to {
		return ""
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if col+rw > to {
			break
		}
		if col >= from {
			b.WriteRune(r)
		} else if col+rw > from {
			// wide rune straddling the left edge
			b.WriteString(strings.Repeat(" ", col+rw-from))
		}
		col += rw
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
