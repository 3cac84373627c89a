package tui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/hylla/lanes/internal/view"
	"github.com/hylla/lanes/internal/widget"
)

// laneGap is the number of columns between lane boxes.
const laneGap = 1

// laneRegion is the screen rectangle of one lane box. Bounds are half-open.
type laneRegion struct {
	x0, x1 int
	y0, y1 int
	cards  []cardRegion
}

// cardRegion is the row span of one card inside its lane.
type cardRegion struct {
	y0, y1 int
}

// boardPalette holds the colors used by the board body.
type boardPalette struct {
	accent color.Color
	muted  color.Color
	dim    color.Color
	drop   color.Color
}

// defaultPalette returns the board colors.
func defaultPalette() boardPalette {
	return boardPalette{
		accent: lipgloss.Color("62"),
		muted:  lipgloss.Color("241"),
		dim:    lipgloss.Color("239"),
		drop:   lipgloss.Color("42"),
	}
}

// laneWidth returns the outer width requested for each lane box.
func (m Model) laneWidth() int {
	if m.width <= 0 {
		return 40
	}
	lanes := len(m.lanes())
	return max(24, (m.width-laneGap*(lanes-1))/lanes)
}

// laneContentRows returns how many content rows fit inside a lane box.
func (m Model) laneContentRows(top int) int {
	if m.height <= 0 {
		return 0
	}
	// border rows, status line, and the two-row help bar
	return max(3, m.height-top-2-1-2)
}

// renderBoard paints every lane from its node tree and returns the regions
// used for mouse hit testing, with top as the first screen row of the board.
func (m Model) renderBoard(top int, pal boardPalette) (string, []laneRegion) {
	lanes := m.lanes()
	width := m.laneWidth()
	contentWidth := max(8, width-4)

	laneLines := make([][]string, len(lanes))
	laneCards := make([][]cardRegion, len(lanes))
	tallest := 0
	for idx, lane := range lanes {
		laneLines[idx], laneCards[idx] = m.laneLines(idx, lane, contentWidth, pal)
		tallest = max(tallest, len(laneLines[idx]))
	}
	rows := tallest
	if limit := m.laneContentRows(top); limit > 0 {
		rows = limit
	}

	boxes := make([]string, 0, len(lanes)*2)
	regions := make([]laneRegion, 0, len(lanes))
	x := 0
	for idx, lane := range lanes {
		border := pal.dim
		switch {
		case lane.Droppable():
			border = pal.drop
		case idx == m.selectedLane:
			border = pal.accent
		}
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(width)
		box := style.Render(fitLines(strings.Join(laneLines[idx], "\n"), rows))

		region := laneRegion{
			x0: x,
			x1: x + lipgloss.Width(box),
			y0: top,
			y1: top + lipgloss.Height(box),
		}
		for _, card := range laneCards[idx] {
			if card.y0 >= rows {
				break
			}
			region.cards = append(region.cards, cardRegion{
				y0: top + 1 + card.y0,
				y1: top + 1 + min(card.y1, rows),
			})
		}
		regions = append(regions, region)
		x = region.x1 + laneGap

		if idx > 0 {
			boxes = append(boxes, strings.Repeat(" ", laneGap))
		}
		boxes = append(boxes, box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...), regions
}

// laneLines renders the heading and cards of one lane as unstyled-width lines
// no wider than contentWidth.
func (m Model) laneLines(laneIdx int, lane *widget.LaneList, contentWidth int, pal boardPalette) ([]string, []cardRegion) {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.accent)
	if lane.Droppable() {
		headingStyle = headingStyle.Foreground(pal.drop)
	}
	mutedStyle := lipgloss.NewStyle().Foreground(pal.muted)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	titleStyle := lipgloss.NewStyle().Bold(true)
	draggingStyle := lipgloss.NewStyle().Foreground(pal.dim).Italic(true)

	cards := lane.Cards()
	heading := fmt.Sprintf("%s (%d)", lane.Heading(), len(cards))
	if lane.Droppable() {
		heading += " ▼"
	}
	lines := []string{headingStyle.Render(truncate(heading, contentWidth)), ""}
	regions := make([]cardRegion, 0, len(cards))
	if len(cards) == 0 {
		lines = append(lines, mutedStyle.Render("(empty)"))
		return lines, regions
	}

	textWidth := max(1, contentWidth-2)
	dragID := m.draggedID()
	for cardIdx, card := range cards {
		el := card.Element()
		selected := laneIdx == m.selectedLane && cardIdx == m.selectedItem
		dragged := card.Item().ID == dragID

		prefix := "  "
		if selected {
			prefix = "│ "
		}
		title := truncate(el.Query("h2").Text(), textWidth)
		switch {
		case dragged:
			title = draggingStyle.Render(title)
		case selected:
			title = selectedStyle.Render(title)
		default:
			title = titleStyle.Render(title)
		}

		start := len(lines)
		lines = append(lines, prefix+title)
		lines = append(lines, prefix+mutedStyle.Render(truncate(el.Query("h3").Text(), textWidth)))
		if m.boardCfg.ShowDescription {
			for _, line := range m.descriptionLines(el, textWidth) {
				lines = append(lines, prefix+mutedStyle.Render(line))
			}
		}
		regions = append(regions, cardRegion{y0: start, y1: len(lines)})
		if cardIdx < len(cards)-1 {
			lines = append(lines, "")
		}
	}
	return lines, regions
}

// descriptionLines returns the description rows for one card node.
func (m Model) descriptionLines(card *view.Node, width int) []string {
	desc := strings.TrimSpace(card.Query("p").Text())
	if desc == "" {
		return nil
	}
	if !m.boardCfg.WrapDescriptions {
		return []string{truncate(singleLine(desc), width)}
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(singleLine(desc))
	out := strings.Split(wrapped, "\n")
	for idx := range out {
		out[idx] = truncate(strings.TrimRight(out[idx], " "), width)
	}
	return out
}

// hitTest returns the lane and card under (x, y). card is -1 over lane chrome
// and lane is -1 outside every lane.
func hitTest(regions []laneRegion, x, y int) (lane int, card int) {
	for laneIdx, region := range regions {
		if x < region.x0 || x >= region.x1 || y < region.y0 || y >= region.y1 {
			continue
		}
		for cardIdx, c := range region.cards {
			if y >= c.y0 && y < c.y1 {
				return laneIdx, cardIdx
			}
		}
		return laneIdx, -1
	}
	return -1, -1
}

// nodeAt returns the node a drag over (x, y) should target.
func (m Model) nodeAt(x, y int) *view.Node {
	_, regions := m.renderBoard(m.boardTop(), defaultPalette())
	laneIdx, cardIdx := hitTest(regions, x, y)
	if laneIdx < 0 {
		return nil
	}
	lane := m.lanes()[laneIdx]
	if cardIdx >= 0 {
		if cards := lane.Cards(); cardIdx < len(cards) {
			return cards[cardIdx].Element()
		}
	}
	return lane.Element()
}

// boardTop returns the first screen row of the lane boxes.
func (m Model) boardTop() int {
	// header line plus spacer
	return 2
}

// singleLine collapses whitespace runs, including newlines, to one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
