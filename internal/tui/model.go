package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/dnd"
	"github.com/hylla/lanes/internal/domain"
	"github.com/hylla/lanes/internal/view"
	"github.com/hylla/lanes/internal/widget"
)

// activityLimit bounds the entries shown in the activity overlay.
const activityLimit = 30

// inputMode identifies the active interaction mode.
type inputMode int

// inputMode values.
const (
	modeNone inputMode = iota
	modeAddItem
	modeNotice
	modeItemInfo
	modeActivityLog
	modeDragging
)

// form field indexes.
const (
	fieldTitle = iota
	fieldDescription
	fieldPeople
)

// Model is the bubbletea model for the board.
type Model struct {
	page     *widget.Page
	activity app.ActivityReader
	copyText func(string) error
	logger   *charmLog.Logger
	markdown *markdownRenderer

	ready  bool
	width  int
	height int

	status string

	help     help.Model
	keys     keyMap
	boardCfg BoardConfig

	selectedLane int
	selectedItem int

	mode         inputMode
	formInputs   []textinput.Model
	formFocus    int
	notice       string
	noticeDetail string
	infoItemID   string
	activityLog  []domain.ChangeEvent
	activityErr  error

	drag        *view.DragSession
	dragLane    int
	dragFrom    domain.Lane
	dragByMouse bool
	pressedID   string
}

// activityLoadedMsg carries ledger entries for the activity overlay.
type activityLoadedMsg struct {
	events []domain.ChangeEvent
	err    error
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	id  string
	err error
}

// NewModel constructs a board model over page.
func NewModel(page *widget.Page, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		page:     page,
		copyText: clipboard.WriteAll,
		logger:   charmLog.New(io.Discard),
		markdown: &markdownRenderer{style: "dark"},
		status:   "ready",
		help:     h,
		keys:     newKeyMap(),
		boardCfg: DefaultBoardConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init has no startup work; the store is already populated.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update applies one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(max(0, msg.Width-2))
		return m, nil

	case activityLoadedMsg:
		m.activityErr = msg.err
		if msg.err != nil {
			m.status = "activity log unavailable: " + msg.err.Error()
			return m, nil
		}
		m.activityLog = append([]domain.ChangeEvent(nil), msg.events...)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "copied " + msg.id
		return m, nil

	case tea.KeyPressMsg:
		if m.help.ShowAll {
			if key.Matches(msg, m.keys.toggleHelp, m.keys.cancel) {
				m.help.ShowAll = false
			}
			return m, nil
		}
		switch m.mode {
		case modeNone:
			return m.handleNormalModeKey(msg)
		case modeDragging:
			return m.handleDragModeKey(msg)
		default:
			return m.handleInputModeKey(msg)
		}

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	default:
		if m.mode == modeAddItem && len(m.formInputs) > 0 {
			var cmd tea.Cmd
			m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View renders the board.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// handleNormalModeKey handles keys on the plain board.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = true
		return m, nil
	case key.Matches(msg, m.keys.moveLeft):
		m.selectedLane = clamp(m.selectedLane-1, 0, len(m.lanes())-1)
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		m.selectedLane = clamp(m.selectedLane+1, 0, len(m.lanes())-1)
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		m.selectedItem--
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.selectedItem++
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.addItem):
		return m, m.startItemForm()
	case key.Matches(msg, m.keys.itemInfo):
		card, ok := m.selectedCard()
		if !ok {
			m.status = "no project selected"
			return m, nil
		}
		m.mode = modeItemInfo
		m.infoItemID = card.Item().ID
		return m, nil
	case key.Matches(msg, m.keys.grab):
		return m.startKeyboardDrag()
	case key.Matches(msg, m.keys.moveItemLeft):
		return m.dragSelectedBy(-1)
	case key.Matches(msg, m.keys.moveItemRight):
		return m.dragSelectedBy(1)
	case key.Matches(msg, m.keys.copyID):
		card, ok := m.selectedCard()
		if !ok {
			m.status = "no project selected"
			return m, nil
		}
		return m, m.copyIDCmd(card.Item().ID)
	case key.Matches(msg, m.keys.activityLog):
		return m, m.openActivityLog()
	case key.Matches(msg, m.keys.cancel):
		m.status = "ready"
		return m, nil
	default:
		return m, nil
	}
}

// handleDragModeKey handles keys while a keyboard or mouse drag is active.
func (m Model) handleDragModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.cancelDrag()
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.cancelDrag()
		m.status = "drag cancelled"
		return m, nil
	case m.dragByMouse:
		return m, nil
	case key.Matches(msg, m.keys.moveLeft):
		m.hoverLane(m.dragLane - 1)
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		m.hoverLane(m.dragLane + 1)
		return m, nil
	case key.Matches(msg, m.keys.drop), key.Matches(msg, m.keys.grab):
		return m.finishDrag()
	default:
		return m, nil
	}
}

// handleInputModeKey handles keys inside overlays.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAddItem:
		switch msg.String() {
		case "esc":
			m.stashFormValues()
			m.mode = modeNone
			m.formInputs = nil
			m.status = "cancelled"
			return m, nil
		case "tab", "down":
			return m, m.focusFormField(m.formFocus + 1)
		case "shift+tab", "up":
			return m, m.focusFormField(m.formFocus - 1)
		case "enter":
			return m.submitItemForm()
		}
		var cmd tea.Cmd
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
		return m, cmd

	case modeNotice:
		switch msg.String() {
		case "enter", "esc", " ", "space":
			m.notice = ""
			m.noticeDetail = ""
			return m, m.startItemForm()
		}
		return m, nil

	case modeItemInfo:
		switch {
		case key.Matches(msg, m.keys.copyID):
			return m, m.copyIDCmd(m.infoItemID)
		case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.itemInfo), key.Matches(msg, m.keys.quit):
			m.mode = modeNone
			m.infoItemID = ""
		}
		return m, nil

	case modeActivityLog:
		if key.Matches(msg, m.keys.cancel, m.keys.activityLog, m.keys.quit) {
			m.mode = modeNone
		}
		return m, nil
	}
	return m, nil
}

// startItemForm opens the new-project form with the form widget's values.
func (m *Model) startItemForm() tea.Cmd {
	title, description, people := m.page.Form.Values()
	m.formInputs = []textinput.Model{
		newModalInput("title: ", "at least 2 characters", title, 120),
		newModalInput("description: ", "at least 5 characters", description, 500),
		newModalInput("people: ", "1-5", people, 3),
	}
	m.mode = modeAddItem
	return m.focusFormField(fieldTitle)
}

// focusFormField moves focus to idx, wrapping around.
func (m *Model) focusFormField(idx int) tea.Cmd {
	if len(m.formInputs) == 0 {
		return nil
	}
	m.formFocus = wrapIndex(idx, len(m.formInputs))
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	return m.formInputs[m.formFocus].Focus()
}

// stashFormValues copies the modal inputs into the form widget.
func (m *Model) stashFormValues() {
	if len(m.formInputs) != 3 {
		return
	}
	m.page.Form.SetValues(
		m.formInputs[fieldTitle].Value(),
		m.formInputs[fieldDescription].Value(),
		m.formInputs[fieldPeople].Value(),
	)
}

// submitItemForm submits through the form widget. Rejected input opens a
// blocking notice and keeps the values.
func (m Model) submitItemForm() (tea.Model, tea.Cmd) {
	m.stashFormValues()
	title := strings.TrimSpace(m.formInputs[fieldTitle].Value())
	id, err := m.page.Form.Submit()
	if err != nil {
		m.logger.Debug("project rejected", "err", err)
		m.mode = modeNotice
		m.notice = widget.InvalidInputNotice
		m.noticeDetail = err.Error()
		m.formInputs = nil
		return m, nil
	}
	m.mode = modeNone
	m.formInputs = nil
	m.focusItem(id)
	m.status = "created " + title
	return m, nil
}

// startKeyboardDrag picks up the selected card and hovers its own lane.
func (m Model) startKeyboardDrag() (tea.Model, tea.Cmd) {
	card, ok := m.selectedCard()
	if !ok {
		m.status = "no project selected"
		return m, nil
	}
	m.beginDrag(card, false)
	m.hoverLane(m.selectedLane)
	m.status = "dragging " + card.Item().Title + " • h/l choose lane • enter drop • esc cancel"
	return m, nil
}

// dragSelectedBy runs a whole drag gesture from the selected card to the lane
// delta positions away.
func (m Model) dragSelectedBy(delta int) (tea.Model, tea.Cmd) {
	card, ok := m.selectedCard()
	if !ok {
		m.status = "no project selected"
		return m, nil
	}
	m.beginDrag(card, false)
	m.hoverLane(m.selectedLane + delta)
	return m.finishDrag()
}

// beginDrag starts a session on card.
func (m *Model) beginDrag(card *widget.ItemCard, byMouse bool) {
	m.drag = view.StartDrag(card.Element())
	m.dragFrom = card.Item().Lane
	m.dragByMouse = byMouse
	m.dragLane = m.laneIndex(card.Item().Lane)
	m.mode = modeDragging
	m.logger.Debug("drag started", "item_id", card.Item().ID, "mouse", byMouse)
}

// hoverLane moves a keyboard drag over the lane at idx.
func (m *Model) hoverLane(idx int) {
	if m.drag == nil {
		return
	}
	lanes := m.lanes()
	m.dragLane = clamp(idx, 0, len(lanes)-1)
	m.drag.Over(lanes[m.dragLane].Element())
}

// finishDrag drops the active drag on its current target.
func (m Model) finishDrag() (tea.Model, tea.Cmd) {
	if m.drag == nil {
		m.mode = modeNone
		return m, nil
	}
	id := m.drag.Transfer().GetData(dnd.MarkerTextPlain)
	dropped := m.drag.Drop()
	m.drag = nil
	m.mode = modeNone
	m.pressedID = ""

	lane, idx, ok := m.page.LaneOf(id)
	switch {
	case !dropped:
		m.status = "drop ignored"
	case ok && lane.Lane() != m.dragFrom:
		m.status = fmt.Sprintf("moved %s to %s", lane.Cards()[idx].Item().Title, lane.Lane())
	default:
		m.status = "no change"
	}
	if ok {
		m.focusItem(id)
	}
	m.clampSelection()
	return m, nil
}

// cancelDrag ends the active drag without a drop.
func (m *Model) cancelDrag() {
	if m.drag != nil {
		m.drag.Cancel()
	}
	m.drag = nil
	m.mode = modeNone
	m.pressedID = ""
}

// handleMouseClick selects the card under the pointer and arms a drag.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll || m.mode != modeNone || msg.Button != tea.MouseLeft {
		return m, nil
	}
	_, regions := m.renderBoard(m.boardTop(), defaultPalette())
	laneIdx, cardIdx := hitTest(regions, msg.X, msg.Y)
	if laneIdx < 0 {
		return m, nil
	}
	m.selectedLane = laneIdx
	if cardIdx >= 0 {
		m.selectedItem = cardIdx
		if card, ok := m.selectedCard(); ok {
			m.pressedID = card.Item().ID
		}
	}
	m.clampSelection()
	return m, nil
}

// handleMouseMotion starts or continues a mouse drag.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if m.pressedID == "" {
		return m, nil
	}
	if m.drag == nil {
		if m.mode != modeNone {
			return m, nil
		}
		lane, idx, ok := m.page.LaneOf(m.pressedID)
		if !ok {
			m.pressedID = ""
			return m, nil
		}
		card := lane.Cards()[idx]
		m.beginDrag(card, true)
		m.status = "dragging " + card.Item().Title
	}
	if !m.dragByMouse {
		return m, nil
	}
	m.drag.Over(m.nodeAt(msg.X, msg.Y))
	return m, nil
}

// handleMouseRelease drops a mouse drag where the pointer was released.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if m.drag == nil || !m.dragByMouse {
		m.pressedID = ""
		return m, nil
	}
	m.drag.Over(m.nodeAt(msg.X, msg.Y))
	return m.finishDrag()
}

// handleMouseWheel moves the selection inside the selected lane.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll || m.mode != modeNone {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.selectedItem--
	case tea.MouseWheelDown:
		m.selectedItem++
	}
	m.clampSelection()
	return m, nil
}

// openActivityLog shows the activity overlay and loads entries.
func (m *Model) openActivityLog() tea.Cmd {
	m.mode = modeActivityLog
	if m.activity == nil {
		return nil
	}
	return m.loadActivity
}

// loadActivity reads the newest ledger entries.
func (m Model) loadActivity() tea.Msg {
	events, err := m.activity.ListChangeEvents(context.Background(), activityLimit)
	return activityLoadedMsg{events: events, err: err}
}

// copyIDCmd copies id to the clipboard.
func (m Model) copyIDCmd(id string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		return copiedMsg{id: id, err: copyText(id)}
	}
}

// lanes returns the lane widgets in display order.
func (m Model) lanes() []*widget.LaneList {
	return m.page.Lanes()
}

// laneIndex returns the display index of lane.
func (m Model) laneIndex(lane domain.Lane) int {
	for idx, l := range m.lanes() {
		if l.Lane() == lane {
			return idx
		}
	}
	return 0
}

// selectedCard returns the card under the selection.
func (m Model) selectedCard() (*widget.ItemCard, bool) {
	lanes := m.lanes()
	cards := lanes[clamp(m.selectedLane, 0, len(lanes)-1)].Cards()
	if len(cards) == 0 {
		return nil, false
	}
	return cards[clamp(m.selectedItem, 0, len(cards)-1)], true
}

// focusItem selects the card showing id.
func (m *Model) focusItem(id string) {
	lane, idx, ok := m.page.LaneOf(id)
	if !ok {
		return
	}
	m.selectedLane = m.laneIndex(lane.Lane())
	m.selectedItem = idx
}

// clampSelection keeps the selection inside the current lanes.
func (m *Model) clampSelection() {
	lanes := m.lanes()
	m.selectedLane = clamp(m.selectedLane, 0, len(lanes)-1)
	cards := lanes[m.selectedLane].Cards()
	if len(cards) == 0 {
		m.selectedItem = 0
		return
	}
	m.selectedItem = clamp(m.selectedItem, 0, len(cards)-1)
}

// draggedID returns the id being dragged, or "".
func (m Model) draggedID() string {
	if m.drag == nil {
		return ""
	}
	return m.drag.Transfer().GetData(dnd.MarkerTextPlain)
}

// itemByID looks up an item among the rendered cards.
func (m Model) itemByID(id string) (domain.Item, bool) {
	lane, idx, ok := m.page.LaneOf(id)
	if !ok {
		return domain.Item{}, false
	}
	return lane.Cards()[idx].Item(), true
}

// modeLabel names the current mode for the header.
func (m Model) modeLabel() string {
	switch m.mode {
	case modeAddItem:
		return "new project"
	case modeNotice:
		return "notice"
	case modeItemInfo:
		return "info"
	case modeActivityLog:
		return "activity"
	case modeDragging:
		return "dragging"
	default:
		return "board"
	}
}

// render builds the full screen.
func (m Model) render() string {
	if !m.ready {
		return "loading..."
	}
	pal := defaultPalette()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(pal.dim)

	active, finished := len(m.page.Active.Cards()), len(m.page.Finished.Cards())
	header := titleStyle.Render("lanes") +
		statusStyle.Render(fmt.Sprintf("  [%s]  %d active • %d finished", m.modeLabel(), active, finished))
	body, _ := m.renderBoard(m.boardTop(), pal)

	sections := []string{header, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	var helpText string
	if m.mode == modeDragging {
		helpText = helpBubble.View(dragKeyMap{keys: m.keys})
	} else {
		helpText = helpBubble.View(m.keys)
	}
	helpLine := lipgloss.NewStyle().
		Foreground(pal.muted).
		BorderTop(true).
		BorderForeground(pal.dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpText)

	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	full := content + "\n" + helpLine

	overlay := m.renderModeOverlay(pal, m.width-8)
	if m.help.ShowAll {
		overlay = m.renderHelpOverlay(pal, m.width-8)
	}
	if overlay != "" {
		height := lipgloss.Height(full)
		if m.height > 0 {
			height = m.height
		}
		full = overlayOnContent(full, overlay, max(1, m.width), max(1, height))
	}
	return full
}

// renderModeOverlay renders the overlay for the current mode, if any.
func (m Model) renderModeOverlay(pal boardPalette, maxWidth int) string {
	width := clamp(maxWidth, 40, 80)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.accent)
	mutedStyle := lipgloss.NewStyle().Foreground(pal.muted)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.accent).
		Padding(0, 1).
		Width(width)

	switch m.mode {
	case modeAddItem:
		lines := []string{titleStyle.Render("New Project"), ""}
		for _, in := range m.formInputs {
			lines = append(lines, in.View())
		}
		lines = append(lines, "", mutedStyle.Render("tab next field • enter add • esc cancel"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeNotice:
		warn := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
		lines := []string{warn.Render(m.notice)}
		if m.noticeDetail != "" {
			lines = append(lines, mutedStyle.Render(m.noticeDetail))
		}
		lines = append(lines, "", mutedStyle.Render("press enter to edit the project"))
		return boxStyle.BorderForeground(lipgloss.Color("203")).Render(strings.Join(lines, "\n"))

	case modeItemInfo:
		item, ok := m.itemByID(m.infoItemID)
		if !ok {
			return boxStyle.Render(mutedStyle.Render("project no longer exists • esc close"))
		}
		lines := []string{
			titleStyle.Render(item.Title),
			mutedStyle.Render(fmt.Sprintf("lane: %s • %s", item.Lane, item.AssignedLabel())),
			mutedStyle.Render("id: " + item.ID),
			mutedStyle.Render("created: " + item.CreatedAt.Local().Format("2006-01-02 15:04")),
			"",
		}
		if desc := m.markdown.render(item.Description, width-4); desc != "" {
			lines = append(lines, desc, "")
		}
		lines = append(lines, mutedStyle.Render("y copy id • esc close"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeActivityLog:
		lines := []string{titleStyle.Render("Activity"), ""}
		switch {
		case m.activity == nil:
			lines = append(lines, mutedStyle.Render("activity log disabled"))
		case m.activityErr != nil:
			lines = append(lines, mutedStyle.Render("unavailable: "+m.activityErr.Error()))
		case len(m.activityLog) == 0:
			lines = append(lines, mutedStyle.Render("(no activity yet)"))
		default:
			for _, ev := range m.activityLog {
				stamp := ev.OccurredAt.Local().Format("15:04:05")
				lines = append(lines, mutedStyle.Render(stamp)+"  "+truncate(ev.Summary(), width-14))
			}
		}
		lines = append(lines, "", mutedStyle.Render("esc close"))
		return boxStyle.Render(strings.Join(lines, "\n"))
	}
	return ""
}

// renderHelpOverlay renders the full key reference.
func (m Model) renderHelpOverlay(pal boardPalette, maxWidth int) string {
	width := clamp(maxWidth, 56, 100)
	hb := m.help
	hb.ShowAll = true
	hb.SetWidth(width - 4)

	mutedStyle := lipgloss.NewStyle().Foreground(pal.muted)
	workflow := []string{
		lipgloss.NewStyle().Bold(true).Foreground(pal.accent).Render("Workflows"),
		"1. n new project  •  tab cycles fields  •  enter adds",
		"2. mouse: press a project, drag it over a lane, release to drop",
		"3. keyboard: space grabs  •  h/l choose lane  •  enter drops  •  esc cancels",
		"4. [ ] drag the selected project one lane over",
		"5. i/enter project info  •  y copy id  •  g activity log",
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(pal.accent).Render("Lanes Help"),
		"",
		hb.View(m.keys),
		"",
		mutedStyle.Render(strings.Join(workflow, "\n")),
		mutedStyle.Render("press ? or esc to close"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.dim).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// newModalInput constructs one form field.
func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// wrapIndex wraps idx into [0, total).
func wrapIndex(idx, total int) int {
	if total <= 0 {
		return 0
	}
	return ((idx % total) + total) % total
}

// clamp limits v to [minV, maxV].
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines pads or truncates content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay above base.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	overlayLayer := lipgloss.NewLayer(centered).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
