// Package board is the terminal grid client. It drives a grid.Session over
// the HTTP gateway: roster search in the sidebar, the schedule grid on the
// right, and a small editor pane for batch code entry.
//
// Session operations run in command goroutines, one at a time behind the busy
// flag. View never reads the live session: every settled operation rebuilds a
// render snapshot on the event loop, so a render during an in-flight command
// cannot race the session's state.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agendap83/rosterboard/internal/domain"
	"github.com/agendap83/rosterboard/internal/grid"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusGrid
	focusEditor
)

// editor input slots, cycled with tab
const (
	fieldCode = iota
	fieldNote
	fieldFrom
	fieldTo
	fieldCount
)

const opTimeout = 15 * time.Second

type rosterMsg struct {
	persons []domain.Person
	err     error
}

type settledMsg struct {
	err error
}

type rangeMsg struct {
	err error
}

type legendMsg struct {
	err error
}

type savedMsg struct {
	result domain.SaveResult
	err    error
}

type rowView struct {
	key  string
	name string
}

// viewSnapshot is everything View needs, copied out of the session on the
// event loop while no command is in flight.
type viewSnapshot struct {
	rows     []rowView
	calendar []string
	cells    map[string]domain.ScheduleCell
	selected map[grid.Cell]struct{}
	inGrid   map[string]struct{}
	sort     grid.SortSpec
	legend   []domain.LegendCode
}

func emptySnapshot() viewSnapshot {
	return viewSnapshot{
		cells:    make(map[string]domain.ScheduleCell),
		selected: make(map[grid.Cell]struct{}),
		inGrid:   make(map[string]struct{}),
	}
}

type App struct {
	session *grid.Session

	search  textinput.Model
	persons []domain.Person
	sideIdx int

	snap      viewSnapshot
	cursorRow int
	cursorCol int

	inputs    [fieldCount]textinput.Model
	editField int
	bizOnly   bool

	rangeFrom string
	rangeTo   string

	focus  focusArea
	booted bool
	busy   bool
	status string
	errMsg string
	width  int
	height int
}

func NewApp(session *grid.Session, from, to string) *App {
	search := textinput.New()
	search.Placeholder = "search roster"
	search.CharLimit = 64
	search.Width = 24
	search.Focus()

	a := &App{
		session:   session,
		search:    search,
		snap:      emptySnapshot(),
		rangeFrom: from,
		rangeTo:   to,
		focus:     focusSidebar,
		busy:      true, // boot commands own the session until they settle
		status:    "loading...",
	}

	labels := [fieldCount]string{"code", "note", "from (optional)", "to (optional)"}
	for i := range a.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 64
		in.Width = 20
		a.inputs[i] = in
	}
	return a
}

// Init loads the range first and chains the legend load from its result, so
// the two boot commands never touch the session concurrently.
func (a *App) Init() tea.Cmd {
	return a.setRangeCmd(a.rangeFrom, a.rangeTo)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case rosterMsg:
		a.busy = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.persons = msg.persons
		if a.sideIdx >= len(a.persons) {
			a.sideIdx = 0
		}
		a.status = fmt.Sprintf("%d person(s)", len(a.persons))
		a.refreshSnapshot()
		return a, nil

	case settledMsg:
		a.busy = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		} else {
			a.errMsg = ""
		}
		a.refreshSnapshot()
		return a, nil

	case rangeMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		} else {
			a.errMsg = ""
			a.status = fmt.Sprintf("range %s .. %s", a.rangeFrom, a.rangeTo)
		}
		a.refreshSnapshot()
		if !a.booted {
			a.booted = true
			return a, a.loadLegendCmd()
		}
		a.busy = false
		return a, nil

	case legendMsg:
		a.busy = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		}
		a.refreshSnapshot()
		return a, nil

	case savedMsg:
		a.busy = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.status = fmt.Sprintf("saved: %d upserted, %d deleted", msg.result.Upserted, msg.result.Deleted)
		a.closeEditor()
		a.refreshSnapshot()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.focus == focusEditor {
		return a.handleEditorKey(msg)
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		if a.focus == focusSidebar {
			a.focus = focusGrid
			a.search.Blur()
		} else {
			a.focus = focusSidebar
			a.search.Focus()
		}
		return a, nil
	}

	if a.busy {
		// one session operation at a time; drop keys until it settles
		return a, nil
	}

	if a.focus == focusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleGridKey(msg)
}

func (a *App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.busy = true
		a.status = "searching..."
		return a, a.searchCmd(a.search.Value())
	case "up":
		if a.sideIdx > 0 {
			a.sideIdx--
		}
		return a, nil
	case "down":
		if a.sideIdx < len(a.persons)-1 {
			a.sideIdx++
		}
		return a, nil
	case "ctrl+s":
		if a.sideIdx < len(a.persons) {
			a.busy = true
			return a, a.toggleCmd(a.persons[a.sideIdx].Key)
		}
		return a, nil
	case "ctrl+a":
		keys := make([]string, 0, len(a.persons))
		for _, p := range a.persons {
			keys = append(keys, p.Key)
		}
		a.busy = true
		return a, a.addAllCmd(keys)
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.cursorRow > 0 {
			a.cursorRow--
		}
	case "down", "j":
		if a.cursorRow < len(a.snap.rows)-1 {
			a.cursorRow++
		}
	case "left", "h":
		if a.cursorCol > 0 {
			a.cursorCol--
		}
	case "right", "l":
		if a.cursorCol < len(a.snap.calendar)-1 {
			a.cursorCol++
		}

	case "enter":
		if cell, ok := a.cursorCell(); ok {
			edit := a.session.ClickCell(cell, grid.Modifiers{})
			a.refreshSnapshot()
			if edit {
				a.openEditor()
			}
		}
	case "v":
		if cell, ok := a.cursorCell(); ok {
			a.session.ClickCell(cell, grid.Modifiers{CtrlOrMeta: true})
			a.refreshSnapshot()
		}
	case "V":
		if cell, ok := a.cursorCell(); ok {
			a.session.ClickCell(cell, grid.Modifiers{Shift: true})
			a.refreshSnapshot()
		}
	case "e":
		if len(a.snap.selected) > 0 {
			a.openEditor()
		}
	case "c":
		a.session.CellSel.Clear()
		a.refreshSnapshot()

	case "1", "2", "3", "4":
		columns := map[string]string{
			"1": grid.ColumnName,
			"2": grid.ColumnKey,
			"3": grid.ColumnEmployeeNo,
			"4": grid.ColumnRole,
		}
		a.session.Order.ApplySort(columns[msg.String()], a.session.Selection.Snapshot())
		a.refreshSnapshot()

	case "[":
		if a.cursorRow > 0 && a.cursorRow < len(a.snap.rows) {
			a.session.Order.DragReorder(a.snap.rows[a.cursorRow].key, a.snap.rows[a.cursorRow-1].key, a.session.Selection.Snapshot())
			a.cursorRow--
			a.refreshSnapshot()
		}
	case "]":
		if a.cursorRow < len(a.snap.rows)-1 {
			a.session.Order.DragReorder(a.snap.rows[a.cursorRow].key, a.snap.rows[a.cursorRow+1].key, a.session.Selection.Snapshot())
			a.cursorRow++
			a.refreshSnapshot()
		}

	case "x":
		if a.cursorRow < len(a.snap.rows) {
			a.busy = true
			return a, a.removeCmd(a.snap.rows[a.cursorRow].key)
		}
	case "X":
		a.busy = true
		return a, a.clearGridCmd()
	case "ctrl+r":
		a.busy = true
		return a, a.resetCmd()

	case "<":
		return a, a.shiftRange(-7)
	case ">":
		return a, a.shiftRange(7)
	}

	return a, nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeEditor()
		return a, nil
	case "tab":
		a.inputs[a.editField].Blur()
		a.editField = (a.editField + 1) % fieldCount
		a.inputs[a.editField].Focus()
		return a, nil
	case "ctrl+b":
		a.bizOnly = !a.bizOnly
		return a, nil
	case "enter":
		if a.busy {
			return a, nil
		}
		code := a.inputs[fieldCode].Value()
		note := a.inputs[fieldNote].Value()
		var period *grid.Period
		from := strings.TrimSpace(a.inputs[fieldFrom].Value())
		to := strings.TrimSpace(a.inputs[fieldTo].Value())
		if from != "" && to != "" {
			period = &grid.Period{From: from, To: to, BusinessDaysOnly: a.bizOnly}
		}
		a.busy = true
		a.status = "saving..."
		return a, a.applyCmd(code, note, period)
	}

	var cmd tea.Cmd
	a.inputs[a.editField], cmd = a.inputs[a.editField].Update(msg)
	return a, cmd
}

func (a *App) openEditor() {
	a.focus = focusEditor
	a.editField = fieldCode
	a.bizOnly = false
	for i := range a.inputs {
		a.inputs[i].SetValue("")
		a.inputs[i].Blur()
	}
	// pre-fill the code of the cell under the cursor, matching what a user
	// editing a single cell expects
	if cell, ok := a.cursorCell(); ok {
		if c, found := a.snap.cells[domain.CellKey(cell.PersonKey, cell.Date)]; found {
			a.inputs[fieldCode].SetValue(c.Code)
			a.inputs[fieldNote].SetValue(c.Note)
		}
	}
	a.inputs[fieldCode].Focus()
}

func (a *App) closeEditor() {
	a.focus = focusGrid
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
}

func (a *App) cursorCell() (grid.Cell, bool) {
	if a.cursorRow >= len(a.snap.rows) || a.cursorCol >= len(a.snap.calendar) {
		return grid.Cell{}, false
	}
	return grid.Cell{PersonKey: a.snap.rows[a.cursorRow].key, Date: a.snap.calendar[a.cursorCol]}, true
}

// refreshSnapshot copies the render state out of the session. It only runs on
// the event loop while no command goroutine is active.
func (a *App) refreshSnapshot() {
	snap := emptySnapshot()
	snap.calendar = append([]string(nil), a.session.Calendar()...)
	snap.legend = append([]domain.LegendCode(nil), a.session.Legend()...)
	snap.inGrid = a.session.Selection.Snapshot()
	snap.sort = a.session.Order.Sort()

	for _, key := range a.session.RenderOrder() {
		name := key
		if p, ok := a.session.Roster.Lookup(key); ok {
			name = p.Name
		}
		snap.rows = append(snap.rows, rowView{key: key, name: name})
		for _, day := range snap.calendar {
			if c, ok := a.session.Cells.Get(key, day); ok {
				snap.cells[c.Key()] = c
			}
		}
	}

	for _, c := range a.session.CellSel.Selected() {
		snap.selected[c] = struct{}{}
	}

	a.snap = snap
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.cursorRow >= len(a.snap.rows) && len(a.snap.rows) > 0 {
		a.cursorRow = len(a.snap.rows) - 1
	}
	if len(a.snap.rows) == 0 {
		a.cursorRow = 0
	}
	if a.cursorCol >= len(a.snap.calendar) && len(a.snap.calendar) > 0 {
		a.cursorCol = len(a.snap.calendar) - 1
	}
	if len(a.snap.calendar) == 0 {
		a.cursorCol = 0
	}
}

func (a *App) shiftRange(days int) tea.Cmd {
	from, err := time.Parse("2006-01-02", a.rangeFrom)
	if err != nil {
		return nil
	}
	to, err := time.Parse("2006-01-02", a.rangeTo)
	if err != nil {
		return nil
	}
	a.rangeFrom = from.AddDate(0, 0, days).Format("2006-01-02")
	a.rangeTo = to.AddDate(0, 0, days).Format("2006-01-02")
	a.busy = true
	a.status = "moving range..."
	return a.setRangeCmd(a.rangeFrom, a.rangeTo)
}

/**********************************************
 * commands
 **********************************************/

func (a *App) searchCmd(term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		persons, err := a.session.SearchRoster(ctx, term)
		return rosterMsg{persons: persons, err: err}
	}
}

func (a *App) toggleCmd(key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return settledMsg{err: a.session.ToggleSelect(ctx, key)}
	}
}

func (a *App) addAllCmd(keys []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return settledMsg{err: a.session.AddAllToSelection(ctx, keys)}
	}
}

func (a *App) removeCmd(key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return settledMsg{err: a.session.RemoveFromGrid(ctx, key)}
	}
}

func (a *App) clearGridCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return settledMsg{err: a.session.ClearSelection(ctx)}
	}
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return settledMsg{err: a.session.Reset(ctx)}
	}
}

func (a *App) setRangeCmd(from, to string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return rangeMsg{err: a.session.SetRange(ctx, from, to)}
	}
}

func (a *App) loadLegendCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return legendMsg{err: a.session.LoadLegend(ctx)}
	}
}

func (a *App) applyCmd(code, note string, period *grid.Period) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		result, err := a.session.ApplyCode(ctx, code, note, period)
		return savedMsg{result: result, err: err}
	}
}
