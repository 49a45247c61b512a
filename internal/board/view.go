package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agendap83/rosterboard/internal/domain"
	"github.com/agendap83/rosterboard/internal/grid"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("#5B8DEF"))

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CCCCCC"))

	weekendCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	selectedCellStyle = lipgloss.NewStyle().
				Reverse(true)

	cursorCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7B801")).
			Reverse(true)

	inGridMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

const (
	cellWidth    = 4
	nameColWidth = 22
)

func (a *App) View() string {
	header := titleStyle.Render("ROSTERBOARD") + dimStyle.Render(
		fmt.Sprintf("  %s .. %s", a.rangeFrom, a.rangeTo))

	sidebar := a.renderSidebar()
	gridPane := a.renderGrid()

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", gridPane)

	sections := []string{header, main}
	if a.focus == focusEditor {
		sections = append(sections, a.renderEditor())
	}
	sections = append(sections, a.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderSidebar() string {
	var b strings.Builder
	b.WriteString(a.search.View())
	b.WriteString("\n\n")

	maxRows := a.sidebarHeight()
	for i, p := range a.persons {
		if i >= maxRows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(a.persons)-maxRows)))
			break
		}
		mark := "  "
		if _, ok := a.snap.inGrid[p.Key]; ok {
			mark = inGridMarkStyle.Render("● ")
		}
		line := fmt.Sprintf("%s%-6s %s", mark, p.Key, truncate(p.Name, nameColWidth))
		if i == a.sideIdx && a.focus == focusSidebar {
			line = cursorCellStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	style := panelStyle
	if a.focus == focusSidebar {
		style = focusedPanelStyle
	}
	return style.Width(nameColWidth + 12).Render(b.String())
}

func (a *App) renderGrid() string {
	calendar := a.snap.calendar
	var b strings.Builder

	// header: MM-DD per day, weekends dimmed
	b.WriteString(strings.Repeat(" ", nameColWidth))
	for _, day := range calendar {
		label := day
		if len(day) == 10 {
			label = day[5:]
		}
		cell := fmt.Sprintf("%-*s", cellWidth+1, label)
		if !isBusinessDayLabel(day) {
			cell = weekendCellStyle.Render(cell)
		} else {
			cell = headerCellStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("\n")

	for rowIdx, row := range a.snap.rows {
		b.WriteString(fmt.Sprintf("%-*s", nameColWidth, truncate(row.name, nameColWidth-1)))

		for colIdx, day := range calendar {
			code := "·"
			if c, ok := a.snap.cells[domain.CellKey(row.key, day)]; ok {
				code = c.Code
			}
			text := fmt.Sprintf("%-*s", cellWidth, truncate(code, cellWidth-1))

			cell := grid.Cell{PersonKey: row.key, Date: day}
			_, cellSelected := a.snap.selected[cell]
			switch {
			case a.focus == focusGrid && rowIdx == a.cursorRow && colIdx == a.cursorCol:
				text = cursorCellStyle.Render(text)
			case cellSelected:
				text = selectedCellStyle.Render(text)
			case !isBusinessDayLabel(day):
				text = weekendCellStyle.Render(text)
			}
			b.WriteString(text)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if len(a.snap.rows) == 0 {
		b.WriteString(dimStyle.Render("no rows in grid; search the sidebar and press ctrl+s to add"))
		b.WriteString("\n")
	}

	if sort := a.snap.sort; sort.Active() {
		dir := "asc"
		if sort.Direction == grid.SortDesc {
			dir = "desc"
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("sorted by %s (%s); drag with [ ] to keep", sort.Column, dir)))
		b.WriteString("\n")
	}

	style := panelStyle
	if a.focus == focusGrid {
		style = focusedPanelStyle
	}
	return style.Render(b.String())
}

func (a *App) renderEditor() string {
	biz := "off"
	if a.bizOnly {
		biz = "on"
	}
	line := fmt.Sprintf("%s  %s  %s  %s  business days only: %s",
		a.inputs[fieldCode].View(),
		a.inputs[fieldNote].View(),
		a.inputs[fieldFrom].View(),
		a.inputs[fieldTo].View(),
		biz,
	)
	hint := dimStyle.Render("tab next field · ctrl+b business days · enter apply · esc cancel · empty code clears cells")

	codes := make([]string, 0, len(a.snap.legend))
	for _, lc := range a.snap.legend {
		if lc.Active {
			codes = append(codes, lc.Code)
		}
	}
	legendLine := dimStyle.Render("codes: " + strings.Join(codes, " "))

	return focusedPanelStyle.Render(line + "\n" + legendLine + "\n" + hint)
}

func (a *App) renderFooter() string {
	var parts []string
	if a.errMsg != "" {
		parts = append(parts, errStyle.Render(a.errMsg))
	} else if a.status != "" {
		parts = append(parts, a.status)
	}
	if a.busy {
		parts = append(parts, dimStyle.Render("working..."))
	}

	var keys string
	switch a.focus {
	case focusSidebar:
		keys = "enter search · ctrl+s toggle row · ctrl+a add all · tab grid · q quit"
	case focusGrid:
		keys = "arrows move · enter select · v toggle · V range · e edit · c clear cells · 1-4 sort · [ ] drag · x remove row · X clear grid · < > range · ctrl+r reset · tab sidebar · q quit"
	default:
		keys = ""
	}
	if keys != "" {
		parts = append(parts, dimStyle.Render(keys))
	}
	return strings.Join(parts, "\n")
}

func (a *App) sidebarHeight() int {
	if a.height <= 0 {
		return 20
	}
	h := a.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func isBusinessDayLabel(day string) bool {
	return domain.IsBusinessDay(day)
}
