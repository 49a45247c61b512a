package board

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendap83/rosterboard/internal/domain"
	"github.com/agendap83/rosterboard/internal/grid"
)

type stubGateway struct {
	persons []domain.Person
	legend  []domain.LegendCode
	cells   []domain.ScheduleCell
}

func (g *stubGateway) ListPersons(context.Context, string) ([]domain.Person, error) {
	return g.persons, nil
}

func (g *stubGateway) ListCalendarDays(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (g *stubGateway) ListLegendCodes(context.Context) ([]domain.LegendCode, error) {
	return g.legend, nil
}

func (g *stubGateway) ListScheduleCells(_ context.Context, personKeys []string, from, to string) ([]domain.ScheduleCell, error) {
	wanted := make(map[string]struct{}, len(personKeys))
	for _, k := range personKeys {
		wanted[k] = struct{}{}
	}
	var out []domain.ScheduleCell
	for _, c := range g.cells {
		if _, ok := wanted[c.PersonKey]; ok && c.Date >= from && c.Date <= to {
			out = append(out, c)
		}
	}
	return out, nil
}

func (g *stubGateway) SaveScheduleCells(_ context.Context, items []domain.ScheduleCell) (domain.SaveResult, error) {
	return domain.SaveResult{Upserted: len(items)}, nil
}

func (g *stubGateway) DeleteScheduleCell(context.Context, string, string) (int, error) {
	return 0, nil
}

func newTestApp() *App {
	gw := &stubGateway{
		persons: []domain.Person{
			{Key: "P1", Name: "Ana Paula Rocha", Role: "SUMEC", Active: true},
			{Key: "P2", Name: "Bruno Teles", Role: "TMA", Active: true},
		},
		legend: []domain.LegendCode{
			{Code: "EM", Description: "Embarcado", Active: true},
		},
		cells: []domain.ScheduleCell{
			{PersonKey: "P1", Date: "2025-01-06", Code: "EM", Source: "ESCALA"},
		},
	}
	session := grid.NewSession(gw, nil, "ESCALA")
	return NewApp(session, "2025-01-06", "2025-01-10")
}

// step runs one command synchronously and feeds its message back into Update,
// the way the event loop would.
func step(t *testing.T, a *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := a.Update(cmd())
	return next
}

func boot(t *testing.T, a *App) {
	t.Helper()
	next := step(t, a, a.Init())         // range load chains the legend load
	assert.True(t, a.busy, "boot owns the session until the legend settles")
	next = step(t, a, next)
	assert.Nil(t, next)
	assert.False(t, a.busy)
}

func TestAppBootLoadsRangeThenLegend(t *testing.T) {
	a := newTestApp()
	boot(t, a)

	assert.Empty(t, a.errMsg)
	assert.Len(t, a.snap.calendar, 5)
	assert.Len(t, a.snap.legend, 1)
	assert.Contains(t, a.View(), "2025-01-06 .. 2025-01-10")
}

func TestAppViewRendersOnlySettledState(t *testing.T) {
	a := newTestApp()
	boot(t, a)

	next := step(t, a, a.searchCmd(""))
	assert.Nil(t, next)
	next = step(t, a, a.toggleCmd("P1"))
	assert.Nil(t, next)

	out := a.View()
	assert.Contains(t, out, "Ana Paula Rocha")
	assert.Contains(t, out, "EM")

	// a mutation that has not settled yet must not show up: View reads the
	// snapshot, never the live session
	a.session.Cells.Put(domain.ScheduleCell{PersonKey: "P1", Date: "2025-01-07", Code: "XX"})
	assert.NotContains(t, a.View(), "XX")

	_, _ = a.Update(settledMsg{})
	assert.Contains(t, a.View(), "XX")
}

func TestAppBusyDropsSessionKeys(t *testing.T) {
	a := newTestApp()
	boot(t, a)

	next := step(t, a, a.searchCmd(""))
	assert.Nil(t, next)
	require.Len(t, a.persons, 2)

	a.busy = true
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd, "session keys wait for the running operation")

	a.busy = false
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	step(t, a, cmd)
	assert.Len(t, a.snap.rows, 1)
	assert.Contains(t, a.View(), "Ana Paula Rocha")
}
