package domain

import "strings"

// ScheduleCell is one day code for one person on one date. The natural key is
// (PersonKey, Date); the remote store holds at most one row per key. A blank
// code is never stored: it means the row is deleted.
type ScheduleCell struct {
	PersonKey string `json:"personKey"`
	Date      string `json:"date"` // ISO yyyy-mm-dd
	Code      string `json:"code"`
	Source    string `json:"source"`
	Note      string `json:"note"`
}

func (c ScheduleCell) Key() string {
	return CellKey(c.PersonKey, c.Date)
}

// CellKey builds the composite map key used throughout the grid. Purging by
// person relies on the "key|" prefix, so the separator must not appear in
// person keys.
func CellKey(personKey, date string) string {
	return personKey + "|" + date
}

func SplitCellKey(key string) (personKey, date string, ok bool) {
	personKey, date, ok = strings.Cut(key, "|")
	if !ok || personKey == "" || date == "" {
		return "", "", false
	}
	return personKey, date, true
}

// NormalizeCode upper-cases and trims a day code; blank in means blank out.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LegendCode is one entry of the day-code catalog.
type LegendCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// SaveResult reports how a transactional batch landed.
type SaveResult struct {
	Upserted int `json:"upserted"`
	Deleted  int `json:"deleted"`
}
