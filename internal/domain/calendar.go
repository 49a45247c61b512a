package domain

import "time"

const isoDay = "2006-01-02"

// maxRangeDays caps calendar enumeration so a typo in the date inputs cannot
// blow the grid up (the UI asks for a few weeks at a time).
const maxRangeDays = 800

// DateRange is an inclusive pair of ISO dates. Degenerate ranges (start after
// end, unparsable bounds) enumerate to nothing.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(isoDay, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func IsISODate(s string) bool {
	_, ok := ParseISODate(s)
	return ok
}

// Days enumerates every date of the range in order.
func (r DateRange) Days() []string {
	from, okFrom := ParseISODate(r.From)
	to, okTo := ParseISODate(r.To)
	if !okFrom || !okTo || from.After(to) {
		return nil
	}

	out := make([]string, 0)
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		out = append(out, cur.Format(isoDay))
		if len(out) >= maxRangeDays {
			break
		}
	}
	return out
}

func (r DateRange) IsEmpty() bool {
	return len(r.Days()) == 0
}

// Normalized swaps reversed bounds instead of rejecting them.
func (r DateRange) Normalized() DateRange {
	from, okFrom := ParseISODate(r.From)
	to, okTo := ParseISODate(r.To)
	if okFrom && okTo && from.After(to) {
		return DateRange{From: r.To, To: r.From}
	}
	return r
}

// IsBusinessDay reports whether the ISO date falls on Monday..Friday.
func IsBusinessDay(date string) bool {
	t, ok := ParseISODate(date)
	if !ok {
		return false
	}
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NormalizeCalendar keeps the grid usable when the remote calendar read comes
// back empty or partial: any well-formed remote days win, otherwise the range
// itself is enumerated locally.
func NormalizeCalendar(remote []string, r DateRange) []string {
	filtered := make([]string, 0, len(remote))
	seen := make(map[string]struct{}, len(remote))
	for _, d := range remote {
		if !IsISODate(d) {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		filtered = append(filtered, d)
	}
	if len(filtered) > 0 {
		return filtered
	}
	return r.Days()
}
