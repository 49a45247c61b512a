package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeDays(t *testing.T) {
	days := DateRange{From: "2025-01-05", To: "2025-01-07"}.Days()
	assert.Equal(t, []string{"2025-01-05", "2025-01-06", "2025-01-07"}, days)

	assert.Equal(t, []string{"2025-01-05"}, DateRange{From: "2025-01-05", To: "2025-01-05"}.Days())

	// degenerate ranges enumerate to nothing
	assert.Nil(t, DateRange{From: "2025-01-07", To: "2025-01-05"}.Days())
	assert.Nil(t, DateRange{From: "05/01/2025", To: "2025-01-07"}.Days())
	assert.Nil(t, DateRange{}.Days())
}

func TestDateRangeDaysIsCapped(t *testing.T) {
	days := DateRange{From: "2020-01-01", To: "2025-01-01"}.Days()
	assert.Len(t, days, 800)
}

func TestDateRangeNormalizedSwapsReversedBounds(t *testing.T) {
	r := DateRange{From: "2025-02-10", To: "2025-02-05"}.Normalized()
	assert.Equal(t, DateRange{From: "2025-02-05", To: "2025-02-10"}, r)

	// already ordered and unparsable ranges come back unchanged
	r = DateRange{From: "2025-02-05", To: "2025-02-10"}
	assert.Equal(t, r, r.Normalized())
	r = DateRange{From: "garbage", To: "2025-02-10"}
	assert.Equal(t, r, r.Normalized())
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay("2025-01-06"))  // Monday
	assert.True(t, IsBusinessDay("2025-01-10"))  // Friday
	assert.False(t, IsBusinessDay("2025-01-04")) // Saturday
	assert.False(t, IsBusinessDay("2025-01-05")) // Sunday
	assert.False(t, IsBusinessDay("not a date"))
}

func TestNormalizeCalendarPrefersRemoteDays(t *testing.T) {
	rng := DateRange{From: "2025-01-06", To: "2025-01-08"}

	// malformed and duplicate entries are dropped, order is kept
	remote := []string{"2025-01-06", "garbage", "2025-01-08", "2025-01-06"}
	assert.Equal(t, []string{"2025-01-06", "2025-01-08"}, NormalizeCalendar(remote, rng))
}

func TestNormalizeCalendarFallsBackToRange(t *testing.T) {
	rng := DateRange{From: "2025-01-06", To: "2025-01-08"}

	want := []string{"2025-01-06", "2025-01-07", "2025-01-08"}
	assert.Equal(t, want, NormalizeCalendar(nil, rng))
	assert.Equal(t, want, NormalizeCalendar([]string{"junk", "also junk"}, rng))
}

func TestCellKeyRoundTrip(t *testing.T) {
	key := CellKey("FRCF", "2025-01-06")
	assert.Equal(t, "FRCF|2025-01-06", key)

	pk, date, ok := SplitCellKey(key)
	require.True(t, ok)
	assert.Equal(t, "FRCF", pk)
	assert.Equal(t, "2025-01-06", date)

	_, _, ok = SplitCellKey("no separator")
	assert.False(t, ok)
	_, _, ok = SplitCellKey("|2025-01-06")
	assert.False(t, ok)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "EM", NormalizeCode(" em "))
	assert.Equal(t, "", NormalizeCode("   "))
}
