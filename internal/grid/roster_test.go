package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendap83/rosterboard/internal/domain"
)

func TestRosterCacheAccumulatesAcrossQueries(t *testing.T) {
	gw := newFakeGateway()
	gw.persons = []domain.Person{
		{Key: "FRCF", Name: "Francisco Cunha Filho", Role: "SUEIN", Active: true},
		{Key: "MSLV", Name: "Marcos Silva", Role: "SUMEC", Active: true},
	}

	rc := NewRosterCache(gw)

	all, err := rc.Query(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// a narrower search shrinks the result list, not the cache
	narrow, err := rc.Query(context.Background(), "silva")
	require.NoError(t, err)
	require.Len(t, narrow, 1)
	assert.Equal(t, "MSLV", narrow[0].Key)

	p, ok := rc.Lookup("FRCF")
	assert.True(t, ok)
	assert.Equal(t, "Francisco Cunha Filho", p.Name)
	assert.Len(t, rc.AllKnown(), 2)
}

func TestRosterCacheFailedReadLeavesCacheUntouched(t *testing.T) {
	gw := newFakeGateway()
	gw.persons = []domain.Person{{Key: "FRCF", Name: "Francisco Cunha Filho"}}

	rc := NewRosterCache(gw)
	_, err := rc.Query(context.Background(), "")
	require.NoError(t, err)

	gw.personsErr = errors.New("boom")
	_, err = rc.Query(context.Background(), "")

	readErr := &ReadError{}
	require.ErrorAs(t, err, &readErr)

	_, ok := rc.Lookup("FRCF")
	assert.True(t, ok)
}

func TestRosterCacheLastWriteWinsPerKey(t *testing.T) {
	gw := newFakeGateway()
	gw.persons = []domain.Person{{Key: "FRCF", Name: "Francisco Cunha Filho", Role: "SUEIN"}}

	rc := NewRosterCache(gw)
	_, err := rc.Query(context.Background(), "")
	require.NoError(t, err)

	gw.persons = []domain.Person{{Key: "FRCF", Name: "Francisco Cunha Filho", Role: "COEMB"}}
	_, err = rc.Query(context.Background(), "")
	require.NoError(t, err)

	p, ok := rc.Lookup("FRCF")
	require.True(t, ok)
	assert.Equal(t, "COEMB", p.Role)
}

func TestFilterIsAccentAndCaseInsensitive(t *testing.T) {
	list := []domain.Person{
		{Key: "JPCV", Name: "João Pedro Cavalcanti", EmployeeNo: "103789", Role: "TLT"},
		{Key: "MSLV", Name: "Marcos Silva", EmployeeNo: "102004", Role: "SUMEC"},
		{Key: "FGLM", Name: "Fabiana Guimarães", EmployeeNo: "103391", Role: "TME"},
	}

	assert.Len(t, Filter(list, ""), 3)

	out := Filter(list, "joao")
	require.Len(t, out, 1)
	assert.Equal(t, "JPCV", out[0].Key)

	out = Filter(list, "GUIMARAES")
	require.Len(t, out, 1)
	assert.Equal(t, "FGLM", out[0].Key)
}

func TestFilterRequiresEveryToken(t *testing.T) {
	list := []domain.Person{
		{Key: "MSLV", Name: "Marcos Silva", Role: "SUMEC"},
		{Key: "ILMA", Name: "Ivana Lima", Role: "TO_E"},
	}

	out := Filter(list, "silva sumec")
	require.Len(t, out, 1)
	assert.Equal(t, "MSLV", out[0].Key)

	// tokens may match different fields, commas split like whitespace
	out = Filter(list, "lima,to_e")
	require.Len(t, out, 1)
	assert.Equal(t, "ILMA", out[0].Key)

	assert.Empty(t, Filter(list, "silva to_e"))
}
