package grid

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/agendap83/rosterboard/internal/domain"
)

// RosterCache accumulates every person ever returned by a roster query.
// Narrower searches only shrink the current result list, never the cache, so
// a person already placed in the grid stays resolvable by key.
type RosterCache struct {
	gateway Gateway
	known   map[string]domain.Person
}

func NewRosterCache(gateway Gateway) *RosterCache {
	return &RosterCache{
		gateway: gateway,
		known:   make(map[string]domain.Person),
	}
}

// Query runs a filtered roster read and merges the result into the cache,
// last write wins per key. A failed read leaves the cache untouched.
func (rc *RosterCache) Query(ctx context.Context, filter string) ([]domain.Person, error) {
	persons, err := rc.gateway.ListPersons(ctx, filter)
	if err != nil {
		return nil, &ReadError{Op: "list persons", Err: err}
	}

	for _, p := range persons {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			continue
		}
		p.Key = key
		rc.known[key] = p
	}

	return persons, nil
}

func (rc *RosterCache) Lookup(key string) (domain.Person, bool) {
	p, ok := rc.known[key]
	return p, ok
}

func (rc *RosterCache) AllKnown() []domain.Person {
	out := make([]domain.Person, 0, len(rc.known))
	for _, p := range rc.known {
		out = append(out, p)
	}
	return out
}

// Filter narrows a person list by a free-text term: accent-insensitive,
// case-insensitive, every whitespace/comma token must match somewhere in
// name, key, employee number or role.
func Filter(list []domain.Person, term string) []domain.Person {
	tokens := strings.FieldsFunc(foldText(term), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return list
	}

	out := make([]domain.Person, 0, len(list))
	for _, p := range list {
		hay := foldText(p.Name + " " + p.Key + " " + p.EmployeeNo + " " + p.Role)
		match := true
		for _, tok := range tokens {
			if !strings.Contains(hay, tok) {
				match = false
				break
			}
		}
		if match {
			out = append(out, p)
		}
	}
	return out
}

// foldText strips diacritics and upper-cases, so "JOÃO" and "joao" compare
// equal.
func foldText(s string) string {
	decomposed := norm.NFD.String(s)
	b := strings.Builder{}
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return strings.TrimSpace(b.String())
}
