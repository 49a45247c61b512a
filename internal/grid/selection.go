package grid

// SelectionChange carries the snapshots around one SelectionSet mutation so
// observers can compute the symmetric difference instead of re-reading the
// whole set.
type SelectionChange struct {
	Previous map[string]struct{}
	Next     map[string]struct{}
}

// Added returns next − previous.
func (c SelectionChange) Added() []string {
	out := make([]string, 0)
	for k := range c.Next {
		if _, ok := c.Previous[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Removed returns previous − next.
func (c SelectionChange) Removed() []string {
	out := make([]string, 0)
	for k := range c.Previous {
		if _, ok := c.Next[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// SelectionSet is the set of person keys currently in the grid. It is
// distinct from the sidebar filter: filtering changes what is visible to
// pick from, not who is in the grid.
type SelectionSet struct {
	keys     map[string]struct{}
	onChange func(SelectionChange)
}

func NewSelectionSet(onChange func(SelectionChange)) *SelectionSet {
	return &SelectionSet{
		keys:     make(map[string]struct{}),
		onChange: onChange,
	}
}

func (s *SelectionSet) Add(key string) {
	s.mutate(func() {
		s.keys[key] = struct{}{}
	})
}

func (s *SelectionSet) Remove(key string) {
	s.mutate(func() {
		delete(s.keys, key)
	})
}

func (s *SelectionSet) Toggle(key string) {
	s.mutate(func() {
		if _, ok := s.keys[key]; ok {
			delete(s.keys, key)
		} else {
			s.keys[key] = struct{}{}
		}
	})
}

func (s *SelectionSet) AddAll(keys []string) {
	s.mutate(func() {
		for _, k := range keys {
			s.keys[k] = struct{}{}
		}
	})
}

func (s *SelectionSet) Clear() {
	s.mutate(func() {
		s.keys = make(map[string]struct{})
	})
}

func (s *SelectionSet) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *SelectionSet) Len() int {
	return len(s.keys)
}

func (s *SelectionSet) Snapshot() map[string]struct{} {
	out := make(map[string]struct{}, len(s.keys))
	for k := range s.keys {
		out[k] = struct{}{}
	}
	return out
}

func (s *SelectionSet) mutate(apply func()) {
	prev := s.Snapshot()
	apply()
	next := s.Snapshot()
	if s.onChange != nil {
		s.onChange(SelectionChange{Previous: prev, Next: next})
	}
}
