package schema

// Members captures the declaration order of an entity's attributes.
// Downstream schema rendering depends on source order, so the sequence
// is append-only while the entity is being declared and read-only once
// frozen. Declaring an already-known member again never reorders it.
type Members struct {
	names  []string
	index  map[string]int
	frozen bool
}

func newMembers() *Members {
	return &Members{index: make(map[string]int)}
}

// Declare appends a member name in declaration order. Re-declaring a
// known name keeps its original position. Returns ErrMembersFrozen
// after Freeze has been called.
func (m *Members) Declare(name string) error {
	if m.frozen {
		return ErrMembersFrozen
	}
	if _, ok := m.index[name]; ok {
		return nil
	}
	m.index[name] = len(m.names)
	m.names = append(m.names, name)
	return nil
}

// Freeze ends the declaration phase. Idempotent.
func (m *Members) Freeze() {
	m.frozen = true
}

// Frozen reports whether declaration has ended.
func (m *Members) Frozen() bool {
	return m.frozen
}

// Names returns the member names in declaration order. The returned
// slice is a copy; mutating it does not affect the captured order.
func (m *Members) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Has reports whether name was declared.
func (m *Members) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Len returns the number of declared members.
func (m *Members) Len() int {
	return len(m.names)
}
