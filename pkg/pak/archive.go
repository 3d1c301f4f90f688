package pak

// Archive is an ordered, case-insensitively keyed collection of entries.
type Archive struct {
	Path string

	order   []string
	entries map[string]*Entry
}

// NewArchive returns an empty archive that will be written to path.
func NewArchive(path string) *Archive {
	return &Archive{Path: path, entries: make(map[string]*Entry)}
}

// Put adds e, replacing any entry whose path differs only in case.
func (a *Archive) Put(e *Entry) {
	k := Key(e.Path)
	if _, ok := a.entries[k]; !ok {
		a.order = append(a.order, k)
	}
	a.entries[k] = e
}

// Get returns the entry stored under name, compared case-insensitively.
func (a *Archive) Get(name string) (*Entry, bool) {
	e, ok := a.entries[Key(name)]
	return e, ok
}

// Entries returns the entries in insertion order.
func (a *Archive) Entries() []*Entry {
	out := make([]*Entry, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, a.entries[k])
	}
	return out
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.order)
}
