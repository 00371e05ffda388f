package label

import "fmt"

// Registry collects label entries before they are frozen into a Table.
type Registry struct {
	entries []Entry
}

// EntryOption adjusts an entry while it is registered.
type EntryOption func(*Entry)

// WithFlags adds flags to the entry.
func WithFlags(f Flag) EntryOption {
	return func(e *Entry) { e.Flags |= f }
}

// WithLake sets the label a lake becomes inside this label.
func WithLake(l Biome) EntryOption {
	return func(e *Entry) { e.Lake = l }
}

// WithRiver sets the label a river becomes inside this label.
func WithRiver(r Biome) EntryOption {
	return func(e *Entry) { e.River = r }
}

// WithShore sets the label this label becomes where it meets the ocean.
func WithShore(s Biome) EntryOption {
	return func(e *Entry) { e.Shore = s }
}

// Biome registers a terminal label. Lake, river and shore variants default to
// Lake, River and Shore.
func (r *Registry) Biome(l Biome, name string, opts ...EntryOption) *Registry {
	e := Entry{Label: l, Name: name, Lake: Lake, River: River, Shore: Shore, Fallback: l}
	for _, opt := range opts {
		opt(&e)
	}
	r.entries = append(r.entries, e)
	return r
}

// Marker registers an intermediate marker and the terminal label it degrades to.
func (r *Registry) Marker(l Biome, name string, fallback Biome, opts ...EntryOption) *Registry {
	e := Entry{Label: l, Name: name, Flags: FlagMarker, Lake: Lake, River: River, Shore: Shore, Fallback: fallback}
	for _, opt := range opts {
		opt(&e)
	}
	r.entries = append(r.entries, e)
	return r
}

// Build validates the registered entries and freezes them. Ids must be dense
// and in order, names unique, and every fallback a registered terminal label.
func (r *Registry) Build() (*Table, error) {
	t := &Table{
		byID:   make([]Entry, len(r.entries)),
		byName: make(map[string]Biome, len(r.entries)),
	}
	for i, e := range r.entries {
		if int(e.Label) != i {
			return nil, fmt.Errorf("label %q: id %d registered at position %d", e.Name, e.Label, i)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("label %q registered twice", e.Name)
		}
		t.byID[i] = e
		t.byName[e.Name] = e.Label
	}
	for _, e := range t.byID {
		for _, ref := range []Biome{e.Fallback, e.Lake, e.River, e.Shore} {
			if int(ref) < 0 || int(ref) >= len(t.byID) {
				return nil, fmt.Errorf("label %q references unregistered id %d: %w", e.Name, ref, ErrUnknownLabel)
			}
			if t.byID[ref].IsMarker() {
				return nil, fmt.Errorf("label %q references marker %q", e.Name, t.byID[ref].Name)
			}
		}
	}
	return t, nil
}

// MustBuild is like Build but panics on error.
func (r *Registry) MustBuild() *Table {
	t, err := r.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Table is the immutable label table.
type Table struct {
	byID   []Entry
	byName map[string]Biome
}

// Lookup returns the entry for l.
func (t *Table) Lookup(l Biome) (Entry, bool) {
	if l < 0 || int(l) >= len(t.byID) {
		return Entry{}, false
	}
	return t.byID[l], true
}

// FromID converts a pipeline grid value to its label.
func (t *Table) FromID(id int32) (Biome, error) {
	if id < 0 || int(id) >= len(t.byID) {
		return 0, fmt.Errorf("id %d: %w", id, ErrUnknownLabel)
	}
	return Biome(id), nil
}

// ID converts a label to its pipeline grid value.
func (t *Table) ID(l Biome) int32 { return int32(l) }

// ByName returns the label registered under name.
func (t *Table) ByName(name string) (Biome, error) {
	l, ok := t.byName[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownLabel)
	}
	return l, nil
}

// All returns every entry in id order.
func (t *Table) All() []Entry {
	out := make([]Entry, len(t.byID))
	copy(out, t.byID)
	return out
}

// Has reports whether l carries every flag in f.
func (t *Table) Has(l Biome, f Flag) bool {
	e, ok := t.Lookup(l)
	return ok && e.Flags&f == f
}

// IsMarker reports whether l is an intermediate marker.
func (t *Table) IsMarker(l Biome) bool { return t.Has(l, FlagMarker) }

// Fallback returns the terminal label a marker degrades to, or l itself.
func (t *Table) Fallback(l Biome) Biome {
	e, ok := t.Lookup(l)
	if !ok {
		return Ocean
	}
	return e.Fallback
}
