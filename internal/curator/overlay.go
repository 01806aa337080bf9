package curator

// Overlay holds per-browsing-session candidate annotations keyed by
// candidate ID. Annotations never touch the stored result; discarding the
// overlay discards them.
type Overlay struct {
	saved  map[string]bool
	hidden map[string]bool
}

// NewOverlay returns an empty annotation overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		saved:  make(map[string]bool),
		hidden: make(map[string]bool),
	}
}

// ToggleSaved flips the saved mark for a candidate and reports the new state.
func (o *Overlay) ToggleSaved(id string) bool {
	o.saved[id] = !o.saved[id]
	return o.saved[id]
}

// ToggleHidden flips the hidden mark for a candidate and reports the new state.
func (o *Overlay) ToggleHidden(id string) bool {
	o.hidden[id] = !o.hidden[id]
	return o.hidden[id]
}

// IsSaved reports whether a candidate is marked saved.
func (o *Overlay) IsSaved(id string) bool {
	return o.saved[id]
}

// IsHidden reports whether a candidate is marked hidden.
func (o *Overlay) IsHidden(id string) bool {
	return o.hidden[id]
}

// SavedIDs returns the IDs currently marked saved.
func (o *Overlay) SavedIDs() []string {
	var ids []string
	for id, on := range o.saved {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}
